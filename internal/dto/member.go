package dto

// MemberRequest is the body of a member-add request
type MemberRequest struct {
	Name string `json:"name"`
}

// MemberResponse echoes the stored member name
type MemberResponse struct {
	Name string `json:"name"`
}

// HealthResponse reports process and store health
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store"`
}

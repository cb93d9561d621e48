package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/design-tracker/internal/dto"
	apierrors "github.com/yukikurage/design-tracker/internal/errors"
	"github.com/yukikurage/design-tracker/internal/services"
)

type MemberHandler struct {
	memberService *services.MemberService
	log           *logrus.Logger
}

func NewMemberHandler(memberService *services.MemberService, log *logrus.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		log:           log,
	}
}

// ListMembers returns member names in ascending order
func (h *MemberHandler) ListMembers(c *gin.Context) {
	names, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, names)
}

// AddMember adds a name to the roster
func (h *MemberHandler) AddMember(c *gin.Context) {
	var req dto.MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	name, err := h.memberService.AddMember(c.Request.Context(), req.Name)
	if err != nil {
		respondServiceError(c, h.log, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, dto.MemberResponse{Name: name})
}

package models

import "time"

// DefaultMembers seed an empty roster.
var DefaultMembers = []string{"Kunal Verma", "Akash Roy"}

// Member is a team participant that tasks can be assigned to or received by.
type Member struct {
	ID        string    `gorm:"primarykey;type:varchar(36)" json:"-"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime:false" json:"createdAt"`
}

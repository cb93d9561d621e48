package repository

import (
	"gorm.io/gorm"
)

// OrderByUpdatedDesc orders tasks most recently touched first
func OrderByUpdatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC")
}

// OrderByName orders members by name ascending
func OrderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}

// ByID restricts a query to one identifier
func ByID(id string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

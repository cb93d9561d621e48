package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yukikurage/design-tracker/internal/models"
	"gorm.io/gorm"
)

// GormMemberRepository is a GORM implementation of MemberRepository
type GormMemberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

// Count returns the number of members
func (r *GormMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListNames lists member names in ascending order
func (r *GormMemberRepository) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	if err := r.db.WithContext(ctx).Model(&models.Member{}).Scopes(OrderByName).Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// FindByName finds a member by exact name
func (r *GormMemberRepository) FindByName(ctx context.Context, name string) (*models.Member, error) {
	var member models.Member
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&member).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &member, nil
}

// Create adds one member
func (r *GormMemberRepository) Create(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	return translateGormError(r.db.WithContext(ctx).Create(member).Error)
}

// CreateMany adds several members in a single insert
func (r *GormMemberRepository) CreateMany(ctx context.Context, members []models.Member) error {
	if len(members) == 0 {
		return nil
	}
	for i := range members {
		if members[i].ID == "" {
			members[i].ID = uuid.NewString()
		}
	}
	return translateGormError(r.db.WithContext(ctx).Create(&members).Error)
}

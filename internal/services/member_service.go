package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/design-tracker/internal/models"
	"github.com/yukikurage/design-tracker/internal/repository"
)

var (
	ErrMemberNameRequired = errors.New("member name is required")
	ErrMemberExists       = errors.New("member already exists")
)

// MemberService provides business logic for the member roster.
type MemberService struct {
	memberRepo     repository.MemberRepository
	defaultMembers []string
	now            func() time.Time
}

// NewMemberService creates a new MemberService. defaultMembers seeds an
// empty roster on first listing.
func NewMemberService(memberRepo repository.MemberRepository, defaultMembers []string) *MemberService {
	return &MemberService{
		memberRepo:     memberRepo,
		defaultMembers: defaultMembers,
		now:            time.Now,
	}
}

// ListMembers returns member names in ascending order, seeding the default
// roster when there are no members yet.
func (s *MemberService) ListMembers(ctx context.Context) ([]string, error) {
	count, err := s.memberRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	if count == 0 && len(s.defaultMembers) > 0 {
		now := s.now().UTC().Truncate(time.Millisecond)
		seed := make([]models.Member, 0, len(s.defaultMembers))
		for _, name := range s.defaultMembers {
			seed = append(seed, models.Member{Name: name, CreatedAt: now})
		}
		// a concurrent first listing may have seeded already
		if err := s.memberRepo.CreateMany(ctx, seed); err != nil && !errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("failed to seed members: %w", err)
		}
	}

	names, err := s.memberRepo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return names, nil
}

// AddMember adds a member and returns the stored (trimmed) name.
func (s *MemberService) AddMember(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrMemberNameRequired
	}

	_, err := s.memberRepo.FindByName(ctx, name)
	if err == nil {
		return "", ErrMemberExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to look up member: %w", err)
	}

	member := &models.Member{Name: name, CreatedAt: s.now().UTC().Truncate(time.Millisecond)}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrMemberExists
		}
		return "", fmt.Errorf("failed to add member: %w", err)
	}
	return name, nil
}

package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/splitledger/splitledger/internal/user"
)

// Common errors
var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrMemberNotFound      = errors.New("member not found")
	ErrMemberAlreadyExists = errors.New("user is already a member of this group")
)

// Service handles group business logic
type Service struct {
	repo     *Repository
	userRepo *user.Repository
}

// NewService creates a new group service
func NewService(repo *Repository, userRepo *user.Repository) *Service {
	return &Service{repo: repo, userRepo: userRepo}
}

// Create creates a new group with the given initial members. Every user id
// must reference an existing user.
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, []*Member, error) {
	seen := make(map[int64]bool, len(req.UserIDs))
	for _, uid := range req.UserIDs {
		if seen[uid] {
			return nil, nil, fmt.Errorf("%w: user %d listed twice", ErrMemberAlreadyExists, uid)
		}
		seen[uid] = true

		u, err := s.userRepo.GetByID(ctx, uid)
		if err != nil {
			return nil, nil, err
		}
		if u == nil {
			return nil, nil, fmt.Errorf("%w: user %d", user.ErrUserNotFound, uid)
		}
	}

	group, err := s.repo.Create(ctx, req.Name, req.UserIDs)
	if err != nil {
		return nil, nil, err
	}

	members, err := s.repo.GetMembers(ctx, group.ID)
	if err != nil {
		return nil, nil, err
	}

	return group, members, nil
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// GetDetails retrieves a group with its members and expense total
func (s *Service) GetDetails(ctx context.Context, id int64) (*GroupResponse, error) {
	group, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.GetMembers(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.TotalExpenses(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := group.ToResponse()
	resp.Users = make([]*MemberResponse, len(members))
	for i, m := range members {
		resp.Users[i] = m.ToResponse()
	}
	resp.TotalExpenses = total
	return resp, nil
}

// List retrieves all groups with members and expense totals
func (s *Service) List(ctx context.Context, page, perPage int) ([]*GroupResponse, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	groups, total, err := s.repo.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		details, err := s.GetDetails(ctx, g.ID)
		if err != nil {
			return nil, 0, err
		}
		responses[i] = details
	}

	return responses, total, nil
}

// Update modifies an existing group
func (s *Service) Update(ctx context.Context, id int64, req *UpdateGroupRequest) (*Group, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.Update(ctx, id, req)
}

// Delete removes a group
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, groupID int64, req *AddMemberRequest) (*Member, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	existing, err := s.repo.GetMember(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrMemberAlreadyExists
	}

	return s.repo.AddMember(ctx, groupID, req.UserID)
}

// GetMembers retrieves all members of a group
func (s *Service) GetMembers(ctx context.Context, groupID int64) ([]*Member, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	return s.repo.GetMembers(ctx, groupID)
}

// RemoveMember removes a user from a group
func (s *Service) RemoveMember(ctx context.Context, groupID, userID int64) error {
	return s.repo.RemoveMember(ctx, groupID, userID)
}

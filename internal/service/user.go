package service

import (
	"context"
	"errors"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/entity"
	"github.com/octobees/cms-seeder/internal/repository"
)

// UserService encapsulates role catalog and account administration.
type UserService struct {
	users repository.UsersRepository
	roles repository.RolesRepository
}

// NewUserService builds a new UserService instance.
func NewUserService(users repository.UsersRepository, roles repository.RolesRepository) *UserService {
	return &UserService{users: users, roles: roles}
}

// ListRoles returns the role catalog.
func (s *UserService) ListRoles(ctx context.Context) ([]dto.Role, error) {
	roles, err := s.roles.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.Role, 0, len(roles))
	for i := range roles {
		out = append(out, *toRoleDTO(&roles[i]))
	}
	return out, nil
}

// AssignRole replaces the role of a user.
func (s *UserService) AssignRole(ctx context.Context, userID, roleID int) (*dto.User, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateRole(ctx, userID, role.ID)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user, role), nil
}

// Me returns the account identified by a user token.
func (s *UserService) Me(ctx context.Context, userID int) (*dto.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil && !errors.Is(err, repository.ErrRoleNotFound) {
		return nil, err
	}
	return toUserDTO(user, role), nil
}

func toUserDTO(user *entity.User, role *entity.Role) *dto.User {
	return &dto.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		Blocked:   user.Blocked,
		Role:      toRoleDTO(role),
	}
}

func toRoleDTO(role *entity.Role) *dto.Role {
	if role == nil {
		return nil
	}
	return &dto.Role{
		ID:          role.ID,
		Name:        role.Name,
		Description: role.Description,
		Type:        role.Type,
	}
}

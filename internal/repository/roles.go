package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/octobees/cms-seeder/internal/entity"
)

// ErrRoleNotFound is returned when no role matches the lookup criteria.
var ErrRoleNotFound = errors.New("role not found")

// RolesRepository serves the fixed role catalog of the CMS stub.
type RolesRepository interface {
	List(ctx context.Context) ([]entity.Role, error)
	FindByID(ctx context.Context, id int) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}

// StaticRolesRepository holds a catalog fixed at construction time.
type StaticRolesRepository struct {
	roles []entity.Role
}

// NewStaticRolesRepository numbers the given names from 1 in order.
func NewStaticRolesRepository(names []string) *StaticRolesRepository {
	roles := make([]entity.Role, 0, len(names))
	for i, name := range names {
		roles = append(roles, entity.Role{
			ID:          i + 1,
			Name:        name,
			Description: name + " role",
			Type:        strings.ToLower(name),
		})
	}
	return &StaticRolesRepository{roles: roles}
}

// List returns the catalog.
func (r *StaticRolesRepository) List(ctx context.Context) ([]entity.Role, error) {
	out := make([]entity.Role, len(r.roles))
	copy(out, r.roles)
	return out, nil
}

// FindByID looks a role up by id.
func (r *StaticRolesRepository) FindByID(ctx context.Context, id int) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			found := role
			return &found, nil
		}
	}
	return nil, ErrRoleNotFound
}

// FindByName looks a role up by its exact name.
func (r *StaticRolesRepository) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			found := role
			return &found, nil
		}
	}
	return nil, ErrRoleNotFound
}

var _ RolesRepository = (*StaticRolesRepository)(nil)

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/octobees/cms-seeder/internal/entity"
	"github.com/octobees/cms-seeder/internal/repository"
)

func TestUserService_ListRoles(t *testing.T) {
	svc := NewUserService(&mockUsersRepository{}, repository.NewStaticRolesRepository([]string{"Authenticated", "Admin"}))

	roles, err := svc.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roles) != 2 || roles[0].ID != 1 || roles[1].Name != "Admin" || roles[1].Type != "admin" {
		t.Fatalf("unexpected roles: %+v", roles)
	}
}

func TestUserService_AssignRole(t *testing.T) {
	roles := repository.NewStaticRolesRepository([]string{"Authenticated", "Author"})

	t.Run("success", func(t *testing.T) {
		repo := &mockUsersRepository{
			updateRole: func(ctx context.Context, id, roleID int) (*entity.User, error) {
				return &entity.User{ID: id, Username: "author", RoleID: roleID}, nil
			},
		}
		user, err := NewUserService(repo, roles).AssignRole(context.Background(), 4, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 4 || user.Role == nil || user.Role.Name != "Author" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("unknown role", func(t *testing.T) {
		repo := &mockUsersRepository{
			updateRole: func(ctx context.Context, id, roleID int) (*entity.User, error) {
				t.Fatalf("update should not be called")
				return nil, nil
			},
		}
		if _, err := NewUserService(repo, roles).AssignRole(context.Background(), 4, 9); !errors.Is(err, repository.ErrRoleNotFound) {
			t.Fatalf("expected ErrRoleNotFound, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := &mockUsersRepository{
			updateRole: func(ctx context.Context, id, roleID int) (*entity.User, error) {
				return nil, repository.ErrUserNotFound
			},
		}
		if _, err := NewUserService(repo, roles).AssignRole(context.Background(), 4, 1); !errors.Is(err, repository.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserService_Me(t *testing.T) {
	repo := &mockUsersRepository{
		findByID: func(ctx context.Context, id int) (*entity.User, error) {
			if id != 1 {
				return nil, repository.ErrUserNotFound
			}
			return &entity.User{ID: 1, Username: "auth", Email: "auth@test.com", RoleID: 1}, nil
		},
	}
	svc := NewUserService(repo, repository.NewStaticRolesRepository([]string{"Authenticated"}))

	user, err := svc.Me(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "auth@test.com" || user.Role == nil || user.Role.Name != "Authenticated" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Me(context.Background(), 2); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

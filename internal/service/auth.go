package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/octobees/cms-seeder/internal/auth"
	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/repository"
)

// DefaultRole is assigned to every newly registered account.
const DefaultRole = "Authenticated"

// AuthService registers accounts and issues user tokens.
type AuthService struct {
	users repository.UsersRepository
	roles repository.RolesRepository
	jwt   *auth.JWTManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UsersRepository, roles repository.RolesRepository, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{users: users, roles: roles, jwt: jwtManager}
}

// Register creates an account and returns its token along with the user.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if err := dto.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	roleID := 0
	role, err := s.roles.FindByName(ctx, DefaultRole)
	switch {
	case err == nil:
		roleID = role.ID
	case !errors.Is(err, repository.ErrRoleNotFound):
		return nil, err
	}

	user, err := s.users.Create(ctx, req.Username, req.Email, string(hashed), roleID)
	if err != nil {
		if errors.Is(err, repository.ErrUserTaken) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{JWT: token, User: toUserDTO(user, role)}, nil
}

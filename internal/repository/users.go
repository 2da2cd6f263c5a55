package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/octobees/cms-seeder/internal/entity"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup criteria.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserTaken is returned when the email or username is already registered.
	ErrUserTaken = errors.New("email or username already taken")
)

// UsersRepository declares the account operations of the CMS stub.
type UsersRepository interface {
	FindByID(ctx context.Context, id int) (*entity.User, error)
	Create(ctx context.Context, username, email, passwordHash string, roleID int) (*entity.User, error)
	UpdateRole(ctx context.Context, id, roleID int) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// MemoryUsersRepository implements UsersRepository in process memory.
type MemoryUsersRepository struct {
	mu     sync.RWMutex
	nextID int
	users  map[int]*entity.User
}

// NewMemoryUsersRepository instantiates an empty users repository.
func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{users: make(map[int]*entity.User)}
}

// FindByID retrieves a user by identifier.
func (r *MemoryUsersRepository) FindByID(ctx context.Context, id int) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

// Create inserts a new user. Email and username are unique, case-insensitively.
func (r *MemoryUsersRepository) Create(ctx context.Context, username, email, passwordHash string, roleID int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, email) || strings.EqualFold(existing.Username, username) {
			return nil, ErrUserTaken
		}
	}

	r.nextID++
	now := time.Now().UTC()
	user := &entity.User{
		ID:           r.nextID,
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		Confirmed:    true,
		RoleID:       roleID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[user.ID] = user

	clone := *user
	return &clone, nil
}

// UpdateRole changes the role of a user.
func (r *MemoryUsersRepository) UpdateRole(ctx context.Context, id, roleID int) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	user.RoleID = roleID
	user.UpdatedAt = time.Now().UTC()

	clone := *user
	return &clone, nil
}

// List returns all users ordered by id.
func (r *MemoryUsersRepository) List(ctx context.Context) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]entity.User, 0, len(r.users))
	for id := 1; id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

var _ UsersRepository = (*MemoryUsersRepository)(nil)

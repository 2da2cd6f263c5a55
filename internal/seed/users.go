package seed

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/strapi"
)

var (
	// ErrRolesUnavailable means the role catalog could not be loaded.
	ErrRolesUnavailable = errors.New("failed to load roles")
	// ErrMissingRoles means a role a demo user depends on does not exist.
	ErrMissingRoles = errors.New("missing required roles")
	// ErrMalformedResponse means a 2xx registration answer carried no user.
	ErrMalformedResponse = errors.New("registration response has no user")
)

// DemoUsers are the accounts created by the user seeder, in creation order.
var DemoUsers = []dto.UserSeedInput{
	{Username: "auth", Email: "auth@test.com", Password: "password123", RoleName: "Authenticated"},
	{Username: "author", Email: "author@test.com", Password: "password123", RoleName: "Author"},
	{Username: "admin", Email: "admin@test.com", Password: "password123", RoleName: "Admin"},
}

// UserAPI is the part of the CMS client the user seeder needs.
type UserAPI interface {
	ListRoles(ctx context.Context) (*dto.RolesResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	AssignRole(ctx context.Context, userID, roleID int) error
}

// UserFailure records why one demo user was not fully provisioned.
type UserFailure struct {
	Email string
	Step  string
	Err   error
}

// UserSummary is the outcome of a user seeding run.
type UserSummary struct {
	Attempted int
	Created   int
	Failed    []UserFailure
}

// UserSeeder registers demo accounts and assigns their roles.
type UserSeeder struct {
	api      UserAPI
	log      logrus.FieldLogger
	users    []dto.UserSeedInput
	required []string
}

// NewUserSeeder constructs a user seeder for the given accounts. Every role
// in required must exist before any account is registered.
func NewUserSeeder(api UserAPI, log logrus.FieldLogger, users []dto.UserSeedInput, required []string) *UserSeeder {
	return &UserSeeder{api: api, log: log, users: users, required: required}
}

// Run loads the role catalog, then provisions each user strictly in order.
// Per-user failures are logged and counted; only catalog problems are fatal.
func (s *UserSeeder) Run(ctx context.Context) (*UserSummary, error) {
	s.log.WithField("roles", strings.Join(s.required, ", ")).Info("checking required roles")

	roleIDs, err := s.loadRoles(ctx)
	if err != nil {
		return nil, err
	}

	summary := &UserSummary{}
	for _, user := range s.users {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Attempted++

		step, err := s.provision(ctx, user, roleIDs[user.RoleName])
		if err != nil {
			summary.Failed = append(summary.Failed, UserFailure{Email: user.Email, Step: step, Err: err})
			continue
		}
		summary.Created++
	}

	s.log.WithFields(logrus.Fields{
		"created": summary.Created,
		"failed":  len(summary.Failed),
	}).Info("user seeding complete")
	return summary, nil
}

func (s *UserSeeder) loadRoles(ctx context.Context) (map[string]int, error) {
	resp, err := s.api.ListRoles(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to load roles")
		return nil, fmt.Errorf("%w: %v", ErrRolesUnavailable, err)
	}
	if resp == nil || resp.Roles == nil {
		s.log.Error("failed to load roles: response has no roles")
		return nil, fmt.Errorf("%w: response has no roles", ErrRolesUnavailable)
	}

	roleIDs := make(map[string]int, len(resp.Roles))
	for _, role := range resp.Roles {
		roleIDs[role.Name] = role.ID
	}

	var missing []string
	for _, name := range s.required {
		if _, ok := roleIDs[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, user := range s.users {
		if _, ok := roleIDs[user.RoleName]; !ok && !slices.Contains(missing, user.RoleName) {
			missing = append(missing, user.RoleName)
		}
	}
	if len(missing) > 0 {
		joined := strings.Join(missing, ", ")
		s.log.WithField("roles", joined).Error("missing required roles")
		s.log.Warn("create these roles in the admin UI before running this command, then re-run it")
		return nil, fmt.Errorf("%w: %s", ErrMissingRoles, joined)
	}
	return roleIDs, nil
}

func (s *UserSeeder) provision(ctx context.Context, user dto.UserSeedInput, roleID int) (string, error) {
	log := s.log.WithFields(logrus.Fields{"email": user.Email, "username": user.Username})
	log.Info("creating user")

	resp, err := s.api.Register(ctx, dto.RegisterRequest{
		Username: user.Username,
		Email:    user.Email,
		Password: user.Password,
	})
	if err != nil {
		var svcErr *strapi.ServiceError
		if errors.As(err, &svcErr) {
			log.WithField("reason", svcErr.Message).Warn("failed to register user")
		} else {
			log.WithError(err).Error("unexpected error while registering user")
		}
		return "register", err
	}
	if resp == nil || resp.User == nil {
		log.WithField("reason", ErrMalformedResponse.Error()).Warn("failed to register user")
		return "register", ErrMalformedResponse
	}

	if err := s.api.AssignRole(ctx, resp.User.ID, roleID); err != nil {
		reason := err.Error()
		var svcErr *strapi.ServiceError
		if errors.As(err, &svcErr) {
			reason = svcErr.Message
		}
		log.WithField("reason", reason).Error("failed to assign role")
		return "assign_role", err
	}

	log.WithField("role", user.RoleName).Info("created user")
	return "", nil
}

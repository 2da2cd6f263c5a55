// Package precheck verifies that a CMS is reachable and that the seeder token
// can read the role catalog before any data is written.
package precheck

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/octobees/cms-seeder/internal/dto"
	"github.com/octobees/cms-seeder/internal/strapi"
)

var (
	// ErrUnreachable means the health endpoint failed or answered non-2xx.
	ErrUnreachable = errors.New("cms is not reachable")
	// ErrTokenForbidden means the role catalog answered 403.
	ErrTokenForbidden = errors.New("token is invalid or lacks permission to access roles")
	// ErrTokenCheckFailed covers every other failure of the role catalog request.
	ErrTokenCheckFailed = errors.New("failed to verify token")
)

// Stage is a step of a precheck run.
type Stage int

const (
	StageStart Stage = iota
	StageConnectivityChecked
	StageTokenChecked
	StageDone
	StageAborted
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageConnectivityChecked:
		return "connectivity_checked"
	case StageTokenChecked:
		return "token_checked"
	case StageDone:
		return "done"
	case StageAborted:
		return "aborted"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// API is the part of the CMS client the precheck needs.
type API interface {
	Health(ctx context.Context) error
	ListRoles(ctx context.Context) (*dto.RolesResponse, error)
}

// Report summarizes a run. MissingRoles is advisory and never fails the run.
type Report struct {
	Stage        Stage
	Roles        []dto.Role
	MissingRoles []string
}

// Runner executes the checks in order and stops at the first fatal one.
type Runner struct {
	api      API
	log      logrus.FieldLogger
	baseURL  string
	required []string
}

// NewRunner constructs a precheck runner.
func NewRunner(api API, log logrus.FieldLogger, baseURL string, required []string) *Runner {
	return &Runner{api: api, log: log, baseURL: baseURL, required: required}
}

// Run performs the connectivity check followed by the token and role check.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{Stage: StageStart}

	if err := r.checkConnection(ctx); err != nil {
		report.Stage = StageAborted
		return report, err
	}
	report.Stage = StageConnectivityChecked

	roles, err := r.checkToken(ctx)
	if err != nil {
		report.Stage = StageAborted
		return report, err
	}
	report.Stage = StageTokenChecked
	report.Roles = roles

	report.MissingRoles = MissingRoles(r.required, roles)
	if len(report.MissingRoles) > 0 {
		r.log.WithField("roles", strings.Join(report.MissingRoles, ", ")).Warn("missing roles")
	} else {
		r.log.Info("required roles are present")
	}

	report.Stage = StageDone
	r.log.Info("precheck complete")
	return report, nil
}

func (r *Runner) checkConnection(ctx context.Context) error {
	r.log.WithField("url", r.baseURL).Info("checking cms connection")
	if err := r.api.Health(ctx); err != nil {
		r.log.WithError(err).Error("could not reach cms, is it running?")
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	r.log.Info("cms is reachable")
	return nil
}

func (r *Runner) checkToken(ctx context.Context) ([]dto.Role, error) {
	r.log.Info("verifying admin token")
	resp, err := r.api.ListRoles(ctx)
	if err != nil {
		var svcErr *strapi.ServiceError
		if errors.As(err, &svcErr) && svcErr.StatusCode == http.StatusForbidden {
			r.log.Error("token is invalid or lacks permission to access roles")
			r.log.Warn("please ensure your API token has correct permissions")
			return nil, fmt.Errorf("%w: %v", ErrTokenForbidden, err)
		}
		r.log.WithError(err).Error("failed to verify token")
		return nil, fmt.Errorf("%w: %v", ErrTokenCheckFailed, err)
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Roles, nil
}

// MissingRoles returns the required names absent from roles, in required order.
func MissingRoles(required []string, roles []dto.Role) []string {
	present := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		present[role.Name] = struct{}{}
	}

	var missing []string
	for _, name := range required {
		if _, ok := present[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

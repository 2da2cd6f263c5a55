package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/octobees/cms-seeder/internal/auth"
	"github.com/octobees/cms-seeder/internal/config"
	"github.com/octobees/cms-seeder/internal/handler"
	middlewarepkg "github.com/octobees/cms-seeder/internal/middleware"
	"github.com/octobees/cms-seeder/internal/repository"
	"github.com/octobees/cms-seeder/internal/service"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth    *handler.AuthHandler
	Users   *handler.UserHandler
	Content *handler.ContentHandler
}

// New builds the CMS stub with fresh in-memory state. The admin API token is
// cfg.Token, the same value the seeding commands send.
func New(cfg *config.Config, log logrus.FieldLogger) *echo.Echo {
	jwtManager := auth.NewJWTManager(cfg.Stub.JWTSecret, cfg.Stub.TokenTTL)

	usersRepo := repository.NewMemoryUsersRepository()
	rolesRepo := repository.NewStaticRolesRepository(cfg.Stub.Roles)
	entriesRepo := repository.NewMemoryEntriesRepository()

	handlers := Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(usersRepo, rolesRepo, jwtManager)),
		Users:   handler.NewUserHandler(service.NewUserService(usersRepo, rolesRepo)),
		Content: handler.NewContentHandler(service.NewContentService(entriesRepo)),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(log))
	e.Use(echoMiddleware.Recover())

	Register(e, cfg, jwtManager, handlers)
	return e
}

// Register wires all HTTP routes of the stub.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/_health", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	api := e.Group("/api")
	api.POST("/auth/local/register", handlers.Auth.Register)
	api.GET("/users/me", handlers.Users.Me, middlewarepkg.UserJWT(jwtManager))

	admin := middlewarepkg.AdminToken(cfg.Token)
	limited := middlewarepkg.RateLimiter(cfg.Stub.RateLimit)

	api.GET("/users-permissions/roles", handlers.Users.Roles, admin)
	api.PUT("/users/:id", handlers.Users.AssignRole, admin)
	api.POST("/events", handlers.Content.CreateEvent, admin, limited)
	api.POST("/pages", handlers.Content.CreatePage, admin, limited)
}

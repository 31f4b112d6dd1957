package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/credentials"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/handler"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider/github"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/provider/google"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/resolver"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/revocation"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/service"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/auth/token"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/config"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/middleware"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/stats"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/user"
	"github.com/CRACK-BREAK-MAKE/workout-buddy/internal/workout"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec, err := token.NewCodec(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, nil, err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	users := user.NewPostgresStore(infra.db)
	identityResolver := resolver.New(users)

	var denyList revocation.List
	if infra.redis != nil {
		denyList = revocation.NewRedisList(infra.redis.Client)
	}

	authService := service.New(
		registry,
		codec,
		identityResolver,
		denyList,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	credService := credentials.NewService(users)

	workoutStore := workout.NewPostgresStore(infra.db)
	workoutService := workout.NewService(workoutStore)
	statsService := stats.NewService(workoutStore)

	authHandler := handler.NewHandler(
		authService,
		credService,
		users,
		cfg.FrontendURL,
		cfg.SecureCookies,
	)
	workoutHandler := workout.NewHandler(workoutService)
	statsHandler := stats.NewHandler(statsService)

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.RequireAuth(authService))

	authHandler.RegisterProtectedRoutes(api)
	workoutHandler.RegisterRoutes(api)
	statsHandler.RegisterRoutes(api)

	return router, infra.close, nil
}

// buildRegistry registers a factory per configured provider. Each
// factory is invoked once eagerly so a half-filled provider config
// fails at startup instead of on the first login.
func buildRegistry(cfg config.Config) (*provider.Registry, error) {
	registry := provider.NewRegistry()

	if cfg.Google.Configured() {
		g := cfg.Google
		registry.Register("google", func() (provider.Provider, error) {
			return google.New(g.ClientID, g.ClientSecret, g.RedirectURL, g.Scopes)
		})
	}
	if cfg.GitHub.Configured() {
		g := cfg.GitHub
		registry.Register("github", func() (provider.Provider, error) {
			return github.New(g.ClientID, g.ClientSecret, g.RedirectURL, g.Scopes)
		})
	}

	for _, name := range registry.Supported() {
		if _, err := registry.Resolve(name); err != nil {
			return nil, fmt.Errorf("provider %s: %w", name, err)
		}
	}
	return registry, nil
}

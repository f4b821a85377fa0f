package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/multiweb/multiweb-backend/config"
	httpapi "github.com/multiweb/multiweb-backend/internal/api/http"
	"github.com/multiweb/multiweb-backend/internal/auth"
	"github.com/multiweb/multiweb-backend/internal/components"
	"github.com/multiweb/multiweb-backend/internal/export"
	"github.com/multiweb/multiweb-backend/internal/logging"
	"github.com/multiweb/multiweb-backend/internal/pages"
	"github.com/multiweb/multiweb-backend/internal/projects"
	"github.com/multiweb/multiweb-backend/internal/ratelimit"
	"github.com/multiweb/multiweb-backend/internal/sections"
	"github.com/multiweb/multiweb-backend/internal/users"
)

type RouterDeps struct {
	ServiceName string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
	Logger      zerolog.Logger
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestID())
	r.Use(logging.RequestLogger(dep.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{dep.Cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Cfg.App.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	userRepo := users.NewRepo(dep.DB)
	projectRepo := projects.NewRepo(dep.DB)
	pageRepo := pages.NewRepo(dep.DB)
	sectionRepo := sections.NewRepo(dep.DB)
	componentRepo := components.NewRepo(dep.DB)

	issuer := auth.NewTokenIssuer(dep.Cfg.Auth.JWTSecret, dep.Cfg.Auth.TokenTTL)
	limiter := ratelimit.New(dep.Redis, dep.Cfg.RateLimit.Window, dep.Cfg.RateLimit.Limit)

	loader := export.NewLoader(userRepo, projectRepo, pageRepo, sectionRepo, componentRepo)
	exportService := export.NewService(loader, dep.Logger)

	api := r.Group("/api/v1")
	api.Use(ratelimit.Middleware(limiter, dep.Logger))

	authed := api.Group("", auth.Middleware(issuer, userRepo))
	auth.Register(api.Group("/auth"), authed.Group("/auth"), issuer, userRepo)

	projectsGroup := authed.Group("/projects")
	projects.Register(projectsGroup, projectRepo)
	export.Register(projectsGroup, exportService, dep.Cfg.IsProduction())
	pages.Register(projectsGroup.Group("/:slug/pages"), pageRepo, projectRepo)

	sections.Register(authed, sectionRepo, pageRepo)
	components.Register(authed, componentRepo, sectionRepo)

	projects.RegisterPublic(api.Group("/public/projects"), projectRepo)

	return r
}

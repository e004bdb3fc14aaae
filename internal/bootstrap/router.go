package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	httpapi "github.com/craftly-ai/craftly-backend/internal/api/http"
	"github.com/craftly-ai/craftly-backend/internal/api/http/middleware"

	aihttp "github.com/craftly-ai/craftly-backend/internal/ai/http"
	"github.com/craftly-ai/craftly-backend/internal/ai/repository"
	"github.com/craftly-ai/craftly-backend/internal/ai/service"
	authmw "github.com/craftly-ai/craftly-backend/internal/auth/middleware"
	"github.com/craftly-ai/craftly-backend/internal/uploads"
	"github.com/craftly-ai/craftly-backend/internal/users"
)

type RouterDeps struct {
	Version        string
	AllowedOrigins []string

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Verifier authmw.TokenVerifier

	Chat     service.ChatProvider
	Images   service.ImageProvider
	Uploader service.Uploader
	Uploads  *uploads.Manager

	RateWindow time.Duration
	RateMax    int
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.Version, dep.DB)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(dep.Redis, dep.RateWindow, dep.RateMax).Handler())
	api.Use(authmw.TokenMiddleware(dep.Verifier))

	creationRepo := repository.NewCreationRepo(dep.DB)
	campaignRepo := repository.NewCampaignRepo(dep.DB)

	svc := service.New(dep.Chat, dep.Images, dep.Uploader, creationRepo, campaignRepo)

	aiHandler := aihttp.NewHandler(svc, dep.Uploads)
	aiHandler.Register(api.Group("/ai"))

	userHandler := users.NewHandler(creationRepo)
	userHandler.Register(api.Group("/user"))

	return r
}

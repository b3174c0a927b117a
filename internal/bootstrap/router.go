package bootstrap

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	httpapi "github.com/reco-hub/reco-backend/internal/api/http"
	"github.com/reco-hub/reco-backend/internal/api/http/middleware"
	"github.com/reco-hub/reco-backend/internal/auth"
	exchangehttp "github.com/reco-hub/reco-backend/internal/exchange/http"
	"github.com/reco-hub/reco-backend/internal/exchange/repository"
	"github.com/reco-hub/reco-backend/internal/exchange/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	Client   *mongo.Client
	DB       *mongo.Database
	Cache    *redis.Client
	Verifier auth.TokenVerifier
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(corsMiddleware(dep.CORSOrigins))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "working")
	})

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Client, dep.Cache)
	healthHandler.RegisterRoutes(r)

	queryRepo := repository.NewQueryRepository(dep.DB)
	recRepo := repository.NewRecommendationRepository(dep.DB)

	var cache service.QueryCache
	if dep.Cache != nil {
		cache = repository.NewQueryCache(dep.Cache)
	}

	exchangehttp.Register(r, exchangehttp.Deps{
		Queries:         service.NewQueryService(queryRepo, recRepo, cache),
		Recommendations: service.NewRecommendationService(queryRepo, recRepo, cache),
		Verifier:        dep.Verifier,
	})

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
	}

	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

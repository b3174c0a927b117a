package http

import (
	"github.com/gin-gonic/gin"

	"github.com/reco-hub/reco-backend/internal/auth"
	"github.com/reco-hub/reco-backend/internal/exchange/service"
)

type Deps struct {
	Queries         *service.QueryService
	Recommendations *service.RecommendationService
	Verifier        auth.TokenVerifier
}

// Register mounts the exchange routes. Reads are public; every mutation and
// self-scoped listing sits behind bearer-token verification.
func Register(r gin.IRouter, dep Deps) {
	qh := NewQueryHandler(dep.Queries)
	rh := NewRecommendationHandler(dep.Recommendations)

	r.GET("/queries", qh.list)
	r.GET("/queries/:id", qh.get)
	r.GET("/recommendations", rh.list)

	protected := r.Group("", auth.RequireAuth(dep.Verifier))

	protected.POST("/queries", qh.create)
	protected.GET("/my-queries", qh.listMine)
	protected.PATCH("/queries/:id", qh.update)
	protected.DELETE("/queries/:id", qh.delete)

	protected.POST("/recommendations", rh.create)
	protected.DELETE("/recommendations/:id", rh.delete)
	protected.GET("/my-recommendations", rh.listMine)
	protected.GET("/recommendations-for-me", rh.listForMe)
}

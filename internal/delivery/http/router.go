package http

import (
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/delivery/http/handler"
	"github.com/ComputerScienceAddict/Hi-Hungry/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	sessionHandler    *handler.SessionHandler
	placesHandler     *handler.PlacesHandler
	recommendHandler  *handler.RecommendHandler
	sessionMiddleware *middleware.SessionMiddleware
}

func NewRouter(
	sessionHandler *handler.SessionHandler,
	placesHandler *handler.PlacesHandler,
	recommendHandler *handler.RecommendHandler,
	sessionMiddleware *middleware.SessionMiddleware,
) *Router {
	return &Router{
		sessionHandler:    sessionHandler,
		placesHandler:     placesHandler,
		recommendHandler:  recommendHandler,
		sessionMiddleware: sessionMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Session (public)
		v1.POST("/session", r.sessionHandler.Create)

		// Place search (public)
		places := v1.Group("/places")
		{
			places.GET("/nearby", r.placesHandler.Nearby)
		}

		// Recommendations require a session
		protected := v1.Group("")
		protected.Use(r.sessionMiddleware.RequireSession())
		{
			protected.POST("/recommendations", r.recommendHandler.Recommend)
		}
	}

	return router
}

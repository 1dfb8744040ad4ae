// Package mockserver serves the v1 endpoint catalog from memory for local
// development and tests. It speaks the backend's FastAPI-style error shape:
// {"detail": "..."} or a validation list.
package mockserver

import (
	"net/http"
	"time"

	"telekom-gateway/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Server struct {
	cfg    config.MockServerConfig
	state  *state
	router *gin.Engine
}

func New(cfg config.MockServerConfig) *Server {
	s := &Server{
		cfg:   cfg,
		state: newState(),
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	if len(s.cfg.CORS.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     s.cfg.CORS.AllowedOrigins,
			AllowMethods:     s.cfg.CORS.AllowedMethods,
			AllowHeaders:     s.cfg.CORS.AllowedHeaders,
			AllowCredentials: s.cfg.CORS.AllowCredentials,
			MaxAge:           time.Duration(s.cfg.CORS.MaxAge) * time.Second,
		}))
	}

	api := router.Group("/api/v1")
	{
		api.GET("/health", s.health)
		api.GET("/ai/model-info", s.modelInfo)

		chat := api.Group("/chat")
		{
			chat.POST("/", s.sendMessage)
			chat.POST("/legacy", s.sendMessage)
			chat.POST("/session/clear", s.clearSession)
			chat.GET("/health", s.health)
			chat.GET("/system/status", s.systemStatus)
		}

		user := api.Group("/user")
		{
			user.POST("/register", s.register)
			user.POST("/login", s.login)
			user.GET("/profile", s.profile)
			user.GET("/current", s.profile)
			user.PUT("/current", s.updateProfile)
			user.GET("/by-id/:user_id", s.userByID)
			user.POST("/logout", s.logout)
			user.GET("/all-active", s.activeUsers)
		}

		telekom := api.Group("/telekom")
		{
			telekom.GET("/test", s.telekomTest)
			telekom.POST("/auth/register", s.register)
			telekom.POST("/auth/login", s.login)

			telekom.POST("/billing/current", s.currentBill)
			telekom.POST("/billing/history", s.billingHistory)
			telekom.POST("/billing/pay", s.payBill)
			telekom.POST("/billing/payments", s.paymentHistory)
			telekom.POST("/billing/autopay", s.setAutopay)

			telekom.POST("/packages/current", s.currentPackage)
			telekom.POST("/packages/quotas", s.quotas)
			telekom.POST("/packages/change", s.changePackage)
			telekom.POST("/packages/available", s.availablePackages)
			telekom.POST("/packages/details", s.packageDetails)

			telekom.POST("/customers/profile", s.customerProfile)
			telekom.POST("/customers/contact", s.updateContact)

			telekom.POST("/services/roaming", s.setRoaming)
			telekom.POST("/network/status", s.networkStatus)
			telekom.POST("/diagnostics/speed-test", s.speedTest)
			telekom.POST("/lines/suspend", s.suspendLine)
			telekom.POST("/lines/reactivate", s.reactivateLine)

			telekom.POST("/support/tickets", s.createTicket)
			telekom.POST("/support/tickets/close", s.closeTicket)
			telekom.POST("/support/tickets/status", s.ticketStatus)
			telekom.POST("/support/tickets/list", s.listTickets)
		}

		api.POST("/feedback", s.submitFeedback)
		api.GET("/feedback/stats/:user_id", s.feedbackStats)
		api.GET("/feedback/patterns", s.feedbackPatterns)
		api.GET("/feedback/improvements", s.feedbackImprovements)
	}

	return router
}

package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/istl-web/auth-service/internal/auth"
	"github.com/istl-web/auth-service/internal/transport/http/handler"
	"github.com/istl-web/auth-service/internal/transport/http/middleware"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, tokens *auth.Tokens) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	// Public credential routes
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.POST("/forgot-password", authHandler.ForgotPassword)
	r.POST("/reset-password", authHandler.ResetPassword)

	authMW := middleware.Auth(tokens)

	// Routes that require a valid session
	account := r.Group("/", authMW)
	account.PUT("/change-name", authHandler.ChangeName)
	account.PUT("/change-mobile", authHandler.ChangeMobile)
	account.PUT("/change-password", authHandler.ChangePassword)

	// Admin surface
	admin := r.Group("/admin", authMW, middleware.RequireAdmin())
	admin.GET("/whoami", authHandler.AdminWhoami)

	return r
}

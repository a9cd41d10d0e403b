package router

import (
	"fmt"
	"strings"

	"github.com/heartlink/internal/cache"
	"github.com/heartlink/internal/config"
	apihandlers "github.com/heartlink/internal/http/handlers/api"
	"github.com/heartlink/internal/http/response"
	"github.com/heartlink/internal/logger"
	"github.com/heartlink/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := apihandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "hl"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	registerRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:register", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("/health", func(ctx *gin.Context) {
			response.Success(ctx, gin.H{"status": "ok"})
		})

		// 认证接口
		auth := api.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), handler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), handler.Login)
			auth.POST("/verify-email", handler.VerifyEmail)
			auth.POST("/resend-verification", handler.ResendVerification)
			auth.POST("/refresh-token", handler.RefreshToken)
		}

		// 需鉴权接口
		authed := api.Group("")
		authed.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.POST("/auth/logout", handler.Logout)

			authed.GET("/profile/me", handler.GetMyProfile)
			authed.PUT("/profile/me", handler.UpdateProfile)
			authed.GET("/profile/:userId", handler.GetProfile)
			authed.POST("/profile/photos", handler.AddPhoto)
			authed.DELETE("/profile/photos/:photoId", handler.DeletePhoto)

			authed.GET("/discovery/feed", handler.Feed)
			authed.POST("/discovery/swipe", handler.Swipe)

			authed.GET("/matches", handler.ListMatches)
			authed.DELETE("/matches/:matchId", handler.Unmatch)

			authed.GET("/messages/:matchId", handler.ListMessages)
			authed.POST("/messages/:matchId", handler.SendMessage)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return r
}

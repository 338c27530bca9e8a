package router

import (
	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/cache"
	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, c *cache.Cache, bus *event.Bus, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	tm := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireHrs)

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "investment-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 登录注册
		authHandler := handler.NewAuthHandler(db, tm, cfg)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/investor/register", authHandler.RegisterInvestor)
			authGroup.POST("/investor/login", authHandler.LoginInvestor)
			authGroup.POST("/team/login", authHandler.LoginTeam)
			authGroup.POST("/admin/login", authHandler.LoginAdmin)
		}

		// 团队
		teamHandler := handler.NewTeamHandler(db, bus)
		teams := v1.Group("/teams")
		{
			teams.GET("", teamHandler.GetTeams)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.GET("/:id/investments", teamHandler.GetTeamInvestments)
			teams.GET("/:id/revenue", teamHandler.GetTeamRevenueHistory)

			teamAuth := teams.Group("")
			teamAuth.Use(auth.JWTAuthMiddleware(tm), auth.IdentityRequired(auth.IdentityTeam))
			{
				teamAuth.PUT("/me", teamHandler.UpdateProfile)
				teamAuth.PUT("/me/password", teamHandler.UpdatePassword)
			}
		}

		// 轮次
		roundHandler := handler.NewRoundHandler(db, bus)
		rounds := v1.Group("/rounds")
		{
			rounds.GET("/current", roundHandler.GetCurrentRound)
			rounds.GET("", roundHandler.GetRounds)
		}

		// 投资
		investmentHandler := handler.NewInvestmentHandler(db, bus)
		investments := v1.Group("/investments")
		{
			investments.GET("", investmentHandler.GetInvestments)

			investorAuth := investments.Group("")
			investorAuth.Use(auth.JWTAuthMiddleware(tm), auth.IdentityRequired(auth.IdentityInvestor))
			{
				investorAuth.POST("", investmentHandler.Invest)
				investorAuth.GET("/mine/current-round", investmentHandler.GetMyRoundInvestments)
			}
		}

		// 投资人
		investorHandler := handler.NewInvestorHandler(db)
		investors := v1.Group("/investors")
		investors.Use(auth.JWTAuthMiddleware(tm), auth.IdentityRequired(auth.IdentityInvestor))
		{
			investors.GET("/me", investorHandler.GetMe)
			investors.GET("/me/portfolio", investorHandler.GetMyPortfolio)
		}

		// 统计与排行榜
		statsHandler := handler.NewStatsHandler(db, c)
		v1.GET("/stats", statsHandler.GetGlobalStats)
		v1.GET("/leaderboard", statsHandler.GetLeaderboard)

		// 事件流
		eventHandler := handler.NewEventHandler(bus)
		v1.GET("/events/stream", eventHandler.Stream)

		// 管理员
		adminHandler := handler.NewAdminHandler(db, bus)
		admin := v1.Group("/admin")
		admin.Use(auth.JWTAuthMiddleware(tm), auth.IdentityRequired(auth.IdentityAdmin))
		{
			admin.POST("/rounds/start", adminHandler.StartRound)
			admin.POST("/rounds/end", adminHandler.EndRound)
			admin.POST("/teams", adminHandler.CreateTeam)
			admin.DELETE("/teams/:id", adminHandler.DeleteTeam)
			admin.POST("/teams/:id/reactivate", adminHandler.ReactivateTeam)
			admin.POST("/teams/:id/tokens", adminHandler.AdjustTokens)
			admin.POST("/teams/merge", adminHandler.MergeTeams)
			admin.GET("/investors", adminHandler.GetInvestors)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)
			admin.POST("/audit", adminHandler.AuditLedger)
			admin.GET("/logs", adminHandler.GetLogs)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

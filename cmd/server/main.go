package main

import (
	"github.com/blues/ivs/internal/cache"
	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/database"
	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/logger"
	"github.com/blues/ivs/internal/router"
	"github.com/blues/ivs/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化缓存，未配置时为 nil，相关功能自动降级
	c, err := cache.Init(cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to initialize redis: %v", err)
	}
	if c != nil {
		defer c.Close()
	}

	// 初始化事件总线
	bus, err := event.NewBus(cfg.Event.PoolSize, cfg.Event.BufferSize)
	if err != nil {
		logger.Fatal("Failed to initialize event bus: %v", err)
	}
	defer bus.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, c, bus, cfg)

	// 启动定时任务
	manager := task.Start(db, c, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

package task

import (
	"github.com/blues/ivs/internal/cache"
	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/logger"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	cache     *cache.Cache
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(db *gorm.DB, c *cache.Cache, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		cache:     c,
		config:    cfg,
	}
}

// Start 启动任务管理器
func Start(db *gorm.DB, c *cache.Cache, cfg *config.Config) *Manager {
	manager := NewManager(db, c, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 账本对账任务
	m.registerJob(NewLedgerAuditJob(m.db, m.config))

	// 排行榜缓存刷新任务
	if m.cache != nil {
		m.registerJob(NewLeaderboardJob(m.db, m.cache, m.config))
	}
}

// Job 定时任务接口
type Job interface {
	GetName() string
	GetSchedule() gocron.JobDefinition
	Execute()
}

// registerJob 注册单个任务
func (m *Manager) registerJob(job Job) {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}

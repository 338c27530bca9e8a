package task

import (
	"context"
	"time"

	"github.com/blues/ivs/internal/cache"
	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/logger"
	"github.com/blues/ivs/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// LeaderboardJob 定时刷新排行榜缓存
type LeaderboardJob struct {
	teamLogic *logic.TeamLogic
	cache     *cache.Cache
	config    *config.Config
}

// NewLeaderboardJob 创建排行榜刷新任务
func NewLeaderboardJob(db *gorm.DB, c *cache.Cache, cfg *config.Config) *LeaderboardJob {
	return &LeaderboardJob{
		teamLogic: logic.NewTeamLogic(db, nil),
		cache:     c,
		config:    cfg,
	}
}

// GetName 任务名
func (j *LeaderboardJob) GetName() string {
	return "leaderboard_refresh"
}

// GetSchedule 执行周期
func (j *LeaderboardJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Task.LeaderboardInterval
	if interval <= 0 {
		interval = 30
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 重算排行榜并写入缓存
func (j *LeaderboardJob) Execute() {
	teams, err := j.teamLogic.GetLeaderboard(20)
	if err != nil {
		logger.Error("Failed to refresh leaderboard: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 缓存数据库模型，handler 层读出后再做响应转换
	ttl := time.Duration(j.config.Task.LeaderboardInterval*2) * time.Second
	if err := j.cache.SetJSON(ctx, cache.KeyLeaderboard, teams, ttl); err != nil {
		logger.Error("Failed to cache leaderboard: %v", err)
	}
}

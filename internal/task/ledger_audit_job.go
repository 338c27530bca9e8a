package task

import (
	"time"

	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/logger"
	"github.com/blues/ivs/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// LedgerAuditJob 定时对账任务，发现不一致时记录日志
type LedgerAuditJob struct {
	statsLogic *logic.StatsLogic
	config     *config.Config
}

// NewLedgerAuditJob 创建对账任务
func NewLedgerAuditJob(db *gorm.DB, cfg *config.Config) *LedgerAuditJob {
	return &LedgerAuditJob{
		statsLogic: logic.NewStatsLogic(db),
		config:     cfg,
	}
}

// GetName 任务名
func (j *LedgerAuditJob) GetName() string {
	return "ledger_audit"
}

// GetSchedule 执行周期
func (j *LedgerAuditJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Task.AuditInterval
	if interval <= 0 {
		interval = 300
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 执行对账
func (j *LedgerAuditJob) Execute() {
	findings, err := j.statsLogic.AuditLedger()
	if err != nil {
		logger.Error("Ledger audit failed: %v", err)
		return
	}

	if len(findings) == 0 {
		logger.Debug("Ledger audit passed")
		return
	}

	for _, f := range findings {
		logger.Warn("Ledger audit finding: team=%d field=%s %s", f.TeamId, f.Field, f.Detail)
	}
}

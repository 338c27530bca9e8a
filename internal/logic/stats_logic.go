package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
)

// StatsLogic 全局统计与账本对账
type StatsLogic struct {
	db *gorm.DB
}

// NewStatsLogic 创建统计业务逻辑
func NewStatsLogic(db *gorm.DB) *StatsLogic {
	return &StatsLogic{db: db}
}

// GlobalStats 全局统计
type GlobalStats struct {
	TeamCount     int64             `json:"team_count"`
	InvestorCount int64             `json:"investor_count"`
	TotalTokens   int64             `json:"total_tokens"`
	CurrentRound  *model.RoundModel `json:"current_round"`
}

// AuditFinding 对账发现的一条不一致
type AuditFinding struct {
	TeamId int64  `json:"team_id,omitempty"`
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// GetGlobalStats 获取全局统计。流通代币 = 团队余额之和 + 投资人余额之和。
func (s *StatsLogic) GetGlobalStats() (*GlobalStats, error) {
	stats := &GlobalStats{}

	if err := s.db.Model(&model.TeamModel{}).
		Where("is_active = ?", true).
		Count(&stats.TeamCount).Error; err != nil {
		return nil, fmt.Errorf("统计团队数失败: %w", err)
	}
	if err := s.db.Model(&model.InvestorModel{}).Count(&stats.InvestorCount).Error; err != nil {
		return nil, fmt.Errorf("统计投资人数失败: %w", err)
	}

	var teamTokens, investorTokens int64
	if err := s.db.Model(&model.TeamModel{}).
		Select("COALESCE(SUM(current_tokens), 0)").
		Scan(&teamTokens).Error; err != nil {
		return nil, fmt.Errorf("统计团队代币失败: %w", err)
	}
	if err := s.db.Model(&model.InvestorModel{}).
		Select("COALESCE(SUM(tokens), 0)").
		Scan(&investorTokens).Error; err != nil {
		return nil, fmt.Errorf("统计投资人代币失败: %w", err)
	}
	stats.TotalTokens = teamTokens + investorTokens

	var round model.RoundModel
	err := s.db.Where("status = ?", model.RoundStatusLive).First(&round).Error
	if err == nil {
		stats.CurrentRound = &round
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return stats, nil
}

// AuditLedger 对账：校验冗余计数与关系表一致、余额不为负、
// 可支配余额不超过累计收入。返回全部不一致项，空切片表示账平。
func (s *StatsLogic) AuditLedger() ([]AuditFinding, error) {
	findings := []AuditFinding{}

	var teams []model.TeamModel
	if err := s.db.Unscoped().Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("获取团队失败: %w", err)
	}

	for _, team := range teams {
		if team.CurrentTokens < 0 {
			findings = append(findings, AuditFinding{
				TeamId: team.Id,
				Field:  "current_tokens",
				Detail: fmt.Sprintf("余额为负: %d", team.CurrentTokens),
			})
		}
		if team.CurrentTokens > team.TotalRevenue {
			findings = append(findings, AuditFinding{
				TeamId: team.Id,
				Field:  "total_revenue",
				Detail: fmt.Sprintf("可支配余额 %d 超过累计收入 %d", team.CurrentTokens, team.TotalRevenue),
			})
		}

		var uniqueCount int64
		if err := s.db.Model(&model.TeamInvestorModel{}).
			Where("team_id = ?", team.Id).
			Count(&uniqueCount).Error; err != nil {
			return nil, err
		}
		if uniqueCount != team.UniqueInvestorCount {
			findings = append(findings, AuditFinding{
				TeamId: team.Id,
				Field:  "unique_investor_count",
				Detail: fmt.Sprintf("冗余计数 %d 与关系表 %d 不一致", team.UniqueInvestorCount, uniqueCount),
			})
		}

		var revenueSum int64
		if err := s.db.Model(&model.TeamRevenueModel{}).
			Where("team_id = ?", team.Id).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&revenueSum).Error; err != nil {
			return nil, err
		}
		// 累计收入 = 投资营收 + 管理员加币 + 合并并入，只会大于等于每轮营收之和
		if revenueSum > team.TotalRevenue {
			findings = append(findings, AuditFinding{
				TeamId: team.Id,
				Field:  "revenue_history",
				Detail: fmt.Sprintf("每轮营收之和 %d 超过累计收入 %d", revenueSum, team.TotalRevenue),
			})
		}
	}

	var negativeInvestors int64
	if err := s.db.Model(&model.InvestorModel{}).
		Where("tokens < 0").
		Count(&negativeInvestors).Error; err != nil {
		return nil, err
	}
	if negativeInvestors > 0 {
		findings = append(findings, AuditFinding{
			Field:  "investor.tokens",
			Detail: fmt.Sprintf("%d 个投资人余额为负", negativeInvestors),
		})
	}

	return findings, nil
}

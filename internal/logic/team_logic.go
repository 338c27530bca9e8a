package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 代币调整方式
const (
	AdjustModeAdd    = "add"
	AdjustModeRemove = "remove"
)

// TeamLogic 团队业务逻辑
type TeamLogic struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewTeamLogic 创建团队业务逻辑
func NewTeamLogic(db *gorm.DB, bus *event.Bus) *TeamLogic {
	return &TeamLogic{db: db, bus: bus}
}

// TeamUpdate 团队可更新字段，nil 表示不更新
type TeamUpdate struct {
	Name        *string          `json:"name"`
	Emoji       *string          `json:"emoji"`
	Tagline     *string          `json:"tagline"`
	Description *string          `json:"description"`
	Members     []string         `json:"members"`
	Links       []model.TeamLink `json:"links"`
	BasePrice   *int64           `json:"base_price"`
}

// CreateTeam 创建团队，用户名全局唯一（统一转小写）
func (t *TeamLogic) CreateTeam(name, username, password, emoji string) (*model.TeamModel, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if name == "" || username == "" || password == "" {
		return nil, errors.New("团队名、用户名和密码不能为空")
	}
	if emoji == "" {
		emoji = "🚀"
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	team := &model.TeamModel{
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Emoji:        emoji,
		BasePrice:    50,
		IsActive:     true,
	}

	err = t.db.Transaction(func(tx *gorm.DB) error {
		// 唯一索引覆盖软删除行，查重也要带上
		var count int64
		if err := tx.Unscoped().Model(&model.TeamModel{}).
			Where("username = ?", username).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateUsername
		}
		return tx.Create(team).Error
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// GetTeams 获取团队列表，includeInactive 为 false 时只返回活跃团队
func (t *TeamLogic) GetTeams(includeInactive bool) ([]model.TeamModel, error) {
	var teams []model.TeamModel
	query := t.db.Order("total_revenue DESC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("获取团队列表失败: %w", err)
	}
	return teams, nil
}

// GetTeam 获取团队详情
func (t *TeamLogic) GetTeam(id int64) (*model.TeamModel, error) {
	var team model.TeamModel
	if err := t.db.First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("获取团队详情失败: %w", err)
	}
	return &team, nil
}

// GetTeamByUsername 按用户名获取团队
func (t *TeamLogic) GetTeamByUsername(username string) (*model.TeamModel, error) {
	var team model.TeamModel
	if err := t.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("获取团队失败: %w", err)
	}
	return &team, nil
}

// UpdateTeam 更新团队资料，basePrice 受全局价格区间约束
func (t *TeamLogic) UpdateTeam(id int64, update *TeamUpdate) (*model.TeamModel, error) {
	updates := map[string]interface{}{}
	if update.Name != nil {
		updates["name"] = *update.Name
	}
	if update.Emoji != nil {
		updates["emoji"] = *update.Emoji
	}
	if update.Tagline != nil {
		updates["tagline"] = *update.Tagline
	}
	if update.Description != nil {
		updates["description"] = *update.Description
	}

	var team model.TeamModel
	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		if update.BasePrice != nil {
			var settings model.SettingsModel
			if err := tx.First(&settings, model.SettingsId).Error; err != nil {
				return fmt.Errorf("获取设置失败: %w", err)
			}
			if *update.BasePrice < settings.MinPrice || *update.BasePrice > settings.MaxPrice {
				return ErrBasePriceOutOfRange
			}
			updates["base_price"] = *update.BasePrice
		}
		// 序列化字段走结构体更新，列名更新不经过 serializer
		if update.Members != nil {
			if err := tx.Model(&team).Select("Members").
				Updates(&model.TeamModel{Members: update.Members}).Error; err != nil {
				return err
			}
		}
		if update.Links != nil {
			if err := tx.Model(&team).Select("Links").
				Updates(&model.TeamModel{Links: update.Links}).Error; err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			if err := tx.Model(&team).Updates(updates).Error; err != nil {
				return err
			}
		}
		return tx.First(&team, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// UpdateTeamPassword 修改团队密码
func (t *TeamLogic) UpdateTeamPassword(id int64, password string) error {
	if password == "" {
		return errors.New("密码不能为空")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("密码哈希失败: %w", err)
	}

	res := t.db.Model(&model.TeamModel{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

// DeleteTeam 软删除团队。投资记录保留，引用仍然有效。
func (t *TeamLogic) DeleteTeam(id int64) error {
	return t.db.Transaction(func(tx *gorm.DB) error {
		var team model.TeamModel
		if err := tx.First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if err := tx.Model(&team).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Delete(&team).Error
	})
}

// ReactivateTeam 重新激活团队。只恢复活跃状态，不回退任何代币变更。
func (t *TeamLogic) ReactivateTeam(id int64) (*model.TeamModel, error) {
	var team model.TeamModel
	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		return tx.Unscoped().Model(&team).
			Updates(map[string]interface{}{
				"is_active":  true,
				"deleted_at": nil,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	team.IsActive = true
	return &team, nil
}

// MergeTeams 把 secondary 并入 primary，不可逆。
// 代币和累计收入相加；去重投资人取并集并重新计数；
// 投资事件计数直接相加，口径与单笔投资一致。
func (t *TeamLogic) MergeTeams(primaryId, secondaryId int64) (*model.TeamModel, error) {
	if primaryId == secondaryId {
		return nil, ErrMergeSameTeam
	}

	var primary, secondary model.TeamModel

	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&primary, primaryId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if err := tx.First(&secondary, secondaryId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		mergedName := primary.Name + " × " + secondary.Name

		// 并集去重投资人关系
		var secondaryInvestors []model.TeamInvestorModel
		if err := tx.Where("team_id = ?", secondaryId).Find(&secondaryInvestors).Error; err != nil {
			return err
		}
		for _, rel := range secondaryInvestors {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&model.TeamInvestorModel{TeamId: primaryId, InvestorId: rel.InvestorId}).Error; err != nil {
				return err
			}
		}

		var uniqueCount int64
		if err := tx.Model(&model.TeamInvestorModel{}).
			Where("team_id = ?", primaryId).
			Count(&uniqueCount).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.TeamModel{}).
			Where("id = ?", primaryId).
			Updates(map[string]interface{}{
				"current_tokens":        gorm.Expr("current_tokens + ?", secondary.CurrentTokens),
				"total_revenue":         gorm.Expr("total_revenue + ?", secondary.TotalRevenue),
				"investor_count":        gorm.Expr("investor_count + ?", secondary.InvestorCount),
				"unique_investor_count": uniqueCount,
				"name":                  mergedName,
				"merged_with":           secondaryId,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.TeamModel{}).
			Where("id = ?", secondaryId).
			Updates(map[string]interface{}{
				"is_active":   false,
				"merged_with": primaryId,
			}).Error; err != nil {
			return err
		}

		return tx.First(&primary, primaryId).Error
	})
	if err != nil {
		return nil, err
	}

	if t.bus != nil {
		t.bus.Publish(event.TypeTeamMerged, event.MergePayload{
			PrimaryId:   primaryId,
			SecondaryId: secondaryId,
			Name:        primary.Name,
		})
	}
	return &primary, nil
}

// AdjustTokens 管理员调整团队代币。
// add 同时增加可支配余额和累计收入；remove 只减少可支配余额，下限为0，
// 累计收入不变——TotalRevenue 是只增的历史口径。
func (t *TeamLogic) AdjustTokens(id, amount int64, mode string) (*model.TeamModel, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var team model.TeamModel
	err := t.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&team, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		switch mode {
		case AdjustModeAdd:
			if err := tx.Model(&model.TeamModel{}).
				Where("id = ?", id).
				Updates(map[string]interface{}{
					"current_tokens": gorm.Expr("current_tokens + ?", amount),
					"total_revenue":  gorm.Expr("total_revenue + ?", amount),
				}).Error; err != nil {
				return err
			}
		case AdjustModeRemove:
			if err := tx.Model(&model.TeamModel{}).
				Where("id = ?", id).
				Update("current_tokens",
					gorm.Expr("CASE WHEN current_tokens > ? THEN current_tokens - ? ELSE 0 END", amount, amount)).Error; err != nil {
				return err
			}
		default:
			return ErrInvalidAdjustMode
		}

		return tx.First(&team, id).Error
	})
	if err != nil {
		return nil, err
	}

	if t.bus != nil {
		t.bus.Publish(event.TypeTokensAdjusted, map[string]interface{}{
			"team_id": id,
			"amount":  amount,
			"mode":    mode,
		})
	}
	return &team, nil
}

// GetLeaderboard 活跃团队按累计收入排名
func (t *TeamLogic) GetLeaderboard(limit int) ([]model.TeamModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var teams []model.TeamModel
	if err := t.db.
		Where("is_active = ?", true).
		Order("total_revenue DESC").
		Limit(limit).
		Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("获取排行榜失败: %w", err)
	}
	return teams, nil
}

package logic

import (
	"errors"
	"fmt"
	"time"

	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
)

// RoundLogic 轮次业务逻辑
type RoundLogic struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewRoundLogic 创建轮次业务逻辑
func NewRoundLogic(db *gorm.DB, bus *event.Bus) *RoundLogic {
	return &RoundLogic{db: db, bus: bus}
}

// StartRound 开始新一轮投资，并给所有投资人发放本轮代币。
// 同一时间最多只能有一个进行中的轮次。
// 发放是轮次事务内的一条批量 UPDATE，不会部分生效。
func (r *RoundLogic) StartRound() (*model.RoundModel, error) {
	var round *model.RoundModel
	var granted int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var liveCount int64
		if err := tx.Model(&model.RoundModel{}).
			Where("status = ?", model.RoundStatusLive).
			Count(&liveCount).Error; err != nil {
			return err
		}
		if liveCount > 0 {
			return ErrRoundAlreadyLive
		}

		var settings model.SettingsModel
		if err := tx.First(&settings, model.SettingsId).Error; err != nil {
			return fmt.Errorf("获取设置失败: %w", err)
		}
		granted = settings.TokensPerRound

		// 轮次编号从1开始严格递增
		var maxNumber int64
		if err := tx.Model(&model.RoundModel{}).
			Select("COALESCE(MAX(number), 0)").
			Scan(&maxNumber).Error; err != nil {
			return err
		}

		round = &model.RoundModel{
			Number:    maxNumber + 1,
			Status:    model.RoundStatusLive,
			StartedAt: time.Now(),
		}
		if err := tx.Create(round).Error; err != nil {
			return err
		}

		// 给所有投资人发放本轮代币
		return tx.Model(&model.InvestorModel{}).
			Session(&gorm.Session{AllowGlobalUpdate: true}).
			Updates(map[string]interface{}{
				"tokens":                gorm.Expr("tokens + ?", settings.TokensPerRound),
				"total_tokens_received": gorm.Expr("total_tokens_received + ?", settings.TokensPerRound),
			}).Error
	})
	if err != nil {
		return nil, err
	}

	if r.bus != nil {
		r.bus.Publish(event.TypeRoundStarted, event.RoundPayload{
			Number:  round.Number,
			Status:  string(round.Status),
			Granted: granted,
		})
	}
	return round, nil
}

// EndRound 结束当前轮次。没有进行中的轮次时不做任何事，返回 nil。
func (r *RoundLogic) EndRound() (*model.RoundModel, error) {
	var round model.RoundModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status = ?", model.RoundStatusLive).First(&round).Error; err != nil {
			return err
		}

		now := time.Now()
		round.Status = model.RoundStatusEnded
		round.EndedAt = &now
		return tx.Model(&model.RoundModel{}).
			Where("id = ?", round.Id).
			Updates(map[string]interface{}{
				"status":   model.RoundStatusEnded,
				"ended_at": now,
			}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if r.bus != nil {
		r.bus.Publish(event.TypeRoundEnded, event.RoundPayload{
			Number: round.Number,
			Status: string(round.Status),
		})
	}
	return &round, nil
}

// GetCurrentRound 获取进行中的轮次，没有时返回 nil
func (r *RoundLogic) GetCurrentRound() (*model.RoundModel, error) {
	var round model.RoundModel
	if err := r.db.Where("status = ?", model.RoundStatusLive).First(&round).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &round, nil
}

// GetRounds 获取轮次历史，按编号倒序
func (r *RoundLogic) GetRounds() ([]model.RoundModel, error) {
	var rounds []model.RoundModel
	if err := r.db.Order("number DESC").Find(&rounds).Error; err != nil {
		return nil, fmt.Errorf("获取轮次列表失败: %w", err)
	}
	return rounds, nil
}

package logic

import (
	"errors"
	"fmt"

	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvestmentLogic 投资账本业务逻辑
type InvestmentLogic struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewInvestmentLogic 创建投资账本业务逻辑
func NewInvestmentLogic(db *gorm.DB, bus *event.Bus) *InvestmentLogic {
	return &InvestmentLogic{db: db, bus: bus}
}

// Invest 投资人向团队投入代币。
// 校验按顺序执行，任何一项失败则整体不生效：
//  1. 必须有进行中的轮次
//  2. 团队必须存在且处于活跃状态
//  3. 本轮投资团队数未达上限
//  4. 本轮未投资过该团队
//  5. 余额足够
//  6. 金额不低于团队基础价格
//
// 扣减、入账和记录写入在同一个事务中；计数全部用 SQL 自增，
// 扣减带余额条件并检查 RowsAffected，并发下不会丢更新或透支。
func (l *InvestmentLogic) Invest(investorId, teamId, amount int64) (*model.InvestmentModel, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var investment *model.InvestmentModel

	err := l.db.Transaction(func(tx *gorm.DB) error {
		// 1. 当前轮次
		var round model.RoundModel
		if err := tx.Where("status = ?", model.RoundStatusLive).First(&round).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoActiveRound
			}
			return err
		}

		// 2. 团队
		var team model.TeamModel
		if err := tx.First(&team, teamId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}
		if !team.IsActive {
			return ErrTeamInactive
		}

		// 锁住投资人行，同一投资人的并发投资串行化，
		// 下面的本轮笔数统计才不会两边同时通过
		var investor model.InvestorModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&investor, investorId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvestorNotFound
			}
			return err
		}

		var settings model.SettingsModel
		if err := tx.First(&settings, model.SettingsId).Error; err != nil {
			return fmt.Errorf("获取设置失败: %w", err)
		}

		// 3. 本轮投资团队数上限
		var roundCount int64
		if err := tx.Model(&model.InvestmentModel{}).
			Where("investor_id = ? AND round = ?", investorId, round.Number).
			Count(&roundCount).Error; err != nil {
			return err
		}
		if roundCount >= settings.MaxInvestmentsPerRound {
			return ErrSlotLimitExceeded
		}

		// 4. 本轮是否已投过该团队
		var dupCount int64
		if err := tx.Model(&model.InvestmentModel{}).
			Where("investor_id = ? AND team_id = ? AND round = ?", investorId, teamId, round.Number).
			Count(&dupCount).Error; err != nil {
			return err
		}
		if dupCount > 0 {
			return ErrDuplicateInvestment
		}

		// 5. 余额
		if investor.Tokens < amount {
			return ErrInsufficientTokens
		}

		// 6. 基础价格
		if amount < team.BasePrice {
			return ErrBelowMinimum
		}

		// 条件扣减，RowsAffected 为0说明并发下余额已不足
		res := tx.Model(&model.InvestorModel{}).
			Where("id = ? AND tokens >= ?", investorId, amount).
			Update("tokens", gorm.Expr("tokens - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientTokens
		}

		// 团队入账
		if err := tx.Model(&model.TeamModel{}).
			Where("id = ?", teamId).
			Updates(map[string]interface{}{
				"current_tokens": gorm.Expr("current_tokens + ?", amount),
				"total_revenue":  gorm.Expr("total_revenue + ?", amount),
				"investor_count": gorm.Expr("investor_count + 1"),
			}).Error; err != nil {
			return err
		}

		// 去重投资人关系，首次写入时同步计数
		res = tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.TeamInvestorModel{TeamId: teamId, InvestorId: investorId})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			if err := tx.Model(&model.TeamModel{}).
				Where("id = ?", teamId).
				Update("unique_investor_count", gorm.Expr("unique_investor_count + 1")).Error; err != nil {
				return err
			}
		}

		// 本轮营收，每轮一条，金额累加
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}, {Name: "round"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("team_revenue.amount + ?", amount)}),
		}).Create(&model.TeamRevenueModel{
			TeamId: teamId,
			Round:  round.Number,
			Amount: amount,
		}).Error; err != nil {
			return err
		}

		// 参与轮次
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.InvestorRoundModel{InvestorId: investorId, Round: round.Number}).Error; err != nil {
			return err
		}

		// 不可变投资记录
		investment = &model.InvestmentModel{
			Id:         uuid.NewString(),
			InvestorId: investorId,
			TeamId:     teamId,
			Amount:     amount,
			Round:      round.Number,
		}
		return tx.Create(investment).Error
	})
	if err != nil {
		return nil, err
	}

	if l.bus != nil {
		l.bus.Publish(event.TypeInvestmentCreated, event.InvestmentPayload{
			InvestmentId: investment.Id,
			InvestorId:   investment.InvestorId,
			TeamId:       investment.TeamId,
			Amount:       investment.Amount,
			Round:        investment.Round,
		})
	}
	return investment, nil
}

// GetTeamInvestments 获取团队收到的投资记录
func (l *InvestmentLogic) GetTeamInvestments(teamId int64, page, pageSize int) ([]model.InvestmentModel, int64, error) {
	return l.listInvestments(l.db.Where("team_id = ?", teamId), page, pageSize)
}

// GetInvestorInvestments 获取投资人的投资记录
func (l *InvestmentLogic) GetInvestorInvestments(investorId int64, page, pageSize int) ([]model.InvestmentModel, int64, error) {
	return l.listInvestments(l.db.Where("investor_id = ?", investorId), page, pageSize)
}

// GetInvestments 获取全部投资记录
func (l *InvestmentLogic) GetInvestments(page, pageSize int) ([]model.InvestmentModel, int64, error) {
	return l.listInvestments(l.db, page, pageSize)
}

// GetInvestorRoundInvestments 获取投资人在指定轮次的投资记录
func (l *InvestmentLogic) GetInvestorRoundInvestments(investorId, round int64) ([]model.InvestmentModel, error) {
	var investments []model.InvestmentModel
	if err := l.db.
		Where("investor_id = ? AND round = ?", investorId, round).
		Order("created_at ASC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取本轮投资记录失败: %w", err)
	}
	return investments, nil
}

// GetTeamRevenueHistory 获取团队每轮营收历史
func (l *InvestmentLogic) GetTeamRevenueHistory(teamId int64) ([]model.TeamRevenueModel, error) {
	var history []model.TeamRevenueModel
	if err := l.db.
		Where("team_id = ?", teamId).
		Order("round ASC").
		Find(&history).Error; err != nil {
		return nil, fmt.Errorf("获取营收历史失败: %w", err)
	}
	return history, nil
}

// listInvestments 分页查询投资记录
func (l *InvestmentLogic) listInvestments(query *gorm.DB, page, pageSize int) ([]model.InvestmentModel, int64, error) {
	var investments []model.InvestmentModel
	var total int64

	// 条件复用，查总数和查数据各跑一次
	query = query.Session(&gorm.Session{})

	if err := query.Model(&model.InvestmentModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, 0, err
	}

	return investments, total, nil
}

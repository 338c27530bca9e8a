package logic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
)

// InvestorLogic 投资人业务逻辑
type InvestorLogic struct {
	db *gorm.DB
}

// NewInvestorLogic 创建投资人业务逻辑
func NewInvestorLogic(db *gorm.DB) *InvestorLogic {
	return &InvestorLogic{db: db}
}

// Portfolio 投资人持仓概览
type Portfolio struct {
	Investor           *model.InvestorModel    `json:"investor"`
	Investments        []model.InvestmentModel `json:"investments"`
	RoundsParticipated []int64                 `json:"rounds_participated"`
}

// Register 注册投资人，准考证号全局唯一。注册时代币为0，
// 只在每轮开始时由系统发放。
func (i *InvestorLogic) Register(hallTicket, password, name, college, section string) (*model.InvestorModel, error) {
	hallTicket = strings.ToUpper(strings.TrimSpace(hallTicket))
	if hallTicket == "" || password == "" || name == "" {
		return nil, errors.New("准考证号、密码和姓名不能为空")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("密码哈希失败: %w", err)
	}

	investor := &model.InvestorModel{
		HallTicket:   hallTicket,
		PasswordHash: hash,
		Name:         name,
		College:      college,
		Section:      section,
	}

	err = i.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.InvestorModel{}).
			Where("hall_ticket = ?", hallTicket).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyRegistered
		}
		return tx.Create(investor).Error
	})
	if err != nil {
		return nil, err
	}
	return investor, nil
}

// GetInvestor 获取投资人
func (i *InvestorLogic) GetInvestor(id int64) (*model.InvestorModel, error) {
	var investor model.InvestorModel
	if err := i.db.First(&investor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestorNotFound
		}
		return nil, fmt.Errorf("获取投资人失败: %w", err)
	}
	return &investor, nil
}

// GetInvestorByHallTicket 按准考证号获取投资人
func (i *InvestorLogic) GetInvestorByHallTicket(hallTicket string) (*model.InvestorModel, error) {
	var investor model.InvestorModel
	if err := i.db.Where("hall_ticket = ?", strings.ToUpper(strings.TrimSpace(hallTicket))).
		First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvestorNotFound
		}
		return nil, fmt.Errorf("获取投资人失败: %w", err)
	}
	return &investor, nil
}

// GetInvestors 获取投资人列表
func (i *InvestorLogic) GetInvestors(page, pageSize int) ([]model.InvestorModel, int64, error) {
	var investors []model.InvestorModel
	var total int64

	if err := i.db.Model(&model.InvestorModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := i.db.
		Offset(offset).
		Limit(pageSize).
		Order("created_at ASC").
		Find(&investors).Error; err != nil {
		return nil, 0, err
	}

	return investors, total, nil
}

// GetPortfolio 获取投资人持仓：全部投资记录和参与过的轮次
func (i *InvestorLogic) GetPortfolio(id int64) (*Portfolio, error) {
	investor, err := i.GetInvestor(id)
	if err != nil {
		return nil, err
	}

	var investments []model.InvestmentModel
	if err := i.db.
		Where("investor_id = ?", id).
		Order("created_at DESC").
		Find(&investments).Error; err != nil {
		return nil, fmt.Errorf("获取投资记录失败: %w", err)
	}

	var rounds []int64
	if err := i.db.Model(&model.InvestorRoundModel{}).
		Where("investor_id = ?", id).
		Order("round ASC").
		Pluck("round", &rounds).Error; err != nil {
		return nil, fmt.Errorf("获取参与轮次失败: %w", err)
	}

	return &Portfolio{
		Investor:           investor,
		Investments:        investments,
		RoundsParticipated: rounds,
	}, nil
}

package logic

import (
	"fmt"

	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
)

// SettingsLogic 全局设置业务逻辑
type SettingsLogic struct {
	db *gorm.DB
}

// NewSettingsLogic 创建设置业务逻辑
func NewSettingsLogic(db *gorm.DB) *SettingsLogic {
	return &SettingsLogic{db: db}
}

// GetSettings 获取全局设置
func (s *SettingsLogic) GetSettings() (*model.SettingsModel, error) {
	var settings model.SettingsModel
	if err := s.db.First(&settings, model.SettingsId).Error; err != nil {
		return nil, fmt.Errorf("获取设置失败: %w", err)
	}
	return &settings, nil
}

// UpdateSettings 更新全局设置，nil 字段不更新
func (s *SettingsLogic) UpdateSettings(tokensPerRound, minPrice, maxPrice, maxInvestments *int64) (*model.SettingsModel, error) {
	var settings model.SettingsModel

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&settings, model.SettingsId).Error; err != nil {
			return fmt.Errorf("获取设置失败: %w", err)
		}

		if tokensPerRound != nil {
			settings.TokensPerRound = *tokensPerRound
		}
		if minPrice != nil {
			settings.MinPrice = *minPrice
		}
		if maxPrice != nil {
			settings.MaxPrice = *maxPrice
		}
		if maxInvestments != nil {
			settings.MaxInvestmentsPerRound = *maxInvestments
		}

		if settings.TokensPerRound <= 0 ||
			settings.MinPrice <= 0 ||
			settings.MaxPrice < settings.MinPrice ||
			settings.MaxInvestmentsPerRound <= 0 {
			return ErrInvalidSettings
		}

		return tx.Save(&settings).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

package model

import (
	"time"
)

// SettingsModel 全局设置，单例记录，Id 固定为 1
type SettingsModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	UpdatedAt time.Time `json:"updated_at"`

	TokensPerRound         int64 `json:"tokens_per_round" gorm:"default:100"`
	MinPrice               int64 `json:"min_price" gorm:"default:30"`
	MaxPrice               int64 `json:"max_price" gorm:"default:100"`
	MaxInvestmentsPerRound int64 `json:"max_investments_per_round" gorm:"default:3"`
}

// SettingsId 单例记录主键
const SettingsId int64 = 1

// TableName 自定义表名
func (SettingsModel) TableName() string {
	return "settings"
}

// DefaultSettings 默认设置
func DefaultSettings() *SettingsModel {
	return &SettingsModel{
		Id:                     SettingsId,
		TokensPerRound:         100,
		MinPrice:               30,
		MaxPrice:               100,
		MaxInvestmentsPerRound: 3,
	}
}

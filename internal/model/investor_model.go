package model

import (
	"time"
)

// InvestorModel 投资人（观众）
type InvestorModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	HallTicket   string `json:"hall_ticket" gorm:"uniqueIndex;not null" binding:"required"`
	PasswordHash string `json:"-" gorm:"not null"`
	Name         string `json:"name" gorm:"not null"`
	College      string `json:"college"`
	Section      string `json:"section"`

	// 代币账本
	// Tokens 只在每轮开始时由系统发放，注册时为 0
	Tokens              int64 `json:"tokens" gorm:"default:0"`
	TotalTokensReceived int64 `json:"total_tokens_received" gorm:"default:0"`
}

// TableName 自定义表名
func (InvestorModel) TableName() string {
	return "investor"
}

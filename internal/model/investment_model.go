package model

import (
	"time"
)

// InvestmentModel 投资记录，只追加，写入后不可变更
type InvestmentModel struct {
	Id        string    `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time `json:"created_at"`

	InvestorId int64 `json:"investor_id" gorm:"not null;index;uniqueIndex:idx_investor_team_round"`
	TeamId     int64 `json:"team_id" gorm:"not null;index;uniqueIndex:idx_investor_team_round"`
	Amount     int64 `json:"amount" gorm:"not null"`
	Round      int64 `json:"round" gorm:"not null;uniqueIndex:idx_investor_team_round"`
}

// TableName 自定义表名
func (InvestmentModel) TableName() string {
	return "investment"
}

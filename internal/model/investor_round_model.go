package model

import (
	"time"
)

// InvestorRoundModel 投资人参与过的轮次，首次投资该轮时写入
type InvestorRoundModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	InvestorId int64 `json:"investor_id" gorm:"not null;uniqueIndex:idx_investor_round"`
	Round      int64 `json:"round" gorm:"not null;uniqueIndex:idx_investor_round"`
}

// TableName 自定义表名
func (InvestorRoundModel) TableName() string {
	return "investor_round"
}

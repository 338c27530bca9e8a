package model

import (
	"time"
)

// TeamRevenueModel 团队每轮营收，每个团队每轮最多一条，金额累加
type TeamRevenueModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamId int64 `json:"team_id" gorm:"not null;uniqueIndex:idx_team_round"`
	Round  int64 `json:"round" gorm:"not null;uniqueIndex:idx_team_round"`
	Amount int64 `json:"amount" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (TeamRevenueModel) TableName() string {
	return "team_revenue"
}

package model

import (
	"time"
)

// TeamInvestorModel 团队与投资人的去重关系，投资人首次投资该团队时写入
type TeamInvestorModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	TeamId     int64 `json:"team_id" gorm:"not null;uniqueIndex:idx_team_investor"`
	InvestorId int64 `json:"investor_id" gorm:"not null;uniqueIndex:idx_team_investor"`
}

// TableName 自定义表名
func (TeamInvestorModel) TableName() string {
	return "team_investor"
}

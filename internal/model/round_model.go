package model

import (
	"time"
)

// RoundModel 投资轮次
type RoundModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Number    int64       `json:"number" gorm:"uniqueIndex;not null"`
	Status    RoundStatus `json:"status" gorm:"default:'live'"`
	StartedAt time.Time   `json:"started_at" gorm:"not null"`
	EndedAt   *time.Time  `json:"ended_at"`
}

// RoundStatus 轮次状态
type RoundStatus string

const (
	RoundStatusLive  RoundStatus = "live"  // 进行中
	RoundStatusEnded RoundStatus = "ended" // 已结束
)

// TableName 自定义表名
func (RoundModel) TableName() string {
	return "round"
}

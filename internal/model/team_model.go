package model

import (
	"time"

	"gorm.io/gorm"
)

// TeamModel 路演团队
type TeamModel struct {
	Id        int64          `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// 基本信息
	Name         string     `json:"name" gorm:"not null" binding:"required"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Emoji        string     `json:"emoji" gorm:"default:'🚀'"`
	Tagline      string     `json:"tagline"`
	Description  string     `json:"description" gorm:"type:text"`
	Members      []string   `json:"members" gorm:"serializer:json"`
	Links        []TeamLink `json:"links" gorm:"serializer:json"`

	// 代币账本
	// TotalRevenue 是累计收入，只增不减；CurrentTokens 是可支配余额
	BasePrice           int64 `json:"base_price" gorm:"default:50"`
	CurrentTokens       int64 `json:"current_tokens" gorm:"default:0"`
	TotalRevenue        int64 `json:"total_revenue" gorm:"default:0"`
	InvestorCount       int64 `json:"investor_count" gorm:"default:0"`
	UniqueInvestorCount int64 `json:"unique_investor_count" gorm:"default:0"`

	// 状态
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	MergedWith *int64 `json:"merged_with"`
}

// TeamLink 团队外部链接
type TeamLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// TableName 自定义表名
func (TeamModel) TableName() string {
	return "team"
}

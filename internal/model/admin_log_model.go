package model

import (
	"time"
)

// AdminLogModel 管理员操作日志，只追加
type AdminLogModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Action string `json:"action" gorm:"not null;index"`
	Detail string `json:"detail" gorm:"type:text"`
}

// TableName 自定义表名
func (AdminLogModel) TableName() string {
	return "admin_log"
}

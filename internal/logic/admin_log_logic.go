package logic

import (
	"fmt"

	"github.com/blues/ivs/internal/model"
	"gorm.io/gorm"
)

// AdminLogLogic 管理员操作日志业务逻辑
type AdminLogLogic struct {
	db *gorm.DB
}

// NewAdminLogLogic 创建操作日志业务逻辑
func NewAdminLogLogic(db *gorm.DB) *AdminLogLogic {
	return &AdminLogLogic{db: db}
}

// Append 追加一条操作日志
func (a *AdminLogLogic) Append(action, detail string) error {
	entry := &model.AdminLogModel{
		Action: action,
		Detail: detail,
	}
	if err := a.db.Create(entry).Error; err != nil {
		return fmt.Errorf("写入操作日志失败: %w", err)
	}
	return nil
}

// GetLogs 分页获取操作日志，按时间倒序
func (a *AdminLogLogic) GetLogs(page, pageSize int) ([]model.AdminLogModel, int64, error) {
	var logs []model.AdminLogModel
	var total int64

	if err := a.db.Model(&model.AdminLogModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := a.db.
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

package database

import (
	"errors"
	"fmt"

	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移并写入单例设置
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.TeamModel{},
		&model.InvestorModel{},
		&model.RoundModel{},
		&model.InvestmentModel{},
		&model.TeamRevenueModel{},
		&model.TeamInvestorModel{},
		&model.InvestorRoundModel{},
		&model.SettingsModel{},
		&model.AdminLogModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 设置为单例记录，不存在时写入默认值
	var settings model.SettingsModel
	if err := db.First(&settings, model.SettingsId).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if err := db.Create(model.DefaultSettings()).Error; err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}
	}

	return nil
}

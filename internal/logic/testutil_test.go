package logic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blues/ivs/internal/database"
	"github.com/blues/ivs/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库。
// 连接数限制为1，共享缓存保证事务里的多条语句看到同一个库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// createTestTeam 建一个活跃团队并返回
func createTestTeam(t *testing.T, db *gorm.DB, name, username string) *model.TeamModel {
	t.Helper()

	team, err := NewTeamLogic(db, nil).CreateTeam(name, username, "secret123", "🚀")
	require.NoError(t, err)
	return team
}

// createTestInvestor 注册一个投资人并返回
func createTestInvestor(t *testing.T, db *gorm.DB, hallTicket, name string) *model.InvestorModel {
	t.Helper()

	investor, err := NewInvestorLogic(db).Register(hallTicket, "secret123", name, "测试学院", "A")
	require.NoError(t, err)
	return investor
}

// startTestRound 开始一个新轮次
func startTestRound(t *testing.T, db *gorm.DB) *model.RoundModel {
	t.Helper()

	round, err := NewRoundLogic(db, nil).StartRound()
	require.NoError(t, err)
	return round
}

// reloadTeam 重新读取团队
func reloadTeam(t *testing.T, db *gorm.DB, id int64) *model.TeamModel {
	t.Helper()

	var team model.TeamModel
	require.NoError(t, db.Unscoped().First(&team, id).Error)
	return &team
}

// reloadInvestor 重新读取投资人
func reloadInvestor(t *testing.T, db *gorm.DB, id int64) *model.InvestorModel {
	t.Helper()

	var investor model.InvestorModel
	require.NoError(t, db.First(&investor, id).Error)
	return &investor
}

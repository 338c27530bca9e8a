package logic

import (
	"testing"

	"github.com/blues/ivs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTeamDefaults(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "Rocket")

	assert.Equal(t, "rocket", team.Username) // 用户名统一转小写
	assert.Equal(t, int64(50), team.BasePrice)
	assert.Equal(t, "🚀", team.Emoji)
	assert.True(t, team.IsActive)
	assert.NotEqual(t, "secret123", team.PasswordHash)
}

func TestCreateTeamDuplicateUsername(t *testing.T) {
	db := newTestDB(t)
	createTestTeam(t, db, "火箭队", "rocket")

	_, err := NewTeamLogic(db, nil).CreateTeam("另一个队", "ROCKET", "pwd12345", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

// 软删除团队占用的用户名同样查重，唯一索引覆盖已删除行
func TestCreateTeamUsernameHeldBySoftDeletedTeam(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	l := NewTeamLogic(db, nil)

	require.NoError(t, l.DeleteTeam(team.Id))

	_, err := l.CreateTeam("新火箭队", "rocket", "pwd12345", "")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUpdateTeamBasePriceBounds(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	l := NewTeamLogic(db, nil)

	low, high, ok := int64(29), int64(101), int64(80)

	_, err := l.UpdateTeam(team.Id, &TeamUpdate{BasePrice: &low})
	assert.ErrorIs(t, err, ErrBasePriceOutOfRange)
	_, err = l.UpdateTeam(team.Id, &TeamUpdate{BasePrice: &high})
	assert.ErrorIs(t, err, ErrBasePriceOutOfRange)

	updated, err := l.UpdateTeam(team.Id, &TeamUpdate{BasePrice: &ok})
	require.NoError(t, err)
	assert.Equal(t, int64(80), updated.BasePrice)
}

func TestUpdateTeamProfileFields(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")

	name, tagline := "新火箭队", "一飞冲天"
	updated, err := NewTeamLogic(db, nil).UpdateTeam(team.Id, &TeamUpdate{
		Name:    &name,
		Tagline: &tagline,
		Members: []string{"甲", "乙"},
		Links:   []model.TeamLink{{Label: "官网", URL: "https://example.com"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "新火箭队", updated.Name)
	assert.Equal(t, "一飞冲天", updated.Tagline)
	assert.Equal(t, []string{"甲", "乙"}, updated.Members)
	require.Len(t, updated.Links, 1)
	assert.Equal(t, "官网", updated.Links[0].Label)
}

func TestDeleteAndReactivateTeam(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	l := NewTeamLogic(db, nil)

	require.NoError(t, l.DeleteTeam(team.Id))

	// 软删除后常规查询不可见
	_, err := l.GetTeam(team.Id)
	assert.ErrorIs(t, err, ErrTeamNotFound)

	// 但记录还在，可以恢复
	restored, err := l.ReactivateTeam(team.Id)
	require.NoError(t, err)
	assert.True(t, restored.IsActive)

	got, err := l.GetTeam(team.Id)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestMergeTeams(t *testing.T) {
	db := newTestDB(t)
	a := createTestTeam(t, db, "甲队", "alpha")
	b := createTestTeam(t, db, "乙队", "beta")

	require.NoError(t, db.Model(&model.TeamModel{}).Where("id = ?", a.Id).
		Updates(map[string]interface{}{"current_tokens": 50, "total_revenue": 80, "investor_count": 2}).Error)
	require.NoError(t, db.Model(&model.TeamModel{}).Where("id = ?", b.Id).
		Updates(map[string]interface{}{"current_tokens": 20, "total_revenue": 30, "investor_count": 1}).Error)

	merged, err := NewTeamLogic(db, nil).MergeTeams(a.Id, b.Id)
	require.NoError(t, err)

	assert.Equal(t, "甲队 × 乙队", merged.Name)
	assert.Equal(t, int64(70), merged.CurrentTokens)
	assert.Equal(t, int64(110), merged.TotalRevenue)
	assert.Equal(t, int64(3), merged.InvestorCount)
	require.NotNil(t, merged.MergedWith)
	assert.Equal(t, b.Id, *merged.MergedWith)

	b2 := reloadTeam(t, db, b.Id)
	assert.False(t, b2.IsActive)
	require.NotNil(t, b2.MergedWith)
	assert.Equal(t, a.Id, *b2.MergedWith)
}

// 合并后去重投资人数取并集，共同投资人只算一次
func TestMergeTeamsUniqueInvestorUnion(t *testing.T) {
	db := newTestDB(t)
	a := createTestTeam(t, db, "甲队", "alpha")
	b := createTestTeam(t, db, "乙队", "beta")
	shared := createTestInvestor(t, db, "HT100", "小王")
	only := createTestInvestor(t, db, "HT200", "小李")
	startTestRound(t, db)

	inv := NewInvestmentLogic(db, nil)
	_, err := inv.Invest(shared.Id, a.Id, 50)
	require.NoError(t, err)
	_, err = inv.Invest(shared.Id, b.Id, 50)
	require.NoError(t, err)
	_, err = inv.Invest(only.Id, b.Id, 50)
	require.NoError(t, err)

	merged, err := NewTeamLogic(db, nil).MergeTeams(a.Id, b.Id)
	require.NoError(t, err)

	assert.Equal(t, int64(3), merged.InvestorCount)
	assert.Equal(t, int64(2), merged.UniqueInvestorCount)
}

func TestMergeTeamsSameTeam(t *testing.T) {
	db := newTestDB(t)
	a := createTestTeam(t, db, "甲队", "alpha")

	_, err := NewTeamLogic(db, nil).MergeTeams(a.Id, a.Id)
	assert.ErrorIs(t, err, ErrMergeSameTeam)
}

func TestAdjustTokensAdd(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")

	adjusted, err := NewTeamLogic(db, nil).AdjustTokens(team.Id, 40, AdjustModeAdd)
	require.NoError(t, err)
	assert.Equal(t, int64(40), adjusted.CurrentTokens)
	assert.Equal(t, int64(40), adjusted.TotalRevenue)
}

func TestAdjustTokensRemoveFloorsAtZero(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	l := NewTeamLogic(db, nil)

	_, err := l.AdjustTokens(team.Id, 100, AdjustModeAdd)
	require.NoError(t, err)

	adjusted, err := l.AdjustTokens(team.Id, 30, AdjustModeRemove)
	require.NoError(t, err)
	assert.Equal(t, int64(70), adjusted.CurrentTokens)
	// 扣减不影响累计收入
	assert.Equal(t, int64(100), adjusted.TotalRevenue)

	// 超出余额时下限为0
	adjusted, err = l.AdjustTokens(team.Id, 500, AdjustModeRemove)
	require.NoError(t, err)
	assert.Equal(t, int64(0), adjusted.CurrentTokens)
	assert.Equal(t, int64(100), adjusted.TotalRevenue)
}

func TestAdjustTokensInvalidInput(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	l := NewTeamLogic(db, nil)

	_, err := l.AdjustTokens(team.Id, 0, AdjustModeAdd)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.AdjustTokens(team.Id, 10, "burn")
	assert.ErrorIs(t, err, ErrInvalidAdjustMode)

	_, err = l.AdjustTokens(9999, 10, AdjustModeAdd)
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestGetTeamsFiltersInactive(t *testing.T) {
	db := newTestDB(t)
	createTestTeam(t, db, "甲队", "alpha")
	b := createTestTeam(t, db, "乙队", "beta")
	l := NewTeamLogic(db, nil)

	require.NoError(t, db.Model(&model.TeamModel{}).
		Where("id = ?", b.Id).
		Update("is_active", false).Error)

	active, err := l.GetTeams(false)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := l.GetTeams(true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetLeaderboardOrder(t *testing.T) {
	db := newTestDB(t)
	a := createTestTeam(t, db, "甲队", "alpha")
	b := createTestTeam(t, db, "乙队", "beta")
	l := NewTeamLogic(db, nil)

	_, err := l.AdjustTokens(a.Id, 30, AdjustModeAdd)
	require.NoError(t, err)
	_, err = l.AdjustTokens(b.Id, 90, AdjustModeAdd)
	require.NoError(t, err)

	board, err := l.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, b.Id, board[0].Id)
	assert.Equal(t, a.Id, board[1].Id)
}

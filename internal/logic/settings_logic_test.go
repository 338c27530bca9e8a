package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettingsSeedsDefaults(t *testing.T) {
	db := newTestDB(t)

	settings, err := NewSettingsLogic(db).GetSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(100), settings.TokensPerRound)
	assert.Equal(t, int64(30), settings.MinPrice)
	assert.Equal(t, int64(100), settings.MaxPrice)
	assert.Equal(t, int64(3), settings.MaxInvestmentsPerRound)
}

func TestUpdateSettingsPartial(t *testing.T) {
	db := newTestDB(t)
	l := NewSettingsLogic(db)

	tokens := int64(200)
	updated, err := l.UpdateSettings(&tokens, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(200), updated.TokensPerRound)
	// 未传字段保持不变
	assert.Equal(t, int64(30), updated.MinPrice)

	// 新设置对下一轮发放生效
	createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)
	var tokensNow int64
	require.NoError(t, db.Table("investor").Select("tokens").Scan(&tokensNow).Error)
	assert.Equal(t, int64(200), tokensNow)
}

func TestUpdateSettingsValidation(t *testing.T) {
	db := newTestDB(t)
	l := NewSettingsLogic(db)

	bad := int64(0)
	_, err := l.UpdateSettings(&bad, nil, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	// 最高价不能低于最低价
	maxPrice := int64(10)
	_, err = l.UpdateSettings(nil, nil, &maxPrice, nil)
	assert.ErrorIs(t, err, ErrInvalidSettings)

	// 校验失败不落库
	settings, err := l.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, int64(100), settings.TokensPerRound)
	assert.Equal(t, int64(100), settings.MaxPrice)
}

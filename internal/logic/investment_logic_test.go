package logic

import (
	"sync"
	"testing"

	"github.com/blues/ivs/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestHappyPath(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)
	inv, err := l.Invest(investor.Id, team.Id, 60)
	require.NoError(t, err)

	assert.NotEmpty(t, inv.Id)
	assert.Equal(t, int64(1), inv.Round)
	assert.Equal(t, int64(60), inv.Amount)

	investor = reloadInvestor(t, db, investor.Id)
	assert.Equal(t, int64(40), investor.Tokens)

	team = reloadTeam(t, db, team.Id)
	assert.Equal(t, int64(60), team.CurrentTokens)
	assert.Equal(t, int64(60), team.TotalRevenue)
	assert.Equal(t, int64(1), team.InvestorCount)
	assert.Equal(t, int64(1), team.UniqueInvestorCount)

	history, err := l.GetTeamRevenueHistory(team.Id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(1), history[0].Round)
	assert.Equal(t, int64(60), history[0].Amount)
}

func TestInvestRequiresLiveRound(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")

	l := NewInvestmentLogic(db, nil)
	_, err := l.Invest(investor.Id, team.Id, 60)
	assert.ErrorIs(t, err, ErrNoActiveRound)

	// 轮次结束后同样拒绝
	startTestRound(t, db)
	_, err = NewRoundLogic(db, nil).EndRound()
	require.NoError(t, err)
	_, err = l.Invest(investor.Id, team.Id, 60)
	assert.ErrorIs(t, err, ErrNoActiveRound)
}

func TestInvestRejectsUnknownTeamAndInvestor(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)

	_, err := l.Invest(investor.Id, 9999, 60)
	assert.ErrorIs(t, err, ErrTeamNotFound)

	_, err = l.Invest(9999, team.Id, 60)
	assert.ErrorIs(t, err, ErrInvestorNotFound)
}

func TestInvestRejectsInactiveTeam(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	require.NoError(t, db.Model(&model.TeamModel{}).
		Where("id = ?", team.Id).
		Update("is_active", false).Error)

	_, err := NewInvestmentLogic(db, nil).Invest(investor.Id, team.Id, 60)
	assert.ErrorIs(t, err, ErrTeamInactive)

	// 余额不受失败影响
	investor = reloadInvestor(t, db, investor.Id)
	assert.Equal(t, int64(100), investor.Tokens)
}

func TestInvestSlotLimitPerRound(t *testing.T) {
	db := newTestDB(t)
	investor := createTestInvestor(t, db, "HT100", "小王")

	var teams []*model.TeamModel
	for _, u := range []string{"t1", "t2", "t3", "t4"} {
		teams = append(teams, createTestTeam(t, db, "团队"+u, u))
	}
	// 调低基础价格让一轮100代币够投3笔
	require.NoError(t, db.Model(&model.TeamModel{}).
		Where("base_price = ?", 50).
		Update("base_price", 30).Error)

	startTestRound(t, db)
	l := NewInvestmentLogic(db, nil)

	for i := 0; i < 3; i++ {
		_, err := l.Invest(investor.Id, teams[i].Id, 30)
		require.NoError(t, err)
	}

	_, err := l.Invest(investor.Id, teams[3].Id, 10)
	assert.ErrorIs(t, err, ErrSlotLimitExceeded)

	// 新一轮重新计数
	_, err = NewRoundLogic(db, nil).EndRound()
	require.NoError(t, err)
	startTestRound(t, db)
	_, err = l.Invest(investor.Id, teams[3].Id, 30)
	assert.NoError(t, err)
}

func TestInvestDuplicateSameTeamSameRound(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)
	_, err := l.Invest(investor.Id, team.Id, 50)
	require.NoError(t, err)

	_, err = l.Invest(investor.Id, team.Id, 50)
	assert.ErrorIs(t, err, ErrDuplicateInvestment)

	// 下一轮可以再投同一个团队
	_, err = NewRoundLogic(db, nil).EndRound()
	require.NoError(t, err)
	startTestRound(t, db)
	_, err = l.Invest(investor.Id, team.Id, 50)
	assert.NoError(t, err)

	// 跨轮重复投资不会重复累计去重投资人数
	team = reloadTeam(t, db, team.Id)
	assert.Equal(t, int64(2), team.InvestorCount)
	assert.Equal(t, int64(1), team.UniqueInvestorCount)
}

func TestInvestInsufficientTokens(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	_, err := NewInvestmentLogic(db, nil).Invest(investor.Id, team.Id, 150)
	assert.ErrorIs(t, err, ErrInsufficientTokens)

	investor = reloadInvestor(t, db, investor.Id)
	assert.Equal(t, int64(100), investor.Tokens)
	team = reloadTeam(t, db, team.Id)
	assert.Equal(t, int64(0), team.CurrentTokens)
}

func TestInvestBelowBasePrice(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)
	_, err := l.Invest(investor.Id, team.Id, 30)
	assert.ErrorIs(t, err, ErrBelowMinimum)

	// 刚好等于基础价格可以投
	_, err = l.Invest(investor.Id, team.Id, 50)
	assert.NoError(t, err)
}

func TestInvestInvalidAmount(t *testing.T) {
	db := newTestDB(t)
	l := NewInvestmentLogic(db, nil)

	_, err := l.Invest(1, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = l.Invest(1, 1, -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

// 两个投资人并发投同一个团队，入账不能丢更新
func TestInvestConcurrentNoLostUpdate(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	a := createTestInvestor(t, db, "HT100", "小王")
	b := createTestInvestor(t, db, "HT200", "小李")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, investorId := range []int64{a.Id, b.Id} {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			_, errs[i] = l.Invest(id, team.Id, 60)
		}(i, investorId)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	team = reloadTeam(t, db, team.Id)
	assert.Equal(t, int64(120), team.CurrentTokens)
	assert.Equal(t, int64(120), team.TotalRevenue)
	assert.Equal(t, int64(2), team.InvestorCount)
	assert.Equal(t, int64(2), team.UniqueInvestorCount)
}

// 同一个投资人并发投不同团队，成功笔数不能超过本轮上限
func TestInvestConcurrentSlotLimitNotExceeded(t *testing.T) {
	db := newTestDB(t)
	investor := createTestInvestor(t, db, "HT100", "小王")

	var teams []*model.TeamModel
	for _, u := range []string{"t1", "t2", "t3", "t4"} {
		teams = append(teams, createTestTeam(t, db, "团队"+u, u))
	}
	require.NoError(t, db.Model(&model.TeamModel{}).
		Where("base_price = ?", 50).
		Update("base_price", 20).Error)

	startTestRound(t, db)
	l := NewInvestmentLogic(db, nil)

	var wg sync.WaitGroup
	errs := make([]error, len(teams))
	for i, team := range teams {
		wg.Add(1)
		go func(i int, teamId int64) {
			defer wg.Done()
			_, errs[i] = l.Invest(investor.Id, teamId, 20)
		}(i, team.Id)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrSlotLimitExceeded)
		}
	}
	assert.Equal(t, 3, succeeded)

	var count int64
	require.NoError(t, db.Model(&model.InvestmentModel{}).
		Where("investor_id = ? AND round = ?", investor.Id, 1).
		Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

// 同一个投资人并发重复投同一个团队，只能成功一笔
func TestInvestConcurrentDuplicateOnlyOneSucceeds(t *testing.T) {
	db := newTestDB(t)
	team := createTestTeam(t, db, "火箭队", "rocket")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.Invest(investor.Id, team.Id, 50)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded)

	investor = reloadInvestor(t, db, investor.Id)
	assert.Equal(t, int64(50), investor.Tokens)
	team = reloadTeam(t, db, team.Id)
	assert.Equal(t, int64(50), team.CurrentTokens)
}

func TestInvestmentQueries(t *testing.T) {
	db := newTestDB(t)
	t1 := createTestTeam(t, db, "团队一", "one")
	t2 := createTestTeam(t, db, "团队二", "two")
	investor := createTestInvestor(t, db, "HT100", "小王")
	startTestRound(t, db)

	l := NewInvestmentLogic(db, nil)
	_, err := l.Invest(investor.Id, t1.Id, 50)
	require.NoError(t, err)
	_, err = l.Invest(investor.Id, t2.Id, 50)
	require.NoError(t, err)

	teamInv, total, err := l.GetTeamInvestments(t1.Id, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, teamInv, 1)

	mine, total, err := l.GetInvestorInvestments(investor.Id, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, mine, 2)

	roundInv, err := l.GetInvestorRoundInvestments(investor.Id, 1)
	require.NoError(t, err)
	assert.Len(t, roundInv, 2)

	all, total, err := l.GetInvestments(1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 1)
}

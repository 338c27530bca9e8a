package handler

import (
	"net/http"
	"time"

	"github.com/blues/ivs/internal/cache"
	"github.com/blues/ivs/internal/logic"
	"github.com/blues/ivs/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler 统计与排行榜处理器
type StatsHandler struct {
	statsLogic *logic.StatsLogic
	teamLogic  *logic.TeamLogic
	cache      *cache.Cache
}

// NewStatsHandler 创建统计处理器
func NewStatsHandler(db *gorm.DB, c *cache.Cache) *StatsHandler {
	return &StatsHandler{
		statsLogic: logic.NewStatsLogic(db),
		teamLogic:  logic.NewTeamLogic(db, nil),
		cache:      c,
	}
}

// GetGlobalStats 获取全局统计，优先读缓存
func (h *StatsHandler) GetGlobalStats(c *gin.Context) {
	var stats logic.GlobalStats
	if hit, _ := h.cache.GetJSON(c.Request.Context(), cache.KeyGlobalStats, &stats); hit {
		c.JSON(http.StatusOK, gin.H{"stats": stats})
		return
	}

	fresh, err := h.statsLogic.GetGlobalStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_ = h.cache.SetJSON(c.Request.Context(), cache.KeyGlobalStats, fresh, 10*time.Second)
	c.JSON(http.StatusOK, gin.H{"stats": fresh})
}

// GetLeaderboard 获取排行榜，优先读缓存。缓存中存数据库模型，
// 由定时任务刷新，这里只做响应转换。
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	var cached []model.TeamModel
	if hit, _ := h.cache.GetJSON(c.Request.Context(), cache.KeyLeaderboard, &cached); hit {
		c.JSON(http.StatusOK, gin.H{"leaderboard": ToTeamResponseList(cached)})
		return
	}

	teams, err := h.teamLogic.GetLeaderboard(20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	_ = h.cache.SetJSON(c.Request.Context(), cache.KeyLeaderboard, teams, 30*time.Second)
	c.JSON(http.StatusOK, gin.H{"leaderboard": ToTeamResponseList(teams)})
}

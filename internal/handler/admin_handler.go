package handler

import (
	"fmt"
	"net/http"

	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/logger"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminHandler 管理员处理器，所有路由都在管理员身份校验之后
type AdminHandler struct {
	roundLogic    *logic.RoundLogic
	teamLogic     *logic.TeamLogic
	investorLogic *logic.InvestorLogic
	settingsLogic *logic.SettingsLogic
	statsLogic    *logic.StatsLogic
	adminLogLogic *logic.AdminLogLogic
}

// NewAdminHandler 创建管理员处理器
func NewAdminHandler(db *gorm.DB, bus *event.Bus) *AdminHandler {
	return &AdminHandler{
		roundLogic:    logic.NewRoundLogic(db, bus),
		teamLogic:     logic.NewTeamLogic(db, bus),
		investorLogic: logic.NewInvestorLogic(db),
		settingsLogic: logic.NewSettingsLogic(db),
		statsLogic:    logic.NewStatsLogic(db),
		adminLogLogic: logic.NewAdminLogLogic(db),
	}
}

// StartRound 开始新一轮投资
func (h *AdminHandler) StartRound(c *gin.Context) {
	round, err := h.roundLogic.StartRound()
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("round.start", fmt.Sprintf("开始第 %d 轮", round.Number))
	c.JSON(http.StatusCreated, gin.H{"round": ToRoundResponse(round)})
}

// EndRound 结束当前轮次
func (h *AdminHandler) EndRound(c *gin.Context) {
	round, err := h.roundLogic.EndRound()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if round == nil {
		// 没有进行中的轮次时静默返回
		c.JSON(http.StatusOK, gin.H{"round": nil})
		return
	}

	h.appendLog("round.end", fmt.Sprintf("结束第 %d 轮", round.Number))
	c.JSON(http.StatusOK, gin.H{"round": ToRoundResponse(round)})
}

// CreateTeam 创建团队
func (h *AdminHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamLogic.CreateTeam(req.Name, req.Username, req.Password, req.Emoji)
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("team.create", fmt.Sprintf("创建团队 %s (id=%d)", team.Name, team.Id))
	c.JSON(http.StatusCreated, gin.H{"team": ToTeamResponse(team)})
}

// DeleteTeam 软删除团队
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	if err := h.teamLogic.DeleteTeam(id); err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("team.delete", fmt.Sprintf("删除团队 id=%d", id))
	c.JSON(http.StatusOK, gin.H{"message": "团队已删除"})
}

// ReactivateTeam 重新激活团队
func (h *AdminHandler) ReactivateTeam(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	team, err := h.teamLogic.ReactivateTeam(id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("team.reactivate", fmt.Sprintf("激活团队 id=%d", id))
	c.JSON(http.StatusOK, gin.H{"team": ToTeamResponse(team)})
}

// MergeTeams 合并团队
func (h *AdminHandler) MergeTeams(c *gin.Context) {
	var req MergeTeamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamLogic.MergeTeams(req.PrimaryId, req.SecondaryId)
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("team.merge", fmt.Sprintf("合并团队 %d <- %d", req.PrimaryId, req.SecondaryId))
	c.JSON(http.StatusOK, gin.H{"team": ToTeamResponse(team)})
}

// AdjustTokens 调整团队代币
func (h *AdminHandler) AdjustTokens(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	var req AdjustTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamLogic.AdjustTokens(id, req.Amount, req.Mode)
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("team.adjust_tokens", fmt.Sprintf("团队 id=%d %s %d", id, req.Mode, req.Amount))
	c.JSON(http.StatusOK, gin.H{"team": ToTeamResponse(team)})
}

// GetInvestors 获取投资人列表
func (h *AdminHandler) GetInvestors(c *gin.Context) {
	page, pageSize := parsePagination(c)
	investors, total, err := h.investorLogic.GetInvestors(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investors":  ToInvestorResponseList(investors),
		"pagination": NewPagination(page, pageSize, total),
	})
}

// GetSettings 获取全局设置
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsLogic.GetSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings 更新全局设置
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings, err := h.settingsLogic.UpdateSettings(
		req.TokensPerRound, req.MinPrice, req.MaxPrice, req.MaxInvestmentsPerRound)
	if err != nil {
		respondError(c, err)
		return
	}

	h.appendLog("settings.update", "更新全局设置")
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// AuditLedger 手动触发账本对账
func (h *AdminHandler) AuditLedger(c *gin.Context) {
	findings, err := h.statsLogic.AuditLedger()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"balanced": len(findings) == 0,
		"findings": findings,
	})
}

// GetLogs 获取管理员操作日志
func (h *AdminHandler) GetLogs(c *gin.Context) {
	page, pageSize := parsePagination(c)
	logs, total, err := h.adminLogLogic.GetLogs(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// appendLog 写操作日志，失败只记日志不影响主流程
func (h *AdminHandler) appendLog(action, detail string) {
	if err := h.adminLogLogic.Append(action, detail); err != nil {
		logger.Error("Failed to append admin log: %v", err)
	}
}

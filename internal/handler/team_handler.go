package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamHandler 团队处理器
type TeamHandler struct {
	teamLogic       *logic.TeamLogic
	investmentLogic *logic.InvestmentLogic
}

// NewTeamHandler 创建团队处理器
func NewTeamHandler(db *gorm.DB, bus *event.Bus) *TeamHandler {
	return &TeamHandler{
		teamLogic:       logic.NewTeamLogic(db, bus),
		investmentLogic: logic.NewInvestmentLogic(db, bus),
	}
}

// GetTeams 获取团队列表
func (h *TeamHandler) GetTeams(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	teams, err := h.teamLogic.GetTeams(includeInactive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"teams": ToTeamResponseList(teams)})
}

// GetTeam 获取团队详情
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	team, err := h.teamLogic.GetTeam(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": ToTeamResponse(team)})
}

// GetTeamInvestments 获取团队收到的投资记录
func (h *TeamHandler) GetTeamInvestments(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	page, pageSize := parsePagination(c)
	records, total, err := h.investmentLogic.GetTeamInvestments(id, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments": ToInvestmentResponseList(records),
		"pagination":  NewPagination(page, pageSize, total),
	})
}

// GetTeamRevenueHistory 获取团队每轮营收历史
func (h *TeamHandler) GetTeamRevenueHistory(c *gin.Context) {
	id, err := parseTeamId(c)
	if err != nil {
		return
	}

	history, err := h.investmentLogic.GetTeamRevenueHistory(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": history})
}

// UpdateProfile 团队更新自己的资料，只能改登录团队自身
func (h *TeamHandler) UpdateProfile(c *gin.Context) {
	teamId := auth.SubjectId(c)

	var req logic.TeamUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamLogic.UpdateTeam(teamId, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"team": ToTeamResponse(team)})
}

// UpdatePassword 团队修改自己的密码
func (h *TeamHandler) UpdatePassword(c *gin.Context) {
	teamId := auth.SubjectId(c)

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.teamLogic.UpdateTeamPassword(teamId, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "密码已更新"})
}

// parseTeamId 解析路径中的团队ID，失败时已写入响应
func parseTeamId(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的团队ID"})
		return 0, err
	}
	return id, nil
}

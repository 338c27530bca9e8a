package handler

import (
	"net/http"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/config"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 登录与注册处理器
type AuthHandler struct {
	teamLogic     *logic.TeamLogic
	investorLogic *logic.InvestorLogic
	tokenManager  *auth.TokenManager
	adminPassword string
}

// NewAuthHandler 创建登录与注册处理器
func NewAuthHandler(db *gorm.DB, tm *auth.TokenManager, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		teamLogic:     logic.NewTeamLogic(db, nil),
		investorLogic: logic.NewInvestorLogic(db),
		tokenManager:  tm,
		adminPassword: cfg.Admin.Password,
	}
}

// RegisterInvestor 投资人注册
func (h *AuthHandler) RegisterInvestor(c *gin.Context) {
	var req RegisterInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investor, err := h.investorLogic.Register(req.HallTicket, req.Password, req.Name, req.College, req.Section)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokenManager.Generate(investor.Id, auth.IdentityInvestor, investor.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token:    token,
		Identity: string(auth.IdentityInvestor),
		Profile:  ToInvestorResponse(investor),
	})
}

// LoginInvestor 投资人登录，账号为准考证号
func (h *AuthHandler) LoginInvestor(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investor, err := h.investorLogic.GetInvestorByHallTicket(req.Account)
	if err != nil || !auth.CheckPassword(investor.PasswordHash, req.Password) {
		respondError(c, logic.ErrInvalidCredentials)
		return
	}

	token, err := h.tokenManager.Generate(investor.Id, auth.IdentityInvestor, investor.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Identity: string(auth.IdentityInvestor),
		Profile:  ToInvestorResponse(investor),
	})
}

// LoginTeam 团队登录，账号为团队用户名
func (h *AuthHandler) LoginTeam(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamLogic.GetTeamByUsername(req.Account)
	if err != nil || !auth.CheckPassword(team.PasswordHash, req.Password) {
		respondError(c, logic.ErrInvalidCredentials)
		return
	}

	token, err := h.tokenManager.Generate(team.Id, auth.IdentityTeam, team.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Identity: string(auth.IdentityTeam),
		Profile:  ToTeamResponse(team),
	})
}

// LoginAdmin 管理员登录，密码在配置中
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.adminPassword == "" || req.Password != h.adminPassword {
		respondError(c, logic.ErrInvalidCredentials)
		return
	}

	token, err := h.tokenManager.Generate(0, auth.IdentityAdmin, "admin")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:    token,
		Identity: string(auth.IdentityAdmin),
	})
}

package handler

import (
	"net/http"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InvestorHandler 投资人处理器
type InvestorHandler struct {
	investorLogic *logic.InvestorLogic
}

// NewInvestorHandler 创建投资人处理器
func NewInvestorHandler(db *gorm.DB) *InvestorHandler {
	return &InvestorHandler{
		investorLogic: logic.NewInvestorLogic(db),
	}
}

// GetMe 获取登录投资人自己的信息
func (h *InvestorHandler) GetMe(c *gin.Context) {
	investor, err := h.investorLogic.GetInvestor(auth.SubjectId(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"investor": ToInvestorResponse(investor)})
}

// GetMyPortfolio 获取登录投资人的持仓
func (h *InvestorHandler) GetMyPortfolio(c *gin.Context) {
	portfolio, err := h.investorLogic.GetPortfolio(auth.SubjectId(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investor":            ToInvestorResponse(portfolio.Investor),
		"investments":         ToInvestmentResponseList(portfolio.Investments),
		"rounds_participated": portfolio.RoundsParticipated,
	})
}

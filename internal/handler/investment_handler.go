package handler

import (
	"net/http"

	"github.com/blues/ivs/internal/auth"
	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// InvestmentHandler 投资处理器
type InvestmentHandler struct {
	investmentLogic *logic.InvestmentLogic
	roundLogic      *logic.RoundLogic
}

// NewInvestmentHandler 创建投资处理器
func NewInvestmentHandler(db *gorm.DB, bus *event.Bus) *InvestmentHandler {
	return &InvestmentHandler{
		investmentLogic: logic.NewInvestmentLogic(db, bus),
		roundLogic:      logic.NewRoundLogic(db, bus),
	}
}

// Invest 投资人向团队投入代币，投资人身份取自会话
func (h *InvestmentHandler) Invest(c *gin.Context) {
	investorId := auth.SubjectId(c)

	var req InvestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	investment, err := h.investmentLogic.Invest(investorId, req.TeamId, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"investment": ToInvestmentResponse(investment)})
}

// GetInvestments 获取全部投资记录
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	page, pageSize := parsePagination(c)
	records, total, err := h.investmentLogic.GetInvestments(page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"investments": ToInvestmentResponseList(records),
		"pagination":  NewPagination(page, pageSize, total),
	})
}

// GetMyRoundInvestments 获取登录投资人本轮的投资记录
func (h *InvestmentHandler) GetMyRoundInvestments(c *gin.Context) {
	investorId := auth.SubjectId(c)

	round, err := h.roundLogic.GetCurrentRound()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if round == nil {
		c.JSON(http.StatusOK, gin.H{"investments": []InvestmentResponse{}})
		return
	}

	records, err := h.investmentLogic.GetInvestorRoundInvestments(investorId, round.Number)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": ToInvestmentResponseList(records)})
}

package handler

import (
	"net/http"

	"github.com/blues/ivs/internal/event"
	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RoundHandler 轮次处理器
type RoundHandler struct {
	roundLogic *logic.RoundLogic
}

// NewRoundHandler 创建轮次处理器
func NewRoundHandler(db *gorm.DB, bus *event.Bus) *RoundHandler {
	return &RoundHandler{
		roundLogic: logic.NewRoundLogic(db, bus),
	}
}

// GetCurrentRound 获取进行中的轮次
func (h *RoundHandler) GetCurrentRound(c *gin.Context) {
	round, err := h.roundLogic.GetCurrentRound()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if round == nil {
		c.JSON(http.StatusOK, gin.H{"round": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": ToRoundResponse(round)})
}

// GetRounds 获取轮次历史
func (h *RoundHandler) GetRounds(c *gin.Context) {
	rounds, err := h.roundLogic.GetRounds()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := make([]RoundResponse, len(rounds))
	for i, round := range rounds {
		result[i] = ToRoundResponse(&round)
	}
	c.JSON(http.StatusOK, gin.H{"rounds": result})
}

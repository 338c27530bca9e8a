package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/ivs/internal/logic"
	"github.com/gin-gonic/gin"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// NewPagination 构造分页信息
func NewPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
}

// parsePagination 解析分页查询参数
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// respondError 把 logic 层的哨兵错误映射为 HTTP 状态码
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, logic.ErrTeamNotFound),
		errors.Is(err, logic.ErrInvestorNotFound):
		status = http.StatusNotFound
	case errors.Is(err, logic.ErrAlreadyRegistered),
		errors.Is(err, logic.ErrDuplicateUsername),
		errors.Is(err, logic.ErrDuplicateInvestment),
		errors.Is(err, logic.ErrRoundAlreadyLive):
		status = http.StatusConflict
	case errors.Is(err, logic.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, logic.ErrNoActiveRound),
		errors.Is(err, logic.ErrTeamInactive),
		errors.Is(err, logic.ErrSlotLimitExceeded),
		errors.Is(err, logic.ErrInsufficientTokens),
		errors.Is(err, logic.ErrBelowMinimum),
		errors.Is(err, logic.ErrInvalidAmount),
		errors.Is(err, logic.ErrMergeSameTeam),
		errors.Is(err, logic.ErrBasePriceOutOfRange),
		errors.Is(err, logic.ErrInvalidAdjustMode),
		errors.Is(err, logic.ErrInvalidSettings):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

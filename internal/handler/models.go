package handler

import (
	"time"

	"github.com/blues/ivs/internal/model"
)

// 请求模型

// CreateTeamRequest 创建团队请求
type CreateTeamRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Emoji    string `json:"emoji"`
}

// RegisterInvestorRequest 投资人注册请求
type RegisterInvestorRequest struct {
	HallTicket string `json:"hall_ticket" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name" binding:"required"`
	College    string `json:"college"`
	Section    string `json:"section"`
}

// LoginRequest 登录请求，投资人用准考证号，团队用用户名
type LoginRequest struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// InvestRequest 投资请求
type InvestRequest struct {
	TeamId int64 `json:"team_id" binding:"required"`
	Amount int64 `json:"amount" binding:"required"`
}

// MergeTeamsRequest 合并团队请求
type MergeTeamsRequest struct {
	PrimaryId   int64 `json:"primary_id" binding:"required"`
	SecondaryId int64 `json:"secondary_id" binding:"required"`
}

// AdjustTokensRequest 调整团队代币请求
type AdjustTokensRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Mode   string `json:"mode" binding:"required,oneof=add remove"`
}

// UpdatePasswordRequest 修改密码请求
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// UpdateSettingsRequest 更新全局设置请求，nil 字段不更新
type UpdateSettingsRequest struct {
	TokensPerRound         *int64 `json:"tokens_per_round"`
	MinPrice               *int64 `json:"min_price"`
	MaxPrice               *int64 `json:"max_price"`
	MaxInvestmentsPerRound *int64 `json:"max_investments_per_round"`
}

// 响应模型

// TeamResponse 团队响应模型
type TeamResponse struct {
	ID                  int64            `json:"id"`
	Name                string           `json:"name"`
	Username            string           `json:"username"`
	Emoji               string           `json:"emoji"`
	Tagline             string           `json:"tagline"`
	Description         string           `json:"description"`
	Members             []string         `json:"members"`
	Links               []model.TeamLink `json:"links"`
	BasePrice           int64            `json:"basePrice"`
	CurrentTokens       int64            `json:"currentTokens"`
	TotalRevenue        int64            `json:"totalRevenue"`
	InvestorCount       int64            `json:"investorCount"`
	UniqueInvestorCount int64            `json:"uniqueInvestorCount"`
	IsActive            bool             `json:"isActive"`
	MergedWith          *int64           `json:"mergedWith"`
	CreatedAt           time.Time        `json:"createdAt"`
}

// InvestorResponse 投资人响应模型
type InvestorResponse struct {
	ID                  int64     `json:"id"`
	HallTicket          string    `json:"hallTicket"`
	Name                string    `json:"name"`
	College             string    `json:"college"`
	Section             string    `json:"section"`
	Tokens              int64     `json:"tokens"`
	TotalTokensReceived int64     `json:"totalTokensReceived"`
	CreatedAt           time.Time `json:"createdAt"`
}

// RoundResponse 轮次响应模型
type RoundResponse struct {
	Number    int64      `json:"number"`
	Status    string     `json:"status"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt"`
}

// InvestmentResponse 投资记录响应模型
type InvestmentResponse struct {
	ID         string    `json:"id"`
	InvestorID int64     `json:"investorId"`
	TeamID     int64     `json:"teamId"`
	Amount     int64     `json:"amount"`
	Round      int64     `json:"round"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	Identity string      `json:"identity"`
	Profile  interface{} `json:"profile,omitempty"`
}

// 转换函数

// ToTeamResponse 将数据库模型转换为响应模型
func ToTeamResponse(team *model.TeamModel) TeamResponse {
	return TeamResponse{
		ID:                  team.Id,
		Name:                team.Name,
		Username:            team.Username,
		Emoji:               team.Emoji,
		Tagline:             team.Tagline,
		Description:         team.Description,
		Members:             team.Members,
		Links:               team.Links,
		BasePrice:           team.BasePrice,
		CurrentTokens:       team.CurrentTokens,
		TotalRevenue:        team.TotalRevenue,
		InvestorCount:       team.InvestorCount,
		UniqueInvestorCount: team.UniqueInvestorCount,
		IsActive:            team.IsActive,
		MergedWith:          team.MergedWith,
		CreatedAt:           team.CreatedAt,
	}
}

// ToTeamResponseList 将数据库模型列表转换为响应模型列表
func ToTeamResponseList(teams []model.TeamModel) []TeamResponse {
	result := make([]TeamResponse, len(teams))
	for i, team := range teams {
		result[i] = ToTeamResponse(&team)
	}
	return result
}

// ToInvestorResponse 将数据库模型转换为响应模型
func ToInvestorResponse(investor *model.InvestorModel) InvestorResponse {
	return InvestorResponse{
		ID:                  investor.Id,
		HallTicket:          investor.HallTicket,
		Name:                investor.Name,
		College:             investor.College,
		Section:             investor.Section,
		Tokens:              investor.Tokens,
		TotalTokensReceived: investor.TotalTokensReceived,
		CreatedAt:           investor.CreatedAt,
	}
}

// ToInvestorResponseList 将数据库模型列表转换为响应模型列表
func ToInvestorResponseList(investors []model.InvestorModel) []InvestorResponse {
	result := make([]InvestorResponse, len(investors))
	for i, investor := range investors {
		result[i] = ToInvestorResponse(&investor)
	}
	return result
}

// ToRoundResponse 将数据库模型转换为响应模型
func ToRoundResponse(round *model.RoundModel) RoundResponse {
	return RoundResponse{
		Number:    round.Number,
		Status:    string(round.Status),
		StartedAt: round.StartedAt,
		EndedAt:   round.EndedAt,
	}
}

// ToInvestmentResponse 将数据库模型转换为响应模型
func ToInvestmentResponse(investment *model.InvestmentModel) InvestmentResponse {
	return InvestmentResponse{
		ID:         investment.Id,
		InvestorID: investment.InvestorId,
		TeamID:     investment.TeamId,
		Amount:     investment.Amount,
		Round:      investment.Round,
		CreatedAt:  investment.CreatedAt,
	}
}

// ToInvestmentResponseList 将数据库模型列表转换为响应模型列表
func ToInvestmentResponseList(investments []model.InvestmentModel) []InvestmentResponse {
	result := make([]InvestmentResponse, len(investments))
	for i, investment := range investments {
		result[i] = ToInvestmentResponse(&investment)
	}
	return result
}

package event

import (
	"time"
)

// Type 事件类型
type Type string

const (
	TypeRoundStarted      Type = "round.started"
	TypeRoundEnded        Type = "round.ended"
	TypeInvestmentCreated Type = "investment.created"
	TypeTeamMerged        Type = "team.merged"
	TypeTokensAdjusted    Type = "team.tokens_adjusted"
)

// Event 账本变更事件，推送给所有订阅者
type Event struct {
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// RoundPayload 轮次事件负载
type RoundPayload struct {
	Number  int64  `json:"number"`
	Status  string `json:"status"`
	Granted int64  `json:"granted,omitempty"` // 本轮每人发放的代币数
}

// InvestmentPayload 投资事件负载
type InvestmentPayload struct {
	InvestmentId string `json:"investment_id"`
	InvestorId   int64  `json:"investor_id"`
	TeamId       int64  `json:"team_id"`
	Amount       int64  `json:"amount"`
	Round        int64  `json:"round"`
}

// MergePayload 合并事件负载
type MergePayload struct {
	PrimaryId   int64  `json:"primary_id"`
	SecondaryId int64  `json:"secondary_id"`
	Name        string `json:"name"`
}

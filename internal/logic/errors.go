package logic

import (
	"errors"
)

// 校验失败统一用哨兵错误，handler 层据此映射 HTTP 状态码。
var (
	// 轮次
	ErrNoActiveRound    = errors.New("当前没有进行中的投资轮次")
	ErrRoundAlreadyLive = errors.New("已有进行中的投资轮次")

	// 投资
	ErrTeamNotFound        = errors.New("团队不存在")
	ErrTeamInactive        = errors.New("团队已停用，无法接受投资")
	ErrInvestorNotFound    = errors.New("投资人不存在")
	ErrSlotLimitExceeded   = errors.New("本轮投资团队数已达上限")
	ErrDuplicateInvestment = errors.New("本轮已投资过该团队")
	ErrInsufficientTokens  = errors.New("代币余额不足")
	ErrBelowMinimum        = errors.New("投资金额低于团队最低投资额")
	ErrInvalidAmount       = errors.New("金额必须大于0")

	// 注册
	ErrAlreadyRegistered = errors.New("该准考证号已注册")
	ErrDuplicateUsername = errors.New("该用户名已被使用")

	// 登录
	ErrInvalidCredentials = errors.New("账号或密码错误")

	// 团队管理
	ErrMergeSameTeam       = errors.New("不能合并同一个团队")
	ErrBasePriceOutOfRange = errors.New("基础价格超出允许范围")
	ErrInvalidAdjustMode   = errors.New("无效的代币调整方式")

	// 设置
	ErrInvalidSettings = errors.New("无效的设置")
)

package domain

import "errors"

// 领域错误集合。所有校验失败都是确定性错误，调用方不应重试。
var (
	// ErrInvalidAmount 金额非法（<= 0，或转账目标为自身）
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds 余额不足
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAccountNotFound 账户不存在
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateAccount 账号已被注册
	ErrDuplicateAccount = errors.New("account number already exists")
	// ErrAuthenticationFailed 登录凭证校验失败
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrInvalidInput 开户字段非法（空账号/姓名、未知账户类型、负的初始余额）
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidTarget 转账目标为当前会话自身账户
	ErrInvalidTarget = errors.New("invalid transfer target")
	// ErrSessionExpired 会话不存在或已过期
	ErrSessionExpired = errors.New("session expired")
)

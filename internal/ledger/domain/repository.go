package domain

import "context"

// AccountRepository 账户注册表仓储接口。
// 注册表是跨会话唯一的共享状态，实现方负责并发安全。
type AccountRepository interface {
	// Save 注册新账户；账号已存在时返回 ErrDuplicateAccount
	Save(ctx context.Context, account *Account) error
	// Get 按账号查找账户；不存在时返回 ErrAccountNotFound
	Get(ctx context.Context, accountNumber string) (*Account, error)
	// Count 返回已注册账户数
	Count(ctx context.Context) (int, error)
}

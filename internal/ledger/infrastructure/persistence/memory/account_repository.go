// 包 memory 账户注册表的进程内实现。
// 账本按约定不跨重启持久化，注册表只存在于内存中。
package memory

import (
	"context"
	"sync"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

// AccountRepository 基于 map 的账户注册表，RWMutex 保护注册与查找。
// 账户本身的余额变更由 Account 内部的锁负责，这里只守护索引表。
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository 创建空注册表。
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Save 注册新账户，账号重复时拒绝插入。
func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.AccountNumber]; ok {
		return domain.ErrDuplicateAccount
	}
	r.accounts[account.AccountNumber] = account
	return nil
}

// Get 按账号查找账户。
func (r *AccountRepository) Get(ctx context.Context, accountNumber string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[accountNumber]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// Count 返回已注册账户数。
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts), nil
}

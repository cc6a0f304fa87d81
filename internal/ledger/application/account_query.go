package application

import (
	"context"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

// LedgerQueryService 处理账本相关的读操作。
type LedgerQueryService struct {
	repo     domain.AccountRepository
	sessions *SessionManager
}

// NewLedgerQueryService 创建读服务实例
func NewLedgerQueryService(repo domain.AccountRepository, sessions *SessionManager) *LedgerQueryService {
	return &LedgerQueryService{
		repo:     repo,
		sessions: sessions,
	}
}

// GetAccount 返回会话账户的当前视图。
func (s *LedgerQueryService) GetAccount(ctx context.Context, token string) (*AccountDTO, error) {
	account, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}

// GetTransactions 返回会话账户的交易历史，按写入顺序排列。
func (s *LedgerQueryService) GetTransactions(ctx context.Context, token string) ([]EntryDTO, error) {
	account, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	entries := account.Entries()
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	return out, nil
}

// AccountCount 返回已注册账户数，供展示层做转账前置校验。
func (s *LedgerQueryService) AccountCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *LedgerQueryService) resolve(ctx context.Context, token string) (*domain.Account, error) {
	number, err := s.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

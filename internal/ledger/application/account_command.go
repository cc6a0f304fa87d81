package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

// CreateAccountCommand 开户命令
type CreateAccountCommand struct {
	AccountNumber  string
	OwnerName      string
	Secret         string
	Class          string
	OpeningBalance decimal.Decimal
}

// LoginCommand 登录命令
type LoginCommand struct {
	AccountNumber string
	Secret        string
}

// AmountCommand 单账户资金命令（存款/取款）
type AmountCommand struct {
	Token  string
	Amount decimal.Decimal
}

// TransferCommand 转账命令
type TransferCommand struct {
	Token         string
	TargetAccount string
	Amount        decimal.Decimal
}

// TopUpCommand 话费充值命令
type TopUpCommand struct {
	Token       string
	Amount      decimal.Decimal
	Destination string
}

// LedgerCommandService 处理账本相关的写操作。
type LedgerCommandService struct {
	repo     domain.AccountRepository
	hasher   domain.SecretHasher
	sessions *SessionManager
}

// NewLedgerCommandService 创建写服务实例
func NewLedgerCommandService(
	repo domain.AccountRepository,
	hasher domain.SecretHasher,
	sessions *SessionManager,
) *LedgerCommandService {
	return &LedgerCommandService{
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// CreateAccount 处理开户。字段校验失败返回 ErrInvalidInput，
// 账号重复返回 ErrDuplicateAccount。凭证以加盐哈希落入账户，明文不保留。
func (s *LedgerCommandService) CreateAccount(ctx context.Context, cmd CreateAccountCommand) (*AccountDTO, error) {
	if strings.TrimSpace(cmd.Secret) == "" {
		return nil, domain.ErrInvalidInput
	}
	class, err := domain.ParseAccountClass(cmd.Class)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(cmd.Secret)
	if err != nil {
		return nil, fmt.Errorf("hash secret: %w", err)
	}

	account, err := domain.NewAccount(cmd.AccountNumber, cmd.OwnerName, hash, class, cmd.OpeningBalance)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, account); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "account created",
		"account_number", account.AccountNumber,
		"class", account.Class,
	)
	return toAccountDTO(account), nil
}

// Login 处理登录。账户不存在与凭证不匹配分别返回
// ErrAccountNotFound 与 ErrAuthenticationFailed，失败不留下任何会话。
func (s *LedgerCommandService) Login(ctx context.Context, cmd LoginCommand) (*SessionDTO, error) {
	account, err := s.repo.Get(ctx, cmd.AccountNumber)
	if err != nil {
		return nil, err
	}
	if err := account.VerifySecret(s.hasher, cmd.Secret); err != nil {
		slog.WarnContext(ctx, "login rejected", "account_number", cmd.AccountNumber)
		return nil, err
	}

	session := s.sessions.Create(account.AccountNumber)
	slog.InfoContext(ctx, "login succeeded", "account_number", account.AccountNumber)
	return &SessionDTO{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Unix(),
		Account:   toAccountDTO(account),
	}, nil
}

// Logout 注销会话，无条件幂等。
func (s *LedgerCommandService) Logout(ctx context.Context, token string) {
	s.sessions.Delete(token)
}

// Deposit 处理存款
func (s *LedgerCommandService) Deposit(ctx context.Context, cmd AmountCommand) (*AccountDTO, error) {
	account, err := s.resolve(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	if err := account.Deposit(cmd.Amount); err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}

// Withdraw 处理取款
func (s *LedgerCommandService) Withdraw(ctx context.Context, cmd AmountCommand) (*AccountDTO, error) {
	account, err := s.resolve(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	if err := account.Withdraw(cmd.Amount); err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}

// Transfer 处理转账。目标先在注册表边界解析：
// 不存在返回 ErrAccountNotFound，指向自身返回 ErrInvalidTarget（比领域层自转校验更早更廉价）。
func (s *LedgerCommandService) Transfer(ctx context.Context, cmd TransferCommand) (*AccountDTO, error) {
	account, err := s.resolve(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	target, err := s.ResolveTransferTarget(ctx, account.AccountNumber, cmd.TargetAccount)
	if err != nil {
		return nil, err
	}
	if err := account.TransferTo(target, cmd.Amount); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "transfer completed",
		"from", account.AccountNumber,
		"to", target.AccountNumber,
		"amount", cmd.Amount.String(),
	)
	return toAccountDTO(account), nil
}

// MobileTopUp 处理话费充值
func (s *LedgerCommandService) MobileTopUp(ctx context.Context, cmd TopUpCommand) (*AccountDTO, error) {
	account, err := s.resolve(ctx, cmd.Token)
	if err != nil {
		return nil, err
	}
	if err := account.MobileTopUp(cmd.Amount, cmd.Destination); err != nil {
		return nil, err
	}
	return toAccountDTO(account), nil
}

// ResolveTransferTarget 按账号解析转账目标账户。
func (s *LedgerCommandService) ResolveTransferTarget(ctx context.Context, selfNumber, targetNumber string) (*domain.Account, error) {
	target, err := s.repo.Get(ctx, targetNumber)
	if err != nil {
		return nil, err
	}
	if target.AccountNumber == selfNumber {
		return nil, domain.ErrInvalidTarget
	}
	return target, nil
}

// resolve 将会话令牌解析为账户实体。
func (s *LedgerCommandService) resolve(ctx context.Context, token string) (*domain.Account, error) {
	number, err := s.sessions.Resolve(token)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, number)
}

// 包 domain 账本服务的领域模型
package domain

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountClass 账户类型（Personal: 个人, Business: 企业），仅作展示信息，不影响操作语义。
type AccountClass string

const (
	ClassPersonal AccountClass = "Personal"
	ClassBusiness AccountClass = "Business"
)

// ParseAccountClass 解析账户类型，大小写不敏感。
func ParseAccountClass(s string) (AccountClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "personal":
		return ClassPersonal, nil
	case "business":
		return ClassBusiness, nil
	default:
		return "", ErrInvalidInput
	}
}

// Account 账户实体。余额与交易历史只能通过本类型的方法修改，
// 余额任何时刻不为负，由操作前置校验保证，从不截断。
type Account struct {
	// AccountNumber 账号，开户时由调用方指定，创建后不可变
	AccountNumber string `json:"account_number"`
	// OwnerName 户主姓名
	OwnerName string `json:"owner_name"`
	// Class 账户类型
	Class AccountClass `json:"class"`
	// CreatedAt 开户时间
	CreatedAt time.Time `json:"created_at"`

	mu         sync.Mutex
	secretHash string
	balance    decimal.Decimal
	entries    []Entry
}

// NewAccount 创建账户。账号与姓名不得为空，初始余额不得为负，
// secretHash 必须是 SecretHasher 生成的哈希而非明文。
func NewAccount(number, owner, secretHash string, class AccountClass, opening decimal.Decimal) (*Account, error) {
	if strings.TrimSpace(number) == "" || strings.TrimSpace(owner) == "" {
		return nil, ErrInvalidInput
	}
	if class != ClassPersonal && class != ClassBusiness {
		return nil, ErrInvalidInput
	}
	if opening.IsNegative() {
		return nil, ErrInvalidInput
	}
	return &Account{
		AccountNumber: number,
		OwnerName:     owner,
		Class:         class,
		CreatedAt:     time.Now(),
		secretHash:    secretHash,
		balance:       opening,
	}, nil
}

// VerifySecret 校验登录凭证。成功返回 nil，失败统一返回 ErrAuthenticationFailed。
func (a *Account) VerifySecret(hasher SecretHasher, secret string) error {
	if err := hasher.Compare(a.secretHash, secret); err != nil {
		return ErrAuthenticationFailed
	}
	return nil
}

// Balance 返回当前余额快照。
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Entries 返回交易历史的拷贝，调用方无法借此修改内部日志。
func (a *Account) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Deposit 存款。金额必须为正，余额与日志在同一临界区内更新。
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	a.entries = append(a.entries, newEntry(EntryDeposit, amount))
	return nil
}

// Withdraw 取款。金额必须为正且不超过余额，余额可以恰好减到零。
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	a.entries = append(a.entries, newEntry(EntryWithdraw, amount))
	return nil
}

// TransferTo 向 target 转账。双方余额变动与双边日志在同一临界区内完成，
// 对外不可观察到只扣款未入账的中间状态；任何校验失败都不改变任何账户。
// 两把锁按账号升序获取，避免两笔反向并发转账互相死锁。
func (a *Account) TransferTo(target *Account, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	// 自转等同非法金额，与来源系统行为一致
	if target == nil || target == a || target.AccountNumber == a.AccountNumber {
		return ErrInvalidAmount
	}

	first, second := a, target
	if target.AccountNumber < a.AccountNumber {
		first, second = target, a
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(amount)
	target.balance = target.balance.Add(amount)

	now := time.Now()
	out := newEntry(EntryTransferOut, amount)
	out.CreatedAt = now
	out.CounterName = target.OwnerName
	out.CounterAccount = target.AccountNumber
	in := newEntry(EntryTransferIn, amount)
	in.CreatedAt = now
	in.CounterName = a.OwnerName
	in.CounterAccount = a.AccountNumber

	a.entries = append(a.entries, out)
	target.entries = append(target.entries, in)
	return nil
}

// MobileTopUp 话费充值。校验与取款一致，destination 为不透明字符串，不做格式校验。
func (a *Account) MobileTopUp(amount decimal.Decimal, destination string) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Sub(amount)
	e := newEntry(EntryTopUp, amount)
	e.Destination = destination
	a.entries = append(a.entries, e)
	return nil
}

func newEntry(kind EntryKind, amount decimal.Decimal) Entry {
	return Entry{
		EntryID:   uuid.NewString(),
		Kind:      kind,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

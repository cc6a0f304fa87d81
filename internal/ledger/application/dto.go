package application

import "github.com/wyfcoding/banking/internal/ledger/domain"

// AccountDTO 账户视图
type AccountDTO struct {
	AccountNumber string `json:"account_number"`
	OwnerName     string `json:"owner_name"`
	Class         string `json:"class"`
	Balance       string `json:"balance"`
	CreatedAt     int64  `json:"created_at"`
}

// EntryDTO 交易记录视图，Description 为渲染后的展示文本
type EntryDTO struct {
	EntryID        string `json:"entry_id"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	CounterName    string `json:"counter_name,omitempty"`
	CounterAccount string `json:"counter_account,omitempty"`
	Destination    string `json:"destination,omitempty"`
	Description    string `json:"description"`
	CreatedAt      int64  `json:"created_at"`
}

// SessionDTO 登录结果视图
type SessionDTO struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expires_at"`
	Account   *AccountDTO `json:"account"`
}

func toAccountDTO(a *domain.Account) *AccountDTO {
	return &AccountDTO{
		AccountNumber: a.AccountNumber,
		OwnerName:     a.OwnerName,
		Class:         string(a.Class),
		Balance:       a.Balance().String(),
		CreatedAt:     a.CreatedAt.Unix(),
	}
}

func toEntryDTO(e domain.Entry) EntryDTO {
	return EntryDTO{
		EntryID:        e.EntryID,
		Kind:           string(e.Kind),
		Amount:         e.Amount.String(),
		CounterName:    e.CounterName,
		CounterAccount: e.CounterAccount,
		Destination:    e.Destination,
		Description:    e.Description(),
		CreatedAt:      e.CreatedAt.Unix(),
	}
}

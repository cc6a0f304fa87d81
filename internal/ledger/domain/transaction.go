package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind 交易记录类型
type EntryKind string

const (
	EntryDeposit     EntryKind = "DEPOSIT"
	EntryWithdraw    EntryKind = "WITHDRAW"
	EntryTransferOut EntryKind = "TRANSFER_OUT"
	EntryTransferIn  EntryKind = "TRANSFER_IN"
	EntryTopUp       EntryKind = "TOPUP"
)

// Entry 单条交易记录。历史为仅追加序列，按写入顺序保存，永不重排或删除。
type Entry struct {
	// 记录 ID (业务主键)
	EntryID string `json:"entry_id"`
	// 记录类型
	Kind EntryKind `json:"kind"`
	// 金额，恒为正数
	Amount decimal.Decimal `json:"amount"`
	// 对手方姓名（仅转账）
	CounterName string `json:"counter_name,omitempty"`
	// 对手方账号（仅转账）
	CounterAccount string `json:"counter_account,omitempty"`
	// 充值目标手机号（仅话费充值）
	Destination string `json:"destination,omitempty"`
	// 记录时间
	CreatedAt time.Time `json:"created_at"`
}

// Description 渲染面向用户的描述文本。
// 文案与余额变动同属一条记录，渲染只在读取时发生。
func (e Entry) Description() string {
	switch e.Kind {
	case EntryDeposit:
		return fmt.Sprintf("Deposited %s", e.Amount)
	case EntryWithdraw:
		return fmt.Sprintf("Withdrew %s", e.Amount)
	case EntryTransferOut:
		return fmt.Sprintf("Sent %s to %s (Acc: %s)", e.Amount, e.CounterName, e.CounterAccount)
	case EntryTransferIn:
		return fmt.Sprintf("Received %s from %s (Acc: %s)", e.Amount, e.CounterName, e.CounterAccount)
	case EntryTopUp:
		return fmt.Sprintf("Mobile top-up %s to %s", e.Amount, e.Destination)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Amount)
	}
}

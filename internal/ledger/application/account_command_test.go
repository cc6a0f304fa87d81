package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/wyfcoding/banking/internal/ledger/domain"
	"github.com/wyfcoding/banking/internal/ledger/infrastructure/persistence/memory"
	"github.com/wyfcoding/banking/internal/ledger/infrastructure/security"
)

func newTestService(t *testing.T) *LedgerService {
	t.Helper()
	repo := memory.NewAccountRepository()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	sessions := NewSessionManager(time.Minute)
	return NewLedgerService(
		NewLedgerCommandService(repo, hasher, sessions),
		NewLedgerQueryService(repo, sessions),
	)
}

func createAccount(t *testing.T, svc *LedgerService, number, owner, secret, class string, opening int64) *AccountDTO {
	t.Helper()
	dto, err := svc.CreateAccount(context.Background(), CreateAccountCommand{
		AccountNumber:  number,
		OwnerName:      owner,
		Secret:         secret,
		Class:          class,
		OpeningBalance: decimal.NewFromInt(opening),
	})
	if err != nil {
		t.Fatalf("CreateAccount(%s) err=%v", number, err)
	}
	return dto
}

func login(t *testing.T, svc *LedgerService, number, secret string) *SessionDTO {
	t.Helper()
	session, err := svc.Login(context.Background(), LoginCommand{AccountNumber: number, Secret: secret})
	if err != nil {
		t.Fatalf("Login(%s) err=%v", number, err)
	}
	return session
}

func TestCreateAccount(t *testing.T) {
	svc := newTestService(t)

	dto := createAccount(t, svc, "001", "Alice", "p1", "personal", 1000)
	if dto.AccountNumber != "001" || dto.OwnerName != "Alice" || dto.Balance != "1000" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	// 账户类型大小写不敏感，落库为规范形式
	if dto.Class != "Personal" {
		t.Fatalf("class=%q want=Personal", dto.Class)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  CreateAccountCommand
		want error
	}{
		{"empty number", CreateAccountCommand{OwnerName: "A", Secret: "p", Class: "Personal"}, domain.ErrInvalidInput},
		{"empty owner", CreateAccountCommand{AccountNumber: "001", Secret: "p", Class: "Personal"}, domain.ErrInvalidInput},
		{"empty secret", CreateAccountCommand{AccountNumber: "001", OwnerName: "A", Class: "Personal"}, domain.ErrInvalidInput},
		{"bad class", CreateAccountCommand{AccountNumber: "001", OwnerName: "A", Secret: "p", Class: "Corporate"}, domain.ErrInvalidInput},
		{"negative opening", CreateAccountCommand{AccountNumber: "001", OwnerName: "A", Secret: "p", Class: "Personal", OpeningBalance: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
	}
	for _, c := range cases {
		if _, err := svc.CreateAccount(ctx, c.cmd); !errors.Is(err, c.want) {
			t.Fatalf("%s: want %v, got %v", c.name, c.want, err)
		}
	}

	createAccount(t, svc, "001", "Alice", "p1", "Personal", 0)
	if _, err := svc.CreateAccount(ctx, CreateAccountCommand{
		AccountNumber: "001", OwnerName: "Mallory", Secret: "x", Class: "Personal",
	}); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}
}

func TestLoginLogout(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createAccount(t, svc, "001", "Alice", "p1", "Personal", 1000)

	if _, err := svc.Login(ctx, LoginCommand{AccountNumber: "999", Secret: "p1"}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("unknown account: want ErrAccountNotFound, got %v", err)
	}
	if _, err := svc.Login(ctx, LoginCommand{AccountNumber: "001", Secret: "wrong"}); !errors.Is(err, domain.ErrAuthenticationFailed) {
		t.Fatalf("wrong secret: want ErrAuthenticationFailed, got %v", err)
	}

	session := login(t, svc, "001", "p1")
	if session.Account.AccountNumber != "001" || session.Account.Balance != "1000" {
		t.Fatalf("unexpected session account: %+v", session.Account)
	}

	if _, err := svc.GetAccount(ctx, session.Token); err != nil {
		t.Fatalf("GetAccount with live session: %v", err)
	}

	svc.Logout(ctx, session.Token)
	if _, err := svc.GetAccount(ctx, session.Token); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired after logout, got %v", err)
	}
	// 幂等
	svc.Logout(ctx, session.Token)
}

func TestFailedLoginLeavesNoSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createAccount(t, svc, "001", "Alice", "p1", "Personal", 100)

	if _, err := svc.Login(ctx, LoginCommand{AccountNumber: "001", Secret: "bad"}); err == nil {
		t.Fatal("login should have failed")
	}
	// 余额不受失败登录影响
	session := login(t, svc, "001", "p1")
	if session.Account.Balance != "100" {
		t.Fatalf("balance=%s want=100", session.Account.Balance)
	}
}

func TestDepositWithdrawTopUpFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createAccount(t, svc, "001", "Alice", "p1", "Personal", 1000)
	session := login(t, svc, "001", "p1")

	dto, err := svc.Deposit(ctx, AmountCommand{Token: session.Token, Amount: decimal.NewFromInt(200)})
	if err != nil || dto.Balance != "1200" {
		t.Fatalf("deposit: %+v, %v", dto, err)
	}
	dto, err = svc.Withdraw(ctx, AmountCommand{Token: session.Token, Amount: decimal.NewFromInt(300)})
	if err != nil || dto.Balance != "900" {
		t.Fatalf("withdraw: %+v, %v", dto, err)
	}
	dto, err = svc.MobileTopUp(ctx, TopUpCommand{Token: session.Token, Amount: decimal.NewFromInt(100), Destination: "17123456"})
	if err != nil || dto.Balance != "800" {
		t.Fatalf("topup: %+v, %v", dto, err)
	}

	entries, err := svc.GetTransactions(ctx, session.Token)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("history len=%d want=3", len(entries))
	}
	wantDescriptions := []string{
		"Deposited 200",
		"Withdrew 300",
		"Mobile top-up 100 to 17123456",
	}
	for i, want := range wantDescriptions {
		if entries[i].Description != want {
			t.Fatalf("entry[%d]=%q want=%q", i, entries[i].Description, want)
		}
	}

	// 会话失效后操作被拒绝
	if _, err := svc.Deposit(ctx, AmountCommand{Token: "no-such-token", Amount: decimal.NewFromInt(1)}); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("want ErrSessionExpired, got %v", err)
	}
}

func TestTransferFlow(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createAccount(t, svc, "001", "Alice", "p1", "Personal", 1000)
	createAccount(t, svc, "002", "Bob", "p2", "Business", 500)
	session := login(t, svc, "001", "p1")

	dto, err := svc.Transfer(ctx, TransferCommand{
		Token:         session.Token,
		TargetAccount: "002",
		Amount:        decimal.NewFromInt(200),
	})
	if err != nil {
		t.Fatal(err)
	}
	if dto.Balance != "800" {
		t.Fatalf("sender balance=%s want=800", dto.Balance)
	}

	bobSession := login(t, svc, "002", "p2")
	if bobSession.Account.Balance != "700" {
		t.Fatalf("receiver balance=%s want=700", bobSession.Account.Balance)
	}
	bobEntries, err := svc.GetTransactions(ctx, bobSession.Token)
	if err != nil {
		t.Fatal(err)
	}
	if len(bobEntries) != 1 || bobEntries[0].Description != "Received 200 from Alice (Acc: 001)" {
		t.Fatalf("receiver entries: %+v", bobEntries)
	}
}

func TestTransferTargetResolution(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createAccount(t, svc, "001", "Alice", "p1", "Personal", 1000)
	createAccount(t, svc, "002", "Bob", "p2", "Business", 500)
	session := login(t, svc, "001", "p1")

	if _, err := svc.Transfer(ctx, TransferCommand{
		Token: session.Token, TargetAccount: "999", Amount: decimal.NewFromInt(1),
	}); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("unknown target: want ErrAccountNotFound, got %v", err)
	}

	// 指向自身的目标在注册表边界被更早拒绝
	if _, err := svc.Transfer(ctx, TransferCommand{
		Token: session.Token, TargetAccount: "001", Amount: decimal.NewFromInt(1),
	}); !errors.Is(err, domain.ErrInvalidTarget) {
		t.Fatalf("self target: want ErrInvalidTarget, got %v", err)
	}

	if _, err := svc.Transfer(ctx, TransferCommand{
		Token: session.Token, TargetAccount: "002", Amount: decimal.NewFromInt(99999),
	}); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	if count, err := svc.AccountCount(ctx); err != nil || count != 2 {
		t.Fatalf("AccountCount=%d,%v want 2", count, err)
	}
}

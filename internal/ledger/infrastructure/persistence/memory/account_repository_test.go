package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/banking/internal/ledger/domain"
)

func mustAccount(t *testing.T, number, owner string) *domain.Account {
	t.Helper()
	a, err := domain.NewAccount(number, owner, "hash", domain.ClassPersonal, decimal.Zero)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestSaveAndGet(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, mustAccount(t, "001", "Alice")); err != nil {
		t.Fatal(err)
	}
	got, err := repo.Get(ctx, "001")
	if err != nil {
		t.Fatal(err)
	}
	if got.OwnerName != "Alice" {
		t.Fatalf("owner=%q want=Alice", got.OwnerName)
	}

	if _, err := repo.Get(ctx, "999"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

func TestSaveRejectsDuplicate(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	if err := repo.Save(ctx, mustAccount(t, "001", "Alice")); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, mustAccount(t, "001", "Mallory")); !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("want ErrDuplicateAccount, got %v", err)
	}

	// 原账户未被覆盖
	got, err := repo.Get(ctx, "001")
	if err != nil {
		t.Fatal(err)
	}
	if got.OwnerName != "Alice" {
		t.Fatalf("owner=%q want=Alice", got.OwnerName)
	}
}

func TestCount(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	if n, _ := repo.Count(ctx); n != 0 {
		t.Fatalf("count=%d want=0", n)
	}
	_ = repo.Save(ctx, mustAccount(t, "001", "Alice"))
	_ = repo.Save(ctx, mustAccount(t, "002", "Bob"))
	if n, _ := repo.Count(ctx); n != 2 {
		t.Fatalf("count=%d want=2", n)
	}
}

func TestConcurrentRegistration(t *testing.T) {
	repo := NewAccountRepository()
	ctx := context.Background()

	const workers = 50
	candidates := make([]*domain.Account, workers)
	for i := range candidates {
		candidates[i] = mustAccount(t, "001", "Alice")
	}

	// 所有 goroutine 抢注同一个账号，恰好一个成功
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(a *domain.Account) {
			defer wg.Done()
			_ = repo.Save(ctx, a)
		}(candidates[i])
	}
	wg.Wait()

	if n, _ := repo.Count(ctx); n != 1 {
		t.Fatalf("count=%d want=1", n)
	}
}

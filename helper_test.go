package wallet

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// D is a helper for test to create decimals from const.
func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// testNow is the fixed clock of test wallets.
var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// testWallet returns a wallet on the default state with a fixed clock,
// sequential ids, and the list of notifications it emitted.
func testWallet(t *testing.T) (*Wallet, *[]Notification) {
	t.Helper()
	var notes []Notification
	seq := 0
	w := New(DefaultState(),
		WithClock(func() time.Time { return testNow }),
		WithIDs(func() string { seq++; return fmt.Sprintf("id-%d", seq) }),
		WithNotifier(NotifierFunc(func(n Notification) { notes = append(notes, n) })),
	)
	return w, &notes
}

// checkBalance asserts the cash balance and that it equals the transaction fold.
func checkBalance(t *testing.T, w *Wallet, want float64) {
	t.Helper()
	s := w.State()
	if !s.CashBalance.Equal(D(want)) {
		t.Errorf("CashBalance = %v, want %v", s.CashBalance, want)
	}
	if !s.CashBalance.Equal(s.ReplayBalance()) {
		t.Errorf("CashBalance = %v but transactions fold to %v", s.CashBalance, s.ReplayBalance())
	}
}

func expense(amount float64, description string) Transaction {
	return Transaction{Amount: D(amount), Description: description, Type: Expense, PillarID: "2"}
}

func income(amount float64, description string) Transaction {
	return Transaction{Amount: D(amount), Description: description, Type: Income, PillarID: "5"}
}

func ptr[T any](v T) *T { return &v }

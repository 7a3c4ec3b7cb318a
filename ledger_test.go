package wallet

import (
	"testing"
	"time"
)

func TestWallet_AddTransaction(t *testing.T) {
	w, notes := testWallet(t)

	tx := w.AddTransaction(expense(200, "Groceries"), false)
	if tx.ID == "" {
		t.Fatalf("AddTransaction() did not assign an id")
	}
	if !tx.Date.Equal(testNow) {
		t.Errorf("AddTransaction() date = %v, want %v", tx.Date, testNow)
	}
	checkBalance(t, w, -200)

	w.AddTransaction(income(1000, "Salary"), true)
	checkBalance(t, w, 800)

	txs := w.Transactions()
	if len(txs) != 2 || txs[0].Description != "Salary" {
		t.Errorf("Transactions() = %v, want Salary first", txs)
	}
	if len(*notes) != 1 {
		t.Errorf("got %d notifications, want 1 (the silent commit does not notify)", len(*notes))
	}

	// an amount of zero is accepted and has no effect.
	w.AddTransaction(expense(0, "Nothing"), true)
	checkBalance(t, w, 800)
}

func TestWallet_UpdateTransaction(t *testing.T) {
	w, _ := testWallet(t)
	tx := w.AddTransaction(expense(200, "Groceries"), false)
	w.AddTransaction(income(1000, "Salary"), false)

	tx.Amount = D(50)
	tx.Type = Income
	if !w.UpdateTransaction(tx) {
		t.Fatalf("UpdateTransaction() = false, want true")
	}
	checkBalance(t, w, 1050)

	got, ok := w.Transaction(tx.ID)
	if !ok || got.Type != Income {
		t.Errorf("Transaction(%q) = %v, want the updated income", tx.ID, got)
	}
	if entry := w.AuditLog()[0]; entry.Action != ActionUpdate {
		t.Errorf("AuditLog()[0].Action = %v, want %v", entry.Action, ActionUpdate)
	}

	if w.UpdateTransaction(Transaction{ID: "missing", Amount: D(1), Type: Income}) {
		t.Errorf("UpdateTransaction(missing) = true, want false")
	}
	checkBalance(t, w, 1050)
}

func TestWallet_DeleteTransaction(t *testing.T) {
	w, _ := testWallet(t)
	groceries := w.AddTransaction(expense(200, "Groceries"), false)
	w.AddTransaction(income(1000, "Salary"), false)
	checkBalance(t, w, 800)

	if !w.DeleteTransaction(groceries.ID) {
		t.Fatalf("DeleteTransaction() = false, want true")
	}
	checkBalance(t, w, 1000)

	if w.DeleteTransaction(groceries.ID) {
		t.Errorf("DeleteTransaction() twice = true, want false")
	}
	checkBalance(t, w, 1000)
}

func TestWallet_CommitDeleteRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
	}{
		{"income", income(123.45, "Bonus")},
		{"expense", expense(99.99, "Shoes")},
		{"zero", expense(0, "Free")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := testWallet(t)
			w.AddTransaction(income(500, "Opening"), true)
			before := w.State().CashBalance

			tx := w.AddTransaction(tc.tx, true)
			w.DeleteTransaction(tx.ID)

			if !w.State().CashBalance.Equal(before) {
				t.Errorf("balance after commit and delete = %v, want %v", w.State().CashBalance, before)
			}
			if len(w.Transactions()) != 1 {
				t.Errorf("got %d transactions, want 1", len(w.Transactions()))
			}
		})
	}
}

func TestWallet_Observe(t *testing.T) {
	w, _ := testWallet(t)
	calls := 0
	w.Observe(func(*State) { calls++ })

	w.AddTransaction(expense(10, "Coffee"), true)
	w.DeleteTransaction("missing")
	if calls != 1 {
		t.Errorf("observer called %d times, want 1", calls)
	}
}

func TestWallet_AuditOrder(t *testing.T) {
	w, _ := testWallet(t)
	tx := w.AddTransaction(expense(10, "Coffee"), true)
	w.DeleteTransaction(tx.ID)

	logs := w.AuditLog()
	if len(logs) != 2 {
		t.Fatalf("AuditLog() has %d entries, want 2", len(logs))
	}
	if logs[0].Action != ActionDelete || logs[1].Action != ActionAdd {
		t.Errorf("AuditLog() actions = %v, %v, want DELETE then ADD", logs[0].Action, logs[1].Action)
	}
	if !logs[0].Timestamp.Equal(testNow) {
		t.Errorf("AuditLog()[0].Timestamp = %v, want %v", logs[0].Timestamp, testNow)
	}
}

func TestAuditCap(t *testing.T) {
	w, _ := testWallet(t)
	for i := range MaxAuditEntries + 20 {
		w.AddTransaction(income(float64(i+1), "Tick"), true)
	}
	logs := w.AuditLog()
	if len(logs) != MaxAuditEntries {
		t.Fatalf("AuditLog() has %d entries, want %d", len(logs), MaxAuditEntries)
	}
	if want := "amount " + M(D(MaxAuditEntries+20), DefaultCurrency).String(); logs[0].Details != want {
		t.Errorf("AuditLog()[0].Details = %q, want %q", logs[0].Details, want)
	}
}

func TestNew_NilState(t *testing.T) {
	w := New(nil, WithClock(func() time.Time { return testNow }))
	if len(w.Pillars()) != 5 {
		t.Errorf("New(nil) has %d pillars, want 5", len(w.Pillars()))
	}
	if !w.State().CashBalance.IsZero() {
		t.Errorf("New(nil) balance = %v, want 0", w.State().CashBalance)
	}
}

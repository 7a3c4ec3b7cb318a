package wallet

import (
	"slices"
	"testing"

	"github.com/etnz/wallet/date"
)

func newLoan(w *Wallet, months int) Installment {
	return w.AddInstallment(Installment{
		Name:          "Phone",
		MonthlyAmount: D(500),
		TotalMonths:   months,
		StartDate:     date.MustParse("2024-01-10"),
		PillarID:      "1",
		PaymentDay:    10,
	})
}

func TestInstallment_Ladder(t *testing.T) {
	w, _ := testWallet(t)
	loan := newLoan(w, 3)

	want := []string{"2024-01", "2024-02", "2024-03"}
	if got := loan.Ladder(); !slices.Equal(got, want) {
		t.Errorf("Ladder() = %v, want %v", got, want)
	}
	if !loan.TotalAmount.Equal(D(1500)) {
		t.Errorf("TotalAmount = %v, want 1500", loan.TotalAmount)
	}
	if next, ok := loan.NextUnpaid(); !ok || next != "2024-01" {
		t.Errorf("NextUnpaid() = %q, %v, want 2024-01", next, ok)
	}
}

func TestWallet_PayInstallment(t *testing.T) {
	w, _ := testWallet(t)
	loan := newLoan(w, 3)

	if !w.PayInstallment(loan.ID, "2024-01") {
		t.Fatalf("PayInstallment() = false, want true")
	}
	checkBalance(t, w, -500)

	// paying the same month twice is a no-op.
	if w.PayInstallment(loan.ID, "2024-01") {
		t.Errorf("PayInstallment() twice = true, want false")
	}
	checkBalance(t, w, -500)

	got, _ := w.Installment(loan.ID)
	if got.RemainingMonths != 2 {
		t.Errorf("RemainingMonths = %d, want 2", got.RemainingMonths)
	}
	if got.LastPaymentDate == nil || !got.LastPaymentDate.Equal(testNow) {
		t.Errorf("LastPaymentDate = %v, want %v", got.LastPaymentDate, testNow)
	}

	tx := w.Transactions()[0]
	if tx.SourceType != FromInstallment || tx.SourceID != loan.ID || tx.SourceMonth != "2024-01" || !tx.IsAuto {
		t.Errorf("generated transaction = %+v, want an auto expense linked to 2024-01", tx)
	}
	if tx.Description != "Installment payment: Phone (January 2024)" {
		t.Errorf("Description = %q", tx.Description)
	}
	if next, _ := got.NextUnpaid(); next != "2024-02" {
		t.Errorf("NextUnpaid() = %q, want 2024-02", next)
	}
}

func TestWallet_InstallmentExhaustion(t *testing.T) {
	w, _ := testWallet(t)
	loan := newLoan(w, 3)

	var txIDs []string
	for _, m := range loan.Ladder() {
		if !w.PayInstallment(loan.ID, m) {
			t.Fatalf("PayInstallment(%q) = false, want true", m)
		}
		txIDs = append(txIDs, w.Transactions()[0].ID)
	}
	checkBalance(t, w, -1500)

	got, _ := w.Installment(loan.ID)
	if got.RemainingMonths != 0 {
		t.Errorf("RemainingMonths = %d, want 0", got.RemainingMonths)
	}
	if _, ok := got.NextUnpaid(); ok {
		t.Errorf("NextUnpaid() on a paid-off installment should report nothing")
	}
	if w.PayInstallment(loan.ID, "2024-04") {
		t.Errorf("PayInstallment() on a paid-off installment = true, want false")
	}

	// deleting the February payment reopens that month only.
	w.DeleteTransaction(txIDs[1])
	got, _ = w.Installment(loan.ID)
	if got.RemainingMonths != 1 {
		t.Errorf("RemainingMonths after delete = %d, want 1", got.RemainingMonths)
	}
	if slices.Contains(got.PaidMonths, "2024-02") {
		t.Errorf("PaidMonths = %v, want 2024-02 reopened", got.PaidMonths)
	}
	if next, _ := got.NextUnpaid(); next != "2024-02" {
		t.Errorf("NextUnpaid() = %q, want 2024-02", next)
	}
	checkBalance(t, w, -1000)
	if got.RemainingMonths != got.TotalMonths-len(got.PaidMonths) {
		t.Errorf("RemainingMonths = %d inconsistent with %d paid of %d", got.RemainingMonths, len(got.PaidMonths), got.TotalMonths)
	}
}

func TestWallet_DeleteInstallmentKeepsTransactions(t *testing.T) {
	w, _ := testWallet(t)
	loan := newLoan(w, 2)
	w.PayInstallment(loan.ID, "2024-01")

	if !w.DeleteInstallment(loan.ID) {
		t.Fatalf("DeleteInstallment() = false, want true")
	}
	if len(w.Transactions()) != 1 {
		t.Errorf("got %d transactions, want the payment to remain", len(w.Transactions()))
	}

	// deleting the orphan payment still restores the balance.
	w.DeleteTransaction(w.Transactions()[0].ID)
	checkBalance(t, w, 0)
}

func TestWallet_UpdateInstallment(t *testing.T) {
	w, _ := testWallet(t)
	loan := newLoan(w, 3)
	w.PayInstallment(loan.ID, "2024-01")

	got, _ := w.Installment(loan.ID)
	got.TotalMonths = 6
	if !w.UpdateInstallment(got) {
		t.Fatalf("UpdateInstallment() = false, want true")
	}
	got, _ = w.Installment(loan.ID)
	if got.RemainingMonths != 5 {
		t.Errorf("RemainingMonths = %d, want 5", got.RemainingMonths)
	}
	if !got.TotalAmount.Equal(D(3000)) {
		t.Errorf("TotalAmount = %v, want 3000", got.TotalAmount)
	}
}

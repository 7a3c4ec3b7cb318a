package wallet

import (
	"fmt"
	"slices"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

// Ladder returns the month keys the installment is due for, in order.
func (i Installment) Ladder() []string {
	return monthKeys(date.Months(date.MonthOf(i.StartDate), i.TotalMonths))
}

// NextUnpaid returns the earliest due month not yet paid.
func (i Installment) NextUnpaid() (string, bool) {
	if i.RemainingMonths <= 0 {
		return "", false
	}
	for _, key := range i.Ladder() {
		if !slices.Contains(i.PaidMonths, key) {
			return key, true
		}
	}
	return "", false
}

// Progress returns the ratio of paid months, between 0 and 1.
func (i Installment) Progress() decimal.Decimal {
	if i.TotalMonths <= 0 {
		return decimal.Zero
	}
	paid := decimal.NewFromInt(int64(i.TotalMonths - i.RemainingMonths))
	return paid.Div(decimal.NewFromInt(int64(i.TotalMonths)))
}

func (i *Installment) reopen(month string) {
	var removed bool
	i.PaidMonths, removed = removeKey(i.PaidMonths, month)
	if removed {
		i.RemainingMonths++
	}
}

func (w *Wallet) installment(id string) *Installment {
	i := slices.IndexFunc(w.state.Installments, func(x Installment) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	return &w.state.Installments[i]
}

// Installments returns the installments in insertion order.
func (w *Wallet) Installments() []Installment { return w.state.Installments }

// Installment returns the installment with the given id.
func (w *Wallet) Installment(id string) (Installment, bool) {
	if i := w.installment(id); i != nil {
		return *i, true
	}
	return Installment{}, false
}

// AddInstallment registers a new installment with nothing paid yet.
func (w *Wallet) AddInstallment(i Installment) Installment {
	i.ID = w.newID()
	if i.TotalMonths < 1 {
		i.TotalMonths = 1
	}
	i.PaidMonths = []string{}
	i.RemainingMonths = i.TotalMonths
	i.LastPaymentDate = nil
	i.TotalAmount = i.MonthlyAmount.Mul(decimal.NewFromInt(int64(i.TotalMonths)))
	w.state.Installments = append(w.state.Installments, i)
	w.record(ActionAdd, TargetInstallment, i.Name, "monthly "+w.money(i.MonthlyAmount))
	w.notify(Success, "Installment added", "%s was added.", i.Name)
	w.changed()
	return i
}

// UpdateInstallment replaces the installment with the same id. The remaining
// months are recomputed from the paid set.
func (w *Wallet) UpdateInstallment(i Installment) bool {
	cur := w.installment(i.ID)
	if cur == nil {
		return false
	}
	if i.PaidMonths == nil {
		i.PaidMonths = []string{}
	}
	i.PaidMonths = slices.Compact(slices.Sorted(slices.Values(i.PaidMonths)))
	i.RemainingMonths = max(i.TotalMonths-len(i.PaidMonths), 0)
	i.TotalAmount = i.MonthlyAmount.Mul(decimal.NewFromInt(int64(i.TotalMonths)))
	*cur = i
	w.record(ActionUpdate, TargetInstallment, i.Name, "monthly "+w.money(i.MonthlyAmount))
	w.notify(Info, "Installment updated", "%s was updated.", i.Name)
	w.changed()
	return true
}

// DeleteInstallment removes the installment. Transactions it generated stay.
func (w *Wallet) DeleteInstallment(id string) bool {
	idx := slices.IndexFunc(w.state.Installments, func(x Installment) bool { return x.ID == id })
	if idx < 0 {
		return false
	}
	i := w.state.Installments[idx]
	w.state.Installments = slices.Delete(w.state.Installments, idx, idx+1)
	w.record(ActionDelete, TargetInstallment, i.Name, "")
	w.notify(Warning, "Installment deleted", "%s was removed.", i.Name)
	w.changed()
	return true
}

// PayInstallment settles the given month of an installment and commits the
// matching expense. It is a no-op returning false when the installment does
// not exist, is fully paid, or the month is already paid.
func (w *Wallet) PayInstallment(id, month string) bool {
	i := w.installment(id)
	if i == nil || i.RemainingMonths <= 0 || slices.Contains(i.PaidMonths, month) {
		return false
	}
	now := w.now()
	i.RemainingMonths--
	i.LastPaymentDate = &now
	i.PaidMonths = append(i.PaidMonths, month)
	w.record(ActionPay, TargetInstallment, i.Name, fmt.Sprintf("%s for %s", w.money(i.MonthlyAmount), monthLabel(month)))
	w.commit(Transaction{
		Amount:        i.MonthlyAmount,
		Date:          now,
		Description:   fmt.Sprintf("Installment payment: %s (%s)", i.Name, monthLabel(month)),
		Type:          Expense,
		PillarID:      i.PillarID,
		SubCategoryID: i.SubCategoryID,
		IsAuto:        true,
		SourceID:      i.ID,
		SourceType:    FromInstallment,
		SourceMonth:   month,
	})
	w.notify(Success, "Installment paid", "%s paid for %s.", i.Name, monthLabel(month))
	w.changed()
	return true
}

func monthKeys(months []date.Month) []string {
	keys := make([]string, len(months))
	for i, m := range months {
		keys[i] = m.String()
	}
	return keys
}

// monthLabel renders a month key as "January 2024", or the key itself when
// it cannot be parsed.
func monthLabel(key string) string {
	m, err := date.ParseMonth(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", m.Month(), m.Year())
}

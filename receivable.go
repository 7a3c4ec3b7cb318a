package wallet

import (
	"fmt"
	"slices"
	"time"

	"github.com/etnz/wallet/date"
)

// Bounded reports whether the receivable has a fixed number of occurrences.
func (r Receivable) Bounded() bool { return r.TotalMonths != nil && r.RemainingMonths != nil }

// Settled reports whether nothing more can be collected: a bounded
// receivable with no remaining month, or a collected one-time receivable.
func (r Receivable) Settled() bool {
	if r.Bounded() {
		return *r.RemainingMonths <= 0
	}
	return !r.IsRecurring && r.IsCollectedThisMonth
}

// Ladder returns the month keys the receivable is expected for, as seen at
// now. Bounded receivables span TotalMonths from the start month, unbounded
// recurring ones run from the start month to the current month and a
// one-time receivable is expected in the current month.
func (r Receivable) Ladder(now time.Time) []string {
	current := date.ThisMonth(now)
	switch {
	case r.Bounded():
		return monthKeys(date.Months(date.MonthOf(r.StartDate), *r.TotalMonths))
	case r.IsRecurring:
		first := current
		if !r.StartDate.IsZero() {
			first = date.MonthOf(r.StartDate)
		}
		return monthKeys(date.MonthsBetween(first, current))
	default:
		return []string{current.String()}
	}
}

// NextUnpaid returns the earliest expected month not yet collected.
func (r Receivable) NextUnpaid(now time.Time) (string, bool) {
	if r.Settled() {
		return "", false
	}
	for _, key := range r.Ladder(now) {
		if !slices.Contains(r.PaidMonths, key) {
			return key, true
		}
	}
	return "", false
}

func (r *Receivable) reopen(month string) {
	r.IsCollectedThisMonth = false
	var removed bool
	r.PaidMonths, removed = removeKey(r.PaidMonths, month)
	if removed && r.RemainingMonths != nil {
		n := *r.RemainingMonths + 1
		r.RemainingMonths = &n
	}
}

func (w *Wallet) receivable(id string) *Receivable {
	i := slices.IndexFunc(w.state.Receivables, func(x Receivable) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	return &w.state.Receivables[i]
}

// Receivables returns the receivables in insertion order.
func (w *Wallet) Receivables() []Receivable { return w.state.Receivables }

// Receivable returns the receivable with the given id.
func (w *Wallet) Receivable(id string) (Receivable, bool) {
	if r := w.receivable(id); r != nil {
		return *r, true
	}
	return Receivable{}, false
}

// AddReceivable registers a new receivable with nothing collected yet.
// A bounded recurring receivable gets its remaining months and end date
// computed from TotalMonths.
func (w *Wallet) AddReceivable(r Receivable) Receivable {
	r.ID = w.newID()
	r.IsCollectedThisMonth = false
	r.PaidMonths = []string{}
	if r.StartDate.IsZero() {
		r.StartDate = date.Of(w.now())
	}
	if r.Kind == "" {
		r.Kind = Other
	}
	r.RemainingMonths, r.EndDate = nil, date.Date{}
	if !r.IsRecurring || r.TotalMonths == nil {
		r.TotalMonths = nil
	} else {
		total, remaining := *r.TotalMonths, *r.TotalMonths
		r.TotalMonths, r.RemainingMonths = &total, &remaining
		r.EndDate = r.StartDate.AddMonths(total - 1)
	}
	w.state.Receivables = append(w.state.Receivables, r)
	w.record(ActionAdd, TargetReceivable, r.Name, "amount "+w.money(r.Amount))
	w.notify(Success, "Receivable added", "%s was added.", r.Name)
	w.changed()
	return r
}

// UpdateReceivable replaces the receivable with the same id. For bounded
// receivables the remaining months and end date follow the new total.
func (w *Wallet) UpdateReceivable(r Receivable) bool {
	cur := w.receivable(r.ID)
	if cur == nil {
		return false
	}
	if r.PaidMonths == nil {
		r.PaidMonths = []string{}
	}
	r.PaidMonths = slices.Compact(slices.Sorted(slices.Values(r.PaidMonths)))
	if r.IsRecurring && r.TotalMonths != nil {
		total := *r.TotalMonths
		remaining := max(total-len(r.PaidMonths), 0)
		r.TotalMonths, r.RemainingMonths = &total, &remaining
		r.EndDate = r.StartDate.AddMonths(total - 1)
	} else {
		r.TotalMonths, r.RemainingMonths, r.EndDate = nil, nil, date.Date{}
	}
	*cur = r
	w.record(ActionUpdate, TargetReceivable, r.Name, "amount "+w.money(r.Amount))
	w.notify(Info, "Receivable updated", "%s was updated.", r.Name)
	w.changed()
	return true
}

// DeleteReceivable removes the receivable. Transactions it generated stay.
func (w *Wallet) DeleteReceivable(id string) bool {
	idx := slices.IndexFunc(w.state.Receivables, func(x Receivable) bool { return x.ID == id })
	if idx < 0 {
		return false
	}
	r := w.state.Receivables[idx]
	w.state.Receivables = slices.Delete(w.state.Receivables, idx, idx+1)
	w.record(ActionDelete, TargetReceivable, r.Name, "")
	w.notify(Warning, "Receivable deleted", "%s was removed.", r.Name)
	w.changed()
	return true
}

// CollectReceivable marks a month of the receivable as collected and commits
// the matching income. An empty month means the current month.
// It is a no-op returning false when the receivable does not exist, is
// settled, or the month is already collected.
func (w *Wallet) CollectReceivable(id, month string) bool {
	r := w.receivable(id)
	if r == nil || r.Settled() {
		return false
	}
	now := w.now()
	current := date.ThisMonth(now).String()
	key := month
	if key == "" {
		key = current
	}
	if slices.Contains(r.PaidMonths, key) {
		return false
	}
	r.PaidMonths = append(r.PaidMonths, key)
	if r.RemainingMonths != nil {
		n := *r.RemainingMonths - 1
		r.RemainingMonths = &n
	}
	if r.IsRecurring {
		r.IsCollectedThisMonth = slices.Contains(r.PaidMonths, current)
	} else {
		r.IsCollectedThisMonth = true
	}

	description := "Collection: " + r.Name
	if month != "" {
		description = fmt.Sprintf("Collection: %s (%s)", r.Name, monthLabel(month))
	}
	w.record(ActionCollect, TargetReceivable, r.Name, fmt.Sprintf("%s for %s", w.money(r.Amount), monthLabel(key)))
	w.commit(Transaction{
		Amount:      r.Amount,
		Date:        now,
		Description: description,
		Type:        Income,
		PillarID:    r.PillarID,
		IsAuto:      true,
		SourceID:    r.ID,
		SourceType:  FromReceivable,
		SourceMonth: key,
	})
	w.notify(Success, "Receivable collected", "%s collected for %s.", r.Name, monthLabel(key))
	w.changed()
	return true
}

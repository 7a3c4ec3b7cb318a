package wallet

import (
	"fmt"
	"slices"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PayoutDates returns the scheduled payout dates: every cycle after the
// start date, up to and including the end date.
func (c Certificate) PayoutDates() []date.Date {
	return date.Schedule(c.StartDate, c.PayoutCycle.Period(), c.EndDate)
}

// PayoutAmount returns the interest paid each cycle, rounded to cents.
func (c Certificate) PayoutAmount() decimal.Decimal {
	perYear := decimal.NewFromInt(int64(c.PayoutCycle.Period().PerYear()))
	return c.Amount.Mul(c.InterestRate).Div(hundred).Div(perYear).Round(2)
}

// NextPayout returns the earliest scheduled payout not yet received.
func (c Certificate) NextPayout() (date.Date, bool) {
	if c.Status == Redeemed {
		return date.Date{}, false
	}
	for _, d := range c.PayoutDates() {
		if !slices.Contains(c.PaidPayouts, d.String()) {
			return d, true
		}
	}
	return date.Date{}, false
}

func (c *Certificate) reopen(kind SourceKind, key string) {
	switch kind {
	case Payout:
		c.PaidPayouts, _ = removeKey(c.PaidPayouts, key)
	case Redemption:
		c.Status = Active
	}
}

func (w *Wallet) certificate(id string) *Certificate {
	i := slices.IndexFunc(w.state.Certificates, func(x Certificate) bool { return x.ID == id })
	if i < 0 {
		return nil
	}
	return &w.state.Certificates[i]
}

// Certificates returns the certificates in insertion order.
func (w *Wallet) Certificates() []Certificate { return w.state.Certificates }

// Certificate returns the certificate with the given id.
func (w *Wallet) Certificate(id string) (Certificate, bool) {
	if c := w.certificate(id); c != nil {
		return *c, true
	}
	return Certificate{}, false
}

// AddCertificate registers a new active certificate with no payout received.
func (w *Wallet) AddCertificate(c Certificate) Certificate {
	c.ID = w.newID()
	c.Status = Active
	c.PaidPayouts = []string{}
	c.LastPayoutDate = nil
	if c.PayoutCycle == "" {
		c.PayoutCycle = MonthlyPayout
	}
	w.state.Certificates = append(w.state.Certificates, c)
	w.record(ActionAdd, TargetCertificate, c.BankName, "amount "+w.money(c.Amount))
	w.notify(Success, "Certificate added", "%s certificate was added.", c.BankName)
	w.changed()
	return c
}

// UpdateCertificate replaces the certificate with the same id.
func (w *Wallet) UpdateCertificate(c Certificate) bool {
	cur := w.certificate(c.ID)
	if cur == nil {
		return false
	}
	if c.PaidPayouts == nil {
		c.PaidPayouts = []string{}
	}
	if c.Status == "" {
		c.Status = cur.Status
	}
	*cur = c
	w.record(ActionUpdate, TargetCertificate, c.BankName, "amount "+w.money(c.Amount))
	w.notify(Info, "Certificate updated", "%s certificate was updated.", c.BankName)
	w.changed()
	return true
}

// DeleteCertificate removes the certificate. Transactions it generated stay.
func (w *Wallet) DeleteCertificate(id string) bool {
	idx := slices.IndexFunc(w.state.Certificates, func(x Certificate) bool { return x.ID == id })
	if idx < 0 {
		return false
	}
	c := w.state.Certificates[idx]
	w.state.Certificates = slices.Delete(w.state.Certificates, idx, idx+1)
	w.record(ActionDelete, TargetCertificate, c.BankName, "")
	w.notify(Warning, "Certificate deleted", "%s certificate was removed.", c.BankName)
	w.changed()
	return true
}

// PayoutCertificate records the interest payout keyed by its scheduled date
// and commits the matching income. It is a no-op returning false when the
// certificate does not exist, is redeemed, or the payout was already received.
func (w *Wallet) PayoutCertificate(id string, amount decimal.Decimal, key string) bool {
	c := w.certificate(id)
	if c == nil || c.Status == Redeemed || slices.Contains(c.PaidPayouts, key) {
		return false
	}
	now := w.now()
	w.record(ActionPayout, TargetCertificate, c.BankName, fmt.Sprintf("payout %s for %s", w.money(amount), key))
	c.PaidPayouts = append(c.PaidPayouts, key)
	c.LastPayoutDate = &now
	w.commit(Transaction{
		Amount:      amount,
		Date:        now,
		Description: fmt.Sprintf("Certificate payout: %s (%s)", c.BankName, key),
		Type:        Income,
		PillarID:    c.PillarID,
		IsAuto:      true,
		SourceID:    c.ID,
		SourceType:  FromCertificate,
		SourceMonth: key,
		SourceKind:  Payout,
	})
	w.notify(Success, "Payout received", "%s payout of %s recorded.", c.BankName, w.money(amount))
	w.changed()
	return true
}

// RedeemCertificate marks the certificate redeemed and commits the returned
// principal as income. It is a no-op returning false when the certificate
// does not exist or is already redeemed.
func (w *Wallet) RedeemCertificate(id string, amount decimal.Decimal) bool {
	c := w.certificate(id)
	if c == nil || c.Status == Redeemed {
		return false
	}
	w.record(ActionRedeem, TargetCertificate, c.BankName, "redeemed "+w.money(amount))
	c.Status = Redeemed
	w.commit(Transaction{
		Amount:      amount,
		Date:        w.now(),
		Description: "Certificate redemption: " + c.BankName,
		Type:        Income,
		PillarID:    c.PillarID,
		IsAuto:      true,
		SourceID:    c.ID,
		SourceType:  FromCertificate,
		SourceKind:  Redemption,
	})
	w.notify(Success, "Certificate redeemed", "%s certificate redeemed for %s.", c.BankName, w.money(amount))
	w.changed()
	return true
}

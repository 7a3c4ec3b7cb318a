package wallet

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ResetOptions selects which parts of the state a reset clears.
type ResetOptions struct {
	Transactions bool // clears transactions and the cash balance
	Installments bool
	Receivables  bool
	Certificates bool
	Metals       bool // keeps the metals with zero weight
	Settings     bool // restores default categories, password and investment settings
}

// All reports whether every part is selected.
func (o ResetOptions) All() bool {
	return o.Transactions && o.Installments && o.Receivables && o.Certificates && o.Metals && o.Settings
}

func (o ResetOptions) String() string {
	var parts []string
	for _, p := range []struct {
		on   bool
		name string
	}{
		{o.Transactions, "transactions"},
		{o.Installments, "installments"},
		{o.Receivables, "receivables"},
		{o.Certificates, "certificates"},
		{o.Metals, "metals"},
		{o.Settings, "settings"},
	} {
		if p.on {
			parts = append(parts, p.name)
		}
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// ResetSelected clears the selected parts of the state. The audit trail is replaced
// by a single RESET entry.
func (w *Wallet) ResetSelected(o ResetOptions) {
	s := w.state
	if o.Transactions {
		s.Transactions = []Transaction{}
		s.CashBalance = decimal.Zero
	}
	if o.Installments {
		s.Installments = []Installment{}
	}
	if o.Receivables {
		s.Receivables = []Receivable{}
	}
	if o.Certificates {
		s.Certificates = []Certificate{}
	}
	if o.Metals {
		for i := range s.Metals {
			s.Metals[i].Weight = decimal.Zero
		}
	}
	if o.Settings {
		s.Pillars = DefaultPillars()
		s.SubCategories = DefaultSubCategories()
		s.Password = ""
		s.InvestmentSettings = DefaultInvestmentSettings()
	}
	s.AuditLogs = []AuditEntry{}
	w.record(ActionReset, TargetSystem, "wallet", "cleared "+o.String())
	w.notify(Warning, "Wallet reset", "Cleared %s.", o.String())
	w.changed()
}

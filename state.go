package wallet

import (
	"github.com/shopspring/decimal"
)

// State is the whole persisted aggregate: the cash ledger, the obligations
// that feed it, the categories and holdings used for reporting, and the audit
// trail.
//
// Transactions and AuditLogs are kept newest first.
type State struct {
	CashBalance        decimal.Decimal    `json:"cashBalance"`
	Transactions       []Transaction      `json:"transactions"`
	Pillars            []Pillar           `json:"pillars"`
	SubCategories      []SubCategory      `json:"subCategories"`
	Installments       []Installment      `json:"installments"`
	Receivables        []Receivable       `json:"receivables"`
	Certificates       []Certificate      `json:"certificates"`
	Metals             []Metal            `json:"metals"`
	AuditLogs          []AuditEntry       `json:"auditLogs"`
	InvestmentSettings InvestmentSettings `json:"investmentSettings"`
	Password           string             `json:"password"`
}

// DefaultPillars returns the five built-in pillars.
func DefaultPillars() []Pillar {
	return []Pillar{
		{ID: "1", Name: "Fixed bills", Icon: "Home", Color: "bg-blue-500", Budget: decimal.NewFromInt(5000)},
		{ID: "2", Name: "Living", Icon: "ShoppingCart", Color: "bg-emerald-500", Budget: decimal.NewFromInt(4000)},
		{ID: "3", Name: "Transport", Icon: "Car", Color: "bg-amber-500", Budget: decimal.NewFromInt(2000)},
		{ID: "4", Name: "Leisure", Icon: "Smile", Color: "bg-purple-500", Budget: decimal.NewFromInt(1500)},
		{ID: "5", Name: "Savings", Icon: "PiggyBank", Color: "bg-rose-500", Budget: decimal.NewFromInt(3000)},
	}
}

// DefaultSubCategories returns the built-in sub-categories of the default pillars.
func DefaultSubCategories() []SubCategory {
	return []SubCategory{
		{ID: "s1", PillarID: "1", Name: "Electricity"},
		{ID: "s2", PillarID: "1", Name: "Internet"},
		{ID: "s3", PillarID: "2", Name: "Groceries"},
		{ID: "s4", PillarID: "2", Name: "Eating out"},
		{ID: "s5", PillarID: "3", Name: "Fuel"},
		{ID: "s6", PillarID: "4", Name: "Outings"},
	}
}

// DefaultMetals returns the tracked metals with no holdings.
func DefaultMetals() []Metal {
	return []Metal{
		{ID: Gold, Name: "Gold", Weight: decimal.Zero, Karat: 21, CurrentPricePerGram: decimal.NewFromInt(3500)},
		{ID: Silver, Name: "Silver", Weight: decimal.Zero, CurrentPricePerGram: decimal.NewFromInt(45)},
	}
}

// DefaultInvestmentSettings returns the factory investment settings.
func DefaultInvestmentSettings() InvestmentSettings {
	return InvestmentSettings{Enabled: true, ThresholdPercentage: decimal.NewFromInt(50), MinDays: 30}
}

// DefaultState returns an empty wallet with the built-in categories.
func DefaultState() *State {
	return &State{
		CashBalance:        decimal.Zero,
		Transactions:       []Transaction{},
		Pillars:            DefaultPillars(),
		SubCategories:      DefaultSubCategories(),
		Installments:       []Installment{},
		Receivables:        []Receivable{},
		Certificates:       []Certificate{},
		Metals:             DefaultMetals(),
		AuditLogs:          []AuditEntry{},
		InvestmentSettings: DefaultInvestmentSettings(),
	}
}

// normalize replaces nil collections by empty ones and upgrades legacy records.
func (s *State) normalize() {
	if s.Transactions == nil {
		s.Transactions = []Transaction{}
	}
	if s.Pillars == nil {
		s.Pillars = []Pillar{}
	}
	if s.SubCategories == nil {
		s.SubCategories = []SubCategory{}
	}
	if s.Installments == nil {
		s.Installments = []Installment{}
	}
	if s.Receivables == nil {
		s.Receivables = []Receivable{}
	}
	if s.Certificates == nil {
		s.Certificates = []Certificate{}
	}
	if s.Metals == nil {
		s.Metals = []Metal{}
	}
	if s.AuditLogs == nil {
		s.AuditLogs = []AuditEntry{}
	}
	for i := range s.Transactions {
		tx := &s.Transactions[i]
		// Older snapshots told payouts from redemptions by the description.
		if tx.SourceType == FromCertificate && tx.SourceKind == "" {
			if tx.SourceMonth != "" {
				tx.SourceKind = Payout
			} else {
				tx.SourceKind = Redemption
			}
		}
	}
	for i := range s.Installments {
		if s.Installments[i].PaidMonths == nil {
			s.Installments[i].PaidMonths = []string{}
		}
	}
	for i := range s.Receivables {
		if s.Receivables[i].PaidMonths == nil {
			s.Receivables[i].PaidMonths = []string{}
		}
	}
	for i := range s.Certificates {
		if s.Certificates[i].PaidPayouts == nil {
			s.Certificates[i].PaidPayouts = []string{}
		}
	}
}

// ReplayBalance folds every transaction effect. On a consistent state it
// equals CashBalance.
func (s *State) ReplayBalance() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range s.Transactions {
		total = total.Add(tx.Effect())
	}
	return total
}

// MetalsValue returns the value of all metal holdings.
func (s *State) MetalsValue() decimal.Decimal {
	total := decimal.Zero
	for _, m := range s.Metals {
		total = total.Add(m.Value())
	}
	return total
}

// CertificatesValue returns the principal of all active certificates.
func (s *State) CertificatesValue() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Certificates {
		if c.Status == Active {
			total = total.Add(c.Amount)
		}
	}
	return total
}

// TotalWealth is cash plus metals plus active certificates.
func (s *State) TotalWealth() decimal.Decimal {
	return s.CashBalance.Add(s.MetalsValue()).Add(s.CertificatesValue())
}

// MonthlyInstallments returns the monthly amount still due on open installments.
func (s *State) MonthlyInstallments() decimal.Decimal {
	total := decimal.Zero
	for _, i := range s.Installments {
		if i.RemainingMonths > 0 {
			total = total.Add(i.MonthlyAmount)
		}
	}
	return total
}

// OutstandingReceivables returns the amount still expected from receivables
// that are not settled for the current period.
func (s *State) OutstandingReceivables() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Receivables {
		if r.Bounded() {
			if *r.RemainingMonths > 0 {
				total = total.Add(r.Amount.Mul(decimal.NewFromInt(int64(*r.RemainingMonths))))
			}
			continue
		}
		if !r.IsCollectedThisMonth {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// Pillar returns the pillar with the given id.
func (s *State) Pillar(id string) (Pillar, bool) {
	for _, p := range s.Pillars {
		if p.ID == id {
			return p, true
		}
	}
	return Pillar{}, false
}

// PillarSpending returns the total of the expenses in txs recorded against a pillar.
func PillarSpending(txs []Transaction, pillarID string) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == Expense && tx.PillarID == pillarID {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

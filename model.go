package wallet

import (
	"time"

	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
)

// TxType tells whether a transaction adds to or takes from the cash balance.
type TxType string

const (
	Income  TxType = "INCOME"
	Expense TxType = "EXPENSE"
)

// SourceType identifies the kind of obligation that generated a transaction.
type SourceType string

const (
	NoSource        SourceType = ""
	FromReceivable  SourceType = "RECEIVABLE"
	FromInstallment SourceType = "INSTALLMENT"
	FromCertificate SourceType = "CERTIFICATE"
)

// SourceKind discriminates the certificate events a transaction settles.
type SourceKind string

const (
	Payout     SourceKind = "PAYOUT"
	Redemption SourceKind = "REDEMPTION"
)

// Transaction is a single cash movement.
//
// Amount is always positive, its sign on the balance comes from Type.
// Auto-generated transactions carry a link back to the obligation and period
// they settle: SourceMonth is a "YYYY-MM" month key for monthly obligations
// and a "YYYY-MM-DD" payout date for certificates.
type Transaction struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description" validate:"required"`
	Type          TxType          `json:"type" validate:"oneof=INCOME EXPENSE"`
	PillarID      string          `json:"pillarId" validate:"required"`
	SubCategoryID string          `json:"subCategoryId,omitempty"`
	IsAuto        bool            `json:"isAuto"`
	SourceID      string          `json:"sourceId,omitempty"`
	SourceType    SourceType      `json:"sourceType,omitempty"`
	SourceMonth   string          `json:"sourceMonth,omitempty"`
	SourceKind    SourceKind      `json:"sourceKind,omitempty"`
}

// Effect returns the signed contribution of the transaction to the cash balance.
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == Income {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Installment is a fixed-schedule debt paid every month.
type Installment struct {
	ID              string          `json:"id"`
	Name            string          `json:"name" validate:"required"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	MonthlyAmount   decimal.Decimal `json:"monthlyAmount" validate:"gt=0"`
	RemainingMonths int             `json:"remainingMonths"`
	TotalMonths     int             `json:"totalMonths" validate:"min=1"`
	StartDate       date.Date       `json:"startDate"`
	PillarID        string          `json:"pillarId" validate:"required"`
	SubCategoryID   string          `json:"subCategoryId,omitempty"`
	PaymentDay      int             `json:"paymentDay" validate:"min=1,max=31"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate,omitempty"`
	PaidMonths      []string        `json:"paidMonths"`
}

// ReceivableKind is a free classification of receivables.
type ReceivableKind string

const (
	Rent  ReceivableKind = "RENT"
	Other ReceivableKind = "OTHER"
)

// Receivable is money expected in, once or every month.
//
// A nil TotalMonths means an unbounded recurrence. IsCollectedThisMonth is only
// consulted for one-time and unbounded recurring receivables.
type Receivable struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name" validate:"required"`
	Amount               decimal.Decimal `json:"amount" validate:"gt=0"`
	DueDay               int             `json:"dueDay" validate:"min=1,max=31"`
	Kind                 ReceivableKind  `json:"type" validate:"omitempty,oneof=RENT OTHER"`
	IsCollectedThisMonth bool            `json:"isCollectedThisMonth"`
	PillarID             string          `json:"pillarId" validate:"required"`
	IsRecurring          bool            `json:"isRecurring"`
	StartDate            date.Date       `json:"startDate"`
	TotalMonths          *int            `json:"totalMonths,omitempty" validate:"omitempty,min=1"`
	RemainingMonths      *int            `json:"remainingMonths,omitempty"`
	EndDate              date.Date       `json:"endDate"`
	PaidMonths           []string        `json:"paidMonths"`
}

// PayoutCycle is how often a certificate pays its interest.
type PayoutCycle string

const (
	MonthlyPayout      PayoutCycle = "MONTHLY"
	QuarterlyPayout    PayoutCycle = "QUARTERLY"
	SemiAnnuallyPayout PayoutCycle = "SEMI_ANNUALLY"
	AnnuallyPayout     PayoutCycle = "ANNUALLY"
)

// Period returns the cycle length.
func (c PayoutCycle) Period() date.Period {
	switch c {
	case QuarterlyPayout:
		return date.Quarterly
	case SemiAnnuallyPayout:
		return date.SemiAnnually
	case AnnuallyPayout:
		return date.Yearly
	default:
		return date.Monthly
	}
}

// CertificateStatus is ACTIVE until the certificate is redeemed.
type CertificateStatus string

const (
	Active   CertificateStatus = "ACTIVE"
	Redeemed CertificateStatus = "REDEEMED"
)

// Certificate is a bank certificate earning periodic interest on a principal.
type Certificate struct {
	ID             string            `json:"id"`
	BankName       string            `json:"bankName" validate:"required"`
	Amount         decimal.Decimal   `json:"amount" validate:"gt=0"`
	InterestRate   decimal.Decimal   `json:"interestRate" validate:"gte=0"`
	StartDate      date.Date         `json:"startDate"`
	EndDate        date.Date         `json:"endDate"`
	PayoutCycle    PayoutCycle       `json:"payoutCycle" validate:"oneof=MONTHLY QUARTERLY SEMI_ANNUALLY ANNUALLY"`
	Status         CertificateStatus `json:"status"`
	LastPayoutDate *time.Time        `json:"lastPayoutDate,omitempty"`
	PillarID       string            `json:"pillarId" validate:"required"`
	PaidPayouts    []string          `json:"paidPayouts"`
}

// Pillar is a top-level spending or income category with a budget.
type Pillar struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Icon   string          `json:"icon"`
	Color  string          `json:"color"`
	Budget decimal.Decimal `json:"budget"`
}

// SubCategory refines exactly one pillar.
type SubCategory struct {
	ID       string `json:"id"`
	PillarID string `json:"pillarId"`
	Name     string `json:"name"`
}

// MetalID identifies a tracked precious metal.
type MetalID string

const (
	Gold   MetalID = "GOLD"
	Silver MetalID = "SILVER"
)

// Metal is a precious metal holding valued at a price per gram.
type Metal struct {
	ID                  MetalID         `json:"id"`
	Name                string          `json:"name"`
	Weight              decimal.Decimal `json:"weight"`
	Karat               int             `json:"karat,omitempty"`
	CurrentPricePerGram decimal.Decimal `json:"currentPricePerGram"`
}

// Value returns weight × price.
func (m Metal) Value() decimal.Decimal { return m.Weight.Mul(m.CurrentPricePerGram) }

// InvestmentSettings tunes the investment suggestions.
type InvestmentSettings struct {
	Enabled             bool            `json:"enabled"`
	ThresholdPercentage decimal.Decimal `json:"thresholdPercentage"`
	MinDays             int             `json:"minDays"`
}

package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// outline is the structure of a rendered markdown document.
type outline struct {
	headings []int // levels, in document order
	tables   int
	rows     int // body rows of all tables, headers excluded
}

// parse checks that src is valid markdown and returns its outline.
func parse(t *testing.T, src string) outline {
	t.Helper()
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	doc := md.Parser().Parse(text.NewReader([]byte(src)))

	var o outline
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			o.headings = append(o.headings, n.Level)
		case *east.Table:
			o.tables++
		case *east.TableRow:
			o.rows++
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return o
}

func sample(t *testing.T) *wallet.Wallet {
	t.Helper()
	w := wallet.New(nil, wallet.WithClock(func() time.Time { return now }))
	w.AddTransaction(wallet.Transaction{Amount: decimal.NewFromInt(200), Description: "Groceries", Type: wallet.Expense, PillarID: "2", SubCategoryID: "s3"}, true)
	w.AddTransaction(wallet.Transaction{Amount: decimal.NewFromInt(1000), Description: "Salary", Type: wallet.Income, PillarID: "5"}, true)
	loan := w.AddInstallment(wallet.Installment{Name: "Phone", MonthlyAmount: decimal.NewFromInt(500), TotalMonths: 3, StartDate: date.MustParse("2024-02-01"), PillarID: "1", PaymentDay: 1})
	w.PayInstallment(loan.ID, "2024-02")
	total := 6
	w.AddReceivable(wallet.Receivable{Name: "Loan to Sam", Amount: decimal.NewFromInt(100), IsRecurring: true, TotalMonths: &total, StartDate: date.MustParse("2024-01-01"), PillarID: "5"})
	w.AddCertificate(wallet.Certificate{BankName: "NBE", Amount: decimal.NewFromInt(10000), InterestRate: decimal.NewFromInt(24), StartDate: date.MustParse("2024-01-01"), EndDate: date.MustParse("2025-01-01"), PillarID: "5"})
	return w
}

func TestSummaryMarkdown(t *testing.T) {
	w := sample(t)
	out := SummaryMarkdown(w.State(), "EGP", now)

	o := parse(t, out)
	assert.Equal(t, []int{1, 2, 2}, o.headings)
	assert.Equal(t, 2, o.tables)
	assert.Contains(t, out, "Wallet on 2024-03-15")
	assert.Contains(t, out, "Pay Phone for 2024-03")
	assert.Contains(t, out, "Collect Loan to Sam for 2024-01")
	assert.Contains(t, out, "Payout NBE on 2024-02-01")
	assert.NotContains(t, out, "Warning")
}

func TestTransactionsMarkdown(t *testing.T) {
	w := sample(t)
	out := TransactionsMarkdown(w.Transactions(), w.State(), "EGP")

	o := parse(t, out)
	assert.Equal(t, 1, o.tables)
	// three transactions and the net line.
	assert.Equal(t, 4, o.rows)
	assert.Contains(t, out, "Living / Groceries")
	assert.Contains(t, out, "installment 2024-02")

	empty := TransactionsMarkdown(nil, w.State(), "EGP")
	assert.Zero(t, parse(t, empty).tables)
}

func TestObligationsMarkdown(t *testing.T) {
	w := sample(t)
	testCases := []struct {
		name string
		out  string
		want []string
	}{
		{"installments", InstallmentsMarkdown(w.Installments(), "EGP"), []string{"Phone", "1/3", "33%", "2024-03"}},
		{"receivables", ReceivablesMarkdown(w.Receivables(), now, "EGP"), []string{"Loan to Sam", "0/6 months, until 2024-06-01", "2024-01"}},
		{"certificates", CertificatesMarkdown(w.Certificates(), "EGP"), []string{"NBE", "24%", "monthly", "2024-02-01"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := parse(t, tc.out)
			assert.Equal(t, 1, o.tables)
			assert.Equal(t, 1, o.rows)
			for _, s := range tc.want {
				assert.Contains(t, tc.out, s)
			}
		})
	}
}

func TestBudgetMarkdown(t *testing.T) {
	w := sample(t)
	out := BudgetMarkdown(w.State(), date.NewMonth(2024, time.March), "EGP")

	o := parse(t, out)
	assert.Equal(t, 1, o.tables)
	assert.Equal(t, 5, o.rows)
	assert.Contains(t, out, "Budget for March 2024")
}

func TestAuditMarkdown(t *testing.T) {
	w := sample(t)
	out := AuditMarkdown(w.AuditLog(), 3)

	o := parse(t, out)
	assert.Equal(t, 3, o.rows)
	first := strings.Index(out, "ADD")
	assert.True(t, first > 0, "newest entry should be listed")

	assert.Contains(t, AuditMarkdown(nil, 0), "Nothing recorded yet.")
}

func TestTransaction(t *testing.T) {
	tx := wallet.Transaction{Amount: decimal.NewFromInt(200), Description: "Groceries", Type: wallet.Expense, Date: now}
	got := Transaction(tx, "EGP")
	assert.True(t, strings.HasPrefix(got, "2024-03-15 Groceries -"), "Transaction() = %q", got)
}

func TestSettingsMarkdown(t *testing.T) {
	w := sample(t)
	w.UpdateMetal(wallet.Gold, decimal.NewFromInt(10), decimal.NewFromInt(3500))
	out := SettingsMarkdown(w.State(), "EGP")

	o := parse(t, out)
	assert.Equal(t, []int{1, 2, 2, 2}, o.headings)
	assert.Equal(t, 2, o.tables)
	assert.Equal(t, 7, o.rows)
	assert.Contains(t, out, "Groceries (s3)")
	assert.NotContains(t, out, "password protected")

	w.UpdatePassword("1234")
	assert.Contains(t, SettingsMarkdown(w.State(), "EGP"), "password protected")
}

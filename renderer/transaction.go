package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a one line string.
func Transaction(tx wallet.Transaction, cur string) string {
	return fmt.Sprintf("%s %s %s", date.Of(tx.Date), tx.Description, signed(tx, cur))
}

func signed(tx wallet.Transaction, cur string) string {
	return wallet.M(tx.Effect(), cur).SignedString()
}

// TransactionsMarkdown renders the transactions as a table, in the given order.
func TransactionsMarkdown(txs []wallet.Transaction, s *wallet.State, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	subs := make(map[string]string, len(s.SubCategories))
	for _, sc := range s.SubCategories {
		subs[sc.ID] = sc.Name
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Date", "Description", "Category", "Amount", "Source", "ID"},
	}
	total := wallet.M(0, cur)
	for _, tx := range txs {
		category := tx.PillarID
		if p, ok := s.Pillar(tx.PillarID); ok {
			category = p.Name
		}
		if name, ok := subs[tx.SubCategoryID]; ok {
			category += " / " + name
		}
		source := ""
		if tx.IsAuto {
			source = strings.ToLower(string(tx.SourceType))
			if tx.SourceMonth != "" {
				source += " " + tx.SourceMonth
			}
		}
		table.Rows = append(table.Rows, []string{
			date.Of(tx.Date).String(),
			tx.Description,
			category,
			signed(tx, cur),
			source,
			tx.ID,
		})
		total = total.Add(wallet.M(tx.Effect(), cur))
	}
	table.Rows = append(table.Rows, []string{"", md.Bold("Net"), "", md.Bold(total.SignedString()), "", ""})
	doc.Table(table)
	return doc.String()
}

// BudgetMarkdown renders the spending of each pillar against its budget over
// the transactions of a month.
func BudgetMarkdown(s *wallet.State, month date.Month, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Budget for %s %d", month.Month(), month.Year()))

	within := date.MonthRange(month)
	var txs []wallet.Transaction
	for _, tx := range s.Transactions {
		if within.Contains(date.Of(tx.Date)) {
			txs = append(txs, tx)
		}
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Pillar", "Budget", "Spent", "Left"},
	}
	for _, p := range s.Pillars {
		spent := wallet.PillarSpending(txs, p.ID)
		left := wallet.M(p.Budget.Sub(spent), cur)
		leftText := left.String()
		if left.IsNegative() {
			leftText = md.Bold(leftText)
		}
		table.Rows = append(table.Rows, []string{p.Name, wallet.M(p.Budget, cur).String(), wallet.M(spent, cur).String(), leftText})
	}
	doc.Table(table)
	return doc.String()
}

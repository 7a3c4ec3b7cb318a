package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the wealth overview and what is due this month.
func SummaryMarkdown(s *wallet.State, cur string, now time.Time) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Wallet on %s", date.Of(now)))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Wealth"), md.Bold(wallet.M(s.TotalWealth(), cur).String())},
		Rows: [][]string{
			{"Cash", wallet.M(s.CashBalance, cur).String()},
			{"Metals", wallet.M(s.MetalsValue(), cur).String()},
			{"Certificates", wallet.M(s.CertificatesValue(), cur).String()},
		},
	})

	doc.H2("Obligations")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Kind", "Amount"},
		Rows: [][]string{
			{"Monthly installments", wallet.M(s.MonthlyInstallments(), cur).String()},
			{"Outstanding receivables", wallet.M(s.OutstandingReceivables(), cur).String()},
		},
	})

	if due := dueItems(s, now, cur); len(due) > 0 {
		doc.H2("Due")
		doc.BulletList(due...)
	}

	if !s.CashBalance.Equal(s.ReplayBalance()) {
		doc.PlainText(md.Bold(fmt.Sprintf("Warning: the cash balance %s does not match the transactions (%s).",
			wallet.M(s.CashBalance, cur), wallet.M(s.ReplayBalance(), cur))))
	}
	return doc.String()
}

// dueItems lists the unpaid periods of the obligations up to the current month.
func dueItems(s *wallet.State, now time.Time, cur string) []string {
	current := date.ThisMonth(now).String()
	today := date.Of(now)
	var items []string
	for _, i := range s.Installments {
		if next, ok := i.NextUnpaid(); ok && next <= current {
			items = append(items, fmt.Sprintf("Pay %s for %s: %s", i.Name, next, wallet.M(i.MonthlyAmount, cur)))
		}
	}
	for _, r := range s.Receivables {
		if next, ok := r.NextUnpaid(now); ok && next <= current {
			items = append(items, fmt.Sprintf("Collect %s for %s: %s", r.Name, next, wallet.M(r.Amount, cur)))
		}
	}
	for _, c := range s.Certificates {
		if next, ok := c.NextPayout(); ok && !next.After(today) {
			items = append(items, fmt.Sprintf("Payout %s on %s: %s", c.BankName, next, wallet.M(c.PayoutAmount(), cur)))
		}
	}
	return items
}

package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/wallet"
	md "github.com/nao1215/markdown"
)

// InstallmentsMarkdown renders the installments and their progress.
func InstallmentsMarkdown(list []wallet.Installment, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Installments")
	if len(list) == 0 {
		doc.PlainText("No installments.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Name", "Monthly", "Paid", "Progress", "Next", "ID"},
	}
	for _, i := range list {
		next, ok := i.NextUnpaid()
		if !ok {
			next = "paid off"
		}
		table.Rows = append(table.Rows, []string{
			i.Name,
			wallet.M(i.MonthlyAmount, cur).String(),
			fmt.Sprintf("%d/%d", i.TotalMonths-i.RemainingMonths, i.TotalMonths),
			i.Progress().Shift(2).StringFixed(0) + "%",
			next,
			i.ID,
		})
	}
	doc.Table(table)
	return doc.String()
}

// ReceivablesMarkdown renders the receivables as seen at now.
func ReceivablesMarkdown(list []wallet.Receivable, now time.Time, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Receivables")
	if len(list) == 0 {
		doc.PlainText("No receivables.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Name", "Kind", "Amount", "Schedule", "Next", "ID"},
	}
	for _, r := range list {
		schedule := "once"
		switch {
		case r.Bounded():
			schedule = fmt.Sprintf("%d/%d months, until %s", *r.TotalMonths-*r.RemainingMonths, *r.TotalMonths, r.EndDate)
		case r.IsRecurring:
			schedule = "monthly"
		}
		next, ok := r.NextUnpaid(now)
		if !ok {
			next = "settled"
		}
		table.Rows = append(table.Rows, []string{
			r.Name,
			strings.ToLower(string(r.Kind)),
			wallet.M(r.Amount, cur).String(),
			schedule,
			next,
			r.ID,
		})
	}
	doc.Table(table)
	return doc.String()
}

// CertificatesMarkdown renders the certificates and their next payout.
func CertificatesMarkdown(list []wallet.Certificate, cur string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Certificates")
	if len(list) == 0 {
		doc.PlainText("No certificates.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Bank", "Principal", "Rate", "Cycle", "Payout", "Next", "ID"},
	}
	for _, c := range list {
		next := string(c.Status)
		if d, ok := c.NextPayout(); ok {
			next = d.String()
		} else if c.Status == wallet.Active {
			next = "matured"
		}
		table.Rows = append(table.Rows, []string{
			c.BankName,
			wallet.M(c.Amount, cur).String(),
			c.InterestRate.String() + "%",
			strings.ToLower(string(c.PayoutCycle)),
			wallet.M(c.PayoutAmount(), cur).String(),
			next,
			c.ID,
		})
	}
	doc.Table(table)
	return doc.String()
}

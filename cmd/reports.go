package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the total wealth and what is due" }
func (*summaryCmd) Usage() string {
	return `wlt summary

  Displays the cash balance, metals and certificates making the total
  wealth, the monthly obligations, and every period due up to this month.
`
}

func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet
	printMarkdown(renderer.SummaryMarkdown(w.State(), w.Currency(), w.Now()))
	return a.close(ctx)
}

type reportCmd struct {
	month string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "compare the spending of a month with the budgets" }
func (*reportCmd) Usage() string {
	return `wlt report [-m <month>]

  Displays, for each pillar, the budget, the amount spent during the month
  and what is left.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month as YYYY-MM, the current month by default.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	month, err := parseMonth(c.month)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BudgetMarkdown(a.wallet.State(), month, a.wallet.Currency()))
	return a.close(ctx)
}

type logCmd struct {
	limit int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the audit log, newest first" }
func (*logCmd) Usage() string {
	return `wlt log [-n <entries>]

  Displays the audit log of every change made to the wallet. Only the last
  ` + fmt.Sprint(wallet.MaxAuditEntries) + ` entries are kept.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of entries to display, 0 for all.")
}

func (c *logCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AuditMarkdown(a.wallet.AuditLog(), c.limit))
	return a.close(ctx)
}

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "verify the cash balance against the transactions" }
func (*checkCmd) Usage() string {
	return `wlt check

  Verifies that the cash balance equals the sum of the transactions. Exits
  with a failure when they differ.
`
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	s := a.wallet.State()
	cur := a.wallet.Currency()
	if replay := s.ReplayBalance(); !replay.Equal(s.CashBalance) {
		fmt.Fprintf(stderr, "Error: the balance is %s but the transactions add up to %s.\n", wallet.M(s.CashBalance, cur), wallet.M(replay, cur))
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Balance %s matches %d transactions.\n", wallet.M(s.CashBalance, cur), len(s.Transactions))
	return a.close(ctx)
}

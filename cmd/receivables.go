package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type addReceivableCmd struct {
	amount    string
	day       int
	kind      string
	pillar    string
	recurring bool
	months    int
	start     string
}

func (*addReceivableCmd) Name() string     { return "add-receivable" }
func (*addReceivableCmd) Synopsis() string { return "register money expected in" }
func (*addReceivableCmd) Usage() string {
	return `wlt add-receivable -amount <amount> -pillar <pillar> [-day <due day>] [-type rent|other] [-recurring [-months <n>]] [-start <day>] <name>

  Registers a receivable. A one-time receivable is collected once. A
  recurring receivable is collected every month, for n months when -months
  is given and without end otherwise.
`
}

func (c *addReceivableCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount collected each time.")
	f.IntVar(&c.day, "day", 1, "Day of the month the amount is due.")
	f.StringVar(&c.kind, "type", "other", "Kind of receivable: rent or other.")
	f.StringVar(&c.pillar, "pillar", "", "Pillar id or name.")
	f.BoolVar(&c.recurring, "recurring", false, "Collected every month.")
	f.IntVar(&c.months, "months", 0, "Number of months of a recurring receivable, unbounded when 0.")
	f.StringVar(&c.start, "start", "", "First day of the schedule, today by default.")
}

func (c *addReceivableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	r, err := c.receivable(w, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := w.Validate(r); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	r = w.AddReceivable(r)
	printMarkdown(renderer.ReceivablesMarkdown([]wallet.Receivable{r}, w.Now(), w.Currency()))
	return a.close(ctx)
}

func (c *addReceivableCmd) receivable(w *wallet.Wallet, name string) (wallet.Receivable, error) {
	amount, err := parseAmount(c.amount)
	if err != nil {
		return wallet.Receivable{}, err
	}
	pillar, err := pillarID(w, c.pillar)
	if err != nil {
		return wallet.Receivable{}, err
	}
	start, err := parseDay(c.start)
	if err != nil {
		return wallet.Receivable{}, err
	}
	if c.months < 0 {
		return wallet.Receivable{}, fmt.Errorf("invalid number of months %d", c.months)
	}
	r := wallet.Receivable{
		Name:        name,
		Amount:      amount,
		DueDay:      c.day,
		Kind:        wallet.ReceivableKind(strings.ToUpper(c.kind)),
		PillarID:    pillar,
		IsRecurring: c.recurring,
		StartDate:   start,
	}
	if c.recurring && c.months > 0 {
		months := c.months
		r.TotalMonths = &months
	}
	return r, nil
}

type collectCmd struct {
	month string
}

func (*collectCmd) Name() string     { return "collect" }
func (*collectCmd) Synopsis() string { return "collect a receivable" }
func (*collectCmd) Usage() string {
	return `wlt collect [-m <month>] <id>

  Collects the receivable and records the income. Without -m the current
  month is collected.
`
}

func (c *collectCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to collect as YYYY-MM, the current one by default.")
}

func (c *collectCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one receivable id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	id, err := receivableID(w, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	month := ""
	if c.month != "" {
		m, err := parseMonth(c.month)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
		month = m.String()
	}
	if !w.CollectReceivable(id, month) {
		r, _ := w.Receivable(id)
		fmt.Fprintf(stderr, "Error: %s cannot be collected again.\n", r.Name)
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type deleteReceivableCmd struct{}

func (*deleteReceivableCmd) Name() string     { return "delete-receivable" }
func (*deleteReceivableCmd) Synopsis() string { return "delete a receivable" }
func (*deleteReceivableCmd) Usage() string {
	return `wlt delete-receivable <id>

  Deletes the receivable. The collections already recorded are kept.
`
}

func (*deleteReceivableCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteReceivableCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one receivable id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id, err := receivableID(a.wallet, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	a.wallet.DeleteReceivable(id)
	return a.close(ctx)
}

type receivablesCmd struct{}

func (*receivablesCmd) Name() string     { return "receivables" }
func (*receivablesCmd) Synopsis() string { return "list receivables and what is still to collect" }
func (*receivablesCmd) Usage() string {
	return `wlt receivables

  Lists the receivables with their next month to collect.
`
}

func (*receivablesCmd) SetFlags(*flag.FlagSet) {}

func (c *receivablesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet
	printMarkdown(renderer.ReceivablesMarkdown(w.Receivables(), w.Now(), w.Currency()))
	return a.close(ctx)
}

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

type addInstallmentCmd struct {
	monthly string
	months  int
	start   string
	day     int
	pillar  string
	sub     string
}

func (*addInstallmentCmd) Name() string     { return "add-installment" }
func (*addInstallmentCmd) Synopsis() string { return "register a debt paid every month" }
func (*addInstallmentCmd) Usage() string {
	return `wlt add-installment -monthly <amount> -months <n> -pillar <pillar> [-start <day>] [-day <payment day>] [-sub <sub-category>] <name>

  Registers an installment of n monthly payments starting on the month of
  the start day.
`
}

func (c *addInstallmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.monthly, "monthly", "", "Amount paid every month.")
	f.IntVar(&c.months, "months", 0, "Number of monthly payments.")
	f.StringVar(&c.start, "start", "", "Start day, today by default.")
	f.IntVar(&c.day, "day", 0, "Day of the month the payment is due, the start day by default.")
	f.StringVar(&c.pillar, "pillar", "", "Pillar id or name.")
	f.StringVar(&c.sub, "sub", "", "Optional sub-category id or name.")
}

func (c *addInstallmentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	i, err := c.installment(w, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := w.Validate(i); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	i = w.AddInstallment(i)
	printMarkdown(renderer.InstallmentsMarkdown([]wallet.Installment{i}, w.Currency()))
	return a.close(ctx)
}

func (c *addInstallmentCmd) installment(w *wallet.Wallet, name string) (wallet.Installment, error) {
	monthly, err := parseAmount(c.monthly)
	if err != nil {
		return wallet.Installment{}, err
	}
	pillar, err := pillarID(w, c.pillar)
	if err != nil {
		return wallet.Installment{}, err
	}
	sub, err := subCategoryID(w, pillar, c.sub)
	if err != nil {
		return wallet.Installment{}, err
	}
	start, err := parseDay(c.start)
	if err != nil {
		return wallet.Installment{}, err
	}
	day := c.day
	if day == 0 {
		day = start.Day()
	}
	return wallet.Installment{
		Name:          name,
		MonthlyAmount: monthly,
		TotalMonths:   c.months,
		StartDate:     start,
		PillarID:      pillar,
		SubCategoryID: sub,
		PaymentDay:    day,
	}, nil
}

type payInstallmentCmd struct {
	month string
}

func (*payInstallmentCmd) Name() string     { return "pay-installment" }
func (*payInstallmentCmd) Synopsis() string { return "pay a month of an installment" }
func (*payInstallmentCmd) Usage() string {
	return `wlt pay-installment [-m <month>] <id>

  Pays a month of the installment and records the expense. The first unpaid
  month is paid by default.
`
}

func (c *payInstallmentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to pay as YYYY-MM, the first unpaid one by default.")
}

func (c *payInstallmentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one installment id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	id, err := installmentID(w, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	i, _ := w.Installment(id)
	month := c.month
	if month == "" {
		next, ok := i.NextUnpaid()
		if !ok {
			fmt.Fprintf(stderr, "Error: %s is already paid off.\n", i.Name)
			return subcommands.ExitFailure
		}
		month = next
	} else if m, err := parseMonth(month); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	} else {
		month = m.String()
	}

	if !w.PayInstallment(id, month) {
		fmt.Fprintf(stderr, "Error: %s cannot be paid for %s.\n", i.Name, month)
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type deleteInstallmentCmd struct{}

func (*deleteInstallmentCmd) Name() string     { return "delete-installment" }
func (*deleteInstallmentCmd) Synopsis() string { return "delete an installment" }
func (*deleteInstallmentCmd) Usage() string {
	return `wlt delete-installment <id>

  Deletes the installment. The payments already recorded are kept.
`
}

func (*deleteInstallmentCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteInstallmentCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one installment id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id, err := installmentID(a.wallet, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	a.wallet.DeleteInstallment(id)
	return a.close(ctx)
}

type installmentsCmd struct{}

func (*installmentsCmd) Name() string     { return "installments" }
func (*installmentsCmd) Synopsis() string { return "list installments and their progress" }
func (*installmentsCmd) Usage() string {
	return `wlt installments

  Lists the installments with the months paid and the next month due.
`
}

func (*installmentsCmd) SetFlags(*flag.FlagSet) {}

func (c *installmentsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.InstallmentsMarkdown(a.wallet.Installments(), a.wallet.Currency()))
	return a.close(ctx)
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type settingsCmd struct{}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show pillars, sub-categories, metals and investment settings" }
func (*settingsCmd) Usage() string {
	return `wlt settings

  Shows the pillars with their budgets and sub-categories, the metal
  holdings and the investment settings.
`
}

func (*settingsCmd) SetFlags(*flag.FlagSet) {}

func (c *settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SettingsMarkdown(a.wallet.State(), a.wallet.Currency()))
	return a.close(ctx)
}

type budgetCmd struct{}

func (*budgetCmd) Name() string     { return "budget" }
func (*budgetCmd) Synopsis() string { return "set the monthly budget of a pillar" }
func (*budgetCmd) Usage() string {
	return `wlt budget <pillar> <amount>

  Sets the monthly budget of the pillar, given by id or name.
`
}

func (*budgetCmd) SetFlags(*flag.FlagSet) {}

func (c *budgetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: expected a pillar and an amount.")
		return subcommands.ExitUsageError
	}
	budget, err := decimal.NewFromString(f.Arg(1))
	if err != nil || budget.IsNegative() {
		fmt.Fprintf(stderr, "Error: invalid budget %q.\n", f.Arg(1))
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id, err := pillarID(a.wallet, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	a.wallet.UpdatePillarBudget(id, budget)
	return a.close(ctx)
}

type addSubCategoryCmd struct{}

func (*addSubCategoryCmd) Name() string     { return "add-subcategory" }
func (*addSubCategoryCmd) Synopsis() string { return "add a sub-category to a pillar" }
func (*addSubCategoryCmd) Usage() string {
	return `wlt add-subcategory <pillar> <name>

  Adds a sub-category to the pillar, given by id or name.
`
}

func (*addSubCategoryCmd) SetFlags(*flag.FlagSet) {}

func (c *addSubCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(stderr, "Error: expected a pillar and a name.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id, err := pillarID(a.wallet, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	sc, _ := a.wallet.AddSubCategory(id, strings.Join(f.Args()[1:], " "))
	fmt.Fprintln(stdout, sc.ID)
	return a.close(ctx)
}

type deleteSubCategoryCmd struct{}

func (*deleteSubCategoryCmd) Name() string     { return "delete-subcategory" }
func (*deleteSubCategoryCmd) Synopsis() string { return "delete a sub-category" }
func (*deleteSubCategoryCmd) Usage() string {
	return `wlt delete-subcategory <id>

  Deletes the sub-category. Transactions and installments using it keep
  their pillar only.
`
}

func (*deleteSubCategoryCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteSubCategoryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one sub-category id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if !a.wallet.DeleteSubCategory(f.Arg(0)) {
		fmt.Fprintf(stderr, "Error: no sub-category with id %q.\n", f.Arg(0))
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type metalCmd struct {
	weight string
	price  string
}

func (*metalCmd) Name() string     { return "metal" }
func (*metalCmd) Synopsis() string { return "update a gold or silver holding" }
func (*metalCmd) Usage() string {
	return `wlt metal [-weight <grams>] [-price <price per gram>] gold|silver

  Updates the weight held and the current price per gram of a metal.
  Omitted values are kept.
`
}

func (c *metalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.weight, "weight", "", "Weight held in grams.")
	f.StringVar(&c.price, "price", "", "Current price per gram.")
}

func (c *metalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected gold or silver.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id := wallet.MetalID(strings.ToUpper(f.Arg(0)))
	var metal *wallet.Metal
	for i, m := range a.wallet.State().Metals {
		if m.ID == id {
			metal = &a.wallet.State().Metals[i]
		}
	}
	if metal == nil {
		fmt.Fprintf(stderr, "Error: unknown metal %q.\n", f.Arg(0))
		return subcommands.ExitUsageError
	}
	weight, price := metal.Weight, metal.CurrentPricePerGram
	for _, v := range []struct {
		flag string
		dst  *decimal.Decimal
	}{{c.weight, &weight}, {c.price, &price}} {
		if v.flag == "" {
			continue
		}
		d, err := decimal.NewFromString(v.flag)
		if err != nil || d.IsNegative() {
			fmt.Fprintf(stderr, "Error: invalid value %q.\n", v.flag)
			return subcommands.ExitUsageError
		}
		*v.dst = d
	}
	a.wallet.UpdateMetal(id, weight, price)
	return a.close(ctx)
}

type passwordCmd struct {
	clear bool
}

func (*passwordCmd) Name() string     { return "password" }
func (*passwordCmd) Synopsis() string { return "protect the wallet with a password" }
func (*passwordCmd) Usage() string {
	return `wlt [-password <current>] password (<new password> | -clear)

  Sets or removes the password required by every command.
`
}

func (c *passwordCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "clear", false, "Remove the password.")
}

func (c *passwordCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.clear == (f.NArg() == 1) || f.NArg() > 1 {
		fmt.Fprintln(stderr, "Error: expected either a new password or -clear.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	a.wallet.UpdatePassword(f.Arg(0))
	return a.close(ctx)
}

type investCmd struct {
	enable    bool
	disable   bool
	threshold string
	minDays   int
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "set the investment preferences" }
func (*investCmd) Usage() string {
	return `wlt invest [-enable | -disable] [-threshold <percent>] [-min-days <n>]

  Stores the investment preferences: the share of surplus, in percent, and
  the minimum number of days it should stay available before investing.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.enable, "enable", false, "Enable investing.")
	f.BoolVar(&c.disable, "disable", false, "Disable investing.")
	f.StringVar(&c.threshold, "threshold", "", "Required surplus in percent.")
	f.IntVar(&c.minDays, "min-days", -1, "Minimum days the surplus stays available.")
}

func (c *investCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.enable && c.disable {
		fmt.Fprintln(stderr, "Error: -enable and -disable cannot be used together.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	s := a.wallet.State().InvestmentSettings
	switch {
	case c.enable:
		s.Enabled = true
	case c.disable:
		s.Enabled = false
	}
	if c.threshold != "" {
		if s.ThresholdPercentage, err = decimal.NewFromString(c.threshold); err != nil {
			fmt.Fprintf(stderr, "Error: invalid threshold %q.\n", c.threshold)
			return subcommands.ExitUsageError
		}
	}
	if c.minDays >= 0 {
		s.MinDays = c.minDays
	}
	a.wallet.UpdateInvestmentSettings(s)
	return a.close(ctx)
}

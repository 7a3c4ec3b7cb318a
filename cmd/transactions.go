package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
)

type addCmd struct {
	kind   string
	amount string
	pillar string
	sub    string
	date   string
	silent bool
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record an income or an expense" }
func (*addCmd) Usage() string {
	return `wlt add -amount <amount> -pillar <pillar> [-type expense|income] [-sub <sub-category>] [-d <day>] <description>

  Records a manual transaction and updates the cash balance. The pillar and
  the sub-category can be given by id or by name.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "type", "expense", "Transaction type: income or expense.")
	f.StringVar(&c.amount, "amount", "", "Positive amount of the transaction.")
	f.StringVar(&c.pillar, "pillar", "", "Pillar id or name.")
	f.StringVar(&c.sub, "sub", "", "Optional sub-category id or name.")
	f.StringVar(&c.date, "d", "", "Day of the transaction, today by default.")
	f.BoolVar(&c.silent, "silent", false, "Do not print the confirmation.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	draft, err := c.draft(w, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := w.Validate(draft); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	tx := w.AddTransaction(draft, c.silent)
	if !c.silent {
		fmt.Fprintln(stdout, renderer.Transaction(tx, w.Currency()))
	}
	return a.close(ctx)
}

func (c *addCmd) draft(w *wallet.Wallet, description string) (wallet.Transaction, error) {
	kind, err := txType(c.kind)
	if err != nil {
		return wallet.Transaction{}, err
	}
	amount, err := parseAmount(c.amount)
	if err != nil {
		return wallet.Transaction{}, err
	}
	pillar, err := pillarID(w, c.pillar)
	if err != nil {
		return wallet.Transaction{}, err
	}
	sub, err := subCategoryID(w, pillar, c.sub)
	if err != nil {
		return wallet.Transaction{}, err
	}
	day, err := parseDay(c.date)
	if err != nil {
		return wallet.Transaction{}, err
	}
	return wallet.Transaction{
		Amount:        amount,
		Date:          at(day),
		Description:   description,
		Type:          kind,
		PillarID:      pillar,
		SubCategoryID: sub,
	}, nil
}

type editCmd struct {
	id          string
	kind        string
	amount      string
	pillar      string
	sub         string
	date        string
	description string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change an existing transaction" }
func (*editCmd) Usage() string {
	return `wlt edit -id <id> [-amount <amount>] [-type income|expense] [-pillar <pillar>] [-sub <sub-category>] [-d <day>] [-desc <description>]

  Changes the given fields of a transaction. The cash balance moves by the
  difference between the old and the new amounts. The id can be shortened to
  any unique prefix.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Transaction id or unique prefix.")
	f.StringVar(&c.kind, "type", "", "New transaction type.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
	f.StringVar(&c.pillar, "pillar", "", "New pillar id or name.")
	f.StringVar(&c.sub, "sub", "", "New sub-category id or name, '-' to clear it.")
	f.StringVar(&c.date, "d", "", "New day.")
	f.StringVar(&c.description, "desc", "", "New description.")
}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	id, err := transactionID(w, c.id)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	tx, _ := w.Transaction(id)
	if err := c.apply(w, &tx); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := w.Validate(tx); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	w.UpdateTransaction(tx)
	fmt.Fprintln(stdout, renderer.Transaction(tx, w.Currency()))
	return a.close(ctx)
}

func (c *editCmd) apply(w *wallet.Wallet, tx *wallet.Transaction) (err error) {
	if c.kind != "" {
		if tx.Type, err = txType(c.kind); err != nil {
			return err
		}
	}
	if c.amount != "" {
		if tx.Amount, err = parseAmount(c.amount); err != nil {
			return err
		}
	}
	if c.pillar != "" {
		if tx.PillarID, err = pillarID(w, c.pillar); err != nil {
			return err
		}
		tx.SubCategoryID = ""
	}
	switch c.sub {
	case "":
	case "-":
		tx.SubCategoryID = ""
	default:
		if tx.SubCategoryID, err = subCategoryID(w, tx.PillarID, c.sub); err != nil {
			return err
		}
	}
	if c.date != "" {
		day, err := date.Parse(c.date)
		if err != nil {
			return err
		}
		tx.Date = day.Time()
	}
	if c.description != "" {
		tx.Description = c.description
	}
	return nil
}

type deleteCmd struct{}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete transactions and restore the balance" }
func (*deleteCmd) Usage() string {
	return `wlt delete <id>...

  Deletes transactions. The balance is restored, and a transaction generated
  by an installment, a receivable or a certificate reopens the period it had
  settled.
`
}

func (*deleteCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no transaction id given.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet
	for _, prefix := range f.Args() {
		id, err := transactionID(w, prefix)
		if err != nil {
			fmt.Fprintln(stderr, err)
			a.close(ctx)
			return subcommands.ExitFailure
		}
		w.DeleteTransaction(id)
	}
	return a.close(ctx)
}

type txCmd struct {
	month  string
	all    bool
	pillar string
	head   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions, newest first" }
func (*txCmd) Usage() string {
	return `wlt tx [-m <month> | -all] [-pillar <pillar>] [-head <n>]

  Lists the transactions of a month, the current month by default.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month to list as YYYY-MM, current month by default.")
	f.BoolVar(&c.all, "all", false, "List every transaction.")
	f.StringVar(&c.pillar, "pillar", "", "Only list the transactions of this pillar.")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	month, err := parseMonth(c.month)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	pillar := ""
	if c.pillar != "" {
		if pillar, err = pillarID(w, c.pillar); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}

	within := date.MonthRange(month)
	var txs []wallet.Transaction
	for _, tx := range w.Transactions() {
		if !c.all && !within.Contains(date.Of(tx.Date)) {
			continue
		}
		if pillar != "" && tx.PillarID != pillar {
			continue
		}
		txs = append(txs, tx)
	}
	if c.head > 0 && len(txs) > c.head {
		txs = txs[:c.head]
	}
	printMarkdown(renderer.TransactionsMarkdown(txs, w.State(), w.Currency()))
	return a.close(ctx)
}

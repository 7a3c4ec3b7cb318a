package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCertificateCmd struct {
	amount string
	rate   string
	start  string
	end    string
	years  int
	cycle  string
	pillar string
}

func (*addCertificateCmd) Name() string     { return "add-certificate" }
func (*addCertificateCmd) Synopsis() string { return "register a bank certificate" }
func (*addCertificateCmd) Usage() string {
	return `wlt add-certificate -amount <principal> -rate <annual %> -pillar <pillar> (-end <day> | -years <n>) [-start <day>] [-cycle monthly|quarterly|semi-annually|annually] <bank>

  Registers a certificate paying its annual interest rate in equal payouts
  every cycle between the start and the end dates.
`
}

func (c *addCertificateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Principal of the certificate.")
	f.StringVar(&c.rate, "rate", "", "Annual interest rate in percent.")
	f.StringVar(&c.start, "start", "", "Start day, today by default.")
	f.StringVar(&c.end, "end", "", "Maturity day.")
	f.IntVar(&c.years, "years", 0, "Duration in years, instead of -end.")
	f.StringVar(&c.cycle, "cycle", "monthly", "Payout cycle: monthly, quarterly, semi-annually or annually.")
	f.StringVar(&c.pillar, "pillar", "", "Pillar id or name.")
}

func (c *addCertificateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: missing bank name.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	cert, err := c.certificate(w, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := w.Validate(cert); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	cert = w.AddCertificate(cert)
	printMarkdown(renderer.CertificatesMarkdown([]wallet.Certificate{cert}, w.Currency()))
	return a.close(ctx)
}

func (c *addCertificateCmd) certificate(w *wallet.Wallet, bank string) (wallet.Certificate, error) {
	amount, err := parseAmount(c.amount)
	if err != nil {
		return wallet.Certificate{}, err
	}
	rate, err := decimal.NewFromString(c.rate)
	if err != nil {
		return wallet.Certificate{}, fmt.Errorf("invalid rate %q", c.rate)
	}
	pillar, err := pillarID(w, c.pillar)
	if err != nil {
		return wallet.Certificate{}, err
	}
	start, err := parseDay(c.start)
	if err != nil {
		return wallet.Certificate{}, err
	}
	var end date.Date
	switch {
	case c.end != "" && c.years > 0:
		return wallet.Certificate{}, fmt.Errorf("-end and -years cannot be used together")
	case c.end != "":
		if end, err = date.Parse(c.end); err != nil {
			return wallet.Certificate{}, err
		}
	case c.years > 0:
		end = start.AddMonths(12 * c.years)
	default:
		return wallet.Certificate{}, fmt.Errorf("missing -end or -years")
	}
	cycle, err := payoutCycle(c.cycle)
	if err != nil {
		return wallet.Certificate{}, err
	}
	return wallet.Certificate{
		BankName:     bank,
		Amount:       amount,
		InterestRate: rate,
		StartDate:    start,
		EndDate:      end,
		PayoutCycle:  cycle,
		PillarID:     pillar,
	}, nil
}

func payoutCycle(s string) (wallet.PayoutCycle, error) {
	p, err := date.ParsePeriod(s)
	if err != nil {
		return "", err
	}
	switch p {
	case date.Quarterly:
		return wallet.QuarterlyPayout, nil
	case date.SemiAnnually:
		return wallet.SemiAnnuallyPayout, nil
	case date.Yearly:
		return wallet.AnnuallyPayout, nil
	default:
		return wallet.MonthlyPayout, nil
	}
}

type payoutCmd struct {
	amount string
	on     string
}

func (*payoutCmd) Name() string     { return "payout" }
func (*payoutCmd) Synopsis() string { return "receive the interest payout of a certificate" }
func (*payoutCmd) Usage() string {
	return `wlt payout [-d <payout day>] [-amount <amount>] <id>

  Records a scheduled payout of the certificate as an income. The next
  payout not yet received and its computed amount are used by default.
`
}

func (c *payoutCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", "", "Scheduled payout day, the next one by default.")
	f.StringVar(&c.amount, "amount", "", "Amount received, the computed payout by default.")
}

func (c *payoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one certificate id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	id, err := certificateID(w, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	cert, _ := w.Certificate(id)

	var on date.Date
	if c.on == "" {
		next, ok := cert.NextPayout()
		if !ok {
			fmt.Fprintf(stderr, "Error: %s has no payout left.\n", cert.BankName)
			return subcommands.ExitFailure
		}
		on = next
	} else if on, err = date.Parse(c.on); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}

	amount := cert.PayoutAmount()
	if c.amount != "" {
		if amount, err = parseAmount(c.amount); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if !amount.IsPositive() {
		fmt.Fprintf(stderr, "Error: %s pays no interest, use -amount.\n", cert.BankName)
		return subcommands.ExitUsageError
	}

	if !w.PayoutCertificate(id, amount, on.String()) {
		fmt.Fprintf(stderr, "Error: payout of %s cannot be recorded for %s.\n", on, cert.BankName)
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type redeemCmd struct {
	amount string
}

func (*redeemCmd) Name() string     { return "redeem" }
func (*redeemCmd) Synopsis() string { return "redeem a certificate" }
func (*redeemCmd) Usage() string {
	return `wlt redeem [-amount <amount>] <id>

  Marks the certificate redeemed and records the returned money as an
  income. The principal is returned by default.
`
}

func (c *redeemCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Amount returned by the bank, the principal by default.")
}

func (c *redeemCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one certificate id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	id, err := certificateID(w, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	cert, _ := w.Certificate(id)
	amount := cert.Amount
	if c.amount != "" {
		if amount, err = parseAmount(c.amount); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if !w.RedeemCertificate(id, amount) {
		fmt.Fprintf(stderr, "Error: %s is already redeemed.\n", cert.BankName)
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type deleteCertificateCmd struct{}

func (*deleteCertificateCmd) Name() string     { return "delete-certificate" }
func (*deleteCertificateCmd) Synopsis() string { return "delete a certificate" }
func (*deleteCertificateCmd) Usage() string {
	return `wlt delete-certificate <id>

  Deletes the certificate. The payouts already recorded are kept.
`
}

func (*deleteCertificateCmd) SetFlags(*flag.FlagSet) {}

func (c *deleteCertificateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one certificate id.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	id, err := certificateID(a.wallet, f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	a.wallet.DeleteCertificate(id)
	return a.close(ctx)
}

type certificatesCmd struct{}

func (*certificatesCmd) Name() string     { return "certificates" }
func (*certificatesCmd) Synopsis() string { return "list certificates and their next payout" }
func (*certificatesCmd) Usage() string {
	return `wlt certificates

  Lists the certificates with their payout amount and next payout day.
`
}

func (*certificatesCmd) SetFlags(*flag.FlagSet) {}

func (c *certificatesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.CertificatesMarkdown(a.wallet.Certificates(), a.wallet.Currency()))
	return a.close(ctx)
}

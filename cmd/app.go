// Package cmd implements the wlt commands managing a personal wallet.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/wallet"
	"github.com/etnz/wallet/config"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/logger"
	"github.com/etnz/wallet/store"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	walletFile = flag.String("wallet-file", "", "Path to the wallet snapshot. Defaults to WALLET_FILE or wallet.json.")
	currency   = flag.String("currency", "", "Display currency. Defaults to WALLET_CURRENCY or EGP.")
	password   = flag.String("password", "", "Password unlocking a protected wallet.")
	verbose    = flag.Bool("v", false, "Log debug information.")
	plain      = flag.Bool("plain", false, "Print raw markdown instead of rendering it.")
)

// terminal of the commands, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
	now              = time.Now
)

var errLocked = errors.New("the wallet is protected, use -password")

// app is a wallet opened for the duration of a command.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	wallet *wallet.Wallet
	saver  *store.Saver
}

// openWallet loads the configuration and the wallet snapshot. Mutations are
// saved through a debounced saver, close flushes it.
func openWallet(ctx context.Context) (context.Context, *app, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, err
	}
	if *walletFile != "" {
		cfg.File = *walletFile
	}
	if *currency != "" {
		cfg.Currency = strings.ToUpper(*currency)
	}
	level := cfg.LogLevel
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}, level)
	ctx = logger.WithContext(ctx, log)

	w := wallet.New(store.Open(cfg.File, log),
		wallet.WithCurrency(cfg.Currency),
		wallet.WithClock(now),
		wallet.WithNotifier(wallet.NotifierFunc(notify)),
	)
	if !w.CheckPassword(*password) {
		return ctx, nil, errLocked
	}
	saver := store.NewSaver(store.File(cfg.File), cfg.SaveDelay, log)
	w.Observe(saver.Observe)
	return ctx, &app{cfg: cfg, log: log, wallet: w, saver: saver}, nil
}

// close writes the pending snapshot.
func (a *app) close(ctx context.Context) subcommands.ExitStatus {
	if err := a.saver.Flush(ctx); err != nil {
		fmt.Fprintf(stderr, "Error saving wallet to %q: %v\n", a.cfg.File, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func notify(n wallet.Notification) {
	fmt.Fprintf(stderr, "[%s] %s: %s\n", n.Level, n.Title, n.Message)
}

// printMarkdown renders md on the terminal.
func printMarkdown(md string) {
	if *plain || stdout != os.Stdout {
		fmt.Fprintln(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprintln(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintln(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// parseAmount parses a strictly positive amount.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %s", d)
	}
	return d, nil
}

// parseDay parses a YYYY-MM-DD day, today when empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Of(now()), nil
	}
	return date.Parse(s)
}

// parseMonth parses a YYYY-MM month, this month when empty.
func parseMonth(s string) (date.Month, error) {
	if s == "" {
		return date.ThisMonth(now()), nil
	}
	return date.ParseMonth(s)
}

// at returns the instant of day d, keeping the time of day of now for today.
func at(d date.Date) time.Time {
	t := now()
	if d == date.Of(t) {
		return t
	}
	return d.Time()
}

// confirm asks a yes/no question, no being the default.
func confirm(question string) bool {
	fmt.Fprintf(stdout, "%s [y/N] ", question)
	var answer string
	fmt.Fscanln(stdin, &answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

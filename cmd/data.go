package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/logger"
	"github.com/etnz/wallet/store"
	"github.com/google/subcommands"
)

type resetCmd struct {
	opts wallet.ResetOptions
	all  bool
	yes  bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "clear selected parts of the wallet" }
func (*resetCmd) Usage() string {
	return `wlt reset [-transactions] [-installments] [-receivables] [-certificates] [-metals] [-settings] [-all] [-y]

  Clears the selected parts of the wallet. The audit log is replaced by a
  single entry recording the reset. Asks for confirmation unless -y is given.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.opts.Transactions, "transactions", false, "Clear the transactions and the cash balance.")
	f.BoolVar(&c.opts.Installments, "installments", false, "Clear the installments.")
	f.BoolVar(&c.opts.Receivables, "receivables", false, "Clear the receivables.")
	f.BoolVar(&c.opts.Certificates, "certificates", false, "Clear the certificates.")
	f.BoolVar(&c.opts.Metals, "metals", false, "Zero the metal holdings.")
	f.BoolVar(&c.opts.Settings, "settings", false, "Restore the default categories, budgets and password.")
	f.BoolVar(&c.all, "all", false, "Clear everything.")
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *resetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := c.opts
	if c.all {
		opts = wallet.ResetOptions{Transactions: true, Installments: true, Receivables: true, Certificates: true, Metals: true, Settings: true}
	}
	if opts == (wallet.ResetOptions{}) {
		fmt.Fprintln(stderr, "Error: nothing selected to reset.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if !c.yes && !confirm(fmt.Sprintf("Reset %s?", opts)) {
		fmt.Fprintln(stdout, "Nothing changed.")
		return subcommands.ExitSuccess
	}
	a.wallet.ResetSelected(opts)
	return a.close(ctx)
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the wallet by a backup file" }
func (*importCmd) Usage() string {
	return `wlt import <file>

  Replaces the whole wallet by the snapshot in file. The file must hold a
  transactions list and a cash balance, otherwise nothing changes.
`
}

func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: expected exactly one file.")
		return subcommands.ExitUsageError
	}
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	if err := a.wallet.ImportFrom(in); err != nil {
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a backup of the wallet" }
func (*exportCmd) Usage() string {
	return `wlt export [-o <file>]

  Writes the whole wallet as an indented JSON snapshot, on the standard
  output by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file, standard output by default.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if c.output == "" {
		if err := a.wallet.Export(stdout); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitFailure
		}
		return a.close(ctx)
	}

	data, err := wallet.MarshalState(a.wallet.State())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.File(c.output).Write(ctx, data); err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Wallet exported to %s\n", c.output)
	return a.close(ctx)
}

// bucketFlags selects the Cloud Storage object of backups.
type bucketFlags struct {
	bucket string
	object string
}

func (b *bucketFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&b.bucket, "bucket", "", "Cloud Storage bucket, WALLET_BACKUP_BUCKET by default.")
	f.StringVar(&b.object, "object", "", "Object name, WALLET_BACKUP_OBJECT by default.")
}

func (b *bucketFlags) target(a *app) (store.Bucket, error) {
	dst := store.Bucket{Name: a.cfg.BackupBucket, Object: a.cfg.BackupObject}
	if b.bucket != "" {
		dst.Name = b.bucket
	}
	if b.object != "" {
		dst.Object = b.object
	}
	if dst.Name == "" {
		return dst, fmt.Errorf("no backup bucket, use -bucket or WALLET_BACKUP_BUCKET")
	}
	return dst, nil
}

type backupCmd struct {
	bucketFlags
}

func (*backupCmd) Name() string     { return "backup" }
func (*backupCmd) Synopsis() string { return "save a snapshot of the wallet to Cloud Storage" }
func (*backupCmd) Usage() string {
	return `wlt backup [-bucket <bucket>] [-object <name>]

  Uploads a snapshot of the wallet to Cloud Storage. Credentials come from
  the Application Default Credentials.
`
}

func (c *backupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	dst, err := c.target(a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	if err := store.Backup(ctx, dst, a.wallet.State()); err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("target", dst.String()).Msg("backup failed")
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Wallet saved to %s\n", dst)
	return a.close(ctx)
}

type restoreCmd struct {
	bucketFlags
	yes bool
}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "replace the wallet by a Cloud Storage snapshot" }
func (*restoreCmd) Usage() string {
	return `wlt restore [-bucket <bucket>] [-object <name>] [-y]

  Downloads a snapshot from Cloud Storage and imports it, replacing the
  whole wallet. Asks for confirmation unless -y is given.
`
}

func (c *restoreCmd) SetFlags(f *flag.FlagSet) {
	c.bucketFlags.SetFlags(f)
	f.BoolVar(&c.yes, "y", false, "Do not ask for confirmation.")
}

func (c *restoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	src, err := c.target(a)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitUsageError
	}
	s, err := store.Restore(ctx, src)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Str("source", src.String()).Msg("restore failed")
		return subcommands.ExitFailure
	}
	if !c.yes && !confirm(fmt.Sprintf("Replace the wallet by %s with %d transactions?", src, len(s.Transactions))) {
		fmt.Fprintln(stdout, "Nothing changed.")
		return subcommands.ExitSuccess
	}
	a.wallet.Import(s)
	return a.close(ctx)
}

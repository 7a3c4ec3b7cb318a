package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Group is a set of commands listed together in the help.
type Group struct {
	Name     string
	Commands []subcommands.Command
}

// Groups lists every wlt command.
var Groups = []Group{
	{"transactions", []subcommands.Command{&addCmd{}, &editCmd{}, &deleteCmd{}, &txCmd{}, &smsCmd{}}},
	{"installments", []subcommands.Command{&addInstallmentCmd{}, &payInstallmentCmd{}, &deleteInstallmentCmd{}, &installmentsCmd{}}},
	{"receivables", []subcommands.Command{&addReceivableCmd{}, &collectCmd{}, &deleteReceivableCmd{}, &receivablesCmd{}}},
	{"certificates", []subcommands.Command{&addCertificateCmd{}, &payoutCmd{}, &redeemCmd{}, &deleteCertificateCmd{}, &certificatesCmd{}}},
	{"reports", []subcommands.Command{&summaryCmd{}, &reportCmd{}, &logCmd{}, &checkCmd{}, &adviceCmd{}, &assistCmd{}}},
	{"settings", []subcommands.Command{&settingsCmd{}, &budgetCmd{}, &addSubCategoryCmd{}, &deleteSubCategoryCmd{}, &metalCmd{}, &investCmd{}, &passwordCmd{}}},
	{"data", []subcommands.Command{&importCmd{}, &exportCmd{}, &backupCmd{}, &restoreCmd{}, &resetCmd{}}},
}

// Register adds every command to the commander.
func Register(c *subcommands.Commander) {
	for _, g := range Groups {
		for _, cmd := range g.Commands {
			c.Register(cmd, g.Name)
		}
	}
}

// predictors of flag values, by flag name. Other flags accept anything.
var predictors = map[string]complete.Predictor{
	"type":        predict.Set{"income", "expense", "rent", "other"},
	"cycle":       predict.Set{"monthly", "quarterly", "semi-annually", "annually"},
	"wallet-file": predict.Files("*.json"),
	"o":           predict.Files("*.json"),
	"currency":    predict.Set{"EGP", "USD", "EUR", "SAR", "AED"},
}

func predictor(name string, isBool bool) complete.Predictor {
	if isBool {
		return predict.Nothing
	}
	if p, ok := predictors[name]; ok {
		return p
	}
	return predict.Something
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		b, ok := f.Value.(interface{ IsBoolFlag() bool })
		flags[f.Name] = predictor(f.Name, ok && b.IsBoolFlag())
	})
	return flags
}

// Completion returns the shell completion of wlt, built from the flags of
// every command and the global flags of top.
func Completion(top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(top),
	}
	for _, g := range Groups {
		for _, cmd := range g.Commands {
			fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
			cmd.SetFlags(fs)
			sub := &complete.Command{Flags: flagPredictors(fs)}
			switch cmd.Name() {
			case "import":
				sub.Args = predict.Files("*.json")
			case "metal":
				sub.Args = predict.Set{"gold", "silver"}
			}
			root.Sub[cmd.Name()] = sub
		}
	}
	return root
}

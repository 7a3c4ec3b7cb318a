package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/wallet/agent"
	"github.com/etnz/wallet/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// newClient connects to Gemini when an API key is configured.
func (a *app) newClient(ctx context.Context) (*genai.Client, error) {
	if a.cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	return agent.NewClient(ctx, a.cfg.GeminiAPIKey)
}

// assistant returns an assistant backed by Gemini when possible, offline otherwise.
func (a *app) assistant(ctx context.Context) *agent.Assistant {
	client, err := a.newClient(ctx)
	if err != nil {
		a.log.Warn().Err(err).Msg("working offline")
	}
	if client == nil {
		return agent.NewAssistant(nil, a.cfg.GeminiModel, a.log)
	}
	return agent.NewAssistant(client.Models, a.cfg.GeminiModel, a.log)
}

type smsCmd struct {
	pillar string
	yes    bool
}

func (*smsCmd) Name() string     { return "sms" }
func (*smsCmd) Synopsis() string { return "record a transaction from a bank SMS" }
func (*smsCmd) Usage() string {
	return `wlt sms [-pillar <pillar>] [-y] [<message>]

  Reads a bank SMS, from the arguments or the standard input, and suggests
  the matching transaction. Gemini reads the message when GEMINI_API_KEY is
  set, a simple parser is used otherwise. The transaction is only recorded
  after confirmation.
`
}

func (c *smsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pillar, "pillar", "", "Pillar to use instead of the suggested one.")
	f.BoolVar(&c.yes, "y", false, "Record without asking for confirmation.")
}

func (c *smsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	w := a.wallet

	text := strings.Join(f.Args(), " ")
	if text == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitFailure
		}
		text = strings.TrimSpace(string(data))
	}
	if text == "" {
		fmt.Fprintln(stderr, "Error: empty message.")
		return subcommands.ExitUsageError
	}

	s := a.assistant(ctx).ParseSMS(ctx, text, w.Pillars())
	draft := s.Draft()
	draft.Date = w.Now()
	if c.pillar != "" {
		if draft.PillarID, err = pillarID(w, c.pillar); err != nil {
			fmt.Fprintln(stderr, err)
			return subcommands.ExitUsageError
		}
	}
	if err := w.Validate(draft); err != nil {
		fmt.Fprintf(stderr, "Error: no transaction found in the message: %v\n", err)
		return subcommands.ExitFailure
	}

	pillar, _ := w.State().Pillar(draft.PillarID)
	fmt.Fprintf(stdout, "%s in %s\n", renderer.Transaction(draft, w.Currency()), pillar.Name)
	if s.Fallback {
		fmt.Fprintln(stdout, "(guessed without the assistant, check it)")
	}
	if !c.yes && !confirm("Record it?") {
		fmt.Fprintln(stdout, "Nothing recorded.")
		return subcommands.ExitSuccess
	}
	w.AddTransaction(draft, false)
	return a.close(ctx)
}

type adviceCmd struct{}

func (*adviceCmd) Name() string     { return "advice" }
func (*adviceCmd) Synopsis() string { return "get a short financial tip about the wallet" }
func (*adviceCmd) Usage() string {
	return `wlt advice

  Asks Gemini for one tip based on the summary and the budgets of the
  current month.
`
}

func (*adviceCmd) SetFlags(*flag.FlagSet) {}

func (c *adviceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, a.assistant(ctx).Advice(ctx, a.wallet))
	return a.close(ctx)
}

type assistCmd struct{}

func (*assistCmd) Name() string     { return "assist" }
func (*assistCmd) Synopsis() string { return "start an interactive session with the AI assistant" }
func (*assistCmd) Usage() string {
	return `wlt assist [<question>]

  Starts a chat with an assistant able to read the wallet. The arguments are
  asked first. Requires GEMINI_API_KEY.
`
}

func (*assistCmd) SetFlags(*flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ctx, a, err := openWallet(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return subcommands.ExitFailure
	}
	client, err := a.newClient(ctx)
	if err != nil {
		fmt.Fprintln(stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	if client == nil {
		fmt.Fprintln(stderr, "Error: GEMINI_API_KEY is not set.")
		return subcommands.ExitFailure
	}

	accountant := agent.NewAccountant(a.cfg.GeminiModel, a.wallet)
	accountant.Log = a.log
	session := agent.New(stdout, stdin, a.cfg.GeminiModel, accountant)
	session.Facilitator.Log = a.log
	session.Print = func(_ io.Writer, md string) { printMarkdown(md) }

	if err := session.Run(ctx, client, strings.Join(f.Args(), " ")); err != nil {
		fmt.Fprintln(stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}
	return a.close(ctx)
}

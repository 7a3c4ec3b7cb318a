package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"google.golang.org/genai"
)

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user keeps a personal wallet: cash transactions, installments to pay,
			receivables to collect, bank certificates and precious metals.
			Devise a plan of questions to ask to each expert and come up with the best
			response to the user's request. Answer in short markdown.
			Never pretend to have changed the wallet, you can only read it.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAccountant returns the expert reading the wallet.
func NewAccountant(model string, w *wallet.Wallet) *Expert {
	lib := Tools(w)
	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He is in charge of reading the user's wallet.
		He knows the balance, the transactions, the budgets, and every installment,
		receivable and certificate with what is due next.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's wallet.
				Use the Tools to extract relevant information about the user's wealth,
				spending and obligations. Amounts are in ` + w.Currency() + `.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the read-only functions exposing the wallet to a model.
func Tools(w *wallet.Wallet) []*Func {
	noArgs := &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Summary",
				Description: "Summary returns the total wealth, cash, metals and certificates, and what is due this month.",
				Parameters:  noArgs,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown summary."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				return renderer.SummaryMarkdown(w.State(), w.Currency(), w.Now()), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Transactions",
				Description: "Transactions lists the transactions of a month, newest first.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {Type: genai.TypeString, Description: "The month as YYYY-MM. The current month is the default."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown table of transactions."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				month, err := parseMonth(args, w.Now())
				if err != nil {
					return "", err
				}
				within := date.MonthRange(month)
				var txs []wallet.Transaction
				for _, tx := range w.Transactions() {
					if within.Contains(date.Of(tx.Date)) {
						txs = append(txs, tx)
					}
				}
				return renderer.TransactionsMarkdown(txs, w.State(), w.Currency()), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Budget",
				Description: "Budget compares the spending of each pillar with its monthly budget.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"month": {Type: genai.TypeString, Description: "The month as YYYY-MM. The current month is the default."},
					},
				},
				Response: &genai.Schema{Type: genai.TypeString, Description: "A markdown budget table."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				month, err := parseMonth(args, w.Now())
				if err != nil {
					return "", err
				}
				return renderer.BudgetMarkdown(w.State(), month, w.Currency()), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "Obligations",
				Description: "Obligations lists the installments, receivables and certificates with their next due period.",
				Parameters:  noArgs,
				Response:    &genai.Schema{Type: genai.TypeString, Description: "Markdown tables of obligations."},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				cur := w.Currency()
				return renderer.InstallmentsMarkdown(w.Installments(), cur) + "\n" +
					renderer.ReceivablesMarkdown(w.Receivables(), w.Now(), cur) + "\n" +
					renderer.CertificatesMarkdown(w.Certificates(), cur), nil
			},
		},
	}
}

func parseMonth(args map[string]any, now time.Time) (date.Month, error) {
	arg, ok := args["month"]
	if !ok {
		return date.ThisMonth(now), nil
	}
	s, ok := arg.(string)
	if !ok {
		return date.Month{}, fmt.Errorf("argument 'month' is not a string as expected but %T", arg)
	}
	if s == "" {
		return date.ThisMonth(now), nil
	}
	return date.ParseMonth(s)
}

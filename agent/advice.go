package agent

import (
	"context"
	"strings"

	"github.com/etnz/wallet"
	"github.com/etnz/wallet/date"
	"github.com/etnz/wallet/renderer"
	"google.golang.org/genai"
)

// FallbackAdvice is given when the model cannot be reached.
const FallbackAdvice = "Keep your spending under your budgets and save before the month ends."

// Advice returns one short financial tip about the wallet. It never fails.
func (a *Assistant) Advice(ctx context.Context, w *wallet.Wallet) string {
	if a.gen == nil {
		return FallbackAdvice
	}
	cur := w.Currency()
	summary := renderer.SummaryMarkdown(w.State(), cur, w.Now()) + "\n" +
		renderer.BudgetMarkdown(w.State(), date.ThisMonth(w.Now()), cur)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are a frugal personal finance coach. Given the user's wallet, give one
			concrete tip in a single sentence of at most 30 words. No preamble.
		`}}},
	}
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(summary), config)
	if err != nil {
		a.log.Warn().Err(err).Msg("model could not give advice")
		return FallbackAdvice
	}
	tip := strings.TrimSpace(resp.Text())
	if tip == "" {
		return FallbackAdvice
	}
	return tip
}

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/etnz/wallet"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"google.golang.org/genai"
)

// Generator produces model content. *genai.Models implements it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Assistant answers one-shot questions: SMS parsing and advice.
// A nil generator always falls back to the offline answers.
type Assistant struct {
	gen   Generator
	model string
	now   func() time.Time
	log   zerolog.Logger
}

// NewAssistant returns an Assistant using model through gen.
func NewAssistant(gen Generator, model string, log zerolog.Logger) *Assistant {
	return &Assistant{gen: gen, model: model, now: time.Now, log: log}
}

// NewClient connects to the Gemini API. An empty key lets the SDK read it
// from the environment.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("cannot create gemini client: %w", err)
	}
	return client, nil
}

// Suggestion is a transaction guessed from a bank message.
type Suggestion struct {
	Amount            decimal.Decimal `json:"amount"`
	Vendor            string          `json:"vendor"`
	Type              wallet.TxType   `json:"type"`
	SuggestedPillarID string          `json:"suggestedPillarId"`
	Date              time.Time       `json:"date"`
	// Fallback is true when the suggestion comes from the offline parser.
	Fallback bool `json:"-"`
}

// Draft returns the transaction the suggestion describes.
func (s Suggestion) Draft() wallet.Transaction {
	return wallet.Transaction{
		Amount:      s.Amount,
		Date:        s.Date,
		Description: s.Vendor,
		Type:        s.Type,
		PillarID:    s.SuggestedPillarID,
	}
}

var smsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"amount":            {Type: genai.TypeNumber, Description: "The transaction amount, positive."},
		"vendor":            {Type: genai.TypeString, Description: "The merchant or counterparty name."},
		"type":              {Type: genai.TypeString, Enum: []string{string(wallet.Income), string(wallet.Expense)}},
		"suggestedPillarId": {Type: genai.TypeString, Description: "The id of the best matching pillar."},
	},
	Required: []string{"amount", "vendor", "type", "suggestedPillarId"},
}

// ParseSMS turns a bank SMS into a suggestion. It never fails: when the
// model is unavailable or answers nonsense the offline parser is used.
func (a *Assistant) ParseSMS(ctx context.Context, sms string, pillars []wallet.Pillar) Suggestion {
	if a.gen != nil {
		s, err := a.parseWithModel(ctx, sms, pillars)
		if err == nil {
			return s
		}
		a.log.Warn().Err(err).Msg("model could not parse the message, using the offline parser")
	}
	return a.fallback(sms, pillars)
}

func (a *Assistant) parseWithModel(ctx context.Context, sms string, pillars []wallet.Pillar) (Suggestion, error) {
	var catalog strings.Builder
	for _, p := range pillars {
		fmt.Fprintf(&catalog, "- %s: %s\n", p.ID, p.Name)
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   smsSchema,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You extract a single transaction from a bank SMS. The message may be in
			English or Arabic. Deposits and credits are INCOME, purchases and debits
			are EXPENSE. Pick the pillar that fits the vendor best among:
			` + catalog.String()}}},
	}
	resp, err := a.gen.GenerateContent(ctx, a.model, genai.Text(sms), config)
	if err != nil {
		return Suggestion{}, err
	}

	var s Suggestion
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &s); err != nil {
		return Suggestion{}, fmt.Errorf("cannot decode model answer %q: %w", resp.Text(), err)
	}
	if !s.Amount.IsPositive() {
		return Suggestion{}, fmt.Errorf("model answered a non positive amount %s", s.Amount)
	}
	if s.Type != wallet.Income && s.Type != wallet.Expense {
		return Suggestion{}, fmt.Errorf("model answered an unknown type %q", s.Type)
	}
	if !slices.ContainsFunc(pillars, func(p wallet.Pillar) bool { return p.ID == s.SuggestedPillarID }) {
		s.SuggestedPillarID = defaultPillar(pillars)
	}
	s.Vendor = truncate(strings.TrimSpace(s.Vendor), vendorWidth)
	s.Date = a.now()
	return s, nil
}

var (
	amountPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)
	incomePattern = regexp.MustCompile(`(?i)deposit|credited|إيداع|تم إضافة`)
)

const vendorWidth = 40

// fallback guesses from the text alone: the first number is the amount and
// a few keywords tell incomes apart.
func (a *Assistant) fallback(sms string, pillars []wallet.Pillar) Suggestion {
	amount := decimal.Zero
	if m := amountPattern.FindString(sms); m != "" {
		if d, err := decimal.NewFromString(strings.ReplaceAll(m, ",", "")); err == nil {
			amount = d
		}
	}
	kind := wallet.Expense
	if incomePattern.MatchString(sms) {
		kind = wallet.Income
	}
	vendor := truncate(strings.Join(strings.Fields(sms), " "), vendorWidth)
	if vendor == "" {
		vendor = "Unknown transaction"
	}
	return Suggestion{
		Amount:            amount,
		Vendor:            vendor,
		Type:              kind,
		SuggestedPillarID: defaultPillar(pillars),
		Date:              a.now(),
		Fallback:          true,
	}
}

func defaultPillar(pillars []wallet.Pillar) string {
	if len(pillars) == 0 {
		return ""
	}
	return pillars[0].ID
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// cleanJSON strips the markdown fences models like to wrap JSON in.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/wallet"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

// testFile points the commands to a fresh wallet file and a fixed clock.
func testFile(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "wallet.json")
	oldFile, oldPassword, oldNow := *walletFile, *password, now
	oldOut, oldErr, oldIn := stdout, stderr, stdin
	*walletFile, *password, now = file, "", func() time.Time { return testNow }
	t.Cleanup(func() {
		*walletFile, *password, now = oldFile, oldPassword, oldNow
		stdout, stderr, stdin = oldOut, oldErr, oldIn
	})
	return file
}

// run executes a wlt command line, answering prompts with input.
func run(t *testing.T, input string, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out, errs bytes.Buffer
	stdout, stderr, stdin = &out, &errs, strings.NewReader(input)

	fs := flag.NewFlagSet("wlt", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "wlt")
	Register(commander)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	status := commander.Execute(context.Background())
	if errs.Len() > 0 {
		t.Logf("stderr of %v:\n%s", args, errs.String())
	}
	return out.String(), status
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, status := run(t, "", args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("wlt %s: status %v, want success", strings.Join(args, " "), status)
	}
	return out
}

func load(t *testing.T, file string) *wallet.State {
	t.Helper()
	s, err := wallet.LoadFile(file)
	if err != nil {
		t.Fatalf("LoadFile(%q): %v", file, err)
	}
	return s
}

func checkBalance(t *testing.T, s *wallet.State, want int64) {
	t.Helper()
	if !s.CashBalance.Equal(decimal.NewFromInt(want)) {
		t.Errorf("balance = %s, want %d", s.CashBalance, want)
	}
	if !s.CashBalance.Equal(s.ReplayBalance()) {
		t.Errorf("balance %s does not match transactions %s", s.CashBalance, s.ReplayBalance())
	}
}

func TestAddEditDelete(t *testing.T) {
	file := testFile(t)

	mustRun(t, "add", "-amount", "200", "-pillar", "living", "-sub", "groceries", "Groceries")
	mustRun(t, "add", "-type", "income", "-amount", "1,000", "-pillar", "5", "Salary")
	s := load(t, file)
	checkBalance(t, s, 800)
	if got := s.Transactions[1].SubCategoryID; got != "s3" {
		t.Errorf("sub-category = %q, want s3", got)
	}

	out := mustRun(t, "tx")
	for _, want := range []string{"Groceries", "Salary", "Living / Groceries"} {
		if !strings.Contains(out, want) {
			t.Errorf("tx output does not contain %q:\n%s", want, out)
		}
	}

	salary := s.Transactions[0].ID
	mustRun(t, "edit", "-id", salary[:8], "-amount", "1200")
	checkBalance(t, load(t, file), 1000)

	mustRun(t, "delete", salary)
	s = load(t, file)
	checkBalance(t, s, -200)
	if len(s.Transactions) != 1 {
		t.Errorf("got %d transactions, want 1", len(s.Transactions))
	}
}

func TestAdd_Invalid(t *testing.T) {
	file := testFile(t)
	tests := [][]string{
		{"add", "-amount", "200", "-pillar", "nope", "X"},
		{"add", "-amount", "-5", "-pillar", "1", "X"},
		{"add", "-amount", "5", "-pillar", "1"},
		{"add", "-amount", "5", "-pillar", "1", "-type", "gift", "X"},
		{"add", "-amount", "5", "-pillar", "1", "-sub", "fuel", "X"},
	}
	for _, args := range tests {
		if _, status := run(t, "", args...); status != subcommands.ExitUsageError {
			t.Errorf("wlt %s: status %v, want usage error", strings.Join(args, " "), status)
		}
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Errorf("invalid commands should not write the wallet, got %v", err)
	}
}

func TestInstallment(t *testing.T) {
	file := testFile(t)

	mustRun(t, "add-installment", "-monthly", "500", "-months", "3", "-start", "2024-01-10", "-pillar", "1", "Phone")
	id := load(t, file).Installments[0].ID

	mustRun(t, "pay-installment", id)
	mustRun(t, "pay-installment", "-m", "2024-03", id[:6])
	if _, status := run(t, "", "pay-installment", "-m", "2024-03", id); status != subcommands.ExitFailure {
		t.Errorf("paying twice: status %v, want failure", status)
	}

	s := load(t, file)
	checkBalance(t, s, -1000)
	i := s.Installments[0]
	if i.RemainingMonths != 1 || strings.Join(i.PaidMonths, ",") != "2024-01,2024-03" {
		t.Errorf("installment = %d remaining %v paid, want 1 remaining 2024-01,2024-03", i.RemainingMonths, i.PaidMonths)
	}

	// deleting the January payment reopens January.
	var january string
	for _, tx := range s.Transactions {
		if tx.SourceMonth == "2024-01" {
			january = tx.ID
		}
	}
	mustRun(t, "delete", january)
	s = load(t, file)
	checkBalance(t, s, -500)
	if i := s.Installments[0]; i.RemainingMonths != 2 || strings.Join(i.PaidMonths, ",") != "2024-03" {
		t.Errorf("after delete: %d remaining %v paid, want 2 remaining 2024-03", i.RemainingMonths, i.PaidMonths)
	}

	out := mustRun(t, "installments")
	if !strings.Contains(out, "Phone") || !strings.Contains(out, "2024-01") {
		t.Errorf("installments output:\n%s", out)
	}

	mustRun(t, "delete-installment", id)
	if n := len(load(t, file).Installments); n != 0 {
		t.Errorf("got %d installments, want 0", n)
	}
}

func TestReceivable(t *testing.T) {
	file := testFile(t)

	mustRun(t, "add-receivable", "-amount", "3000", "-type", "rent", "-recurring", "-months", "12", "-start", "2024-01-01", "-pillar", "5", "Flat rent")
	r := load(t, file).Receivables[0]
	if r.Kind != wallet.Rent || r.TotalMonths == nil || *r.TotalMonths != 12 || r.EndDate.String() != "2024-12-01" {
		t.Errorf("receivable = %+v", r)
	}

	mustRun(t, "collect", "-m", "2024-01", r.ID)
	mustRun(t, "collect", r.ID)
	if _, status := run(t, "", "collect", r.ID); status != subcommands.ExitFailure {
		t.Errorf("collecting twice: status %v, want failure", status)
	}
	s := load(t, file)
	checkBalance(t, s, 6000)
	if got := *s.Receivables[0].RemainingMonths; got != 10 {
		t.Errorf("remaining = %d, want 10", got)
	}

	out := mustRun(t, "receivables")
	if !strings.Contains(out, "Flat rent") {
		t.Errorf("receivables output:\n%s", out)
	}
	mustRun(t, "delete-receivable", r.ID)
}

func TestCertificate(t *testing.T) {
	file := testFile(t)

	mustRun(t, "add-certificate", "-amount", "100000", "-rate", "24", "-years", "1", "-start", "2024-01-01", "-cycle", "quarterly", "-pillar", "5", "NBE")
	c := load(t, file).Certificates[0]
	if c.PayoutCycle != wallet.QuarterlyPayout || c.EndDate.String() != "2025-01-01" {
		t.Errorf("certificate = %+v", c)
	}

	mustRun(t, "payout", c.ID)
	s := load(t, file)
	checkBalance(t, s, 6000)
	if got := s.Certificates[0].PaidPayouts; len(got) != 1 || got[0] != "2024-04-01" {
		t.Errorf("paid payouts = %v, want [2024-04-01]", got)
	}

	mustRun(t, "redeem", c.ID)
	s = load(t, file)
	checkBalance(t, s, 106000)
	if s.Certificates[0].Status != wallet.Redeemed {
		t.Errorf("status = %s, want REDEEMED", s.Certificates[0].Status)
	}
	if _, status := run(t, "", "payout", c.ID); status != subcommands.ExitFailure {
		t.Errorf("payout after redemption: status %v, want failure", status)
	}

	// deleting the redemption reactivates the certificate.
	mustRun(t, "delete", s.Transactions[0].ID)
	if got := load(t, file).Certificates[0].Status; got != wallet.Active {
		t.Errorf("status = %s, want ACTIVE", got)
	}
	mustRun(t, "certificates")
}

func TestSettings(t *testing.T) {
	file := testFile(t)

	mustRun(t, "budget", "living", "4500")
	out := mustRun(t, "add-subcategory", "transport", "Taxi")
	id := strings.TrimSpace(out)
	mustRun(t, "metal", "-weight", "10", "gold")
	mustRun(t, "invest", "-disable", "-threshold", "40")

	s := load(t, file)
	if p, _ := s.Pillar("2"); !p.Budget.Equal(decimal.NewFromInt(4500)) {
		t.Errorf("budget = %s, want 4500", p.Budget)
	}
	if got := s.MetalsValue(); !got.Equal(decimal.NewFromInt(35000)) {
		t.Errorf("metals = %s, want 35000", got)
	}
	if s.InvestmentSettings.Enabled || !s.InvestmentSettings.ThresholdPercentage.Equal(decimal.NewFromInt(40)) {
		t.Errorf("investment settings = %+v", s.InvestmentSettings)
	}

	mustRun(t, "add", "-amount", "50", "-pillar", "3", "-sub", "taxi", "Ride")
	mustRun(t, "delete-subcategory", id)
	if got := load(t, file).Transactions[0].SubCategoryID; got != "" {
		t.Errorf("sub-category = %q, want cleared", got)
	}

	out = mustRun(t, "settings")
	if !strings.Contains(out, "Transport") {
		t.Errorf("settings output:\n%s", out)
	}
}

func TestPassword(t *testing.T) {
	testFile(t)

	mustRun(t, "password", "1234")
	if _, status := run(t, "", "summary"); status != subcommands.ExitFailure {
		t.Errorf("locked wallet: status %v, want failure", status)
	}
	*password = "1234"
	mustRun(t, "summary")
	mustRun(t, "password", "-clear")
	*password = ""
	mustRun(t, "summary")
}

func TestExportImportReset(t *testing.T) {
	file := testFile(t)
	mustRun(t, "add", "-amount", "200", "-pillar", "2", "Groceries")

	backup := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "-o", backup)
	if out := mustRun(t, "export"); !strings.Contains(out, `"cashBalance": -200`) {
		t.Errorf("export output:\n%s", out)
	}

	if out, _ := run(t, "n\n", "reset", "-all"); !strings.Contains(out, "Nothing changed.") {
		t.Errorf("declined reset output:\n%s", out)
	}
	mustRun(t, "reset", "-all", "-y")
	s := load(t, file)
	checkBalance(t, s, 0)
	if len(s.AuditLogs) != 1 || s.AuditLogs[0].Action != wallet.ActionReset {
		t.Errorf("audit after reset = %+v", s.AuditLogs)
	}

	mustRun(t, "import", backup)
	s = load(t, file)
	checkBalance(t, s, -200)
	if s.AuditLogs[0].Action != wallet.ActionImport {
		t.Errorf("first audit entry = %s, want IMPORT", s.AuditLogs[0].Action)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"transactions": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, status := run(t, "", "import", bad); status != subcommands.ExitFailure {
		t.Errorf("invalid import: status %v, want failure", status)
	}
	checkBalance(t, load(t, file), -200)

	if _, status := run(t, "", "reset"); status != subcommands.ExitUsageError {
		t.Errorf("empty reset: status %v, want usage error", status)
	}
}

func TestReports(t *testing.T) {
	testFile(t)
	mustRun(t, "add", "-amount", "200", "-pillar", "2", "Groceries")

	if out := mustRun(t, "summary"); !strings.Contains(out, "Total Wealth") {
		t.Errorf("summary output:\n%s", out)
	}
	if out := mustRun(t, "report", "-m", "2024-03"); !strings.Contains(out, "Budget for March 2024") {
		t.Errorf("report output:\n%s", out)
	}
	if out := mustRun(t, "log"); !strings.Contains(out, "Groceries") {
		t.Errorf("log output:\n%s", out)
	}
	if out := mustRun(t, "check"); !strings.Contains(out, "matches 1 transactions") {
		t.Errorf("check output:\n%s", out)
	}
}

func TestSMS_Offline(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	file := testFile(t)

	out, status := run(t, "y\n", "sms", "-pillar", "living", "Purchase of EGP 250.50 at Carrefour")
	if status != subcommands.ExitSuccess {
		t.Fatalf("sms: status %v", status)
	}
	if !strings.Contains(out, "guessed") {
		t.Errorf("sms output:\n%s", out)
	}
	s := load(t, file)
	if !s.CashBalance.Equal(decimal.RequireFromString("-250.5")) {
		t.Errorf("balance = %s, want -250.5", s.CashBalance)
	}
	if s.Transactions[0].PillarID != "2" {
		t.Errorf("pillar = %s, want 2", s.Transactions[0].PillarID)
	}

	if _, status := run(t, "", "sms", "hello"); status != subcommands.ExitFailure {
		t.Errorf("sms without amount: status %v, want failure", status)
	}
	if out := mustRun(t, "advice"); strings.TrimSpace(out) == "" {
		t.Error("advice is empty")
	}
}

func TestResolveID(t *testing.T) {
	ids := []string{"abc1", "abc2", "def"}
	tests := []struct {
		prefix, want string
		err          bool
	}{
		{"def", "def", false},
		{"abc1", "abc1", false},
		{"d", "def", false},
		{"abc", "", true},
		{"x", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := resolveID("thing", tt.prefix, ids)
		if got != tt.want || (err != nil) != tt.err {
			t.Errorf("resolveID(%q) = %q, %v; want %q, error %v", tt.prefix, got, err, tt.want, tt.err)
		}
	}
}

func TestCompletion(t *testing.T) {
	c := Completion(flag.NewFlagSet("wlt", flag.ContinueOnError))
	for _, g := range Groups {
		for _, cmd := range g.Commands {
			if _, ok := c.Sub[cmd.Name()]; !ok {
				t.Errorf("no completion for %s", cmd.Name())
			}
		}
	}
	if _, ok := c.Sub["add"].Flags["pillar"]; !ok {
		t.Error("add has no -pillar completion")
	}
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/etnz/wallet"
)

// resolveID finds the single id starting with prefix.
func resolveID(kind, prefix string, ids []string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("missing %s id", kind)
	}
	var found []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no %s with id %q", kind, prefix)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use a longer prefix", prefix, len(found), kind)
	}
}

func ids[T any](list []T, id func(T) string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, id(e))
	}
	return out
}

func transactionID(w *wallet.Wallet, prefix string) (string, error) {
	return resolveID("transaction", prefix, ids(w.Transactions(), func(t wallet.Transaction) string { return t.ID }))
}

func installmentID(w *wallet.Wallet, prefix string) (string, error) {
	return resolveID("installment", prefix, ids(w.Installments(), func(i wallet.Installment) string { return i.ID }))
}

func receivableID(w *wallet.Wallet, prefix string) (string, error) {
	return resolveID("receivable", prefix, ids(w.Receivables(), func(r wallet.Receivable) string { return r.ID }))
}

func certificateID(w *wallet.Wallet, prefix string) (string, error) {
	return resolveID("certificate", prefix, ids(w.Certificates(), func(c wallet.Certificate) string { return c.ID }))
}

// pillarID accepts a pillar id or its name, case insensitive.
func pillarID(w *wallet.Wallet, s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing pillar")
	}
	for _, p := range w.Pillars() {
		if p.ID == s || strings.EqualFold(p.Name, s) {
			return p.ID, nil
		}
	}
	return "", fmt.Errorf("unknown pillar %q", s)
}

// subCategoryID accepts a sub-category id or its name within the pillar.
// An empty s means no sub-category.
func subCategoryID(w *wallet.Wallet, pillar, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	for _, sc := range w.SubCategories(pillar) {
		if sc.ID == s || strings.EqualFold(sc.Name, s) {
			return sc.ID, nil
		}
	}
	return "", fmt.Errorf("unknown sub-category %q in pillar %q", s, pillar)
}

// txType parses "income" or "expense".
func txType(s string) (wallet.TxType, error) {
	switch t := wallet.TxType(strings.ToUpper(s)); t {
	case wallet.Income, wallet.Expense:
		return t, nil
	}
	return "", fmt.Errorf("invalid type %q, expected income or expense", s)
}

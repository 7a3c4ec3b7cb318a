package wallet

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet applies operations to a State.
//
// Every mutation keeps CashBalance equal to the fold of the transaction
// effects, records an audit entry and then notifies the observers. A Wallet is
// not safe for concurrent use.
type Wallet struct {
	state     *State
	currency  string
	now       func() time.Time
	newID     func() string
	notifier  Notifier
	observers []func(*State)
}

// Option configures a Wallet.
type Option func(*Wallet)

// WithClock sets the clock used for timestamps and current month resolution.
func WithClock(now func() time.Time) Option { return func(w *Wallet) { w.now = now } }

// WithIDs sets the identifier generator.
func WithIDs(newID func() string) Option { return func(w *Wallet) { w.newID = newID } }

// WithNotifier sets the receiver of user notifications.
func WithNotifier(n Notifier) Option { return func(w *Wallet) { w.notifier = n } }

// WithCurrency sets the currency used in audit details and notifications.
func WithCurrency(cur string) Option { return func(w *Wallet) { w.currency = cur } }

// New returns a Wallet operating on s. A nil s starts from DefaultState.
func New(s *State, opts ...Option) *Wallet {
	if s == nil {
		s = DefaultState()
	}
	s.normalize()
	w := &Wallet{
		state:    s,
		currency: DefaultCurrency,
		now:      time.Now,
		newID:    uuid.NewString,
		notifier: discard{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the state the wallet operates on.
func (w *Wallet) State() *State { return w.state }

// Currency returns the display currency.
func (w *Wallet) Currency() string { return w.currency }

// Now returns the wallet's current time.
func (w *Wallet) Now() time.Time { return w.now() }

// Observe registers f to be called after every successful mutation.
func (w *Wallet) Observe(f func(*State)) { w.observers = append(w.observers, f) }

func (w *Wallet) changed() {
	for _, f := range w.observers {
		f(w.state)
	}
}

func (w *Wallet) notify(level Level, title, format string, args ...any) {
	w.notifier.Notify(Notification{Level: level, Title: title, Message: fmt.Sprintf(format, args...)})
}

func (w *Wallet) money(d decimal.Decimal) string { return M(d, w.currency).String() }

// Transactions returns the transactions, newest first.
func (w *Wallet) Transactions() []Transaction { return w.state.Transactions }

// Transaction returns the transaction with the given id.
func (w *Wallet) Transaction(id string) (Transaction, bool) {
	i := slices.IndexFunc(w.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return w.state.Transactions[i], true
}

// commit records draft as a new transaction at the head of the list and
// applies its effect on the balance. The draft ID is ignored and the date
// defaults to now.
func (w *Wallet) commit(draft Transaction) Transaction {
	tx := draft
	tx.ID = w.newID()
	if tx.Date.IsZero() {
		tx.Date = w.now()
	}
	w.state.Transactions = slices.Insert(w.state.Transactions, 0, tx)
	w.state.CashBalance = w.state.CashBalance.Add(tx.Effect())
	w.record(ActionAdd, TargetTransaction, tx.Description, "amount "+w.money(tx.Amount))
	return tx
}

// AddTransaction commits a new transaction. When silent is false the user is
// notified. It returns the stored transaction with its assigned id.
func (w *Wallet) AddTransaction(draft Transaction, silent bool) Transaction {
	tx := w.commit(draft)
	if !silent {
		w.notify(Success, "Transaction recorded", "%s (%s) was added.", tx.Description, w.money(tx.Amount))
	}
	w.changed()
	return tx
}

// UpdateTransaction replaces the transaction with the same id and moves the
// balance by the difference of effects. It reports false if no transaction
// has that id.
func (w *Wallet) UpdateTransaction(tx Transaction) bool {
	i := slices.IndexFunc(w.state.Transactions, func(t Transaction) bool { return t.ID == tx.ID })
	if i < 0 {
		return false
	}
	old := w.state.Transactions[i]
	if tx.Date.IsZero() {
		tx.Date = old.Date
	}
	w.state.CashBalance = w.state.CashBalance.Sub(old.Effect()).Add(tx.Effect())
	w.state.Transactions[i] = tx
	w.record(ActionUpdate, TargetTransaction, tx.Description, fmt.Sprintf("from %s to %s", w.money(old.Amount), w.money(tx.Amount)))
	w.notify(Info, "Transaction updated", "%s was updated.", tx.Description)
	w.changed()
	return true
}

// DeleteTransaction removes the transaction, reverses its balance effect and,
// when it settled an obligation period, reopens that period.
// It reports false if no transaction has that id.
func (w *Wallet) DeleteTransaction(id string) bool {
	i := slices.IndexFunc(w.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	tx := w.state.Transactions[i]
	w.state.CashBalance = w.state.CashBalance.Sub(tx.Effect())
	w.state.Transactions = slices.Delete(w.state.Transactions, i, i+1)
	w.reopen(tx)
	w.record(ActionDelete, TargetTransaction, tx.Description, "rollback "+w.money(tx.Amount))
	w.notify(Warning, "Transaction deleted", "%s was removed and the balance restored.", tx.Description)
	w.changed()
	return true
}

// reopen restores the obligation period settled by tx, if any.
// Obligations that no longer exist are left alone.
func (w *Wallet) reopen(tx Transaction) {
	if tx.SourceID == "" {
		return
	}
	switch tx.SourceType {
	case FromReceivable:
		if r := w.receivable(tx.SourceID); r != nil {
			r.reopen(tx.SourceMonth)
		}
	case FromInstallment:
		if i := w.installment(tx.SourceID); i != nil {
			i.reopen(tx.SourceMonth)
		}
	case FromCertificate:
		if c := w.certificate(tx.SourceID); c != nil {
			c.reopen(tx.SourceKind, tx.SourceMonth)
		}
	}
}

// removeKey deletes key from keys and reports whether it was there.
func removeKey(keys []string, key string) ([]string, bool) {
	i := slices.Index(keys, key)
	if i < 0 {
		return keys, false
	}
	return slices.Delete(keys, i, i+1), true
}

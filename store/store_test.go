package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/etnz/wallet"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memory records every write.
type memory struct {
	mu     sync.Mutex
	writes [][]byte
	err    error
}

func (m *memory) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, data)
	return nil
}

func (m *memory) Read(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.writes) == 0 {
		return nil, errors.New("empty")
	}
	return m.writes[len(m.writes)-1], nil
}

func (m *memory) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

func TestSaver_Debounce(t *testing.T) {
	mem := &memory{}
	s := NewSaver(mem, 50*time.Millisecond, zerolog.Nop())

	s.Schedule([]byte("1"))
	s.Schedule([]byte("2"))
	s.Schedule([]byte("3"))
	assert.True(t, s.Pending())

	assert.Eventually(t, func() bool { return mem.count() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	require.Equal(t, 1, mem.count(), "a burst must collapse into one write")
	assert.Equal(t, "3", string(mem.writes[0]))
	assert.False(t, s.Pending())
}

func TestSaver_Flush(t *testing.T) {
	mem := &memory{}
	s := NewSaver(mem, time.Hour, zerolog.Nop())

	s.Schedule([]byte("latest"))
	require.NoError(t, s.Flush(context.Background()))
	require.Equal(t, 1, mem.count())
	assert.Equal(t, "latest", string(mem.writes[0]))

	// nothing pending, nothing written.
	require.NoError(t, s.Flush(context.Background()))
	assert.Equal(t, 1, mem.count())
}

func TestSaver_Stop(t *testing.T) {
	mem := &memory{}
	s := NewSaver(mem, 20*time.Millisecond, zerolog.Nop())

	s.Schedule([]byte("dropped"))
	s.Stop()
	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, mem.count())
}

func TestSaver_WriteError(t *testing.T) {
	mem := &memory{err: errors.New("disk full")}
	s := NewSaver(mem, time.Hour, zerolog.Nop())

	s.Schedule([]byte("x"))
	assert.ErrorContains(t, s.Flush(context.Background()), "disk full")
}

func TestSaver_ObserveWallet(t *testing.T) {
	mem := &memory{}
	s := NewSaver(mem, time.Hour, zerolog.Nop())
	w := wallet.New(nil)
	w.Observe(s.Observe)

	w.AddTransaction(wallet.Transaction{Amount: decimal.NewFromInt(200), Description: "Groceries", Type: wallet.Expense, PillarID: "2"}, true)
	w.AddTransaction(wallet.Transaction{Amount: decimal.NewFromInt(1000), Description: "Salary", Type: wallet.Income, PillarID: "5"}, true)
	require.NoError(t, s.Flush(context.Background()))
	require.Equal(t, 1, mem.count())

	got, err := Restore(context.Background(), mem)
	require.NoError(t, err)
	assert.True(t, got.CashBalance.Equal(decimal.NewFromInt(800)), "balance = %v", got.CashBalance)
	assert.Len(t, got.Transactions, 2)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wallet.json")
	log := zerolog.Nop()

	// a missing file opens the default state.
	s := Open(path, log)
	assert.Len(t, s.Pillars, 5)

	s.CashBalance = decimal.NewFromInt(42)
	require.NoError(t, Backup(context.Background(), File(path), s))

	got := Open(path, log)
	assert.True(t, got.CashBalance.Equal(decimal.NewFromInt(42)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestOpen_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"cashBalance": 3}`), 0o600))

	s := Open(path, zerolog.Nop())
	assert.True(t, s.CashBalance.IsZero())
	assert.Empty(t, s.Transactions)
}

func TestRestore_Invalid(t *testing.T) {
	mem := &memory{writes: [][]byte{[]byte(`[]`)}}
	_, err := Restore(context.Background(), mem)
	assert.ErrorIs(t, err, wallet.ErrInvalidImportFormat)
}

package wallet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// this file contains functions to handle the snapshot format.
// A snapshot is a single JSON document holding the whole State. It is both
// the persisted file and the import/export format.

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrInvalidImportFormat is returned when a document is not a wallet snapshot.
var ErrInvalidImportFormat = errors.New("invalid import format")

// required lists the paths a snapshot must define to be accepted.
var required = []string{"$.transactions", "$.cashBalance"}

// DecodeState reads a snapshot. It fails with ErrInvalidImportFormat when the
// document lacks a transaction list or a cash balance.
func DecodeState(r io.Reader) (*State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read snapshot: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportFormat, err)
	}
	for _, path := range required {
		v, err := jsonpath.Get(path, doc)
		if err != nil || v == nil {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidImportFormat, path)
		}
	}
	if _, ok := mustGet("$.transactions", doc).([]any); !ok {
		return nil, fmt.Errorf("%w: transactions is not a list", ErrInvalidImportFormat)
	}

	s := new(State)
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportFormat, err)
	}
	s.normalize()
	return s, nil
}

func mustGet(path string, doc any) any {
	v, _ := jsonpath.Get(path, doc)
	return v
}

// EncodeState writes s as an indented snapshot.
func EncodeState(w io.Writer, s *State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	return nil
}

// MarshalState returns the snapshot bytes of s.
func MarshalState(s *State) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeState(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import replaces the whole state by s and records the import on top of the
// imported audit trail.
func (w *Wallet) Import(s *State) {
	s.normalize()
	w.state = s
	w.record(ActionImport, TargetData, "backup", fmt.Sprintf("%d transactions", len(s.Transactions)))
	w.notify(Success, "Data imported", "%d transactions restored.", len(s.Transactions))
	w.changed()
}

// ImportFrom decodes a snapshot from r and imports it. On error the state is
// left untouched.
func (w *Wallet) ImportFrom(r io.Reader) error {
	s, err := DecodeState(r)
	if err != nil {
		w.notify(Failure, "Import failed", "%v", err)
		return err
	}
	w.Import(s)
	return nil
}

// Export writes the current state as a snapshot.
func (w *Wallet) Export(out io.Writer) error {
	return EncodeState(out, w.state)
}

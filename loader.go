package wallet

import (
	"fmt"
	"os"
)

// LoadFile reads the snapshot stored at path.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func LoadFile(path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open wallet file %q: %w", path, err)
	}
	defer f.Close()

	s, err := DecodeState(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode wallet file %q: %w", path, err)
	}
	return s, nil
}

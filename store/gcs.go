package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/etnz/wallet"
)

// Bucket is a snapshot object in Cloud Storage.
// It assumes Application Default Credentials are configured.
type Bucket struct {
	Name   string
	Object string
}

func (b Bucket) String() string { return fmt.Sprintf("gs://%s/%s", b.Name, b.Object) }

// Write uploads data to the object.
func (b Bucket) Write(ctx context.Context, data []byte) error {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(b.Name).Object(b.Object).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return fmt.Errorf("upload to %s: %w", b, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize upload to %s: %w", b, err)
	}
	return nil
}

// Read downloads the object.
func (b Bucket) Read(ctx context.Context) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(b.Name).Object(b.Object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", b, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", b, err)
	}
	return data, nil
}

// Reader reads snapshot bytes.
type Reader interface {
	Read(ctx context.Context) ([]byte, error)
}

// Backup writes a snapshot of s to dst.
func Backup(ctx context.Context, dst Writer, s *wallet.State) error {
	data, err := wallet.MarshalState(s)
	if err != nil {
		return err
	}
	return dst.Write(ctx, data)
}

// Restore reads a snapshot from src. The document is validated like an import.
func Restore(ctx context.Context, src Reader) (*wallet.State, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return wallet.DecodeState(bytes.NewReader(data))
}

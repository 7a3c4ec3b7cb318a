package store

import (
	"context"
	"sync"
	"time"

	"github.com/etnz/wallet"
	"github.com/rs/zerolog"
)

// Saver debounces snapshot writes: every scheduled snapshot replaces the
// pending one and restarts the delay, so a burst of mutations ends in a
// single write of the latest state.
type Saver struct {
	dst   Writer
	delay time.Duration
	log   zerolog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending []byte

	wmu sync.Mutex // serializes writes
}

// NewSaver returns a Saver writing to dst after delay.
func NewSaver(dst Writer, delay time.Duration, log zerolog.Logger) *Saver {
	return &Saver{dst: dst, delay: delay, log: log}
}

// Schedule replaces the pending snapshot by data and restarts the delay.
func (s *Saver) Schedule(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = data
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// Observe encodes st and schedules it. It is meant to be registered with
// wallet.Wallet.Observe so that the snapshot reflects the state at mutation
// time.
func (s *Saver) Observe(st *wallet.State) {
	data, err := wallet.MarshalState(st)
	if err != nil {
		s.log.Error().Err(err).Msg("cannot encode wallet snapshot")
		return
	}
	s.Schedule(data)
}

// Pending reports whether a snapshot is waiting to be written.
func (s *Saver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

func (s *Saver) fire() {
	if err := s.write(context.Background()); err != nil {
		s.log.Error().Err(err).Msg("cannot save wallet")
	}
}

// take returns the pending snapshot and clears it.
func (s *Saver) take() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	data := s.pending
	s.pending = nil
	return data
}

func (s *Saver) write(ctx context.Context) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	data := s.take()
	if data == nil {
		return nil
	}
	if err := s.dst.Write(ctx, data); err != nil {
		return err
	}
	s.log.Debug().Int("bytes", len(data)).Msg("wallet saved")
	return nil
}

// Flush writes the pending snapshot now, if any.
func (s *Saver) Flush(ctx context.Context) error {
	return s.write(ctx)
}

// Stop cancels the pending write.
func (s *Saver) Stop() {
	s.take()
}

package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mcoot/sosgame/internal/model"
)

// Stream reads a Slot forward one line at a time and rewrites it whole.
//
// A Stream holds at most one open reader, from Reset until the last line has
// been consumed. Write releases that reader before replacing the slot.
// Not safe for concurrent use.
type Stream struct {
	slot   Slot
	logger *slog.Logger

	reader  io.ReadCloser
	scanner *bufio.Scanner
	line    string
	hasLine bool
	err     error
}

// NewStream creates a stream over the given slot. The stream starts
// exhausted; call Reset to begin reading.
func NewStream(slot Slot, logger *slog.Logger) *Stream {
	return &Stream{
		slot:   slot,
		logger: logger,
	}
}

// Reset (re)opens the slot and positions the stream at its first line.
// An absent or unreadable slot leaves the stream exhausted; for the
// unreadable case the cause is available from Err.
func (s *Stream) Reset(ctx context.Context) {
	s.release()
	s.err = nil

	reader, err := s.slot.Open(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrSlotEmpty) {
			s.err = err
			s.logger.Warn("could not open save slot", slog.String("error", err.Error()))
		}
		return
	}

	s.reader = reader
	s.scanner = bufio.NewScanner(reader)
	s.advance()
}

// HasNext reports whether another line is available. Once the stream is
// exhausted the underlying reader is released; repeated calls are safe.
func (s *Stream) HasNext() bool {
	if !s.hasLine {
		s.release()
	}
	return s.hasLine
}

// Next returns the next line and advances the stream
func (s *Stream) Next() (string, error) {
	if !s.hasLine {
		return "", model.ErrStreamExhausted
	}
	line := s.line
	s.advance()
	return line, nil
}

// Err returns the error, if any, that stopped the last Reset or read early.
// Reaching the end of the slot and an empty slot are not errors.
func (s *Stream) Err() error {
	return s.err
}

// Write replaces the slot's contents with the given lines, newline separated
func (s *Stream) Write(ctx context.Context, lines []string) error {
	s.release()

	data := strings.Join(lines, "\n")
	if err := s.slot.Replace(ctx, []byte(data)); err != nil {
		s.logger.Error("failed to write save slot", slog.String("error", err.Error()))
		return fmt.Errorf("write save slot: %w", err)
	}
	return nil
}

// Close releases any open reader. The stream can be Reset again afterwards.
func (s *Stream) Close() error {
	s.release()
	return nil
}

func (s *Stream) advance() {
	if s.scanner != nil && s.scanner.Scan() {
		s.line = strings.TrimSuffix(s.scanner.Text(), "\r")
		s.hasLine = true
		return
	}

	s.line = ""
	s.hasLine = false
	if s.scanner != nil {
		if err := s.scanner.Err(); err != nil {
			s.err = err
			s.logger.Warn("failed reading save slot", slog.String("error", err.Error()))
		}
	}
}

func (s *Stream) release() {
	if s.reader != nil {
		if err := s.reader.Close(); err != nil {
			s.logger.Debug("failed to close save slot reader", slog.String("error", err.Error()))
		}
	}
	s.reader = nil
	s.scanner = nil
	s.line = ""
	s.hasLine = false
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package gavia

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
)

// LineTransport is the physical-link collaborator: a blocking line read and
// a whole-buffer write. ReadLine blocks until a newline or stream end; the
// implementation strips any leading NUL padding before the line reaches the
// engine. Close must unblock a pending ReadLine.
type LineTransport interface {
	ReadLine() (string, error)
	Write(p []byte) (n int, err error)
	Close() error
}

// SessionOption configures a Session at construction.
type SessionOption func(*Session)

// WithLogger routes the session's diagnostics to the given logger.
func WithLogger(log zerolog.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithQueueSize bounds the decoded-record queue.
func WithQueueSize(n int) SessionOption {
	return func(s *Session) { s.queueSize = n }
}

// WithDecodeOptions sets the options threaded through every record decode.
func WithDecodeOptions(opts DecodeOptions) SessionOption {
	return func(s *Session) { s.decodeOpts = opts }
}

// Session owns one device conversation: a background worker pulls lines
// from the transport, drives the framer and decoder, and is the sole writer
// into the record queue. Callers read the queue and send commands; the two
// directions share nothing but the transport, so no coordination is needed
// between them.
type Session struct {
	transport  LineTransport
	log        zerolog.Logger
	decodeOpts DecodeOptions
	queueSize  int

	// defaults holds command arguments merged under caller-supplied ones.
	// Read-mostly, written rarely, from any goroutine.
	defaults *xsync.Map[string, any]

	records chan *Record
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSession starts the background reader over the given transport.
func NewSession(transport LineTransport, opts ...SessionOption) *Session {
	s := &Session{
		transport: transport,
		log:       zerolog.Nop(),
		queueSize: DefaultQueueSize,
		defaults:  xsync.NewMap[string, any](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.records = make(chan *Record, s.queueSize)
	s.done = make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.run(ctx)
	return s
}

// Records returns the decoded-record queue. Records are delivered in wire
// order; when the queue is full the oldest undelivered record is dropped.
func (s *Session) Records() <-chan *Record {
	return s.records
}

// Done is closed when the background worker exits, whether through Close or
// because the transport failed. Records already queued remain readable.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// SetDefault stores a command argument applied to every SendCommand unless
// the caller supplies the same key.
func (s *Session) SetDefault(key string, value any) {
	s.defaults.Store(key, value)
}

// SendCommand encodes the named catalog command, merging the session
// defaults under the supplied arguments, and writes it to the transport.
// The command is fully serialized before the first byte is written.
func (s *Session) SendCommand(name string, args map[string]any) error {
	schema, err := CommandSchema(name)
	if err != nil {
		return err
	}
	defaults := make(map[string]any)
	s.defaults.Range(func(key string, value any) bool {
		defaults[key] = value
		return true
	})
	wire, err := schema.Encode(args, defaults)
	if err != nil {
		return err
	}
	if _, err := s.transport.Write(wire); err != nil {
		return fmt.Errorf("command %s: %w", name, err)
	}
	s.log.Debug().Str("command", name).Msg("command sent")
	return nil
}

// Close stops the background worker and closes the transport. Closing the
// transport is what unblocks a pending line read; shutdown latency is
// otherwise bounded by the transport's own read timeout.
func (s *Session) Close() error {
	s.cancel()
	err := s.transport.Close()
	<-s.done
	return err
}

// run is the background worker: the only goroutine that touches the framer
// and the only writer into the record queue. Cancellation is polled once
// per line; a partial record at cancellation has no defined semantics and
// is discarded like any other truncation.
func (s *Session) run(ctx context.Context) {
	defer close(s.done)
	framer := NewFramer()

	for {
		if ctx.Err() != nil {
			s.logDiag(framer.Flush())
			return
		}
		line, err := s.transport.ReadLine()
		if err != nil {
			s.logDiag(framer.Flush())
			if !errors.Is(err, io.EOF) && ctx.Err() == nil {
				s.log.Warn().Err(err).Msg("transport read failed")
			}
			return
		}

		raw, diag := framer.PushLine(line)
		s.logDiag(diag)
		if raw == nil {
			continue
		}
		s.dispatch(raw)
	}
}

// dispatch decodes one framed record and enqueues it. No outcome here may
// propagate past the record boundary: a bad record is logged and dropped,
// and the framer never sees it.
func (s *Session) dispatch(raw *RawRecord) {
	schema, err := RecordSchema(raw.Tag)
	if err != nil {
		s.log.Warn().Str("tag", raw.Tag).Msg("unhandled response type")
		return
	}
	record, err := schema.Decode(raw, s.decodeOpts)
	if err != nil {
		if errors.Is(err, ErrSkipRecord) {
			s.log.Debug().Str("tag", raw.Tag).Msg("record skipped")
		} else {
			s.log.Error().Err(err).Str("tag", raw.Tag).Msg("record decode failed")
		}
		return
	}

	select {
	case s.records <- record:
	default:
		// Queue full: drop the oldest record, keep the newest. The worker
		// is the sole sender, so the retry cannot race another producer.
		select {
		case <-s.records:
		default:
		}
		select {
		case s.records <- record:
		default:
		}
	}
	s.log.Debug().Str("tag", raw.Tag).Msg("captured response")
}

// logDiag reports an advisory framing diagnostic. Truncations are expected
// on this transport and self-healing, so they never rank above warn.
func (s *Session) logDiag(diag error) {
	if diag == nil {
		return
	}
	var trunc *TruncationDiagnostic
	if errors.As(diag, &trunc) {
		s.log.Warn().Str("reason", trunc.Reason).Int("dropped", trunc.Dropped).Msg("record truncated")
		return
	}
	s.log.Warn().Err(diag).Msg("framing diagnostic")
}

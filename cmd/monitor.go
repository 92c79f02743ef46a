// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var captureFile string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Display decoded meter records as they arrive",
	Long: `Continuously decode and display adapter notifications.

Each record is shown with its arrival time, response type, and typed field
values. Torn records are resynchronized and reported as diagnostics without
interrupting the stream.

With --capture, every decoded record is also appended to a CBOR stream file
that can be re-rendered later with the replay command.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().StringVar(&captureFile, "capture", "", "Append decoded records to a CBOR capture file")
}

// captureEntry is the on-disk form of one decoded record.
type captureEntry struct {
	Time   time.Time      `cbor:"time"`
	Tag    string         `cbor:"tag"`
	Fields []captureField `cbor:"fields"`
}

type captureField struct {
	Name  string `cbor:"name"`
	Value any    `cbor:"value"`
}

// captureValue maps decoded values onto CBOR-friendly types. Decimals are
// stored as strings so a capture file can be read without this module's
// type registry.
func captureValue(value any) any {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = captureValue(item)
		}
		return out
	default:
		return value
	}
}

func newCaptureEntry(at time.Time, record *gavia.Record) captureEntry {
	entry := captureEntry{Time: at, Tag: record.Tag}
	for _, field := range record.Fields {
		if field.Name == gavia.ResponseTypeField {
			continue
		}
		entry.Fields = append(entry.Fields, captureField{
			Name:  field.Name,
			Value: captureValue(field.Value),
		})
	}
	return entry
}

func runMonitor(cmd *cobra.Command, args []string) error {
	session, connInfo, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	var capture *cbor.Encoder
	if captureFile != "" {
		f, err := os.OpenFile(captureFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("capture file: %w", err)
		}
		defer f.Close()
		capture = cbor.NewEncoder(f)
	}

	fmt.Printf("Loonstat - Meter Record Monitor\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Press Ctrl+C to exit\n\n")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	emit := func(record *gavia.Record) error {
		now := time.Now()
		renderRecord(os.Stdout, now, record.Tag, record.Fields)
		if capture != nil {
			if err := capture.Encode(newCaptureEntry(now, record)); err != nil {
				return fmt.Errorf("capture write: %w", err)
			}
		}
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case record := <-session.Records():
			if err := emit(record); err != nil {
				return err
			}
		case <-session.Done():
			// Connection gone: drain what was already decoded, then stop.
			for {
				select {
				case record := <-session.Records():
					if err := emit(record); err != nil {
						return err
					}
				default:
					return fmt.Errorf("connection closed")
				}
			}
		}
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <capture-file>",
	Short: "Re-render a CBOR capture file",
	Long: `Render the records of a capture file written by monitor --capture,
in the same format the monitor command displays live.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	dec := cbor.NewDecoder(f)
	count := 0
	for {
		var entry captureEntry
		if err := dec.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("capture entry %d: %w", count+1, err)
		}
		fields := make([]gavia.RecordField, len(entry.Fields))
		for i, field := range entry.Fields {
			fields[i] = gavia.RecordField{Name: field.Name, Value: field.Value}
		}
		renderRecord(os.Stdout, entry.Time, entry.Tag, fields)
		count++
	}

	fmt.Printf("\n%d records\n", count)
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"fmt"
	"strings"

	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List the command and record catalogs",
	Long: `Show every command the adapter accepts with its argument list, and
every notification type it emits with its field list. No connection needed.`,
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)
}

func describeField(f *gavia.Field) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-26s %s", f.Name, f.Kind)
	if f.Sequence {
		b.WriteString(" (repeats)")
	}
	if f.Required {
		b.WriteString(" (required)")
	}
	if f.Min != 0 || (f.Max != 0 && f.Max < 0xffffffff) {
		fmt.Fprintf(&b, " [0x%x..0x%x]", f.Min, f.Max)
	}
	return b.String()
}

func runDescribe(cmd *cobra.Command, args []string) error {
	fmt.Println("Commands:")
	for _, name := range gavia.CommandNames() {
		schema, err := gavia.CommandSchema(name)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", name)
		if len(schema.Fields) == 0 {
			fmt.Println("  (no arguments)")
			continue
		}
		for i := range schema.Fields {
			fmt.Println(describeField(&schema.Fields[i]))
		}
	}

	fmt.Println("\nRecords:")
	for _, tag := range gavia.RecordTags() {
		schema, err := gavia.RecordSchema(tag)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n", tag)
		for i := range schema.Fields {
			fmt.Println(describeField(&schema.Fields[i]))
		}
		if len(schema.Scaled) > 0 {
			fmt.Printf("  scaled: %s\n", strings.Join(schema.Scaled, ", "))
		}
	}
	return nil
}

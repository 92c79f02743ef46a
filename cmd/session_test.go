// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/shopspring/decimal"
)

func TestParseArgValue(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"0x10", uint64(16)},
		{"42", uint64(42)},
		{"Y", true},
		{"N", false},
		{"true", true},
		{"false", false},
		{"Delivered", "Delivered"},
		{"Join: Fail", "Join: Fail"},
	}
	for _, tt := range tests {
		if got := parseArgValue(tt.text); got != tt.want {
			t.Errorf("parseArgValue(%q) = %v (%T), want %v (%T)", tt.text, got, got, tt.want, tt.want)
		}
	}
}

func TestParseCommandArgs(t *testing.T) {
	args, err := parseCommandArgs([]string{"Frequency=0x10", "Enabled=Y", "Event=price"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if args["Frequency"] != uint64(16) || args["Enabled"] != true || args["Event"] != "price" {
		t.Errorf("args = %v", args)
	}

	for _, bad := range []string{"Frequency", "=0x10"} {
		if _, err := parseCommandArgs([]string{bad}); err == nil {
			t.Errorf("parseCommandArgs(%q) accepted", bad)
		}
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"hex integer", uint64(0x188), "0x188"},
		{"bool", true, "Y"},
		{"decimal", decimal.RequireFromString("0.392"), "0.392"},
		{"duration", 30 * time.Minute, "30m0s"},
		{"bytes", []byte{0xde, 0xad}, "dead"},
		{"sequence", []any{uint64(1), uint64(2)}, "[0x1 0x2]"},
		{"text", "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderRecord(t *testing.T) {
	var b strings.Builder
	at := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)
	renderRecord(&b, at, "InstantaneousDemand", []gavia.RecordField{
		{Name: gavia.ResponseTypeField, Value: "InstantaneousDemand"},
		{Name: "Demand", Value: decimal.RequireFromString("0.392")},
	})
	out := b.String()
	if !strings.Contains(out, "[12:30:00.000] InstantaneousDemand") {
		t.Errorf("header missing: %q", out)
	}
	if !strings.Contains(out, "  Demand: 0.392") {
		t.Errorf("field missing: %q", out)
	}
	if strings.Contains(out, gavia.ResponseTypeField) {
		t.Errorf("response_type entry should not render: %q", out)
	}
}

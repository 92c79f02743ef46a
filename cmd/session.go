// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/lakeward/loonstat/pkg/gavia"
	"github.com/shopspring/decimal"
)

// openSession opens the configured connection and starts a protocol session
// over it, seeded with the config file's command defaults.
func openSession() (*gavia.Session, string, error) {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		return nil, "", err
	}

	opts := []gavia.SessionOption{
		gavia.WithLogger(newLogger()),
		gavia.WithDecodeOptions(gavia.DecodeOptions{UseFormatting: useFormatting}),
	}
	if loadedConfig.QueueSize > 0 {
		opts = append(opts, gavia.WithQueueSize(loadedConfig.QueueSize))
	}

	session := gavia.NewSession(NewLineConn(conn), opts...)
	for key, value := range loadedConfig.Defaults {
		session.SetDefault(key, parseArgValue(value))
	}
	return session, connInfo, nil
}

// parseArgValue coerces command-line argument text to the value types the
// command encoder accepts: integers (0x prefix for hex), booleans, and
// everything else as free text.
func parseArgValue(text string) any {
	switch text {
	case "Y", "true":
		return true
	case "N", "false":
		return false
	}
	if n, err := strconv.ParseUint(text, 0, 64); err == nil {
		return n
	}
	return text
}

// renderRecord prints one decoded record in the log format shared by
// monitor and replay.
func renderRecord(w io.Writer, at time.Time, tag string, fields []gavia.RecordField) {
	fmt.Fprintf(w, "[%s] %s\n", at.Format("15:04:05.000"), tag)
	for _, field := range fields {
		if field.Name == gavia.ResponseTypeField {
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", field.Name, formatValue(field.Value))
	}
}

// formatValue renders one decoded field value for display.
func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case uint64:
		return fmt.Sprintf("0x%x", v)
	case bool:
		if v {
			return "Y"
		}
		return "N"
	case time.Time:
		return v.Format(time.RFC3339)
	case time.Duration:
		return v.String()
	case decimal.Decimal:
		return v.String()
	case []byte:
		return hex.EncodeToString(v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

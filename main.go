// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward
//
// Loonstat - RAVEn Smart Meter Protocol Client
//
// A CLI tool for monitoring and commanding RAVEn(TM) smart meter adapters
// over serial or WebSocket links.

package main

import (
	"os"

	"github.com/lakeward/loonstat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

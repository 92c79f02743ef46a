// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Test connection stability with raw line logging",
	Long: `Read raw lines from the adapter without decoding them.

Shows exactly what arrives on the wire, NUL padding stripped. Useful for
debugging connection stability and framing issues before involving the
protocol engine.

Exit codes:
  0 - Test completed normally
  1 - Test failed
  2 - Connection error`,
	RunE: runProbe,
}

var probeDuration int

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeDuration, "duration", 30, "Test duration in seconds")
}

func runProbe(cmd *cobra.Command, args []string) error {
	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	line := NewLineConn(conn)
	defer line.Close()

	fmt.Printf("Connection Stability Test\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Duration: %d seconds\n\n", probeDuration)

	lineChan := make(chan string, 100)
	errChan := make(chan error, 1)

	go func() {
		for {
			l, err := line.ReadLine()
			if err != nil {
				errChan <- err
				return
			}
			lineChan <- l
		}
	}()

	endTime := time.Now().Add(time.Duration(probeDuration) * time.Second)
	bytesReceived := 0
	linesReceived := 0

	fmt.Printf("Listening for data...\n\n")

	for time.Now().Before(endTime) {
		select {
		case l := <-lineChan:
			bytesReceived += len(l)
			linesReceived++
			fmt.Printf("[%s] %q\n", time.Now().Format("15:04:05.000"), l)

		case err := <-errChan:
			fmt.Printf("\n[%s] Connection error: %v\n",
				time.Now().Format("15:04:05.000"), err)
			fmt.Printf("\n--- Test Results ---\n")
			fmt.Printf("Lines received: %d\n", linesReceived)
			fmt.Printf("Bytes received: %d\n", bytesReceived)
			fmt.Printf("Result: FAILED (connection error)\n")
			os.Exit(1)

		case <-time.After(1 * time.Second):
			// Heartbeat so the test visibly keeps running
			remaining := time.Until(endTime).Seconds()
			fmt.Printf("[%s] Still connected... (%.0fs remaining)\n",
				time.Now().Format("15:04:05.000"), remaining)
		}
	}

	fmt.Printf("\n--- Test Results ---\n")
	fmt.Printf("Duration: %d seconds\n", probeDuration)
	fmt.Printf("Lines received: %d\n", linesReceived)
	fmt.Printf("Bytes received: %d\n", bytesReceived)
	fmt.Printf("Result: PASSED (connection stable)\n")

	return nil
}

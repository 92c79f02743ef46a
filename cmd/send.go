// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var sendWait time.Duration

var sendCmd = &cobra.Command{
	Use:   "send <command> [key=value ...]",
	Short: "Encode and transmit one command",
	Long: `Send a catalog command to the adapter.

Arguments are given as key=value pairs; keys match the command's argument
names case-insensitively. Integer values accept a 0x prefix for hex, boolean
values are Y/N or true/false. Config file defaults fill in absent arguments
(typically MeterMacId).

Responses arriving within the --wait window are displayed. Use
'loonstat describe' to list the available commands and their arguments.

Examples:
  loonstat -p /dev/ttyUSB0 send get_device_info
  loonstat -p /dev/ttyUSB0 send set_fast_poll Frequency=0x10 Duration=0x3c
  loonstat -p /dev/ttyUSB0 send get_profile_data NumberOfPeriods=0x4 EndTime=0x0 IntervalChannel=Delivered`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().DurationVar(&sendWait, "wait", 5*time.Second, "How long to wait for responses (0 to fire and forget)")
}

func parseCommandArgs(pairs []string) (map[string]any, error) {
	args := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("malformed argument %q (want key=value)", pair)
		}
		args[key] = parseArgValue(value)
	}
	return args, nil
}

func runSend(cmd *cobra.Command, cmdArgs []string) error {
	name := cmdArgs[0]
	args, err := parseCommandArgs(cmdArgs[1:])
	if err != nil {
		return err
	}

	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.SendCommand(name, args); err != nil {
		return err
	}

	if sendWait <= 0 {
		return nil
	}

	deadline := time.NewTimer(sendWait)
	defer deadline.Stop()
	for {
		select {
		case record := <-session.Records():
			renderRecord(os.Stdout, time.Now(), record.Tag, record.Fields)
		case <-session.Done():
			return fmt.Errorf("connection closed")
		case <-deadline.C:
			return nil
		}
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Del Ward, Lakeward

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config mirrors the persistent flags plus per-installation extras: command
// argument defaults (typically the meter's MAC) and the record queue bound.
type Config struct {
	Port        string `yaml:"port"`
	Baud        int    `yaml:"baud"`
	URL         string `yaml:"url"`
	Username    string `yaml:"username"`
	NoSSLVerify bool   `yaml:"no_ssl_verify"`
	Formatting  bool   `yaml:"formatting"`
	QueueSize   int    `yaml:"queue_size"`

	// Defaults are merged under the arguments of every sent command.
	// Values use the same syntax as `send` key=value arguments.
	Defaults map[string]string `yaml:"defaults"`
}

// loadedConfig holds the parsed config file for the current invocation.
// Empty when no --config was given.
var loadedConfig Config

// applyConfig reads the config file and fills in any connection flag the user
// did not set on the command line. Flags always win over file values.
func applyConfig(cmd *cobra.Command) error {
	if configPath == "" {
		return nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &loadedConfig); err != nil {
		return fmt.Errorf("config %s: %w", configPath, err)
	}

	flags := cmd.Root().PersistentFlags()
	if !flags.Changed("port") && loadedConfig.Port != "" {
		portName = loadedConfig.Port
	}
	if !flags.Changed("baud") && loadedConfig.Baud != 0 {
		baudRate = loadedConfig.Baud
	}
	if !flags.Changed("url") && loadedConfig.URL != "" {
		wsURL = loadedConfig.URL
	}
	if !flags.Changed("username") && loadedConfig.Username != "" {
		wsUsername = loadedConfig.Username
	}
	if !flags.Changed("no-ssl-verify") && loadedConfig.NoSSLVerify {
		wsNoSSLVerify = true
	}
	if !flags.Changed("formatting") && loadedConfig.Formatting {
		useFormatting = true
	}
	return nil
}

// Copyright 2025 The go-ndsort Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/go-ndsort/ndsort/envconfig"
)

func newCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "ndsort",
		Short:         "Batched multi-dimensional sort engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger())
		},
	}

	sortCmd := newSortCmd()
	benchCmd := newBenchCmd()
	envCmd := newEnvCmd()

	envVars := envconfig.AsMap()
	for _, cmd := range []*cobra.Command{sortCmd, benchCmd} {
		appendEnvDocs(cmd, []envconfig.EnvVar{envVars["NDSORT_DEBUG"], envVars["NDSORT_NUM_THREADS"]})
	}

	rootCmd.AddCommand(sortCmd, benchCmd, envCmd)
	return rootCmd
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: envconfig.LogLevel()}))
}

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

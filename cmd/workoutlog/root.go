package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	env        string
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "workoutlog",
	Short: "Workout log service and tools",
	Long:  `Logs reps and timed holds, and reports streaks, rolling averages and movement history.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment [prod | production | dev | development]")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.toml", "path for the TOML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional file with secrets as env vars")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

// loadEnvFile loads secrets from path without overriding already set env vars.
// A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Tracef("no env file at [%s]", path)
			return nil
		}
		return fmt.Errorf("load env file [%s]: %w", path, err)
	}
	log.Debugf("env vars loaded from [%s]", path)
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/hexennacht/restbind/cmd/restbind/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "restbind",
	Short: "Contract explorer for route-tree APIs",
	Long: `A command-line explorer for declarative API contracts.

Given a YAML contract describing a nested route tree, restbind binds the
tree to a base URL and lets you inspect routes and invoke individual
operations from the shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("contract", "f", "", "contract file (YAML route tree)")
	rootCmd.PersistentFlags().StringP("base-url", "a", "", "base URL override")
	rootCmd.PersistentFlags().StringArrayP("header", "H", nil, "base header as name=value (repeatable)")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Int("retry-max", 0, "transport retries for transient failures")

	// Bind flags to viper
	_ = viper.BindPFlag("contract", rootCmd.PersistentFlags().Lookup("contract"))
	_ = viper.BindPFlag("base-url", rootCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("header", rootCmd.PersistentFlags().Lookup("header"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("retry-max", rootCmd.PersistentFlags().Lookup("retry-max"))

	// Add commands
	rootCmd.AddCommand(commands.NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(commands.NewDescribeCommand())
	rootCmd.AddCommand(commands.NewCallCommand())
}

func initConfig() {
	viper.SetEnvPrefix("RESTBIND")
	viper.AutomaticEnv()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

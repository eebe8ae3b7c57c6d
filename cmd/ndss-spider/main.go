// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ndss-spider CLI, which mirrors a
// conference year's accepted papers and slides to local disk.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ndss-spider/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// log receives diagnostics; it is built from --log-level before any
// subcommand runs.
var log = zap.NewNop()

// rootCmd is the base command for the ndss-spider CLI.
var rootCmd = &cobra.Command{
	Use:   "ndss-spider",
	Short: "Mirror NDSS accepted papers and slides",
	Long: `ndss-spider downloads the accepted-paper listing of an NDSS symposium year,
follows each paper's detail page, saves the paper PDF and slide deck when
available, and writes a paper_list index next to them.

Files already on disk are never downloaded again, so re-running a crawl
only fetches what is missing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log = logger.New(viper.GetString("log_level"), cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ndss-spider.yaml or ~/.config/ndss-spider/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "diagnostic log level: debug, info, warn, error")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ndss-spider")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ndss-spider"))
		}
	}

	viper.SetEnvPrefix("NDSS_SPIDER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = log.Sync()
	if err != nil {
		os.Exit(1)
	}
}

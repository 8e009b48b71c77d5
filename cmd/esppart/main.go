// Command esppart converts, validates and packages ESP-IDF partition tables.
//
// Usage:
//
//	esppart convert partitions.csv partitions.bin
//	esppart convert partitions.bin partitions.csv
//	esppart validate partitions.csv
//	esppart show partitions.bin --output json
//	esppart pack partitions.csv partitions.ptz --compression lz4
//	esppart unpack partitions.ptz partitions.bin
package main

import (
	"errors"
	"fmt"
	"os"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"

	"github.com/arloliu/esppart/internal/config"
	"github.com/arloliu/esppart/report"
	"github.com/arloliu/esppart/table"
)

var log = logging.Logger("esppart")

// cli carries the state shared by all subcommands.
type cli struct {
	configPath string
	debug      bool
	noVerify   bool
	cfg        *config.Config
}

// tableError attaches the table an error was found in, so that the
// diagnostic can show the flash ranges involved.
type tableError struct {
	table *table.Table
	err   error
}

func (e *tableError) Error() string { return e.err.Error() }

func (e *tableError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	c := &cli{cfg: config.DefaultConfig()}

	rootCmd := &cobra.Command{
		Use:   "esppart",
		Short: "ESP-IDF partition table tool",
		Long: `esppart converts ESP-IDF partition tables between their CSV and
binary forms, validates them against the bootloader rules and packs them
into compressed archives for update bundles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&c.noVerify, "no-verify", false, "skip table validation")

	rootCmd.AddCommand(
		c.newConvertCmd(),
		c.newValidateCmd(),
		c.newShowCmd(),
		c.newPackCmd(),
		c.newUnpackCmd(),
	)

	return rootCmd
}

func (c *cli) setup() error {
	cfg, err := config.LoadConfig(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.cfg = cfg

	if c.debug {
		logging.SetAllLoggers(logging.LevelDebug)
	} else {
		level, err := logging.LevelFromString(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		logging.SetAllLoggers(level)
	}

	if c.configPath != "" {
		log.Debugf("Loaded config from %s", c.configPath)
	}

	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var te *tableError
		if errors.As(err, &te) {
			fmt.Fprintln(os.Stderr, report.Describe(te.table, te.err))
		} else {
			fmt.Fprintln(os.Stderr, report.Describe(nil, err))
		}
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/oy3o/efx"
	"github.com/oy3o/efx/internal/logging"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	logLevel  string
	bigEndian bool
	gameName  string
	rootCmd   *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "efxcheck",
		Short:         "Inspect and verify EFX effect files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&bigEndian, "big-endian", false, "Decode files as big endian")
	rootCmd.PersistentFlags().StringVar(&gameName, "game", "", "Skip detection and force a game (FinalFantasyXII, TacticsOgrePSP, TacticsOgreReborn)")

	rootCmd.AddCommand(newRoundtripCmd(), newInfoCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() hclog.Logger {
	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	return logging.NewLogger("efxcheck", level, os.Stderr)
}

// readOptions turns the persistent flags into parser options.
func readOptions(log hclog.Logger) ([]efx.ReadOption, error) {
	opts := []efx.ReadOption{efx.WithReadLogger(log)}
	if bigEndian {
		opts = append(opts, efx.WithEndian(efx.BigEndian))
	}
	if gameName != "" {
		game, err := efx.ParseGame(gameName)
		if err != nil {
			return nil, err
		}
		opts = append(opts, efx.WithGame(game))
	}
	return opts, nil
}

// Package cli implements the veclink command line.
package cli

import (
	"fmt"
	"os"

	"github.com/hiroki-ota/veclink/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	flagHost      string
	flagPort      int
	flagDebug     bool
	flagRounds    int
	flagVectorLen int
	flagDBPath    string
)

var rootCmd = &cobra.Command{
	Use:  `veclink`,
	Long: `veclink moves uint32 arrays between the two processes of a pipeline run`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "path to a TOML config file")
	pf.StringVar(&flagHost, "host", "", "coordinator address (worker only)")
	pf.IntVar(&flagPort, "port", 0, "TCP port to listen on or dial")
	pf.BoolVar(&flagDebug, "debug", false, "log every transfer")
	pf.IntVar(&flagRounds, "rounds", 0, "number of exchange rounds")
	pf.IntVar(&flagVectorLen, "vector-len", 0, "values per vector")
	pf.StringVar(&flagDBPath, "db", "", "path to the session database")

	rootCmd.AddCommand(coordinatorCmd)
	rootCmd.AddCommand(workerCmd)
}

// loadConfig merges the optional config file with explicit flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = flagHost
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("debug") {
		cfg.Debug = flagDebug
	}
	if flags.Changed("rounds") {
		cfg.Rounds = flagRounds
	}
	if flags.Changed("vector-len") {
		cfg.VectorLen = flagVectorLen
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}

	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

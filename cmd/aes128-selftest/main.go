// main.go - AES-128 self test tool.
// Copyright (C) 2026  Katzenpost Developers.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katzenpost/aes128/common"
	"github.com/katzenpost/aes128/config"
	"github.com/katzenpost/aes128/log"
	"github.com/katzenpost/aes128/selftest"
)

// Config holds the command line configuration.
type Config struct {
	ConfigFile  string
	VectorsFile string
	LogLevel    string
	LogFile     string
	Iterations  int
	MonteCarlo  int
	Seed        string
	MetricsFile string
}

func newRootCommand() *cobra.Command {
	var cfg Config

	cmd := &cobra.Command{
		Use:   "aes128-selftest",
		Short: "AES-128 known answer and differential self test",
		Long: `Runs the AES-128 implementation against the FIPS-197 and AESAVS known
answer vectors, compares it with crypto/aes and bsaes on random inputs, and
runs a chained Monte Carlo encryption. Exits non-zero if any check fails.`,
		Example: `  # Run with the built in vectors and defaults
  aes128-selftest

  # Reproducible run with a larger differential stage
  aes128-selftest --iterations 100000 --seed 000102...1f

  # Use a configuration file and an external corpus
  aes128-selftest -c selftest.toml --vectors corpus.cbor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, &cfg, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&cfg.ConfigFile, "config", "c", "", "configuration file")
	cmd.Flags().StringVar(&cfg.VectorsFile, "vectors", "", "known answer vector corpus (.toml or .cbor)")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", "NOTICE", "logging level (DEBUG, INFO, NOTICE, WARNING, ERROR)")
	cmd.Flags().StringVar(&cfg.LogFile, "log-file", "", "log file, stdout if empty")
	cmd.Flags().IntVarP(&cfg.Iterations, "iterations", "n", 0, "differential iterations")
	cmd.Flags().IntVar(&cfg.MonteCarlo, "montecarlo", 0, "Monte Carlo iterations")
	cmd.Flags().StringVar(&cfg.Seed, "seed", "", "hex encoded 32 byte seed for reproducible inputs")
	cmd.Flags().StringVar(&cfg.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file")

	return cmd
}

// loadConfig reads the configuration file, if any, and applies the flags
// the user set on top of it.
func loadConfig(cmd *cobra.Command, cliCfg *Config) (*config.Config, error) {
	cfg := config.Default()
	if cliCfg.ConfigFile != "" {
		var err error
		if cfg, err = config.LoadFile(cliCfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("vectors") {
		cfg.SelfTest.VectorsFile = cliCfg.VectorsFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = cliCfg.LogLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = cliCfg.LogFile
	}
	if flags.Changed("iterations") {
		cfg.SelfTest.DifferentialIterations = cliCfg.Iterations
	}
	if flags.Changed("montecarlo") {
		cfg.SelfTest.MonteCarloIterations = cliCfg.MonteCarlo
	}
	if flags.Changed("seed") {
		cfg.SelfTest.Seed = cliCfg.Seed
	}
	if flags.Changed("metrics-file") {
		cfg.SelfTest.MetricsFile = cliCfg.MetricsFile
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cobra.Command, cliCfg *Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	backend, err := log.New(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Disable)
	if err != nil {
		return err
	}
	defer backend.Close()

	reg := prometheus.NewRegistry()
	runner, err := selftest.New(cfg.SelfTest, backend, reg)
	if err != nil {
		return err
	}
	rep, runErr := runner.Run(ctx)

	if cfg.SelfTest.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.SelfTest.MetricsFile, reg); err != nil {
			return fmt.Errorf("failed to write metrics: %v", err)
		}
	}

	for _, f := range rep.Failures {
		fmt.Fprintf(out, "FAIL %s: %s\n  want %s\n  got  %s\n", f.Stage, f.Name, f.Want, f.Got)
	}
	if runErr != nil {
		return runErr
	}
	fmt.Fprintf(out, "PASS %d vectors, %d differential, %d Monte Carlo\n", rep.Vectors, rep.Differential, rep.MonteCarlo)
	return nil
}

func main() {
	common.ExecuteWithFang(newRootCommand())
}

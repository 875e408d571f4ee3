// config.go - AES-128 self test configuration.
// Copyright (C) 2017  Yawning Angel.
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

// Package config provides the AES-128 self test configuration.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	defaultLogLevel               = "NOTICE"
	defaultDifferentialIterations = 1000
	defaultMonteCarloIterations   = 1000

	// SeedLength is the length of a decoded SelfTest.Seed in bytes.
	SeedLength = 32
)

// Logging is the logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lvl = defaultLogLevel
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// SelfTest is the self test configuration.
type SelfTest struct {
	// VectorsFile is the known answer vector corpus, TOML or CBOR.  The
	// built in FIPS-197 corpus is used when empty.
	VectorsFile string

	// DifferentialIterations is the number of random blocks compared
	// against the reference implementations.
	DifferentialIterations int

	// MonteCarloIterations is the length of the chained encryption run.
	MonteCarloIterations int

	// Seed is an optional hex encoded 32 byte seed that makes the random
	// inputs reproducible.
	Seed string

	// MetricsFile is where the Prometheus counters are written, if set.
	MetricsFile string

	seed []byte
}

// SeedBytes returns the decoded seed, or nil if none is configured.
func (sCfg *SelfTest) SeedBytes() []byte {
	return sCfg.seed
}

func (sCfg *SelfTest) applyDefaults() {
	if sCfg.DifferentialIterations == 0 {
		sCfg.DifferentialIterations = defaultDifferentialIterations
	}
	if sCfg.MonteCarloIterations == 0 {
		sCfg.MonteCarloIterations = defaultMonteCarloIterations
	}
}

func (sCfg *SelfTest) validate() error {
	if sCfg.DifferentialIterations < 0 {
		return fmt.Errorf("config: SelfTest: DifferentialIterations %d is invalid", sCfg.DifferentialIterations)
	}
	if sCfg.MonteCarloIterations < 0 {
		return fmt.Errorf("config: SelfTest: MonteCarloIterations %d is invalid", sCfg.MonteCarloIterations)
	}
	sCfg.seed = nil
	if sCfg.Seed != "" {
		b, err := hex.DecodeString(sCfg.Seed)
		if err != nil {
			return fmt.Errorf("config: SelfTest: Seed is invalid: %v", err)
		}
		if len(b) != SeedLength {
			return fmt.Errorf("config: SelfTest: Seed must be %d bytes, got %d", SeedLength, len(b))
		}
		sCfg.seed = b
	}
	return nil
}

// Config is the top level self test configuration.
type Config struct {
	Logging  *Logging
	SelfTest *SelfTest
}

// FixupAndValidate applies defaults to config entries and validates the
// supplied configuration.
func (c *Config) FixupAndValidate() error {
	if c.Logging == nil {
		c.Logging = &Logging{}
	}
	if c.SelfTest == nil {
		c.SelfTest = &SelfTest{}
	}
	c.SelfTest.applyDefaults()

	if err := c.Logging.validate(); err != nil {
		return err
	}
	return c.SelfTest.validate()
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := new(Config)
	if err := cfg.FixupAndValidate(); err != nil {
		panic("BUG: config: default configuration is invalid: " + err.Error())
	}
	return cfg
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := new(Config)
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: Undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.FixupAndValidate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses, and validates the provided file and returns the
// Config.
func LoadFile(f string) (*Config, error) {
	if f == "" {
		return nil, errors.New("config file must be specified")
	}
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %v", err)
	}
	return Load(b)
}

// selftest.go - AES-128 self test.
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

// Package selftest checks the rijndael package against known answer
// vectors and against independent AES implementations.
package selftest

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"gitlab.com/yawning/bsaes.git"
	"gopkg.in/op/go-logging.v1"

	"github.com/katzenpost/aes128/config"
	"github.com/katzenpost/aes128/log"
	"github.com/katzenpost/aes128/rijndael"
	"github.com/katzenpost/aes128/vectors"
)

const (
	// StageVectors is the known answer vector stage.
	StageVectors = "vectors"

	// StageDifferential is the random comparison against crypto/aes and
	// bsaes.
	StageDifferential = "differential"

	// StageMonteCarlo is the chained encryption stage.
	StageMonteCarlo = "montecarlo"
)

// ErrSelfTestFailed is the error returned when any check fails.
var ErrSelfTestFailed = errors.New("selftest: failed")

// Failure describes a single failed check.
type Failure struct {
	Stage string
	Name  string
	Want  string
	Got   string
}

// Report summarizes a self test run.
type Report struct {
	Vectors      int
	Differential int
	MonteCarlo   int
	Failures     []Failure
}

// OK returns true iff no check failed.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Runner runs the self test.
type Runner struct {
	cfg     *config.SelfTest
	log     *logging.Logger
	vectors *vectors.Set
	metrics *metrics
}

// New returns a Runner for cfg, logging to backend.  The counters are
// registered with reg unless it is nil.
func New(cfg *config.SelfTest, backend *log.Backend, reg prometheus.Registerer) (*Runner, error) {
	r := &Runner{
		cfg: cfg,
		log: backend.GetLogger("selftest"),
	}

	var err error
	if cfg.VectorsFile == "" {
		r.vectors = vectors.Default()
	} else if r.vectors, err = vectors.LoadFile(cfg.VectorsFile); err != nil {
		return nil, err
	}
	if r.metrics, err = newMetrics(reg); err != nil {
		return nil, err
	}
	return r, nil
}

// Run runs every stage and returns the report.  The error is
// ErrSelfTestFailed if any check failed, or the context error if ctx was
// canceled first.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	rep := new(Report)
	r.log.Noticef("Running %d vectors from '%s'.", len(r.vectors.Vectors), r.vectors.Description)

	if err := r.runVectors(ctx, rep); err != nil {
		return rep, err
	}

	src, err := newSource(r.cfg.SeedBytes())
	if err != nil {
		return rep, err
	}
	if r.cfg.SeedBytes() != nil {
		r.log.Noticef("Using seed: %s", r.cfg.Seed)
	}
	if err := r.runDifferential(ctx, rep, src); err != nil {
		return rep, err
	}
	if err := r.runMonteCarlo(ctx, rep, src); err != nil {
		return rep, err
	}

	if !rep.OK() {
		r.log.Errorf("Self test FAILED: %d failures.", len(rep.Failures))
		return rep, fmt.Errorf("%w: %d checks", ErrSelfTestFailed, len(rep.Failures))
	}
	r.log.Noticef("Self test passed: %d vectors, %d differential, %d Monte Carlo iterations.",
		rep.Vectors, rep.Differential, rep.MonteCarlo)
	return rep, nil
}

func (r *Runner) check(rep *Report, stage, name string, want, got rijndael.Block) {
	r.metrics.checks.WithLabelValues(stage).Inc()
	if want == got {
		return
	}
	r.metrics.failures.WithLabelValues(stage).Inc()
	f := Failure{
		Stage: stage,
		Name:  name,
		Want:  hex.EncodeToString(want[:]),
		Got:   hex.EncodeToString(got[:]),
	}
	r.log.Errorf("%s: '%s': expected %s, got %s", stage, name, f.Want, f.Got)
	rep.Failures = append(rep.Failures, f)
}

func (r *Runner) runVectors(ctx context.Context, rep *Report) error {
	for i := range r.vectors.Vectors {
		if err := ctx.Err(); err != nil {
			return err
		}
		v := &r.vectors.Vectors[i]
		pt, key, ct, err := v.Decode()
		if err != nil {
			return err
		}

		state := rijndael.EncryptBlock(pt.Transpose(), key.Transpose())
		r.check(rep, StageVectors, v.Name, ct, state.Transpose())

		c, err := rijndael.NewCipher(key[:])
		if err != nil {
			return err
		}
		var got rijndael.Block
		c.Encrypt(got[:], pt[:])
		c.Reset()
		r.check(rep, StageVectors, v.Name+" (Cipher)", ct, got)

		r.log.Debugf("vector '%s' done", v.Name)
		rep.Vectors++
	}
	return nil
}

func readBlock(src io.Reader) (rijndael.Block, error) {
	var b rijndael.Block
	_, err := io.ReadFull(src, b[:])
	return b, err
}

func (r *Runner) runDifferential(ctx context.Context, rep *Report, src io.Reader) error {
	for i := 0; i < r.cfg.DifferentialIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		key, err := readBlock(src)
		if err != nil {
			return err
		}
		pt, err := readBlock(src)
		if err != nil {
			return err
		}

		stdlib, err := aes.NewCipher(key[:])
		if err != nil {
			return err
		}
		bs, err := bsaes.NewCipher(key[:])
		if err != nil {
			return err
		}
		ours, err := rijndael.NewCipher(key[:])
		if err != nil {
			return err
		}

		state := rijndael.EncryptBlock(pt.Transpose(), key.Transpose())
		lazy := state.Transpose()
		name := fmt.Sprintf("iteration %d, key %x, plaintext %x", i, key[:], pt[:])
		for _, ref := range []struct {
			name string
			blk  cipher.Block
		}{
			{"crypto/aes", stdlib},
			{"bsaes", bs},
		} {
			want := encryptWith(ref.blk, pt)
			r.check(rep, StageDifferential, name+" vs "+ref.name, want, lazy)
			r.check(rep, StageDifferential, name+" (Cipher) vs "+ref.name, want, encryptWith(ours, pt))
		}
		ours.Reset()
		rep.Differential++
	}
	r.log.Infof("Differential stage done: %d iterations.", rep.Differential)
	return nil
}

func encryptWith(e rijndael.Encrypter, pt rijndael.Block) rijndael.Block {
	var ct rijndael.Block
	e.Encrypt(ct[:], pt[:])
	return ct
}

func (r *Runner) runMonteCarlo(ctx context.Context, rep *Report, src io.Reader) error {
	if r.cfg.MonteCarloIterations == 0 {
		return nil
	}
	key, err := readBlock(src)
	if err != nil {
		return err
	}
	pt, err := readBlock(src)
	if err != nil {
		return err
	}
	ref, err := bsaes.NewCipher(key[:])
	if err != nil {
		return err
	}

	// Chain the state order API; the reference runs in FIPS order.
	stateKey := key.Transpose()
	state, want := pt.Transpose(), pt
	for i := 0; i < r.cfg.MonteCarloIterations; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		state = rijndael.EncryptBlock(state, stateKey)
		want = encryptWith(ref, want)
		rep.MonteCarlo++
	}
	r.check(rep, StageMonteCarlo, fmt.Sprintf("%d iterations, key %x, plaintext %x", rep.MonteCarlo, key[:], pt[:]), want, state.Transpose())
	r.log.Infof("Monte Carlo stage done: %d iterations.", rep.MonteCarlo)
	return nil
}

// vectors.go - AES-128 known answer vectors.
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

// Package vectors provides AES-128 known answer test vectors.
//
// Vectors are hex encoded in the FIPS-197 byte order, the way NIST
// publishes them.  A corpus is stored either as TOML or as CBOR.
package vectors

import (
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"

	"github.com/katzenpost/aes128/rijndael"
)

//go:embed fips197.toml
var defaultCorpus []byte

var (
	// ErrEmptySet is the error returned when a corpus holds no vectors.
	ErrEmptySet = errors.New("vectors: no vectors")
)

// Vector is a single AES-128 known answer test.
type Vector struct {
	Name       string
	Key        string
	Plaintext  string
	Ciphertext string
}

// Decode returns the plaintext, key and ciphertext of the vector in the
// FIPS-197 byte order.
func (v *Vector) Decode() (plaintext, key, ciphertext rijndael.Block, err error) {
	if plaintext, err = decodeBlock(v.Plaintext); err != nil {
		return plaintext, key, ciphertext, fmt.Errorf("vectors: '%s': Plaintext: %w", v.Name, err)
	}
	if key, err = decodeBlock(v.Key); err != nil {
		return plaintext, key, ciphertext, fmt.Errorf("vectors: '%s': Key: %w", v.Name, err)
	}
	if ciphertext, err = decodeBlock(v.Ciphertext); err != nil {
		return plaintext, key, ciphertext, fmt.Errorf("vectors: '%s': Ciphertext: %w", v.Name, err)
	}
	return plaintext, key, ciphertext, nil
}

func decodeBlock(s string) (rijndael.Block, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return rijndael.Block{}, err
	}
	return rijndael.BlockFromBytes(b)
}

// Set is a named collection of vectors.
type Set struct {
	Description string
	Vectors     []Vector
}

// Validate checks that every vector decodes and that names are unique.
func (s *Set) Validate() error {
	if len(s.Vectors) == 0 {
		return ErrEmptySet
	}
	names := make(map[string]bool)
	for i := range s.Vectors {
		v := &s.Vectors[i]
		if v.Name == "" {
			return fmt.Errorf("vectors: vector %d has no Name", i)
		}
		if names[v.Name] {
			return fmt.Errorf("vectors: duplicate vector '%s'", v.Name)
		}
		names[v.Name] = true
		if _, _, _, err := v.Decode(); err != nil {
			return err
		}
	}
	return nil
}

// wireSet is Set without the BinaryMarshaler methods.
type wireSet Set

// MarshalBinary encodes the set as CBOR.
func (s *Set) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*wireSet)(s))
}

// UnmarshalBinary decodes a CBOR encoded set and validates it.
func (s *Set) UnmarshalBinary(data []byte) error {
	var tmp wireSet
	if err := cbor.Unmarshal(data, &tmp); err != nil {
		return err
	}
	set := Set(tmp)
	if err := set.Validate(); err != nil {
		return err
	}
	*s = set
	return nil
}

// Load parses and validates the provided buffer b as a TOML corpus.
func Load(b []byte) (*Set, error) {
	s := new(Set)
	md, err := toml.Decode(string(b), s)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("vectors: Undecoded keys in corpus: %v", undecoded)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadFile loads a corpus, choosing the decoder by the file extension:
// .cbor is CBOR and anything else is TOML.
func LoadFile(f string) (*Set, error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(f), ".cbor") {
		s := new(Set)
		if err := s.UnmarshalBinary(b); err != nil {
			return nil, err
		}
		return s, nil
	}
	return Load(b)
}

// Default returns the built in FIPS-197 and AESAVS corpus.
func Default() *Set {
	s, err := Load(defaultCorpus)
	if err != nil {
		panic("BUG: vectors: built in corpus is invalid: " + err.Error())
	}
	return s
}

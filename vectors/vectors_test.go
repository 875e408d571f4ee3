// vectors_test.go - AES-128 known answer vector tests.
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

package vectors

import (
	"crypto/aes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katzenpost/aes128/rijndael"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s := Default()
	require.NotEmpty(s.Description)
	require.Len(s.Vectors, 7)

	for _, v := range s.Vectors {
		pt, key, ct, err := v.Decode()
		require.NoError(err, v.Name)

		ref, err := aes.NewCipher(key[:])
		require.NoError(err)
		var want rijndael.Block
		ref.Encrypt(want[:], pt[:])
		require.Equal(ct, want, "%s: corpus disagrees with crypto/aes", v.Name)

		got := rijndael.EncryptBlock(pt.Transpose(), key.Transpose())
		require.Equal(ct, got.Transpose(), v.Name)
	}
}

func TestCBORFile(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	s := Default()
	b, err := s.MarshalBinary()
	require.NoError(err)

	f := filepath.Join(t.TempDir(), "fips197.cbor")
	require.NoError(os.WriteFile(f, b, 0600))
	s2, err := LoadFile(f)
	require.NoError(err)
	require.Equal(s, s2)

	require.NoError(os.WriteFile(f, []byte{0xff, 0x00}, 0600))
	_, err = LoadFile(f)
	require.Error(err)
}

func TestInvalid(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := LoadFile("testdata/bad_length.toml")
	assert.ErrorIs(err, rijndael.ErrInvalidLength)

	_, err = LoadFile("testdata/missing.toml")
	assert.Error(err)

	_, err = Load([]byte(`Description = "empty"`))
	assert.ErrorIs(err, ErrEmptySet)

	_, err = Load([]byte("[[Vectors]]\nName = \"a\"\nKey = \"zz\"\n"))
	assert.Error(err)

	dup := &Set{Vectors: []Vector{Default().Vectors[0], Default().Vectors[0]}}
	assert.ErrorContains(dup.Validate(), "duplicate")

	unnamed := &Set{Vectors: []Vector{{Key: "00"}}}
	assert.ErrorContains(unnamed.Validate(), "no Name")

	b, err := (&Set{Description: "empty"}).MarshalBinary()
	require.NoError(t, err)
	assert.ErrorIs(new(Set).UnmarshalBinary(b), ErrEmptySet)
}

func TestWrongAnswerCorpusLoads(t *testing.T) {
	t.Parallel()

	// The corpus format carries no answers of its own; a wrong ciphertext
	// is only caught when the corpus is run.
	s, err := LoadFile("testdata/wrong_answer.toml")
	require.NoError(t, err)
	require.Len(t, s.Vectors, 1)
}

// source.go - Self test input sources.
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

package selftest

import (
	"io"

	"github.com/katzenpost/hpqc/rand"
	"golang.org/x/crypto/chacha20"
)

// keystreamReader is an io.Reader returning the ChaCha20 keystream of a
// seed, so that a seeded run draws the same inputs every time.
type keystreamReader struct {
	stream *chacha20.Cipher
}

func (r *keystreamReader) Read(b []byte) (int, error) {
	clear(b)
	r.stream.XORKeyStream(b, b)
	return len(b), nil
}

// newSource returns the seeded keystream if seed is set, and the system
// entropy source otherwise.
func newSource(seed []byte) (io.Reader, error) {
	if seed == nil {
		return rand.Reader, nil
	}
	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(seed, nonce[:])
	if err != nil {
		return nil, err
	}
	return &keystreamReader{stream: stream}, nil
}

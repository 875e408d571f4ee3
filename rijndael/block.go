// block.go - AES-128 state and round transforms.
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

// Package rijndael implements the AES-128 forward cipher (FIPS-197) from
// its component transforms.
//
// The 16 byte state is held as the 4x4 matrix listed row by row: index i is
// row i/4, column i%4.  This is the transpose of the FIPS-197 input byte
// order; Block.Transpose converts between the two.  Every transform is a
// pure function of its arguments and the package tables are never written
// after initialization, so all functions are safe for concurrent use.
package rijndael

const (
	// BlockSize is the AES block size in bytes.
	BlockSize = 16

	// KeySize is the AES-128 key size in bytes.
	KeySize = 16

	// Rounds is the number of AES-128 rounds.
	Rounds = 10

	// Nb is the number of rows (and columns) of the state.
	Nb = 4

	// reduction is x^8 + x^4 + x^3 + x + 1 with the x^8 term dropped.
	reduction = 0x1b
)

// Block is a state, key or round key in row-major matrix order.
type Block [BlockSize]byte

// Column is one column of the state, top row first.
type Column [Nb]byte

// BlockFromBytes copies b into a Block.  It returns a *LengthError if b is
// not exactly BlockSize bytes.
func BlockFromBytes(b []byte) (Block, error) {
	var blk Block
	if len(b) != BlockSize {
		return blk, &LengthError{What: "block", Len: len(b)}
	}
	copy(blk[:], b)
	return blk, nil
}

// Transpose swaps rows and columns, converting between the FIPS-197 byte
// order and the state layout in both directions.
func (s Block) Transpose() Block {
	var out Block
	for r := 0; r < Nb; r++ {
		for c := 0; c < Nb; c++ {
			out[Nb*r+c] = s[Nb*c+r]
		}
	}
	return out
}

// Xor returns the bytewise XOR of s and o.
func (s Block) Xor(o Block) Block {
	var out Block
	for i := range s {
		out[i] = s[i] ^ o[i]
	}
	return out
}

// Column returns column c of the state.
func (s Block) Column(c int) Column {
	return Column{s[c], s[Nb+c], s[2*Nb+c], s[3*Nb+c]}
}

func (s *Block) setColumn(c int, col Column) {
	for r := 0; r < Nb; r++ {
		s[Nb*r+c] = col[r]
	}
}

// SubBytes applies the S-box to every byte of the state.
func SubBytes(s Block) Block {
	var out Block
	for i, b := range s {
		out[i] = sbox[b]
	}
	return out
}

// ShiftRows rotates row r of the state left by r positions.
func ShiftRows(s Block) Block {
	var out Block
	for r := 0; r < Nb; r++ {
		for c := 0; c < Nb; c++ {
			out[Nb*r+c] = s[Nb*r+(c+r)%Nb]
		}
	}
	return out
}

// xtime multiplies b by x in GF(2^8).
func xtime(b byte) byte {
	return b<<1 ^ reduction*(b>>7)
}

// MixColumn multiplies the column by the MixColumns matrix
//
//	2 3 1 1
//	1 2 3 1
//	1 1 2 3
//	3 1 1 2
//
// over GF(2^8).
func MixColumn(a Column) Column {
	var b Column
	for i, v := range a {
		b[i] = xtime(v)
	}
	return Column{
		b[0] ^ a[3] ^ a[2] ^ b[1] ^ a[1],
		b[1] ^ a[0] ^ a[3] ^ b[2] ^ a[2],
		b[2] ^ a[1] ^ a[0] ^ b[3] ^ a[3],
		b[3] ^ a[2] ^ a[1] ^ b[0] ^ a[0],
	}
}

// MixColumns applies MixColumn to each column of the state.
func MixColumns(s Block) Block {
	var out Block
	for c := 0; c < Nb; c++ {
		out.setColumn(c, MixColumn(s.Column(c)))
	}
	return out
}

// AddRoundKey XORs the round key into the state.
func AddRoundKey(s, roundKey Block) Block {
	return s.Xor(roundKey)
}

// cipher.go - Precomputed schedule AES-128 block encrypter.
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

package rijndael

// Encrypter is the encryption half of crypto/cipher.Block.
type Encrypter interface {
	// BlockSize returns the cipher's block size.
	BlockSize() int

	// Encrypt encrypts the first block in src into dst.
	Encrypt(dst, src []byte)
}

// Cipher is an AES-128 instance with the key schedule expanded up front.
// Unlike the rest of the package, Cipher works on blocks in the FIPS-197
// byte order so it can stand in for crypto/aes when only encryption is
// needed.
type Cipher struct {
	sched Schedule
}

var _ Encrypter = (*Cipher)(nil)

// NewCipher returns a Cipher for the 16 byte key, given in FIPS-197 byte
// order.
func NewCipher(key []byte) (*Cipher, error) {
	k, err := BlockFromBytes(key)
	if err != nil {
		return nil, &LengthError{What: "key", Len: len(key)}
	}
	return &Cipher{sched: ExpandKey(k.Transpose())}, nil
}

// BlockSize returns BlockSize.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst.  dst and src may
// overlap entirely.  It panics if either is shorter than a block.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	var in Block
	copy(in[:], src)
	out := encryptScheduled(in.Transpose(), &c.sched).Transpose()
	copy(dst, out[:])
}

// Reset clears the key schedule such that no sensitive data is left in
// memory.  The Cipher must not be used afterwards.
func (c *Cipher) Reset() {
	clear(c.sched[:])
}

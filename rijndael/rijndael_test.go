// rijndael_test.go - AES-128 transform tests.
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

import (
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testKey = Block{
		0x2b, 0x28, 0xab, 0x09,
		0x7e, 0xae, 0xf7, 0xcf,
		0x15, 0xd2, 0x15, 0x4f,
		0x16, 0xa6, 0x88, 0x3c,
	}
	testPlaintext = Block{
		0x32, 0x88, 0x31, 0xe0,
		0x43, 0x5a, 0x31, 0x37,
		0xf6, 0x30, 0x98, 0x07,
		0xa8, 0x8d, 0xa2, 0x34,
	}
	testCiphertext = Block{
		0x39, 0x02, 0xdc, 0x19,
		0x25, 0xdc, 0x11, 0x6a,
		0x84, 0x09, 0x85, 0x0b,
		0x1d, 0xfb, 0x97, 0x32,
	}
)

// fipsBlock decodes a FIPS-197 hex string into state order.
func fipsBlock(t testing.TB, s string) Block {
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	blk, err := BlockFromBytes(b)
	require.NoError(t, err)
	return blk.Transpose()
}

func randomBlock(t testing.TB) Block {
	var b Block
	_, err := rand.Read(b[:])
	require.NoError(t, err, "failed to read random block")
	return b
}

func gmul(a, b byte) byte {
	var p byte
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
	}
	return p
}

func TestSBox(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(byte(0x8a), Substitute(0xcf))
	assert.Equal(byte(0xd4), Substitute(0x19))

	var seen [256]bool
	for v := 0; v < 256; v++ {
		u := Substitute(byte(v))
		assert.False(seen[u], "S-box output 0x%02x repeated", u)
		seen[u] = true
	}

	// S(x) is the affine map applied to the multiplicative inverse of x.
	for x := 0; x < 256; x++ {
		var inv byte
		for y := 1; y < 256 && x != 0; y++ {
			if gmul(byte(x), byte(y)) == 1 {
				inv = byte(y)
				break
			}
		}
		rotl := func(b byte, n uint) byte { return b<<n | b>>(8-n) }
		affine := inv ^ rotl(inv, 1) ^ rotl(inv, 2) ^ rotl(inv, 3) ^ rotl(inv, 4) ^ 0x63
		assert.Equal(affine, Substitute(byte(x)), "S-box mismatch at 0x%02x", x)
	}
}

func TestRoundConstants(t *testing.T) {
	t.Parallel()

	rc := byte(1)
	for round := 1; round <= Rounds; round++ {
		assert.Equal(t, rc, RoundConstant(round), "round %d", round)
		rc = xtime(rc)
	}
	assert.Panics(t, func() { RoundConstant(0) })
	assert.Panics(t, func() { RoundConstant(Rounds + 1) })
}

func TestSubBytes(t *testing.T) {
	t.Parallel()

	in := Block{0x19, 0xa0, 0x9a, 0xe9}
	out := SubBytes(in)
	assert.Equal(t, []byte{0xd4, 0xe0, 0xb8, 0x1e}, out[:4])
	for i := 4; i < BlockSize; i++ {
		assert.Equal(t, Substitute(0), out[i])
	}
}

func TestShiftRows(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	in := Block{
		0xd4, 0xe0, 0xb8, 0x1e,
		0x27, 0xbf, 0xb4, 0x41,
		0x11, 0x98, 0x5d, 0x52,
		0xae, 0xf1, 0xe5, 0x30,
	}
	expected := Block{
		0xd4, 0xe0, 0xb8, 0x1e,
		0xbf, 0xb4, 0x41, 0x27,
		0x5d, 0x52, 0x11, 0x98,
		0x30, 0xae, 0xf1, 0xe5,
	}
	assert.Equal(expected, ShiftRows(in))

	for i := 0; i < 16; i++ {
		s := randomBlock(t)
		assert.Equal(s, ShiftRows(ShiftRows(ShiftRows(ShiftRows(s)))))
	}
}

func TestMixColumn(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Column{142, 77, 161, 188}, MixColumn(Column{0xdb, 0x13, 0x53, 0x45}))
	assert.Equal(t, Column{0x04, 0x66, 0x81, 0xe5}, MixColumn(Column{0xd4, 0xbf, 0x5d, 0x30}))
	assert.Equal(t, Column{0x01, 0x01, 0x01, 0x01}, MixColumn(Column{0x01, 0x01, 0x01, 0x01}))
}

func TestMixColumns(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	in := Block{
		0xd4, 0xe0, 0xb8, 0x1e,
		0xbf, 0xb4, 0x41, 0x27,
		0x5d, 0x52, 0x11, 0x98,
		0x30, 0xae, 0xf1, 0xe5,
	}
	expected := Block{
		0x04, 0xe0, 0x48, 0x28,
		0x66, 0xcb, 0xf8, 0x06,
		0x81, 0x19, 0xd3, 0x26,
		0xe5, 0x9a, 0x7a, 0x4c,
	}
	assert.Equal(expected, MixColumns(in))

	for i := 0; i < 64; i++ {
		a, b := randomBlock(t), randomBlock(t)
		assert.Equal(MixColumns(a).Xor(MixColumns(b)), MixColumns(a.Xor(b)), "MixColumns is not linear")
	}
}

func TestAddRoundKey(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	in := Block{
		0x04, 0xe0, 0x48, 0x28,
		0x66, 0xcb, 0xf8, 0x06,
		0x81, 0x19, 0xd3, 0x26,
		0xe5, 0x9a, 0x7a, 0x4c,
	}
	roundKey := Block{
		0xa0, 0x88, 0x23, 0x2a,
		0xfa, 0x54, 0xa3, 0x6c,
		0xfe, 0x2c, 0x39, 0x76,
		0x17, 0xb1, 0x39, 0x05,
	}
	expected := Block{
		0xa4, 0x68, 0x6b, 0x02,
		0x9c, 0x9f, 0x5b, 0x6a,
		0x7f, 0x35, 0xea, 0x50,
		0xf2, 0x2b, 0x43, 0x49,
	}
	assert.Equal(expected, AddRoundKey(in, roundKey))

	for i := 0; i < 16; i++ {
		s, k := randomBlock(t), randomBlock(t)
		assert.Equal(s, AddRoundKey(AddRoundKey(s, k), k))
	}
}

func TestNextRoundKey(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	expected1 := Block{
		0xa0, 0x88, 0x23, 0x2a,
		0xfa, 0x54, 0xa3, 0x6c,
		0xfe, 0x2c, 0x39, 0x76,
		0x17, 0xb1, 0x39, 0x05,
	}
	rk1 := NextRoundKey(testKey, 0x01)
	assert.Equal(expected1, rk1)

	expected2 := Block{
		0xf2, 0x7a, 0x59, 0x73,
		0xc2, 0x96, 0x35, 0x59,
		0x95, 0xb9, 0x80, 0xf6,
		0xf2, 0x43, 0x7a, 0x7f,
	}
	assert.Equal(expected2, NextRoundKey(rk1, 0x02))
}

func TestExpandKey(t *testing.T) {
	t.Parallel()

	// FIPS-197 Appendix A.1.
	roundKeys := []string{
		"2b7e151628aed2a6abf7158809cf4f3c",
		"a0fafe1788542cb123a339392a6c7605",
		"f2c295f27a96b9435935807a7359f67f",
		"3d80477d4716fe3e1e237e446d7a883b",
		"ef44a541a8525b7fb671253bdb0bad00",
		"d4d1c6f87c839d87caf2b8bc11f915bc",
		"6d88a37a110b3efddbf98641ca0093fd",
		"4e54f70e5f5fc9f384a64fb24ea6dc4f",
		"ead27321b58dbad2312bf5607f8d292f",
		"ac7766f319fadc2128d12941575c006e",
		"d014f9a8c9ee2589e13f0cc8b6630ca6",
	}
	sched := ExpandKey(testKey)
	for round, s := range roundKeys {
		assert.Equal(t, fipsBlock(t, s), sched[round], "round key %d", round)
	}
}

func TestEncryptBlock(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	assert.Equal(testCiphertext, EncryptBlock(testPlaintext, testKey))

	// FIPS-197 Appendix C.1.
	key := fipsBlock(t, "000102030405060708090a0b0c0d0e0f")
	pt := fipsBlock(t, "00112233445566778899aabbccddeeff")
	ct := fipsBlock(t, "69c4e0d86a7b0430d8cdb78070b4c55a")
	assert.Equal(ct, EncryptBlock(pt, key))

	for i := 0; i < 16; i++ {
		k, p := randomBlock(t), randomBlock(t)
		sched := ExpandKey(k)
		assert.Equal(EncryptBlock(p, k), encryptScheduled(p, &sched), "lazy and eager schedules disagree")
	}
}

func TestEncrypt(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	ct, err := Encrypt(testPlaintext[:], testKey[:])
	require.NoError(err)
	assert.Equal(testCiphertext[:], ct)

	again, err := Encrypt(testPlaintext[:], testKey[:])
	require.NoError(err)
	assert.Equal(ct, again, "Encrypt is not deterministic")

	for _, n := range []int{0, 4, 15, 17, 32} {
		buf := make([]byte, n)

		ct, err = Encrypt(buf, testKey[:])
		assert.ErrorIs(err, ErrInvalidLength, "plaintext length %d", n)
		assert.Nil(ct)

		ct, err = Encrypt(testPlaintext[:], buf)
		assert.ErrorIs(err, ErrInvalidLength, "key length %d", n)
		assert.Nil(ct)

		var lenErr *LengthError
		require.ErrorAs(err, &lenErr)
		assert.Equal("key", lenErr.What)
		assert.Equal(n, lenErr.Len)
	}
}

func TestBlockTranspose(t *testing.T) {
	t.Parallel()

	for i := 0; i < 16; i++ {
		s := randomBlock(t)
		assert.Equal(t, s, s.Transpose().Transpose())
	}
	s := Block{0: 1, 1: 2, 4: 3}
	assert.Equal(t, Block{0: 1, 4: 2, 1: 3}, s.Transpose())
}

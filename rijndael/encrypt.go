// encrypt.go - AES-128 encryption.
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

// EncryptBlock encrypts one state under key, deriving each round key as
// the rounds progress.
func EncryptBlock(plaintext, key Block) Block {
	state := AddRoundKey(plaintext, key)
	for round := 1; round < Rounds; round++ {
		state = MixColumns(ShiftRows(SubBytes(state)))
		key = NextRoundKey(key, RoundConstant(round))
		state = AddRoundKey(state, key)
	}

	// The final round omits MixColumns.
	state = ShiftRows(SubBytes(state))
	key = NextRoundKey(key, RoundConstant(Rounds))
	return AddRoundKey(state, key)
}

// Encrypt encrypts the 16 byte plaintext under the 16 byte key, both in
// state order, and returns the ciphertext in state order.  Arguments of any
// other length are rejected with a *LengthError before any work is done.
func Encrypt(plaintext, key []byte) ([]byte, error) {
	pt, err := BlockFromBytes(plaintext)
	if err != nil {
		return nil, &LengthError{What: "plaintext", Len: len(plaintext)}
	}
	k, err := BlockFromBytes(key)
	if err != nil {
		return nil, &LengthError{What: "key", Len: len(key)}
	}
	ct := EncryptBlock(pt, k)
	return ct[:], nil
}

func encryptScheduled(state Block, sched *Schedule) Block {
	state = AddRoundKey(state, sched[0])
	for round := 1; round < Rounds; round++ {
		state = AddRoundKey(MixColumns(ShiftRows(SubBytes(state))), sched[round])
	}
	return AddRoundKey(ShiftRows(SubBytes(state)), sched[Rounds])
}

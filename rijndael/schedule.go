// schedule.go - AES-128 key schedule.
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

// Schedule is the full AES-128 key schedule, the cipher key followed by
// the ten derived round keys.
type Schedule [Rounds + 1]Block

// NextRoundKey derives the round key that follows prev, where rc is the
// round constant of the round being derived.  Key words are the state
// columns.
func NextRoundKey(prev Block, rc byte) Block {
	// RotWord and SubWord of the last word, then Rcon.
	last := prev.Column(Nb - 1)
	temp := Column{sbox[last[1]] ^ rc, sbox[last[2]], sbox[last[3]], sbox[last[0]]}

	var next Block
	for r := 0; r < Nb; r++ {
		next[Nb*r] = prev[Nb*r] ^ temp[r]
		for c := 1; c < Nb; c++ {
			next[Nb*r+c] = prev[Nb*r+c] ^ next[Nb*r+c-1]
		}
	}
	return next
}

// ExpandKey derives every round key from the cipher key.
func ExpandKey(key Block) Schedule {
	var sched Schedule
	sched[0] = key
	for round := 1; round <= Rounds; round++ {
		sched[round] = NextRoundKey(sched[round-1], RoundConstant(round))
	}
	return sched
}

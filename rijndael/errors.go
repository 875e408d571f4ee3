// errors.go - Length errors.
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
	"errors"
	"fmt"
)

// ErrInvalidLength is the error returned when a block or key is not
// exactly 16 bytes.
var ErrInvalidLength = errors.New("rijndael: invalid length")

// LengthError describes an argument with the wrong length.
type LengthError struct {
	What string
	Len  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("rijndael: invalid %s length %d, expected %d", e.What, e.Len, BlockSize)
}

// Unwrap returns ErrInvalidLength.
func (e *LengthError) Unwrap() error {
	return ErrInvalidLength
}

// SPDX-License-Identifier: MIT

package bufpool

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned by Acquire when Rows or Cols is not positive.
	ErrBadShape = errors.New("bufpool: invalid shape")

	// ErrUnsupportedKind is returned by Acquire for element kinds other than Float64.
	ErrUnsupportedKind = errors.New("bufpool: unsupported element kind")

	// ErrNilBlock is returned by Release when given a nil block.
	ErrNilBlock = errors.New("bufpool: nil block")

	// ErrPoolCorruption signals a broken lease invariant: a block released
	// twice, released to a foreign pool, or found leased while shelved.
	// Treat it as fatal.
	ErrPoolCorruption = errors.New("bufpool: pool corruption")
)

// poolErrorf tags err with the pool operation and the block key.
func poolErrorf(op string, k Key, err error) error {
	return fmt.Errorf("Pool.%s(%s): %w", op, k, err)
}

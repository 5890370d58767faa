// SPDX-License-Identifier: MIT

package matmul

import "errors"

// ErrDimensions indicates negative dimensions, slice lengths that do not
// match them, or a row window outside [0, m].
var ErrDimensions = errors.New("matmul: dimension mismatch")

// Package matrix provides a dense, immutable 2-D float64 matrix backed by
// pooled storage.
//
// What & Why:
//
//	A *Dense is built through an Engine, which binds it to a bufpool.Pool and
//	a multiply policy. Every operation returns a new *Dense whose storage is
//	leased from the pool; Release hands it back for reuse by the next matrix
//	of the same shape. A matrix that is never released returns its storage
//	when the garbage collector finds it unreachable.
//
// Operations:
//
//	Add, Subtract and ElementwiseMultiply broadcast size-1 dimensions (a 1×1
//	operand acts as a scalar, 1×c as a row vector, r×1 as a column vector).
//	MatrixMultiply switches from the single-goroutine kernel to row-chunked
//	parallel execution once Rows·Cols·b.Cols exceeds the Engine threshold; the
//	two paths agree bit for bit. Power is element-wise. Transpose is computed
//	once and cached on the receiver until ClearCache.
//
// Errors:
//
//	ErrShape, ErrShapeMismatch, ErrOutOfRange, ErrNilMatrix and ErrReleased
//	are returned wrapped with the operation name; match them with errors.Is.
//
// Complexity:
//
//	Elementwise ops, Power and Transpose run in O(r·c).
//	MatrixMultiply runs in O(r·n·c).
package matrix

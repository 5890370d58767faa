// SPDX-License-Identifier: MIT

package matmul_test

import (
	"fmt"

	"github.com/katalvlaran/densemat/matmul"
)

func ExampleParallel() {
	a := []float64{1, 2, 3, 4, 5, 6} // 3x2
	b := []float64{1, 0, 0, 1}       // 2x2 identity
	dst := make([]float64, 6)
	if err := matmul.Parallel(dst, a, b, 3, 2, 2, 2); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(dst)
	fmt.Println(matmul.Partition(3, 2))
	// Output:
	// [1 2 3 4 5 6]
	// [{0 1} {1 2} {2 3}]
}

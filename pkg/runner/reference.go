/*
 * MIT License
 *
 * Copyright (c) 2023 EASL and the vHive community
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package runner

import (
	"fmt"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/eth-easl/matbench/pkg/common"
)

// ReferenceRunner benchmarks the in-process gonum backend. Matrix contents
// come from a seeded source so runs are reproducible.
type ReferenceRunner struct {
	rng *rand.Rand
}

func NewReferenceRunner(seed int64) *ReferenceRunner {
	return &ReferenceRunner{rng: rand.New(rand.NewSource(seed))}
}

// Run measures a dense size x size multiply and, separately, the combined
// trace/determinant/eigenvalue computation on one of the operands. A library
// panic is recovered and scoped to this size only.
func (r *ReferenceRunner) Run(size int) (record common.MetricRecord, err error) {
	defer func() {
		if p := recover(); p != nil {
			record = nil
			err = fmt.Errorf("reference backend panic for size %d: %v", size, p)
		}
	}()

	if size <= 0 {
		return nil, fmt.Errorf("invalid matrix size %d", size)
	}

	a := r.randomMatrix(size)
	b := r.randomMatrix(size)
	c := mat.NewDense(size, size, nil)

	start := time.Now()
	c.Mul(a, b)
	multiplySeconds := time.Since(start).Seconds()

	// Informational only, not used for throughput.
	start = time.Now()
	_ = mat.Trace(a)
	_ = mat.Det(a)
	var eig mat.Eigen
	if ok := eig.Factorize(a, mat.EigenNone); ok {
		_ = eig.Values(nil)
	}
	operationsSeconds := time.Since(start).Seconds()

	return common.MetricRecord{
		common.MetricMultiplyTimeMs:   multiplySeconds * 1000,
		common.MetricOperationsTimeMs: operationsSeconds * 1000,
		common.MetricGflops:           Gflops(size, multiplySeconds),
	}, nil
}

// Gflops derives multiply throughput from the matrix dimension and the
// elapsed wall-clock seconds: 2*N^3 floating-point operations per multiply.
func Gflops(size int, seconds float64) float64 {
	n := float64(size)
	return (2 * n * n * n) / (seconds * 1e9)
}

func (r *ReferenceRunner) randomMatrix(size int) *mat.Dense {
	data := make([]float64, size*size)
	for i := range data {
		data[i] = r.rng.Float64()
	}
	return mat.NewDense(size, size, data)
}

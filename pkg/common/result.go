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

package common

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

// BenchmarkResult is the two-level backend -> size -> MetricRecord container
// assembled by the driver. Backends iterate in insertion order and sizes in
// ascending order so that report output stays deterministic. A backend that
// was never run has no key at all.
type BenchmarkResult struct {
	backends []string
	records  map[string]map[int]MetricRecord
}

func NewBenchmarkResult() *BenchmarkResult {
	return &BenchmarkResult{
		records: make(map[string]map[int]MetricRecord),
	}
}

// Record stores the metrics for one (backend, size) pair. The first record
// for a backend establishes its position in the iteration order.
func (r *BenchmarkResult) Record(backend string, size int, record MetricRecord) {
	perSize, ok := r.records[backend]
	if !ok {
		perSize = make(map[int]MetricRecord)
		r.records[backend] = perSize
		r.backends = append(r.backends, backend)
	}
	perSize[size] = record
}

// Backends returns backend identifiers in insertion order.
func (r *BenchmarkResult) Backends() []string {
	out := make([]string, len(r.backends))
	copy(out, r.backends)
	return out
}

// Sizes returns the sizes recorded for a backend in ascending order.
func (r *BenchmarkResult) Sizes(backend string) []int {
	perSize, ok := r.records[backend]
	if !ok {
		return nil
	}
	sizes := make([]int, 0, len(perSize))
	for size := range perSize {
		sizes = append(sizes, size)
	}
	sort.Ints(sizes)
	return sizes
}

func (r *BenchmarkResult) Get(backend string, size int) (MetricRecord, bool) {
	record, ok := r.records[backend][size]
	return record, ok
}

func (r *BenchmarkResult) HasBackend(backend string) bool {
	_, ok := r.records[backend]
	return ok
}

// MarshalJSON writes the nested mapping with backends in insertion order and
// sizes ascending. encoding/json would sort size keys lexically ("128" before
// "64"), which breaks snapshot comparisons.
func (r *BenchmarkResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, backend := range r.backends {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(backend)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, size := range r.Sizes(backend) {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strconv.Itoa(size))
			buf.WriteString(`":`)
			record, err := json.Marshal(r.records[backend][size])
			if err != nil {
				return nil, err
			}
			buf.Write(record)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

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

// Package parser turns the line-oriented stdout of an external benchmark
// backend into a MetricRecord. Parsing is best effort: each recognized line
// contributes its fields independently, malformed values are dropped field by
// field, and unrecognized lines are skipped.
package parser

import (
	"strconv"
	"strings"

	"github.com/eth-easl/matbench/pkg/common"
)

// lineExtractor binds one literal label prefix to the metrics it carries.
// speedupMetric is empty for labels without a parenthesized speedup token.
type lineExtractor struct {
	label         string
	timeMetric    string
	speedupMetric string
}

var lineExtractors = []lineExtractor{
	{label: "Naive Algorithm:", timeMetric: common.MetricNaiveTimeMs},
	{label: "Optimized Algorithm:", timeMetric: common.MetricOptimizedTimeMs, speedupMetric: common.MetricSpeedup},
	{label: "RISC-V Optimized:", timeMetric: common.MetricIsaTimeMs, speedupMetric: common.MetricIsaSpeedup},
}

// ParseBackendOutput scans raw backend stdout and collects every metric it can
// extract. The result may be empty when no line matched.
func ParseBackendOutput(output string) common.MetricRecord {
	record := common.MetricRecord{}

	for _, line := range strings.Split(output, "\n") {
		for _, extractor := range lineExtractors {
			idx := strings.Index(line, extractor.label)
			if idx < 0 {
				continue
			}
			extractor.extract(line[idx+len(extractor.label):], record)
			break
		}
	}

	return record
}

// extract parses the remainder of a labelled line. The millisecond value and
// the speedup factor are independent sub-parses: a malformed speedup token
// does not discard a well-formed time, and vice versa.
func (e lineExtractor) extract(rest string, record common.MetricRecord) {
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return
	}

	if ms, err := strconv.ParseFloat(fields[0], 64); err == nil {
		record[e.timeMetric] = ms
	}

	if e.speedupMetric == "" {
		return
	}

	// The speedup token is shaped "(<float>x)", e.g. "(3.20x)", usually with
	// a unit token ("ms") between it and the time value.
	for _, field := range fields[1:] {
		if !strings.HasPrefix(field, "(") {
			continue
		}
		token := strings.TrimSuffix(strings.Trim(field, "()"), "x")
		if speedup, err := strconv.ParseFloat(token, 64); err == nil {
			record[e.speedupMetric] = speedup
		}
		return
	}
}

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
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/eth-easl/matbench/pkg/common"
	"github.com/eth-easl/matbench/pkg/parser"
)

// Outcome classifies one external invocation.
type Outcome int

const (
	Completed Outcome = iota
	TimedOut
	Failed
)

// InvocationResult carries the outcome of one (backend, size) invocation.
// Metrics is set only for Completed; Diagnostic only for Failed.
type InvocationResult struct {
	Outcome    Outcome
	Metrics    common.MetricRecord
	Diagnostic string
}

// ExternalRunner benchmarks one compiled backend artifact over the
// command-line/stdout protocol: `<path> --matrix --size <N>`.
type ExternalRunner struct {
	Name    string
	Path    string
	Timeout time.Duration
}

func NewExternalRunner(name string, path string, timeout time.Duration) *ExternalRunner {
	return &ExternalRunner{
		Name:    name,
		Path:    path,
		Timeout: timeout,
	}
}

// ArtifactAvailable reports whether the backend artifact exists on disk.
func (r *ExternalRunner) ArtifactAvailable() bool {
	_, err := os.Stat(r.Path)
	return err == nil
}

// Run invokes the artifact for one problem size. The invocation is bounded by
// the runner's timeout; on expiry the process is killed before returning.
// Nothing that happens here escapes as an error - every outcome is carried in
// the result so the driver can continue with the next size.
func (r *ExternalRunner) Run(size int) InvocationResult {
	ctx, cancel := context.WithTimeout(context.Background(), r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.Path, "--matrix", "--size", strconv.Itoa(size))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return InvocationResult{Outcome: TimedOut}
	}
	if err != nil {
		return InvocationResult{Outcome: Failed, Diagnostic: diagnostic(err, stderr.String())}
	}

	return InvocationResult{
		Outcome: Completed,
		Metrics: parser.ParseBackendOutput(stdout.String()),
	}
}

func diagnostic(err error, stderr string) string {
	if trimmed := strings.TrimSpace(stderr); trimmed != "" {
		return trimmed
	}
	return err.Error()
}

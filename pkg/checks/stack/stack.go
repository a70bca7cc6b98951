// tpu-doc
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package stack validates the software stack used by TPU workloads:
// JAX, libtpu, XLA, Python and the PJRT plugin.
package stack

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	JAXID          = "STK-001"
	LibTPUID       = "STK-002"
	XLAID          = "STK-003"
	PythonID       = "STK-004"
	PJRTID         = "STK-005"
	ConflictsID    = "STK-006"
	EnvironmentID  = "STK-007"
	python         = "python3"
	unparseableMsg = "Could not parse version for compatibility check"
)

var (
	minJAXVersion    = Version{Major: 0, Minor: 4, Patch: 1}
	minPythonVersion = Version{Major: 3, Minor: 9, Patch: 0}
	// first JAX release built against NumPy 2
	numpy2JAXVersion = Version{Major: 0, Minor: 4, Patch: 26}

	libtpuPaths     = []string{"/usr/local/lib/libtpu.so", "/usr/lib/libtpu.so"}
	requiredEnv     = []string{"TPU_NAME"}
	recommendedEnv  = []string{"TPU_WORKER_ID", "PYTHONPATH"}
	errNotInstalled = errors.New("not installed or not detectable")
)

type probes struct {
	sys platform.System
	tpu platform.Accelerator
}

// Checks returns the software stack checks.
func Checks(sys platform.System, acc platform.Accelerator) []checks.Registered {
	p := &probes{sys: sys, tpu: acc}
	return []checks.Registered{
		{
			Check:               checks.Check{ID: JAXID, Name: "JAX Version Check", Category: checks.Stack, Description: "Detect and validate installed JAX version"},
			Probe:               p.jax,
			EstimatedDurationMs: 1000,
		},
		{
			Check:               checks.Check{ID: LibTPUID, Name: "libtpu Version Check", Category: checks.Stack, Description: "Detect and validate libtpu version"},
			Probe:               p.libtpu,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: XLAID, Name: "XLA Compiler Check", Category: checks.Stack, Description: "Detect XLA compiler version"},
			Probe:               p.xla,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: PythonID, Name: "Python Version Check", Category: checks.Stack, Description: "Check Python version compatibility"},
			Probe:               p.python,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: PJRTID, Name: "PJRT Plugin Check", Category: checks.Stack, Description: "Verify PJRT TPU plugin is available"},
			Probe:               p.pjrt,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: ConflictsID, Name: "Dependency Conflict Check", Category: checks.Stack, Description: "Check for known conflicting package versions"},
			Probe:               p.conflicts,
			EstimatedDurationMs: 1000,
		},
		{
			Check:               checks.Check{ID: EnvironmentID, Name: "Environment Variables Check", Category: checks.Stack, Description: "Verify required environment variables are set"},
			Probe:               p.environment,
			EstimatedDurationMs: 100,
		},
	}
}

// pythonModuleVersion prints the __version__ of a python module
func (p *probes) pythonModuleVersion(ctx context.Context, module string) (string, error) {
	out, err := p.sys.Command(ctx, python, "-c", fmt.Sprintf("import %[1]s; print(%[1]s.__version__)", module))
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", errNotInstalled
	}
	// warnings printed by the import end up before the version
	lines := strings.Split(out, "\n")
	return strings.TrimSpace(lines[len(lines)-1]), nil
}

// jaxVersion resolves the JAX version from JAX_VERSION, the python module or pip.
func (p *probes) jaxVersion(ctx context.Context) (string, error) {
	if v, ok := p.sys.Env("JAX_VERSION"); ok && v != "" {
		return v, nil
	}
	if v, err := p.pythonModuleVersion(ctx, "jax"); err == nil {
		return v, nil
	}
	out, err := p.sys.Command(ctx, "pip3", "show", "jax")
	if err == nil {
		for _, line := range strings.Split(out, "\n") {
			if v, ok := strings.CutPrefix(line, "Version:"); ok {
				return strings.TrimSpace(v), nil
			}
		}
	}
	return "", fmt.Errorf("JAX %w", errNotInstalled)
}

func (p *probes) jax(ctx context.Context) checks.Result {
	start := time.Now()
	raw, err := p.jaxVersion(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("JAX version unavailable: %v", err))
	}
	return minimumVersion("JAX", raw, minJAXVersion, start)
}

func (p *probes) libtpu(ctx context.Context) checks.Result {
	start := time.Now()
	v, err := p.tpu.LibraryVersion()
	if err != nil {
		logger.FromContext(ctx).Debug("libtpu not found", "error", err)
		return checks.Skip(fmt.Sprintf("libtpu version unavailable: %v", err))
	}
	if strings.Contains(v, "dev") || strings.Contains(v, "nightly") {
		return checks.Warn(fmt.Sprintf("libtpu version %s", v), "Using development/nightly build", checks.Elapsed(start))
	}
	return checks.Pass(fmt.Sprintf("libtpu version %s", v), checks.Elapsed(start))
}

func (p *probes) xla(ctx context.Context) checks.Result {
	start := time.Now()
	if v, ok := p.sys.Env("XLA_VERSION"); ok && v != "" {
		return checks.Pass(fmt.Sprintf("XLA version %s", v), checks.Elapsed(start))
	}
	if v, err := p.pythonModuleVersion(ctx, "jaxlib"); err == nil {
		return checks.Pass(fmt.Sprintf("XLA version jaxlib %s", v), checks.Elapsed(start))
	}
	return checks.Skip("XLA version not detectable (informational only)")
}

func (p *probes) python(ctx context.Context) checks.Result {
	start := time.Now()
	raw, ok := p.sys.Env("PYTHON_VERSION")
	if !ok || raw == "" {
		out, err := p.sys.Command(ctx, python, "--version")
		if err != nil {
			return checks.Skip(fmt.Sprintf("Python version unavailable: %v", err))
		}
		v, found := strings.CutPrefix(out, "Python ")
		if !found {
			return checks.Skip("Python version unavailable: could not parse python3 --version output")
		}
		raw = strings.TrimSpace(v)
	}
	return minimumVersion("Python", raw, minPythonVersion, start)
}

func minimumVersion(component, raw string, minimum Version, start time.Time) checks.Result {
	v, ok := ParseVersion(raw)
	if !ok {
		return checks.Warn(fmt.Sprintf("%s version %s (unparseable)", component, raw), unparseableMsg, checks.Elapsed(start))
	}
	if v.Less(minimum) {
		return checks.Fail(
			fmt.Sprintf("%s version %s is too old", component, raw),
			fmt.Sprintf("Minimum required version is %s", minimum),
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("%s version %s", component, raw), checks.Elapsed(start))
}

func (p *probes) pjrt(_ context.Context) checks.Result {
	start := time.Now()
	if path, ok := p.sys.Env("TPU_LIBRARY_PATH"); ok && path != "" {
		if p.sys.FileExists(path) {
			return checks.Pass(fmt.Sprintf("PJRT plugin found at %s", path), checks.Elapsed(start))
		}
		return checks.Fail("TPU_LIBRARY_PATH points to non-existent location", fmt.Sprintf("Path %s does not exist", path), checks.Elapsed(start))
	}

	for _, path := range libtpuPaths {
		if p.sys.FileExists(path) {
			return checks.Pass(fmt.Sprintf("PJRT plugin found at %s", path), checks.Elapsed(start))
		}
	}
	return checks.Warn("TPU_LIBRARY_PATH not set", "PJRT plugin location not specified", checks.Elapsed(start))
}

func (p *probes) conflicts(ctx context.Context) checks.Result {
	start := time.Now()
	var conflicts []string

	jaxRaw, jaxErr := p.jaxVersion(ctx)
	jaxV, jaxParsed := ParseVersion(jaxRaw)

	if jaxErr == nil && strings.HasPrefix(jaxRaw, "0.4") {
		if tf, err := p.pythonModuleVersion(ctx, "tensorflow"); err == nil {
			if major, ok := majorVersion(tf); ok && major < 2 {
				conflicts = append(conflicts, fmt.Sprintf("JAX %s with TensorFlow %s may cause conflicts", jaxRaw, tf))
			}
		}
	}

	if jaxErr == nil && jaxParsed {
		if np, err := p.pythonModuleVersion(ctx, "numpy"); err == nil {
			if major, ok := majorVersion(np); ok && major >= 2 && jaxV.Less(numpy2JAXVersion) {
				conflicts = append(conflicts, fmt.Sprintf("JAX %s may not be compatible with NumPy %s", jaxRaw, np))
			}
		}
	}

	if jaxErr == nil {
		if out, err := p.sys.Command(ctx, "nvcc", "--version"); err == nil && strings.Contains(strings.ToLower(out), "cuda") {
			conflicts = append(conflicts, "CUDA toolkit detected - ensure using TPU-compatible JAX build")
		}
	}

	if len(conflicts) > 0 {
		return checks.Warn(fmt.Sprintf("%d potential conflict(s) detected", len(conflicts)), strings.Join(conflicts, "; "), checks.Elapsed(start))
	}
	return checks.Pass("No known dependency conflicts", checks.Elapsed(start))
}

func (p *probes) environment(_ context.Context) checks.Result {
	start := time.Now()
	missing := func(names []string) []string {
		var out []string
		for _, n := range names {
			if v, ok := p.sys.Env(n); !ok || v == "" {
				out = append(out, n)
			}
		}
		return out
	}

	if m := missing(requiredEnv); len(m) > 0 {
		return checks.Fail(
			fmt.Sprintf("Missing required environment variable(s): %s", strings.Join(m, ", ")),
			"These variables are required for TPU operation",
			checks.Elapsed(start),
		)
	}
	if m := missing(recommendedEnv); len(m) > 0 {
		return checks.Warn(
			fmt.Sprintf("Missing recommended variable(s): %s", strings.Join(m, ", ")),
			"These variables are recommended for optimal operation",
			checks.Elapsed(start),
		)
	}
	return checks.Pass("All environment variables set", checks.Elapsed(start))
}

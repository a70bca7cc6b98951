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

package stack

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

// commands maps a command line to its output. Missing entries fail like a missing binary.
type commands map[string]string

func newSystem(env map[string]string, files []string, cmds commands) *platform.SystemMock {
	return &platform.SystemMock{
		EnvFunc: func(name string) (string, bool) {
			v, ok := env[name]
			return v, ok
		},
		FileExistsFunc: func(path string) bool {
			for _, f := range files {
				if f == path {
					return true
				}
			}
			return false
		},
		CommandFunc: func(_ context.Context, name string, args ...string) (string, error) {
			line := strings.Join(append([]string{name}, args...), " ")
			if out, ok := cmds[line]; ok {
				return out, nil
			}
			return "", checks.ErrCommand{Command: line, Message: "executable file not found in $PATH"}
		},
	}
}

func probe(sys platform.System, acc platform.Accelerator, id string) checks.Result {
	if acc == nil {
		acc = &platform.AcceleratorMock{}
	}
	for _, c := range Checks(sys, acc) {
		if c.ID == id {
			return c.Probe(context.Background())
		}
	}
	panic("unknown check " + id)
}

const (
	jaxCmd    = "python3 -c import jax; print(jax.__version__)"
	jaxlibCmd = "python3 -c import jaxlib; print(jaxlib.__version__)"
	tfCmd     = "python3 -c import tensorflow; print(tensorflow.__version__)"
	numpyCmd  = "python3 -c import numpy; print(numpy.__version__)"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   Version
		wantOK bool
	}{
		{in: "0.4.30", want: Version{0, 4, 30}, wantOK: true},
		{in: "3.10.12", want: Version{3, 10, 12}, wantOK: true},
		{in: "2.1", want: Version{2, 1, 0}, wantOK: true},
		{in: "0.4.1rc1", want: Version{0, 4, 1}, wantOK: true},
		{in: "0.4.dev20240101", want: Version{0, 4, 0}, wantOK: true},
		{in: "3", wantOK: false},
		{in: "latest", wantOK: false},
		{in: "a.b.c", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVersion(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}

	assert.True(t, Version{0, 3, 25}.Less(Version{0, 4, 1}))
	assert.False(t, Version{0, 4, 1}.Less(Version{0, 4, 1}))
	assert.Equal(t, "3.9.0", minPythonVersion.String())
}

func TestJAX(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		cmds       commands
		wantStatus checks.Status
		wantText   string
	}{
		{
			name:       "from environment",
			env:        map[string]string{"JAX_VERSION": "0.4.30"},
			wantStatus: checks.StatusPass,
			wantText:   "JAX version 0.4.30",
		},
		{
			name:       "from python",
			cmds:       commands{jaxCmd: "0.4.26"},
			wantStatus: checks.StatusPass,
			wantText:   "JAX version 0.4.26",
		},
		{
			name:       "from pip",
			cmds:       commands{"pip3 show jax": "Name: jax\nVersion: 0.3.25\nSummary: Differentiate"},
			wantStatus: checks.StatusFail,
			wantText:   "JAX version 0.3.25 is too old",
		},
		{
			name:       "unparseable",
			env:        map[string]string{"JAX_VERSION": "head"},
			wantStatus: checks.StatusWarn,
			wantText:   "JAX version head (unparseable)",
		},
		{
			name:       "not installed",
			wantStatus: checks.StatusSkip,
			wantText:   "JAX version unavailable: JAX not installed or not detectable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probe(newSystem(tt.env, nil, tt.cmds), nil, JAXID)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantText, got.Text())
		})
	}
}

func TestLibTPU(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		err        error
		wantStatus checks.Status
	}{
		{name: "dev build", version: "0.1.dev20240101", wantStatus: checks.StatusWarn},
		{name: "nightly", version: "nightly-2024", wantStatus: checks.StatusWarn},
		{name: "stable", version: "0.0.8", wantStatus: checks.StatusPass},
		{name: "missing", err: checks.ErrIO{Context: "libtpu version", Message: "libtpu not found"}, wantStatus: checks.StatusSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &platform.AcceleratorMock{
				LibraryVersionFunc: func() (string, error) { return tt.version, tt.err },
			}
			assert.Equal(t, tt.wantStatus, probe(newSystem(nil, nil, nil), acc, LibTPUID).Status)
		})
	}
}

func TestXLA(t *testing.T) {
	got := probe(newSystem(map[string]string{"XLA_VERSION": "2024.1"}, nil, nil), nil, XLAID)
	assert.Equal(t, checks.Pass("XLA version 2024.1", got.DurationMs), got)

	got = probe(newSystem(nil, nil, commands{jaxlibCmd: "0.4.30"}), nil, XLAID)
	assert.Equal(t, "XLA version jaxlib 0.4.30", got.Message)

	got = probe(newSystem(nil, nil, nil), nil, XLAID)
	assert.Equal(t, checks.StatusSkip, got.Status)
}

func TestPython(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		cmds       commands
		wantStatus checks.Status
	}{
		{name: "env", env: map[string]string{"PYTHON_VERSION": "3.11.4"}, wantStatus: checks.StatusPass},
		{name: "interpreter", cmds: commands{"python3 --version": "Python 3.10.12"}, wantStatus: checks.StatusPass},
		{name: "too old", cmds: commands{"python3 --version": "Python 3.8.10"}, wantStatus: checks.StatusFail},
		{name: "unexpected output", cmds: commands{"python3 --version": "pyenv: python3: command not found"}, wantStatus: checks.StatusSkip},
		{name: "missing", wantStatus: checks.StatusSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, probe(newSystem(tt.env, nil, tt.cmds), nil, PythonID).Status)
		})
	}
}

func TestPJRT(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		files      []string
		wantStatus checks.Status
	}{
		{name: "explicit path", env: map[string]string{"TPU_LIBRARY_PATH": "/opt/libtpu.so"}, files: []string{"/opt/libtpu.so"}, wantStatus: checks.StatusPass},
		{name: "explicit path missing", env: map[string]string{"TPU_LIBRARY_PATH": "/opt/libtpu.so"}, wantStatus: checks.StatusFail},
		{name: "standard location", files: []string{"/usr/lib/libtpu.so"}, wantStatus: checks.StatusPass},
		{name: "nothing", wantStatus: checks.StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, probe(newSystem(tt.env, tt.files, nil), nil, PJRTID).Status)
		})
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name       string
		cmds       commands
		wantStatus checks.Status
		wantCount  int
	}{
		{
			name:       "clean",
			cmds:       commands{jaxCmd: "0.4.30", tfCmd: "2.15.0", numpyCmd: "2.0.1"},
			wantStatus: checks.StatusPass,
		},
		{
			name:       "old tensorflow",
			cmds:       commands{jaxCmd: "0.4.20", tfCmd: "1.15.5", numpyCmd: "1.26.4"},
			wantStatus: checks.StatusWarn,
			wantCount:  1,
		},
		{
			name:       "numpy 2 with old jax",
			cmds:       commands{jaxCmd: "0.4.20", numpyCmd: "2.0.0"},
			wantStatus: checks.StatusWarn,
			wantCount:  1,
		},
		{
			name: "cuda toolkit",
			cmds: commands{
				jaxCmd:          "0.4.20",
				numpyCmd:        "2.0.0",
				tfCmd:           "1.15.0",
				"nvcc --version": "Cuda compilation tools, release 12.2",
			},
			wantStatus: checks.StatusWarn,
			wantCount:  3,
		},
		{
			name:       "no jax",
			cmds:       commands{tfCmd: "1.15.0", "nvcc --version": "cuda"},
			wantStatus: checks.StatusPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probe(newSystem(nil, nil, tt.cmds), nil, ConflictsID)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantCount, strings.Count(got.Details, ";")+1, got.Details)
			}
		})
	}
}

func TestEnvironment(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "all set",
			env:        map[string]string{"TPU_NAME": "t", "TPU_WORKER_ID": "0", "PYTHONPATH": "/app"},
			wantStatus: checks.StatusPass,
			wantMsg:    "All environment variables set",
		},
		{
			name:       "recommended missing",
			env:        map[string]string{"TPU_NAME": "t"},
			wantStatus: checks.StatusWarn,
			wantMsg:    "Missing recommended variable(s): TPU_WORKER_ID, PYTHONPATH",
		},
		{
			name:       "required missing",
			env:        map[string]string{"TPU_NAME": ""},
			wantStatus: checks.StatusFail,
			wantMsg:    "Missing required environment variable(s): TPU_NAME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probe(newSystem(tt.env, nil, nil), nil, EnvironmentID)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

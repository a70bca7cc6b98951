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

package helper

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type mode string

func (m *mode) UnmarshalText(text []byte) error {
	switch s := strings.ToLower(string(text)); s {
	case "fast", "slow":
		*m = mode(s)
		return nil
	default:
		return fmt.Errorf("unknown mode %q", s)
	}
}

type testConfig struct {
	MaxParallel int
	Format      string
	Only        []string
	Timeout     time.Duration
	Mode        mode
	FailFast    bool `mapstructure:"fail-fast"`
}

// Test case structure
type test[T any] struct {
	name      string
	input     any
	want      T
	expectErr bool
}

func TestDecode(t *testing.T) {
	tests := []test[testConfig]{
		{
			name: "Valid input",
			input: map[string]any{
				"MaxParallel": "8",
				"Format":      "json",
				"Only":        "HW-001,HW-002",
				"Timeout":     "30s",
				"Mode":        "FAST",
				"fail-fast":   "true",
			},
			want: testConfig{
				MaxParallel: 8,
				Format:      "json",
				Only:        []string{"HW-001", "HW-002"},
				Timeout:     30 * time.Second,
				Mode:        "fast",
				FailFast:    true,
			},
			expectErr: false,
		},
		{
			name: "Typed input",
			input: map[string]any{
				"MaxParallel": 2,
				"Only":        []string{"IO-006"},
				"Timeout":     time.Minute,
			},
			want: testConfig{
				MaxParallel: 2,
				Only:        []string{"IO-006"},
				Timeout:     time.Minute,
			},
			expectErr: false,
		},
		{
			name: "Text unmarshaler rejects value",
			input: map[string]any{
				"Mode": "medium",
			},
			want:      testConfig{},
			expectErr: true,
		},
		{
			name:      "Invalid input type",
			input:     "invalid input",
			want:      testConfig{},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode[testConfig](tt.input)

			if (err != nil) != tt.expectErr {
				t.Errorf("Decode() error = %v, expectErr %v", err, tt.expectErr)
			}
			if tt.expectErr {
				return
			}

			assert.Equal(t, tt.want, got, "Decode() = %v, want %v", got, tt.want)
		})
	}
}

func TestDecodeInto(t *testing.T) {
	cfg := testConfig{MaxParallel: 4, Format: "text", Timeout: time.Minute}
	err := DecodeInto(map[string]any{"Format": "junit", "Timeout": "5s"}, &cfg)
	assert.NoError(t, err)
	assert.Equal(t, testConfig{MaxParallel: 4, Format: "junit", Timeout: 5 * time.Second}, cfg)

	err = DecodeInto(map[string]any{"Mode": "medium"}, &cfg)
	assert.Error(t, err)
}

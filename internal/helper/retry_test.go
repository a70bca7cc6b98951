// tpu-doc
// (C) 2023, Deutsche Telekom IT GmbH
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
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("metadata attribute not found")

// flakyMetadata fails the first n calls with a transient error.
func flakyMetadata(n int, calls *int) Effector {
	return func(context.Context) error {
		*calls++
		if *calls <= n {
			return fmt.Errorf("metadata server: connection refused (attempt %d)", *calls)
		}
		return nil
	}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		rc        RetryConfig
		wantCalls int
		wantErr   bool
	}{
		{name: "first call succeeds", failures: 0, rc: RetryConfig{Count: 2, Delay: time.Millisecond}, wantCalls: 1},
		{name: "succeeds on retry", failures: 1, rc: RetryConfig{Count: 2, Delay: time.Millisecond}, wantCalls: 2},
		{name: "succeeds on last retry", failures: 2, rc: RetryConfig{Count: 2, Delay: time.Millisecond}, wantCalls: 3},
		{name: "retries exhausted", failures: 5, rc: RetryConfig{Count: 2, Delay: time.Millisecond}, wantCalls: 3, wantErr: true},
		{name: "no retries configured", failures: 1, rc: RetryConfig{}, wantCalls: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(flakyMetadata(tt.failures, &calls), tt.rc)(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetry_permanent(t *testing.T) {
	calls := 0
	err := Retry(func(context.Context) error {
		calls++
		return Permanent(fmt.Errorf("instance/attributes/accelerator-type: %w", errNotFound))
	}, RetryConfig{Count: 3, Delay: time.Millisecond})(context.Background())

	require.ErrorIs(t, err, errNotFound)
	assert.Equal(t, 1, calls)
	assert.Nil(t, Permanent(nil))
}

func TestRetry_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(func(context.Context) error {
		calls++
		cancel()
		return errors.New("metadata server unreachable")
	}, RetryConfig{Count: 3, Delay: time.Hour})(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func Test_getExpBackoff(t *testing.T) {
	tests := []struct {
		iteration int
		want      time.Duration
	}{
		{iteration: 1, want: 100 * time.Millisecond},
		{iteration: 2, want: 200 * time.Millisecond},
		{iteration: 3, want: 400 * time.Millisecond},
		{iteration: 5, want: 1600 * time.Millisecond},
		{iteration: 0, want: 100 * time.Millisecond},
		{iteration: -3, want: 100 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("iteration %d", tt.iteration), func(t *testing.T) {
			assert.Equal(t, tt.want, getExpBackoff(100*time.Millisecond, tt.iteration))
		})
	}
}

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

package httpclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadataURL = "http://169.254.169.254/computeMetadata/v1/instance/hostname"

func TestFromContext(t *testing.T) {
	custom := New(time.Second)

	tests := []struct {
		name string
		ctx  context.Context
		want *http.Client
	}{
		{name: "no client in context", ctx: context.Background(), want: http.DefaultClient},
		{name: "nil client in context", ctx: IntoContext(context.Background(), nil), want: http.DefaultClient},
		{name: "client in context", ctx: IntoContext(context.Background(), custom), want: custom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, tt.want, FromContext(tt.ctx))
		})
	}
}

func TestNew(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, metadataURL, func(*http.Request) (*http.Response, error) {
		resp := httpmock.NewStringResponse(http.StatusFound, "")
		resp.Header.Set("Location", "http://metadata.google.internal/")
		return resp, nil
	})

	c := New(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Timeout)

	resp, err := c.Get(metadataURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode, "redirects must be reported, not followed")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

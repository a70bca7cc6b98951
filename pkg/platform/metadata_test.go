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

package platform

import (
	"context"
	"errors"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/tpu-doc/internal/helper"
	"github.com/caas-team/tpu-doc/pkg/checks"
)

const testMetadataURL = "http://metadata.test/computeMetadata/v1/"

func newTestMetadata(retries int) *GCPMetadata {
	return NewMetadata(Config{
		MetadataURL:     testMetadataURL,
		MetadataTimeout: time.Second,
		MetadataRetry:   helper.RetryConfig{Count: retries, Delay: time.Millisecond},
	})
}

// flavorResponder answers only requests carrying the metadata flavor header
func flavorResponder(status int, body string) httpmock.Responder {
	return func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("Metadata-Flavor") != "Google" {
			return httpmock.NewStringResponse(http.StatusForbidden, "missing header"), nil
		}
		return httpmock.NewStringResponse(status, body), nil
	}
}

func TestGCPMetadata_Get(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	tests := []struct {
		name      string
		path      string
		responder httpmock.Responder
		want      string
		wantErr   bool
		wantCalls int
	}{
		{
			name:      "project id",
			path:      "project/project-id",
			responder: flavorResponder(http.StatusOK, "my-project\n"),
			want:      "my-project",
			wantCalls: 1,
		},
		{
			name:      "not found is not retried",
			path:      "instance/unknown",
			responder: flavorResponder(http.StatusNotFound, "not found"),
			wantErr:   true,
			wantCalls: 1,
		},
		{
			name:      "server errors are retried",
			path:      "instance/name",
			responder: flavorResponder(http.StatusServiceUnavailable, ""),
			wantErr:   true,
			wantCalls: 3,
		},
		{
			name:      "transport errors are retried",
			path:      "instance/zone",
			responder: httpmock.NewErrorResponder(errors.New("connection reset")),
			wantErr:   true,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder(http.MethodGet, testMetadataURL+tt.path, tt.responder)

			got, err := newTestMetadata(2).Get(context.Background(), tt.path)
			if tt.wantErr {
				var ioErr checks.ErrIO
				assert.True(t, errors.As(err, &ioErr), "expected ErrIO, got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantCalls, httpmock.GetTotalCallCount())
		})
	}
}

func TestGCPMetadata_InstanceAttribute(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	httpmock.RegisterResponder(http.MethodGet, testMetadataURL+"instance/attributes/enable-oslogin", flavorResponder(http.StatusOK, "TRUE"))
	httpmock.RegisterResponder(http.MethodGet, testMetadataURL+"instance/attributes/gke-cluster-name", flavorResponder(http.StatusNotFound, ""))
	httpmock.RegisterResponder(http.MethodGet, testMetadataURL+"instance/attributes/broken", flavorResponder(http.StatusInternalServerError, ""))

	md := newTestMetadata(0)
	ctx := context.Background()

	v, ok, err := md.InstanceAttribute(ctx, "enable-oslogin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "TRUE", v)

	v, ok, err = md.InstanceAttribute(ctx, "gke-cluster-name")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)

	_, _, err = md.InstanceAttribute(ctx, "broken")
	assert.Error(t, err)
}

func TestGCPMetadata_UnauthenticatedStatus(t *testing.T) {
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	httpmock.RegisterResponder(http.MethodGet, testMetadataURL, flavorResponder(http.StatusOK, "instance/\nproject/"))

	status, err := newTestMetadata(0).UnauthenticatedStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestMetadataHelpers(t *testing.T) {
	md := &MetadataMock{
		GetFunc: func(ctx context.Context, path string) (string, error) {
			switch path {
			case "instance/zone":
				return "projects/123456/zones/us-central2-b", nil
			case "instance/machine-type":
				return "projects/123456/machineTypes/ct5lp-hightpu-8t", nil
			case "instance/service-accounts/default/scopes":
				return "https://www.googleapis.com/auth/cloud-platform\n\nhttps://www.googleapis.com/auth/logging.write\n", nil
			case "instance/name":
				return "trailing/", nil
			}
			return "", checks.ErrIO{Context: path, Message: "HTTP 404"}
		},
	}
	ctx := context.Background()

	zone, err := Zone(ctx, md)
	require.NoError(t, err)
	assert.Equal(t, "us-central2-b", zone)

	mt, err := MachineType(ctx, md)
	require.NoError(t, err)
	assert.Equal(t, "ct5lp-hightpu-8t", mt)

	scopes, err := Scopes(ctx, md)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.googleapis.com/auth/cloud-platform",
		"https://www.googleapis.com/auth/logging.write",
	}, scopes)

	_, err = ProjectID(ctx, md)
	assert.Error(t, err)

	_, err = lastSegment(ctx, md, "instance/name")
	var perr checks.ErrParse
	assert.True(t, errors.As(err, &perr))
}

func TestGCPMetadata_Reachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	md := NewMetadata(Config{MetadataURL: "http://" + ln.Addr().String() + "/computeMetadata/v1"})
	assert.True(t, md.Reachable(context.Background()))

	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	unreachable := NewMetadata(Config{MetadataURL: "http://" + addr + "/"})
	assert.False(t, unreachable.Reachable(context.Background()))
	// the outcome is memoized
	assert.True(t, md.Reachable(context.Background()))
}

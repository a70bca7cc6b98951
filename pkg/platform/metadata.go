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
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/caas-team/tpu-doc/internal/helper"
	"github.com/caas-team/tpu-doc/internal/httpclient"
	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
)

const (
	// DefaultMetadataURL is the base url of the GCE metadata server
	DefaultMetadataURL = "http://169.254.169.254/computeMetadata/v1/"
	// DefaultMetadataTimeout bounds a single metadata request
	DefaultMetadataTimeout = 5 * time.Second
	// metadataDialTimeout bounds the reachability probe
	metadataDialTimeout = time.Second
	metadataFlavorHeader = "Metadata-Flavor"
	metadataFlavor       = "Google"
	// maxMetadataBody limits how much of a response is read
	maxMetadataBody = 64 * 1024
)

var _ Metadata = (*GCPMetadata)(nil)

// GCPMetadata queries the GCE metadata server over plain http.
type GCPMetadata struct {
	base    *url.URL
	timeout time.Duration
	retry   helper.RetryConfig

	reachableOnce sync.Once
	reachable     bool
}

// NewMetadata returns a metadata client. The http.Client is taken from the
// request context, see package httpclient.
func NewMetadata(cfg Config) *GCPMetadata {
	raw := cfg.MetadataURL
	if raw == "" {
		raw = DefaultMetadataURL
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	base, err := url.Parse(raw)
	if err != nil {
		base, _ = url.Parse(DefaultMetadataURL)
	}
	timeout := cfg.MetadataTimeout
	if timeout <= 0 {
		timeout = DefaultMetadataTimeout
	}
	return &GCPMetadata{base: base, timeout: timeout, retry: cfg.MetadataRetry}
}

// Reachable tries a tcp connection to the metadata server.
// The outcome is resolved once per process.
func (m *GCPMetadata) Reachable(ctx context.Context) bool {
	m.reachableOnce.Do(func() {
		host := m.base.Host
		if m.base.Port() == "" {
			host = net.JoinHostPort(m.base.Hostname(), "80")
		}
		d := net.Dialer{Timeout: metadataDialTimeout}
		conn, err := d.DialContext(ctx, "tcp", host)
		if err != nil {
			logger.FromContext(ctx).Debug("Metadata server not reachable", "host", host, "error", err)
			return
		}
		_ = conn.Close()
		m.reachable = true
	})
	return m.reachable
}

// Get returns the trimmed body of the metadata path.
// Non-200 responses are returned as checks.ErrIO carrying the status code.
func (m *GCPMetadata) Get(ctx context.Context, path string) (string, error) {
	var body string
	err := helper.Retry(func(ctx context.Context) error {
		var (
			status int
			err    error
		)
		body, status, err = m.do(ctx, path, true)
		if err != nil {
			return err
		}
		if status != http.StatusOK {
			err = checks.ErrIO{Context: "metadata " + path, Message: fmt.Sprintf("HTTP %d", status)}
			if status < http.StatusInternalServerError {
				return helper.Permanent(err)
			}
			return err
		}
		return nil
	}, m.retry)(ctx)
	if err != nil {
		return "", err
	}
	return body, nil
}

// InstanceAttribute returns a custom instance attribute.
// A 404 answer means the attribute is not set and is not an error.
func (m *GCPMetadata) InstanceAttribute(ctx context.Context, name string) (string, bool, error) {
	path := "instance/attributes/" + name
	body, status, err := m.do(ctx, path, true)
	if err != nil {
		return "", false, err
	}
	switch status {
	case http.StatusOK:
		return body, true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, checks.ErrIO{Context: "metadata " + path, Message: fmt.Sprintf("HTTP %d", status)}
	}
}

// UnauthenticatedStatus requests the metadata root without the flavor header.
// A hardened server answers 403.
func (m *GCPMetadata) UnauthenticatedStatus(ctx context.Context) (int, error) {
	_, status, err := m.do(ctx, "", false)
	return status, err
}

func (m *GCPMetadata) do(ctx context.Context, path string, flavor bool) (string, int, error) {
	log := logger.FromContext(ctx).With("path", path)
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	u := m.base.ResolveReference(&url.URL{Path: strings.TrimPrefix(path, "/")})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return "", 0, checks.ErrIO{Context: "metadata " + path, Message: err.Error()}
	}
	if flavor {
		req.Header.Set(metadataFlavorHeader, metadataFlavor)
	}

	res, err := httpclient.FromContext(ctx).Do(req) //nolint:bodyclose // closed below
	if err != nil {
		log.Debug("Metadata request failed", "error", err)
		if ctx.Err() != nil {
			return "", 0, checks.ErrIO{Context: "metadata " + path, Message: fmt.Sprintf("timeout after %s", m.timeout)}
		}
		return "", 0, checks.ErrIO{Context: "metadata " + path, Message: err.Error()}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Debug("Failed to close response body", "error", err)
		}
	}(res.Body)

	b, err := io.ReadAll(io.LimitReader(res.Body, maxMetadataBody))
	if err != nil {
		return "", res.StatusCode, checks.ErrIO{Context: "metadata " + path, Message: err.Error()}
	}
	return strings.TrimSpace(string(b)), res.StatusCode, nil
}

// ProjectID returns the project of the instance.
func ProjectID(ctx context.Context, m Metadata) (string, error) {
	return m.Get(ctx, "project/project-id")
}

// Zone returns the zone of the instance, e.g. "us-central2-b".
func Zone(ctx context.Context, m Metadata) (string, error) {
	return lastSegment(ctx, m, "instance/zone")
}

// InstanceName returns the name of the instance.
func InstanceName(ctx context.Context, m Metadata) (string, error) {
	return m.Get(ctx, "instance/name")
}

// MachineType returns the machine type of the instance, e.g. "ct5lp-hightpu-8t".
func MachineType(ctx context.Context, m Metadata) (string, error) {
	return lastSegment(ctx, m, "instance/machine-type")
}

// ServiceAccount returns the email of the default service account.
func ServiceAccount(ctx context.Context, m Metadata) (string, error) {
	return m.Get(ctx, "instance/service-accounts/default/email")
}

// Scopes returns the oauth scopes of the default service account.
func Scopes(ctx context.Context, m Metadata) ([]string, error) {
	body, err := m.Get(ctx, "instance/service-accounts/default/scopes")
	if err != nil {
		return nil, err
	}
	var scopes []string
	for _, line := range strings.Split(body, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			scopes = append(scopes, s)
		}
	}
	return scopes, nil
}

func lastSegment(ctx context.Context, m Metadata, path string) (string, error) {
	body, err := m.Get(ctx, path)
	if err != nil {
		return "", err
	}
	i := strings.LastIndex(body, "/")
	seg := body[i+1:]
	if seg == "" {
		return "", checks.ErrParse{Context: "metadata " + path, Message: fmt.Sprintf("unexpected value %q", body)}
	}
	return seg, nil
}

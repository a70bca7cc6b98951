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
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/internal/httpclient"
	"github.com/caas-team/tpu-doc/internal/logger"
	"github.com/caas-team/tpu-doc/pkg/checks"
)

// DNSResult is the outcome of a name resolution.
type DNSResult struct {
	Host      string
	Addresses []string
	Latency   time.Duration
}

// ConnectResult is the outcome of a tcp connection attempt.
type ConnectResult struct {
	Success bool
	Latency time.Duration
}

// HTTPResult is the outcome of a GET request.
type HTTPResult struct {
	StatusCode int
	Latency    time.Duration
	// BodyPreview holds the first bytes of the response body
	BodyPreview string
}

// BandwidthResult is the outcome of a download.
type BandwidthResult struct {
	Bytes   int64
	Seconds float64
}

// MBps returns the throughput in megabytes per second.
func (b BandwidthResult) MBps() float64 {
	if b.Seconds <= 0 {
		return 0
	}
	return float64(b.Bytes) / b.Seconds / 1e6
}

const (
	bodyPreviewLen = 256
	// TLSNotImplemented is the preview reported for https endpoints
	TLSNotImplemented = "HTTPS endpoint (TLS not implemented)"
)

// Resolver looks up host names.
//
//go:generate moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
	SetDialer(d *net.Dialer)
}

type resolver struct {
	*net.Resolver
}

func newResolver() Resolver {
	return &resolver{
		Resolver: &net.Resolver{
			// required for the custom dialer to be used
			PreferGo: true,
		},
	}
}

func (r *resolver) SetDialer(d *net.Dialer) {
	r.Dial = func(ctx context.Context, network, address string) (net.Conn, error) {
		return d.DialContext(ctx, network, address)
	}
}

var _ Network = (*NetProbe)(nil)

// NetProbe performs plain tcp and http probes.
type NetProbe struct {
	resolver Resolver
	dial     func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewNetwork returns the network probe of the host.
func NewNetwork() *NetProbe {
	d := &net.Dialer{}
	return &NetProbe{resolver: newResolver(), dial: d.DialContext}
}

// Resolve resolves host and measures the lookup latency.
func (n *NetProbe) Resolve(ctx context.Context, host string) (DNSResult, error) {
	log := logger.FromContext(ctx).With("host", host)
	n.resolver.SetDialer(&net.Dialer{Timeout: 5 * time.Second})

	start := time.Now()
	addrs, err := n.resolver.LookupHost(ctx, host)
	latency := time.Since(start)
	if err != nil {
		log.Debug("Lookup failed", "error", err)
		return DNSResult{Host: host, Latency: latency}, checks.ErrIO{Context: "dns " + host, Message: err.Error()}
	}
	if len(addrs) == 0 {
		return DNSResult{Host: host, Latency: latency}, checks.ErrIO{Context: "dns " + host, Message: "no addresses"}
	}
	return DNSResult{Host: host, Addresses: addrs, Latency: latency}, nil
}

// TCPConnect connects to host:port. Refused and timed out connections are
// reported as unsuccessful; resolution failures are returned as checks.ErrIO.
func (n *NetProbe) TCPConnect(ctx context.Context, host string, port int, timeout time.Duration) (ConnectResult, error) {
	log := logger.FromContext(ctx).With("host", host, "port", port)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	conn, err := n.dial(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	latency := time.Since(start)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
			return ConnectResult{}, checks.ErrIO{Context: "resolve " + host, Message: dnsErr.Error()}
		}
		log.Debug("Connection failed", "error", err)
		return ConnectResult{Success: false, Latency: timeout}, nil
	}
	_ = conn.Close()
	return ConnectResult{Success: true, Latency: latency}, nil
}

// HTTPGet requests rawURL. For https urls only tcp reachability of the
// endpoint is tested.
func (n *NetProbe) HTTPGet(ctx context.Context, rawURL string, timeout time.Duration) (HTTPResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return HTTPResult{}, checks.ErrParse{Context: "url", Message: fmt.Sprintf("invalid url %q", rawURL)}
	}

	if u.Scheme == "https" {
		port := 443
		if p := u.Port(); p != "" {
			port, _ = strconv.Atoi(p)
		}
		res, err := n.TCPConnect(ctx, u.Hostname(), port, timeout)
		if err != nil {
			return HTTPResult{}, err
		}
		status := 0
		if res.Success {
			status = http.StatusOK
		}
		return HTTPResult{StatusCode: status, Latency: res.Latency, BodyPreview: TLSNotImplemented}, nil
	}

	start := time.Now()
	body, _, status, err := n.get(ctx, u, timeout, bodyPreviewLen)
	if err != nil {
		return HTTPResult{}, err
	}
	return HTTPResult{StatusCode: status, Latency: time.Since(start), BodyPreview: strings.ToValidUTF8(string(body), "�")}, nil
}

// Bandwidth downloads rawURL and measures the throughput.
func (n *NetProbe) Bandwidth(ctx context.Context, rawURL string, timeout time.Duration) (BandwidthResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return BandwidthResult{}, checks.ErrParse{Context: "url", Message: fmt.Sprintf("invalid url %q", rawURL)}
	}

	start := time.Now()
	_, size, status, err := n.get(ctx, u, timeout, -1)
	if err != nil {
		return BandwidthResult{}, err
	}
	if status != http.StatusOK {
		return BandwidthResult{}, checks.ErrIO{Context: "download " + u.Redacted(), Message: fmt.Sprintf("HTTP %d", status)}
	}
	return BandwidthResult{Bytes: size, Seconds: time.Since(start).Seconds()}, nil
}

// get performs a GET and returns at most limit bytes of the body. With a
// negative limit the body is discarded and only its size is returned.
func (n *NetProbe) get(ctx context.Context, u *url.URL, timeout time.Duration, limit int64) ([]byte, int64, int, error) {
	log := logger.FromContext(ctx).With("url", u.Redacted())
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, 0, 0, checks.ErrIO{Context: "http " + u.Redacted(), Message: err.Error()}
	}

	res, err := httpclient.FromContext(ctx).Do(req) //nolint:bodyclose // closed below
	if err != nil {
		log.Debug("Request failed", "error", err)
		if ctx.Err() != nil {
			return nil, 0, 0, checks.ErrTimeout{Operation: "GET " + u.Redacted(), TimeoutMs: timeout.Milliseconds()}
		}
		return nil, 0, 0, checks.ErrIO{Context: "http " + u.Redacted(), Message: err.Error()}
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			log.Debug("Failed to close response body", "error", err)
		}
	}(res.Body)

	var (
		body []byte
		size int64
	)
	if limit < 0 {
		size, err = io.Copy(io.Discard, res.Body)
	} else {
		body, err = io.ReadAll(io.LimitReader(res.Body, limit))
		size = int64(len(body))
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, size, res.StatusCode, checks.ErrTimeout{Operation: "GET " + u.Redacted(), TimeoutMs: timeout.Milliseconds()}
		}
		return nil, size, res.StatusCode, checks.ErrIO{Context: "http " + u.Redacted(), Message: err.Error()}
	}
	return body, size, res.StatusCode, nil
}

package security

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	emailPath  = "instance/service-accounts/default/email"
	scopesPath = "instance/service-accounts/default/scopes"
)

// gcp returns a reachable metadata server answering the given paths and attributes.
func gcp(paths, attributes map[string]string) *platform.MetadataMock {
	return &platform.MetadataMock{
		ReachableFunc: func(context.Context) bool { return true },
		GetFunc: func(_ context.Context, path string) (string, error) {
			if v, ok := paths[path]; ok {
				return v, nil
			}
			return "", checks.ErrIO{Context: "metadata " + path, Message: "HTTP 404"}
		},
		InstanceAttributeFunc: func(_ context.Context, name string) (string, bool, error) {
			v, ok := attributes[name]
			return v, ok, nil
		},
		UnauthenticatedStatusFunc: func(context.Context) (int, error) { return http.StatusForbidden, nil },
	}
}

func offGCP() *platform.MetadataMock {
	return &platform.MetadataMock{ReachableFunc: func(context.Context) bool { return false }}
}

func probe(t *testing.T, sys platform.System, md platform.Metadata, id string) checks.Result {
	t.Helper()
	if sys == nil {
		sys = &platform.SystemMock{}
	}
	for _, c := range Checks(sys, md) {
		if c.ID == id {
			return c.Probe(context.Background())
		}
	}
	t.Fatalf("check %s not found", id)
	return checks.Result{}
}

func TestNotOnGCP(t *testing.T) {
	for _, id := range []string{ServiceAccountID, WorkloadIdentityID, EncryptionID, MetadataAccessID, SSHKeysID} {
		t.Run(id, func(t *testing.T) {
			assert.Equal(t, checks.Skip(notOnGCP), probe(t, nil, offGCP(), id))
		})
	}
}

func TestServiceAccount(t *testing.T) {
	tests := []struct {
		name       string
		paths      map[string]string
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "narrow scopes",
			paths:      map[string]string{emailPath: "trainer@p.iam.gserviceaccount.com", scopesPath: "https://www.googleapis.com/auth/devstorage.read_only\nhttps://www.googleapis.com/auth/logging.write\n"},
			wantStatus: checks.StatusPass,
			wantMsg:    "Service account: trainer@p.iam.gserviceaccount.com",
		},
		{
			name:       "cloud platform",
			paths:      map[string]string{emailPath: "trainer@p.iam.gserviceaccount.com", scopesPath: "https://www.googleapis.com/auth/cloud-platform"},
			wantStatus: checks.StatusWarn,
			wantMsg:    "Service account trainer@p.iam.gserviceaccount.com has broad scopes",
		},
		{
			name:       "scopes unavailable",
			paths:      map[string]string{emailPath: "trainer@p.iam.gserviceaccount.com"},
			wantStatus: checks.StatusPass,
			wantMsg:    "Service account: trainer@p.iam.gserviceaccount.com (scopes not checked)",
		},
		{
			name:       "no service account",
			wantStatus: checks.StatusSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := probe(t, nil, gcp(tt.paths, nil), ServiceAccountID)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestNetworkExposure(t *testing.T) {
	any4 := net.IPv4zero
	local := net.IPv4(127, 0, 0, 1)
	tests := []struct {
		name       string
		sockets    []platform.Socket
		err        error
		wantStatus checks.Status
		wantMsg    string
	}{
		{
			name:       "nothing exposed",
			sockets:    []platform.Socket{{IP: local, Port: 8888}},
			wantStatus: checks.StatusPass,
			wantMsg:    "No services exposed on all interfaces",
		},
		{
			name:       "ssh only",
			sockets:    []platform.Socket{{IP: any4, Port: 22}, {IP: net.IPv6unspecified, Port: 22}},
			wantStatus: checks.StatusPass,
			wantMsg:    "1 port(s) listening on all interfaces (none concerning)",
		},
		{
			name:       "jupyter and tensorboard",
			sockets:    []platform.Socket{{IP: any4, Port: 8888}, {IP: any4, Port: 22}, {IP: net.IPv6unspecified, Port: 6006}},
			wantStatus: checks.StatusWarn,
			wantMsg:    "2 potentially exposed port(s): 6006 (TensorBoard), 8888 (Jupyter)",
		},
		{
			name:       "procfs unavailable",
			err:        checks.ErrIO{Context: "/proc/net/tcp", Message: "no such file"},
			wantStatus: checks.StatusSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := &platform.SystemMock{
				ListeningSocketsFunc: func() ([]platform.Socket, error) { return tt.sockets, tt.err },
			}
			got := probe(t, sys, offGCP(), NetworkExposureID)
			assert.Equal(t, tt.wantStatus, got.Status)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
		})
	}
}

func TestWorkloadIdentity(t *testing.T) {
	tests := []struct {
		name       string
		paths      map[string]string
		attributes map[string]string
		wantStatus checks.Status
	}{
		{name: "gke", attributes: map[string]string{"gke-cluster-name": "train"}, wantStatus: checks.StatusPass},
		{name: "default account", paths: map[string]string{emailPath: "123-compute@developer.gserviceaccount.com"}, wantStatus: checks.StatusWarn},
		{name: "custom account", paths: map[string]string{emailPath: "trainer@p.iam.gserviceaccount.com"}, wantStatus: checks.StatusPass},
		{name: "unknown", wantStatus: checks.StatusSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, probe(t, nil, gcp(tt.paths, tt.attributes), WorkloadIdentityID).Status)
		})
	}
}

func TestMetadataAccess(t *testing.T) {
	md := gcp(nil, nil)
	assert.Equal(t, checks.StatusPass, probe(t, nil, md, MetadataAccessID).Status)

	md.UnauthenticatedStatusFunc = func(context.Context) (int, error) { return http.StatusOK, nil }
	got := probe(t, nil, md, MetadataAccessID)
	assert.Equal(t, checks.StatusWarn, got.Status)
	assert.Contains(t, got.Details, "HTTP 200")

	md.UnauthenticatedStatusFunc = func(context.Context) (int, error) {
		return 0, checks.ErrIO{Context: "metadata", Message: "connection reset"}
	}
	assert.Equal(t, checks.StatusSkip, probe(t, nil, md, MetadataAccessID).Status)
}

func TestSSHKeys(t *testing.T) {
	tests := []struct {
		name       string
		attributes map[string]string
		wantStatus checks.Status
	}{
		{name: "os login", attributes: map[string]string{"enable-oslogin": "TRUE"}, wantStatus: checks.StatusPass},
		{name: "disabled", attributes: map[string]string{"enable-oslogin": "false"}, wantStatus: checks.StatusWarn},
		{name: "unset", wantStatus: checks.StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, probe(t, nil, gcp(nil, tt.attributes), SSHKeysID).Status)
		})
	}
}

func TestInformational(t *testing.T) {
	assert.Equal(t, checks.StatusPass, probe(t, nil, gcp(nil, nil), EncryptionID).Status)
	assert.Equal(t, checks.StatusPass, probe(t, nil, offGCP(), FirewallID).Status)
}

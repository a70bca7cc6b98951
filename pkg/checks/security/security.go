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

// Package security audits the security posture of the TPU VM.
package security

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/platform"
)

const (
	ServiceAccountID   = "SEC-001"
	NetworkExposureID  = "SEC-002"
	WorkloadIdentityID = "SEC-003"
	EncryptionID       = "SEC-004"
	MetadataAccessID   = "SEC-005"
	SSHKeysID          = "SEC-006"
	FirewallID         = "SEC-007"
)

const notOnGCP = "Not running on GCP"

var (
	// scopes granting more than a training job usually needs
	broadScopes = []string{"cloud-platform", "compute", "devstorage.full_control"}
	// ports of services that should not be reachable from outside the VM
	concerningPorts = map[int]string{
		3306:  "MySQL",
		3389:  "RDP",
		5432:  "PostgreSQL",
		6006:  "TensorBoard",
		6379:  "Redis",
		8080:  "HTTP",
		8888:  "Jupyter",
		9200:  "Elasticsearch",
		27017: "MongoDB",
	}
)

type probes struct {
	sys platform.System
	md  platform.Metadata
}

// Checks returns the security checks.
func Checks(sys platform.System, md platform.Metadata) []checks.Registered {
	p := &probes{sys: sys, md: md}
	return []checks.Registered{
		{
			Check:               checks.Check{ID: ServiceAccountID, Name: "Service Account Permissions", Category: checks.Security, Description: "Check service account scopes for excessive permissions"},
			Probe:               p.serviceAccount,
			EstimatedDurationMs: 2000,
		},
		{
			Check:               checks.Check{ID: NetworkExposureID, Name: "Network Exposure", Category: checks.Security, Description: "Check for services listening on all interfaces"},
			Probe:               p.networkExposure,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: WorkloadIdentityID, Name: "Workload Identity Status", Category: checks.Security, Description: "Check workload identity and service account configuration"},
			Probe:               p.workloadIdentity,
			Dependencies:        []string{ServiceAccountID},
			EstimatedDurationMs: 1000,
		},
		{
			Check:               checks.Check{ID: EncryptionID, Name: "Encryption Status", Category: checks.Security, Description: "Check encryption at rest configuration"},
			Probe:               p.encryption,
			EstimatedDurationMs: 500,
		},
		{
			Check:               checks.Check{ID: MetadataAccessID, Name: "Instance Metadata Access", Category: checks.Security, Description: "Verify metadata server access configuration"},
			Probe:               p.metadataAccess,
			EstimatedDurationMs: 1000,
		},
		{
			Check:               checks.Check{ID: SSHKeysID, Name: "SSH Key Management", Category: checks.Security, Description: "Check for OS Login vs legacy SSH keys"},
			Probe:               p.sshKeys,
			EstimatedDurationMs: 1000,
		},
		{
			Check:               checks.Check{ID: FirewallID, Name: "Firewall Rules", Category: checks.Security, Description: "Provide guidance on firewall configuration"},
			Probe:               p.firewall,
			EstimatedDurationMs: 100,
		},
	}
}

func (p *probes) serviceAccount(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.md.Reachable(ctx) {
		return checks.Skip(notOnGCP)
	}
	sa, err := platform.ServiceAccount(ctx, p.md)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Service account info unavailable: %v", err))
	}

	scopes, err := platform.Scopes(ctx, p.md)
	if err != nil {
		return checks.Pass(fmt.Sprintf("Service account: %s (scopes not checked)", sa), checks.Elapsed(start))
	}
	var broad []string
	for _, s := range scopes {
		for _, b := range broadScopes {
			if strings.Contains(s, b) {
				broad = append(broad, s)
				break
			}
		}
	}
	if len(broad) > 0 {
		return checks.Warn(
			fmt.Sprintf("Service account %s has broad scopes", sa),
			fmt.Sprintf("Consider using more restrictive scopes than %s", strings.Join(broad, ", ")),
			checks.Elapsed(start),
		)
	}
	return checks.Pass(fmt.Sprintf("Service account: %s", sa), checks.Elapsed(start))
}

func (p *probes) networkExposure(_ context.Context) checks.Result {
	start := time.Now()
	sockets, err := p.sys.ListeningSockets()
	if err != nil {
		return checks.Skip(fmt.Sprintf("Listening sockets unavailable: %v", err))
	}

	var exposed, concerning []int
	for _, s := range sockets {
		if !s.Wildcard() || slices.Contains(exposed, s.Port) {
			continue
		}
		exposed = append(exposed, s.Port)
		if _, ok := concerningPorts[s.Port]; ok {
			concerning = append(concerning, s.Port)
		}
	}
	slices.Sort(concerning)

	switch {
	case len(concerning) > 0:
		names := make([]string, 0, len(concerning))
		for _, port := range concerning {
			names = append(names, strconv.Itoa(port)+" ("+concerningPorts[port]+")")
		}
		return checks.Warn(
			fmt.Sprintf("%d potentially exposed port(s): %s", len(concerning), strings.Join(names, ", ")),
			"Services bound to 0.0.0.0 are accessible from any interface",
			checks.Elapsed(start),
		)
	case len(exposed) > 0:
		return checks.Pass(fmt.Sprintf("%d port(s) listening on all interfaces (none concerning)", len(exposed)), checks.Elapsed(start))
	default:
		return checks.Pass("No services exposed on all interfaces", checks.Elapsed(start))
	}
}

func (p *probes) workloadIdentity(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.md.Reachable(ctx) {
		return checks.Skip(notOnGCP)
	}
	if _, ok, err := p.md.InstanceAttribute(ctx, "gke-cluster-name"); err == nil && ok {
		return checks.Pass("Running in GKE with potential workload identity", checks.Elapsed(start))
	}

	sa, err := platform.ServiceAccount(ctx, p.md)
	switch {
	case err != nil:
		return checks.Skip("Could not determine service account configuration")
	case strings.Contains(sa, "compute@developer"):
		return checks.Warn(
			"Using default Compute Engine service account",
			"Consider using a custom service account with minimal permissions",
			checks.Elapsed(start),
		)
	default:
		return checks.Pass(fmt.Sprintf("Using custom service account: %s", sa), checks.Elapsed(start))
	}
}

func (p *probes) encryption(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.md.Reachable(ctx) {
		return checks.Skip(notOnGCP)
	}
	return checks.Pass("GCP default encryption at rest enabled", checks.Elapsed(start))
}

func (p *probes) metadataAccess(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.md.Reachable(ctx) {
		return checks.Skip(notOnGCP)
	}
	status, err := p.md.UnauthenticatedStatus(ctx)
	if err != nil {
		return checks.Skip(fmt.Sprintf("Could not check metadata access: %v", err))
	}
	if status == http.StatusForbidden {
		return checks.Pass("Metadata access requires proper headers", checks.Elapsed(start))
	}
	return checks.Warn(
		"Metadata server accessible without protection headers",
		fmt.Sprintf("Request without Metadata-Flavor header returned HTTP %d; consider enabling metadata concealment", status),
		checks.Elapsed(start),
	)
}

func (p *probes) sshKeys(ctx context.Context) checks.Result {
	start := time.Now()
	if !p.md.Reachable(ctx) {
		return checks.Skip(notOnGCP)
	}
	v, ok, err := p.md.InstanceAttribute(ctx, "enable-oslogin")
	switch {
	case err != nil:
		return checks.Warn("Could not determine OS Login status", "Unable to query instance metadata", checks.Elapsed(start))
	case ok && strings.EqualFold(strings.TrimSpace(v), "true"):
		return checks.Pass("OS Login enabled", checks.Elapsed(start))
	default:
		return checks.Warn("OS Login not enabled", "Consider enabling OS Login for centralized SSH key management", checks.Elapsed(start))
	}
}

func (p *probes) firewall(_ context.Context) checks.Result {
	return checks.Pass("Firewall rules must be verified via GCP Console or gcloud", 0)
}

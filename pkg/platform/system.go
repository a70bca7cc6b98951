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
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/caas-team/tpu-doc/pkg/checks"
)

// MemoryInfo describes the host memory in bytes.
type MemoryInfo struct {
	TotalBytes     uint64
	AvailableBytes uint64
	FreeBytes      uint64
}

// CPUInfo describes the host processors.
type CPUInfo struct {
	ModelName    string
	Cores        int
	FrequencyMHz float64
	Flags        []string
}

// HasFlag reports whether the cpu advertises flag.
func (c CPUInfo) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// DiskInfo describes a filesystem in bytes.
type DiskInfo struct {
	TotalBytes     uint64
	AvailableBytes uint64
	FreeBytes      uint64
}

// Socket is a listening TCP socket.
type Socket struct {
	IP   net.IP
	Port int
}

// Wildcard reports whether the socket listens on all interfaces.
func (s Socket) Wildcard() bool {
	return s.IP.IsUnspecified()
}

const tcpListen = "0A"

var _ System = (*LinuxSystem)(nil)

// LinuxSystem reads host facts from procfs, sysfs and /etc below Root.
type LinuxSystem struct {
	root string
}

// NewSystem returns a System reading below root. An empty root means "/".
func NewSystem(root string) *LinuxSystem {
	if root == "" {
		root = "/"
	}
	return &LinuxSystem{root: root}
}

func (s *LinuxSystem) path(p string) string {
	return filepath.Join(s.root, p)
}

// virtual maps a real path back to its path as seen by the caller
func (s *LinuxSystem) virtual(p string) string {
	rel, err := filepath.Rel(s.root, p)
	if err != nil {
		return p
	}
	return "/" + filepath.ToSlash(rel)
}

func (s *LinuxSystem) Hostname() (string, error) {
	for _, p := range []string{"/etc/hostname", "/proc/sys/kernel/hostname"} {
		if h, err := s.ReadFile(p); err == nil && h != "" {
			return h, nil
		}
	}
	if h, err := os.Hostname(); err == nil && h != "" {
		return h, nil
	}
	return "", checks.ErrIO{Context: "hostname", Message: "could not read hostname from /etc/hostname or /proc"}
}

func (s *LinuxSystem) KernelVersion() (string, error) {
	content, err := s.ReadFile("/proc/version")
	if err != nil {
		var uts unix.Utsname
		if uerr := unix.Uname(&uts); uerr != nil {
			return "", err
		}
		return unix.ByteSliceToString(uts.Release[:]), nil
	}

	fields := strings.Fields(content)
	if len(fields) < 3 {
		return "", checks.ErrParse{Context: "kernel version", Message: "could not parse /proc/version"}
	}
	return fields[2], nil
}

func (s *LinuxSystem) MemoryInfo() (MemoryInfo, error) {
	content, err := s.ReadFile("/proc/meminfo")
	if err != nil {
		return MemoryInfo{}, err
	}

	var info MemoryInfo
	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return MemoryInfo{}, checks.ErrParse{Context: "meminfo", Message: fmt.Sprintf("invalid value in line %q", line)}
		}
		switch fields[0] {
		case "MemTotal:":
			info.TotalBytes = kb * 1024
		case "MemAvailable:":
			info.AvailableBytes = kb * 1024
		case "MemFree:":
			info.FreeBytes = kb * 1024
		}
	}
	return info, nil
}

func (s *LinuxSystem) CPUInfo() (CPUInfo, error) {
	content, err := s.ReadFile("/proc/cpuinfo")
	if err != nil {
		return CPUInfo{}, err
	}

	var info CPUInfo
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "processor":
			info.Cores++
		case "model name":
			info.ModelName = value
		case "cpu MHz":
			if f, err := strconv.ParseFloat(value, 64); err == nil {
				info.FrequencyMHz = f
			}
		case "flags":
			if info.Flags == nil {
				info.Flags = strings.Fields(value)
			}
		}
	}
	return info, nil
}

func (s *LinuxSystem) DiskInfo(path string) (DiskInfo, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(s.path(path), &st); err != nil {
		return DiskInfo{}, wrapFSError("disk info "+path, err)
	}
	bsize := uint64(st.Bsize) //nolint:gosec // block sizes are positive
	return DiskInfo{
		TotalBytes:     st.Blocks * bsize,
		AvailableBytes: st.Bavail * bsize,
		FreeBytes:      st.Bfree * bsize,
	}, nil
}

func (s *LinuxSystem) UnixTimestamp() int64 {
	return time.Now().Unix()
}

func (s *LinuxSystem) Env(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (s *LinuxSystem) ProcessRunning(name string) (bool, error) {
	entries, err := os.ReadDir(s.path("/proc"))
	if err != nil {
		return false, wrapFSError("process table", err)
	}

	for _, e := range entries {
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join(s.path("/proc"), e.Name(), "comm"))
		if err != nil {
			// processes exit while we iterate
			continue
		}
		if strings.TrimSpace(string(comm)) == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *LinuxSystem) ReadFile(path string) (string, error) {
	b, err := os.ReadFile(s.path(path))
	if err != nil {
		return "", wrapFSError(path, err)
	}
	return strings.TrimSpace(strings.ToValidUTF8(string(b), "�")), nil
}

func (s *LinuxSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(s.path(pattern))
	if err != nil {
		return nil, checks.ErrParse{Context: "glob", Message: err.Error()}
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, s.virtual(m))
	}
	return out, nil
}

func (s *LinuxSystem) FileExists(path string) bool {
	_, err := os.Stat(s.path(path))
	return err == nil
}

func (s *LinuxSystem) CheckWritable(dir string) error {
	if err := os.MkdirAll(s.path(dir), 0o750); err != nil {
		return wrapFSError(dir, err)
	}
	f, err := os.CreateTemp(s.path(dir), ".tpu-doc-*")
	if err != nil {
		return wrapFSError(dir, err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return wrapFSError(dir, err)
	}
	if err := os.Remove(name); err != nil {
		return wrapFSError(dir, err)
	}
	return nil
}

func (s *LinuxSystem) ListeningSockets() ([]Socket, error) {
	var sockets []Socket
	found := false
	for _, p := range []string{"/proc/net/tcp", "/proc/net/tcp6"} {
		f, err := os.Open(s.path(p))
		if err != nil {
			continue
		}
		found = true
		parsed, err := parseProcNetTCP(bufio.NewScanner(f))
		_ = f.Close()
		if err != nil {
			return nil, checks.ErrParse{Context: p, Message: err.Error()}
		}
		sockets = append(sockets, parsed...)
	}
	if !found {
		return nil, checks.ErrIO{Context: "listening sockets", Message: "/proc/net/tcp is not readable"}
	}
	return sockets, nil
}

// parseProcNetTCP parses the table format of /proc/net/tcp{,6}
func parseProcNetTCP(sc *bufio.Scanner) ([]Socket, error) {
	var sockets []Socket
	header := true
	for sc.Scan() {
		if header {
			header = false
			continue
		}
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[3] != tcpListen {
			continue
		}
		ipHex, portHex, ok := strings.Cut(fields[1], ":")
		if !ok {
			return nil, fmt.Errorf("invalid local address %q", fields[1])
		}
		port, err := strconv.ParseUint(portHex, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid port %q", portHex)
		}
		ip, err := decodeProcIP(ipHex)
		if err != nil {
			return nil, err
		}
		sockets = append(sockets, Socket{IP: ip, Port: int(port)})
	}
	return sockets, sc.Err()
}

// decodeProcIP decodes the little-endian hex words used by procfs
func decodeProcIP(s string) (net.IP, error) {
	b, err := hex.DecodeString(s)
	if err != nil || (len(b) != net.IPv4len && len(b) != net.IPv6len) {
		return nil, fmt.Errorf("invalid ip %q", s)
	}
	ip := make(net.IP, len(b))
	for w := 0; w < len(b); w += 4 {
		for i := 0; i < 4; i++ {
			ip[w+i] = b[w+3-i]
		}
	}
	return ip, nil
}

func (s *LinuxSystem) LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", checks.ErrCommand{Command: name, Message: "not found in PATH"}
	}
	return p, nil
}

func (s *LinuxSystem) Command(ctx context.Context, name string, args ...string) (string, error) {
	cmdline := strings.TrimSpace(name + " " + strings.Join(args, " "))
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec // commands are fixed by the checks
	output := strings.TrimSpace(strings.ToValidUTF8(string(out), "�"))
	if err != nil {
		if ctx.Err() != nil {
			return output, checks.ErrTimeout{Operation: cmdline}
		}
		msg := err.Error()
		if output != "" {
			msg = fmt.Sprintf("%s: %s", msg, output)
		}
		return output, checks.ErrCommand{Command: cmdline, Message: msg}
	}
	return output, nil
}

func wrapFSError(context string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return checks.ErrPermissionDenied{Resource: context}
	}
	return checks.ErrIO{Context: context, Message: err.Error()}
}

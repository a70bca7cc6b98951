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
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted release number. Suffixes such as "rc1" or ".dev2024"
// on the patch level are ignored.
type Version struct {
	Major, Minor, Patch int
}

// ParseVersion parses "3.10.12", "0.4.30" or "2.1". At least major and
// minor must be numeric.
func ParseVersion(s string) (Version, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return Version{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, false
	}

	var patch int
	if len(parts) > 2 {
		digits := strings.IndexFunc(parts[2], func(r rune) bool { return r < '0' || r > '9' })
		if digits < 0 {
			digits = len(parts[2])
		}
		patch, _ = strconv.Atoi(parts[2][:digits])
	}
	return Version{Major: major, Minor: minor, Patch: patch}, true
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	return v.Patch < o.Patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// majorVersion returns the leading number of a version string.
func majorVersion(s string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), ".")
	n, err := strconv.Atoi(head)
	return n, err == nil
}

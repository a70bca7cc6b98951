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

package checks

import (
	"fmt"
	"strings"
)

// Category groups checks by the domain they validate.
type Category int

const (
	Hardware Category = iota
	Stack
	Performance
	Io
	Security
	Config
)

// Categories lists every category in report order.
var Categories = []Category{Hardware, Stack, Performance, Io, Security, Config}

type categoryNames struct {
	name   string
	lower  string
	header string
}

var categoryTable = map[Category]categoryNames{
	Hardware:    {"Hardware", "hardware", "HARDWARE CHECKS"},
	Stack:       {"Stack", "stack", "STACK CHECKS"},
	Performance: {"Performance", "performance", "PERFORMANCE CHECKS"},
	Io:          {"Io", "io", "I/O CHECKS"},
	Security:    {"Security", "security", "SECURITY CHECKS"},
	Config:      {"Config", "config", "CONFIG CHECKS"},
}

// String returns the name used in JSON reports, e.g. "Io".
func (c Category) String() string {
	if n, ok := categoryTable[c]; ok {
		return n.name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Lower returns the lowercase name used for JUnit suites.
func (c Category) Lower() string {
	if n, ok := categoryTable[c]; ok {
		return n.lower
	}
	return strings.ToLower(c.String())
}

// Header returns the section header of the text report.
func (c Category) Header() string {
	if n, ok := categoryTable[c]; ok {
		return n.header
	}
	return strings.ToUpper(c.String()) + " CHECKS"
}

// ParseCategory parses a category name case-insensitively.
// "io" and "i/o" are both accepted.
func ParseCategory(s string) (Category, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "i/o" {
		return Io, nil
	}
	for _, c := range Categories {
		if categoryTable[c].lower == v {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so categories can be
// decoded from configuration files.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

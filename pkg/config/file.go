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

package config

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/tpu-doc/internal/logger"
)

// ReadFile parses the yaml config file at path into a settings map that can
// be merged into viper.
func ReadFile(ctx context.Context, path string) (map[string]any, error) {
	log := logger.FromContext(ctx)
	log.Debug("Reading config from file", "file", path)

	b, err := os.ReadFile(path) //#nosec G304 // path is chosen by the operator
	if err != nil {
		log.Error("Failed to read config file", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReadConfigFile, err)
	}

	settings := map[string]any{}
	if err := yaml.Unmarshal(b, &settings); err != nil {
		log.Error("Failed to parse config file", "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrReadConfigFile, err)
	}
	return settings, nil
}

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
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/caas-team/tpu-doc/internal/logger"
)

// Validate checks the config with its struct tags and the rules spanning
// several fields.
func (c *Config) Validate(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx, "configValidation")
	defer cancel()
	log := logger.FromContext(ctx)

	var errs []error
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				log.ErrorContext(ctx, "Invalid configuration value", "field", fe.Namespace(), "value", fe.Value(), "rule", fe.Tag())
				errs = append(errs, fmt.Errorf("%s fails %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	if c.Output.Quiet && c.Output.Verbose {
		log.ErrorContext(ctx, "Quiet and verbose output are mutually exclusive")
		errs = append(errs, errors.New("quiet and verbose are mutually exclusive"))
	}
	if len(c.Filter.Only) > 0 && len(c.Filter.Skip) > 0 {
		log.WarnContext(ctx, "Both only and skip are set, skip is ignored")
	}
	if c.Baseline.FailOnRegression && c.Baseline.Path == "" {
		log.ErrorContext(ctx, "Failing on regressions requires a baseline")
		errs = append(errs, errors.New("failOnRegression requires baseline"))
	}
	if c.Engine.Timeout <= 0 {
		errs = append(errs, errors.New("timeout must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

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

// Keys of the settings map. Flags, environment variables and config file
// entries all use these names.
const (
	KeyConfig           = "config"
	KeyFormat           = "format"
	KeyVerbose          = "verbose"
	KeyQuiet            = "quiet"
	KeyNoColor          = "noColor"
	KeyCompact          = "compact"
	KeyOutput           = "output"
	KeyCategories       = "categories"
	KeyOnly             = "only"
	KeySkip             = "skip"
	KeyParallel         = "parallel"
	KeyMaxParallel      = "maxParallel"
	KeyFailFast         = "failFast"
	KeyTimeout          = "timeout"
	KeyBaseline         = "baseline"
	KeyFailOnRegression = "failOnRegression"
	KeySaveBaseline     = "saveBaseline"
	KeyMetricsFile      = "metricsFile"
)

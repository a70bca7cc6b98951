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

package helper

import "github.com/mitchellh/mapstructure"

// Decode decodes input (usually the settings map produced by viper or a parsed
// yaml document) into a value of type T.
//
// Decoding is weakly typed so values coming from environment variables work:
//   - "30s" becomes a time.Duration
//   - "HW-001,HW-002" becomes a []string
//   - "true" becomes a bool
//   - any string is passed to T's fields implementing encoding.TextUnmarshaler
//
// Example:
//
//	cfg, err := Decode[config.Config](viper.AllSettings())
func Decode[T any](input any) (T, error) {
	var result T
	err := DecodeInto(input, &result)
	return result, err
}

// DecodeInto decodes input on top of the values already set in result.
// Fields without a matching key keep their value.
func DecodeInto[T any](input any, result *T) error {
	config := &mapstructure.DecoderConfig{
		Metadata:         nil,
		WeaklyTypedInput: true,
		Result:           result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

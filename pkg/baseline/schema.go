package baseline

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Schema returns an OpenAPI document describing the JSON report, which is
// also the baseline file format.
func Schema(version string) (*openapi3.T, error) {
	ref, err := openapi3gen.NewSchemaRefForValue(Document{}, openapi3.Schemas{}, openapi3gen.UseAllExportedFields())
	if err != nil {
		return nil, err
	}
	ref.Value.Required = []string{"timestamp", "hostname", "total_duration_ms", "summary", "checks"}

	return &openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "tpu-doc report",
			Description: "Validation report emitted by tpu-doc check --format json and stored by --save-baseline",
			Version:     version,
		},
		Paths: openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{"ValidationReport": ref},
		},
	}, nil
}

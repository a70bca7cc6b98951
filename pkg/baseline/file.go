package baseline

import (
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/caas-team/tpu-doc/pkg/checks"
	"github.com/caas-team/tpu-doc/pkg/report"
)

// CompressedSuffix marks baseline files stored zstd compressed.
const CompressedSuffix = ".zst"

// Save writes r to path. Paths ending in .zst are compressed.
func Save(path string, r report.ValidationReport) error {
	data := Encode(r)
	if strings.HasSuffix(path, CompressedSuffix) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return checks.ErrIO{Context: path, Message: err.Error()}
		}
		data = enc.EncodeAll(data, nil)
		_ = enc.Close()
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return checks.ErrIO{Context: path, Message: err.Error()}
	}
	return nil
}

// Load reads the baseline stored at path.
func Load(path string) (report.ValidationReport, error) {
	data, err := os.ReadFile(path) //#nosec G304 // path is chosen by the operator
	if err != nil {
		return report.ValidationReport{}, checks.ErrIO{Context: path, Message: err.Error()}
	}
	if strings.HasSuffix(path, CompressedSuffix) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return report.ValidationReport{}, checks.ErrIO{Context: path, Message: err.Error()}
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return report.ValidationReport{}, checks.ErrIO{Context: path, Message: "zstd: " + err.Error()}
		}
	}
	return Decode(data)
}

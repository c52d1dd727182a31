// Package units converts byte counts to and from the human readable sizes used
// by Steam Workshop pages.
package units

import (
	"fmt"
	"strings"

	dockerunits "github.com/docker/go-units"
	"github.com/m-mizutani/goerr/v2"
)

// KiB is the step between two consecutive size units
const KiB = 1024

var sizeUnits = []string{"bytes", "KB", "MB", "GB"}

// FormatSize renders size with the largest unit (up to GB) that keeps the value
// at or above 1, e.g. 1536 with precision 2 is "1.50 KB".
func FormatSize(size int64, precision int) string {
	value := float64(size)
	idx := 0
	for value >= KiB && idx < len(sizeUnits)-1 {
		value /= KiB
		idx++
	}
	return fmt.Sprintf("%.*f %s", precision, value, sizeUnits[idx])
}

// ParseSize parses a size string shown on an item page, such as "1,234.567 MB"
// or "512 Bytes". Units are binary (1 KB = 1024 bytes).
func ParseSize(s string) (int64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	lower := strings.ToLower(normalized)
	for _, suffix := range []string{"bytes", "byte"} {
		if strings.HasSuffix(lower, suffix) {
			normalized = strings.TrimSpace(normalized[:len(normalized)-len(suffix)])
			break
		}
	}

	size, err := dockerunits.RAMInBytes(normalized)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to parse size", goerr.V("input", s))
	}
	return size, nil
}

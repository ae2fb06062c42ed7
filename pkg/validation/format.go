package validation

import (
	"fmt"
	"slices"

	"github.com/iwvelando/deck-odds/pkg/constants"
)

// OutputFormats lists the report renderers the CLI understands.
var OutputFormats = []string{constants.OutputFormatPretty, constants.OutputFormatCSV}

// ValidateOutputFormat rejects anything but an exact, lower-case renderer name.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return fmt.Errorf("expected output format of %s or %s, got %q",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

package metrics

import (
	"fmt"

	"github.com/flowboard/flowboard/internal/models"
)

// ErrMissingResolution indicates a resolved issue without a resolution
// timestamp. Guessing a timestamp would corrupt every downstream average,
// so the calculators refuse instead.
var ErrMissingResolution = fmt.Errorf("resolved issue has no resolution timestamp: %w", models.ErrInvalidState)

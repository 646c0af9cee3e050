package docprep

import (
	"errors"

	"github.com/alnah/go-docprep/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidArgs    = errors.New("invalid arguments")
	ErrSourceNotFound = errors.New("source directory not found")
	ErrReadDocument   = errors.New("failed to read document")
	ErrWriteDocument  = errors.New("failed to write document")
	ErrInvalidOption  = errors.New("invalid option")

	// ErrUnknownStage indicates a skipped stage name that does not exist.
	ErrUnknownStage = pipeline.ErrUnknownStage
)

package ocr

import (
	"errors"
	"fmt"
)

// EngineError reports a Tesseract failure together with the stage it
// occurred in: "configure", "set-image", or "recognize".
//
// Engine errors are the retryable class of recognition failures; the
// extractor re-runs the affected chunk at a lower scale when it sees one.
type EngineError struct {
	Stage   string
	Timeout bool
	Err     error
}

func (e *EngineError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("ocr %s timed out: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("ocr %s failed: %v", e.Stage, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// IsEngineError reports whether err is or wraps an EngineError.
func IsEngineError(err error) bool {
	var engineErr *EngineError
	return errors.As(err, &engineErr)
}

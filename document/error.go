package document

import (
	"errors"
	"fmt"
)

// SplitterError represents errors that can occur during text splitting
type SplitterError struct {
	Op      string
	Message string
	Err     error
}

func (e *SplitterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("splitter.%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("splitter.%s: %s", e.Op, e.Message)
}

func (e *SplitterError) Unwrap() error {
	return e.Err
}

// IsInvalidChunkConfig reports whether err is a chunk-configuration error
// from one of the splitter constructors.
func IsInvalidChunkConfig(err error) bool {
	var serr *SplitterError
	return errors.As(err, &serr) && serr.Op == opNewSplitter
}

const opNewSplitter = "new_splitter"

func errInvalidChunkConfig(message string, chunkSize, overlap int) error {
	return &SplitterError{
		Op:      opNewSplitter,
		Message: message,
		Err:     fmt.Errorf("chunk size %d, overlap %d", chunkSize, overlap),
	}
}

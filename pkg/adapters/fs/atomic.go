package fs

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// writeFileAtomic replaces filename with data through a temp file and rename,
// so readers never observe a partially written value.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(filename, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	// atomic.WriteFile creates new files with temp-file permissions
	if err := os.Chmod(filename, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", filename, err)
	}

	return nil
}

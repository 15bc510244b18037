package logger

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// DefaultLogFile is the log file name used when none is configured.
const DefaultLogFile = "auto_claim.log"

// OpenFileLogger opens path on fs in append mode, creating it if needed,
// and returns a UTC logger writing to it. Close releases the file.
func OpenFileLogger(fs afero.Fs, path string) (*StandardLogger, error) {
	if path == "" {
		path = DefaultLogFile
	}
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	l := NewUTCLogger(f)
	l.closer = f
	return l, nil
}

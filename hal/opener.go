package hal

import (
	"io"
	"os"
)

// Opener opens the kernel attribute for writing.
type Opener func(path string) (io.WriteCloser, error)

// OpenSysfs opens path write-only, without creating it.
func OpenSysfs(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY, 0)
}

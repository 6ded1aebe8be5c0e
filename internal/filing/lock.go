package filing

import (
	"fmt"
	"os"
)

// AcquireLock creates the single-instance lock file with the current pid
// inside and returns a release function. A second run against the same inbox
// fails instead of racing the first over the same files.
func AcquireLock(path string) (func(), error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("lock file %s exists, another run is in progress", path)
		}
		return nil, fmt.Errorf("creating lock file: %w", err)
	}

	fmt.Fprintf(f, "%d", os.Getpid())
	f.Close()

	return func() { os.Remove(path) }, nil
}

//go:build !unix

package diskguard

import "math"

// AvailableBytes reports free disk space. On platforms without a statvfs
// equivalent wired up, the check is effectively disabled by reporting an
// unbounded amount of free space.
func AvailableBytes(dir string) (uint64, error) {
	return math.MaxUint64, nil
}

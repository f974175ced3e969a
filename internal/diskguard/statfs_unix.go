//go:build unix

package diskguard

import "golang.org/x/sys/unix"

// AvailableBytes reports the free disk space available to an unprivileged
// user under dir, per statvfs(2).
func AvailableBytes(dir string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return 0, err
	}
	return uint64(stat.Bavail) * uint64(stat.Bsize), nil
}

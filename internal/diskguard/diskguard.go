// Package diskguard checks that a capture directory has enough free space
// before a screenshot is written, and reclaims space by deleting the oldest
// captures when it doesn't.
package diskguard

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lucidtrace/recall/internal/errors"
)

// maxAutopurgeFiles bounds how many files a single reclaim pass will ever
// delete, so a misconfigured minimum free-space threshold can't empty an
// entire capture directory in one tick.
const maxAutopurgeFiles = 500

// ReclaimOutcome summarizes a reclaim pass.
type ReclaimOutcome struct {
	DeletedFiles   int
	FreedBytes     uint64
	RemainingBytes uint64
}

// EnsureHeadroom checks that dir has at least minFreeBytes of free space. A
// minFreeBytes of 0 disables the check entirely.
func EnsureHeadroom(dir string, minFreeBytes uint64) error {
	if minFreeBytes == 0 {
		return nil
	}

	available, err := AvailableBytes(dir)
	if err != nil {
		return errors.NewDiskGuardError("failed to query available disk space", err).WithOutputDir(dir)
	}

	if available < minFreeBytes {
		return errors.NewDiskGuardError("insufficient free disk space", errors.ErrDiskBelowMin).
			WithOutputDir(dir).
			WithFreeBytes(available)
	}
	return nil
}

// Reclaim deletes the oldest files under dir (by modification time) until
// free space reaches minFreeBytes or at most maxAutopurgeFiles files have
// been removed, whichever comes first.
func Reclaim(dir string, minFreeBytes uint64) (ReclaimOutcome, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ReclaimOutcome{}, errors.NewDiskGuardError("failed to list capture directory", err).WithOutputDir(dir)
	}

	type fileInfo struct {
		path    string
		modTime time.Time
		size    int64
	}

	var files []fileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
			size:    info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})

	var outcome ReclaimOutcome
	for _, f := range files {
		if outcome.DeletedFiles >= maxAutopurgeFiles {
			break
		}

		available, err := AvailableBytes(dir)
		if err == nil && available >= minFreeBytes {
			break
		}

		if err := os.Remove(f.path); err != nil {
			continue
		}
		outcome.DeletedFiles++
		outcome.FreedBytes += uint64(f.size)
	}

	if remaining, err := AvailableBytes(dir); err == nil {
		outcome.RemainingBytes = remaining
	}

	return outcome, nil
}

// EnsureSessionCap checks that writing expectedBytes more to this session's
// running bytesWritten total would not exceed maxSessionBytes. A
// maxSessionBytes of 0 disables the check entirely. Unlike EnsureHeadroom,
// exceeding the cap never triggers reclaim: the cap is user-chosen, and
// deleting this session's own just-written captures to stay under it would
// silently destroy the data it was in the middle of saving.
func EnsureSessionCap(bytesWritten, expectedBytes, maxSessionBytes uint64) error {
	if maxSessionBytes == 0 {
		return nil
	}
	if bytesWritten+expectedBytes > maxSessionBytes {
		return errors.NewDiskGuardError("session byte cap would be exceeded", errors.ErrSessionCapExceeded).
			WithFreeBytes(maxSessionBytes - bytesWritten)
	}
	return nil
}

// EnsureHeadroomWithReclaim is the composed precapture check used by the
// engine: ensure headroom, and if that fails, attempt a reclaim pass and
// retry once. The reclaim outcome is returned (non-nil) exactly when at least
// one file was deleted, even if the retried check still fails, so callers
// can emit a diskguard.reclaimed event.
func EnsureHeadroomWithReclaim(dir string, minFreeBytes uint64) (*ReclaimOutcome, error) {
	if err := EnsureHeadroom(dir, minFreeBytes); err == nil {
		return nil, nil
	}

	outcome, reclaimErr := Reclaim(dir, minFreeBytes)
	if reclaimErr != nil {
		return nil, reclaimErr
	}

	if err := EnsureHeadroom(dir, minFreeBytes); err != nil {
		if outcome.DeletedFiles > 0 {
			return &outcome, err
		}
		return nil, err
	}

	if outcome.DeletedFiles == 0 {
		return nil, nil
	}
	return &outcome, nil
}

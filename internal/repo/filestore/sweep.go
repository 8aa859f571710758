package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

// Atomic rewrites go through ".<name>.<random>.tmp" siblings; a crash
// between create and rename leaves one behind.
var stalePattern = regexp.MustCompile(`^\..+\.[0-9]+\.tmp$`)

// SweepStale removes leftover rewrite temp files older than olderThan and
// returns how many were removed. Regular assets are never touched.
func (s *Store) SweepStale(olderThan time.Duration) (int, error) {
	cutoff := s.now().Add(-olderThan)
	removed := 0

	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		if d.IsDir() || !d.Type().IsRegular() || !stalePattern.MatchString(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		if info.ModTime().After(cutoff) {
			return nil
		}

		err = os.Remove(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil {
			removed++
		}

		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("Store - SweepStale - filepath.WalkDir: %w", err)
	}

	return removed, nil
}

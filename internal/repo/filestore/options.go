package filestore

import "time"

type Option func(*Store)

// Clock overrides the timestamp source of generated names.
func Clock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

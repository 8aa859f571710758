package validate

import "regexp"

const (
	MinMaxWidth int = 1
	MaxMaxWidth int = 10000

	DefaultListLimit uint64 = 20
	MaxListLimit     uint64 = 100
)

// CategoryPattern matches the storage subdirectories the uploads root accepts.
var CategoryPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

var AllowedKinds = map[string]bool{
	"image":    true,
	"document": true,
}

package errs

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("image decode failed")
	ErrEncode            = errors.New("image encode failed")
	ErrStorage           = errors.New("storage failure")
	ErrPathOutsideRoot   = errors.New("path resolves outside uploads root")
	ErrInvalidSubdir     = errors.New("invalid storage subdirectory")
	ErrInvalidReference  = errors.New("invalid asset reference")
	ErrInvalidKind       = errors.New("invalid asset kind")
)

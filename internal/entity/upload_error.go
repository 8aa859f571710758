package entity

import (
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindTransport       ErrorKind = "transport_error"
	KindSizeExceeded    ErrorKind = "size_exceeded"
	KindUnsupportedType ErrorKind = "unsupported_type"
	KindUnsafeName      ErrorKind = "unsafe_name"
	KindDecodeFailure   ErrorKind = "decode_failure"
	KindEncodeFailure   ErrorKind = "encode_failure"
	KindStorageFailure  ErrorKind = "storage_failure"
)

// IsValidation reports whether the kind is raised before anything is written.
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindTransport, KindSizeExceeded, KindUnsupportedType, KindUnsafeName:
		return true
	default:
		return false
	}
}

// UploadError carries enough context for callers to render their own message.
type UploadError struct {
	Kind     ErrorKind `json:"kind"`
	Field    string    `json:"field"`
	Limit    int64     `json:"limit,omitempty"`
	Detected string    `json:"detected,omitempty"`
	Err      error     `json:"-"`
}

func (e *UploadError) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))
	if e.Field != "" {
		fmt.Fprintf(&b, " (%s)", e.Field)
	}
	if e.Limit > 0 {
		fmt.Fprintf(&b, " limit=%d", e.Limit)
	}
	if e.Detected != "" {
		fmt.Fprintf(&b, " detected=%s", e.Detected)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}

	return b.String()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// Is matches any *UploadError of the same kind, so errors.Is(err, &UploadError{Kind: KindDecodeFailure}) works.
func (e *UploadError) Is(target error) bool {
	t, ok := target.(*UploadError)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// PipelineError reports an upload that produced no stored asset.
type PipelineError struct {
	Errors []*UploadError
}

func NewPipelineError(result *UploadResult) *PipelineError {
	return &PipelineError{Errors: result.Errors}
}

func (e *PipelineError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, ue := range e.Errors {
		parts = append(parts, ue.Error())
	}

	return "upload failed: " + strings.Join(parts, "; ")
}

func (e *PipelineError) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for _, ue := range e.Errors {
		out = append(out, ue)
	}

	return out
}

// Rejected is true when every problem was found during validation.
func (e *PipelineError) Rejected() bool {
	if len(e.Errors) == 0 {
		return false
	}

	for _, ue := range e.Errors {
		if !ue.Kind.IsValidation() {
			return false
		}
	}

	return true
}

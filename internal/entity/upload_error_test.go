package entity

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUploadErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &UploadError{Kind: KindStorageFailure, Err: fs.ErrPermission})

	assert.ErrorIs(t, err, &UploadError{Kind: KindStorageFailure})
	assert.NotErrorIs(t, err, &UploadError{Kind: KindDecodeFailure})
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestUploadErrorMessage(t *testing.T) {
	err := &UploadError{Kind: KindSizeExceeded, Field: "file", Limit: 5242880}
	assert.Equal(t, "size_exceeded (file) limit=5242880", err.Error())

	err = &UploadError{Kind: KindUnsupportedType, Field: "file", Detected: "text/plain"}
	assert.Equal(t, "unsupported_type (file) detected=text/plain", err.Error())
}

func TestErrorKindIsValidation(t *testing.T) {
	for _, k := range []ErrorKind{KindTransport, KindSizeExceeded, KindUnsupportedType, KindUnsafeName} {
		assert.True(t, k.IsValidation(), k)
	}
	for _, k := range []ErrorKind{KindDecodeFailure, KindEncodeFailure, KindStorageFailure} {
		assert.False(t, k.IsValidation(), k)
	}
}

func TestPipelineError(t *testing.T) {
	rejected := NewPipelineError(Failed(
		&UploadError{Kind: KindUnsafeName, Field: "filename"},
		&UploadError{Kind: KindSizeExceeded, Field: "file", Limit: 1},
	))
	assert.True(t, rejected.Rejected())
	assert.ErrorIs(t, rejected, &UploadError{Kind: KindSizeExceeded})
	assert.Contains(t, rejected.Error(), "unsafe_name")

	failed := NewPipelineError(Failed(&UploadError{Kind: KindEncodeFailure, Err: errors.New("boom")}))
	assert.False(t, failed.Rejected())

	assert.False(t, NewPipelineError(Failed()).Rejected())
}

func TestResults(t *testing.T) {
	ok := Succeeded(StorageTarget{Filename: "a_1.png", RelativePath: "assets/uploads/news/a_1.png"}, "image/png", 10, "image uploaded")
	assert.True(t, ok.Success)
	assert.Equal(t, "assets/uploads/news/a_1.png", ok.Path)
	assert.Empty(t, ok.Errors)

	bad := Failed(&UploadError{Kind: KindTransport})
	assert.False(t, bad.Success)
	assert.Empty(t, bad.Path)
	assert.Len(t, bad.Errors, 1)
}

func TestTransportStatusString(t *testing.T) {
	assert.Equal(t, "ok", TransportOK.String())
	assert.Equal(t, "no file was uploaded", TransportNoFile.String())
	assert.Equal(t, "unknown upload error", TransportStatus(42).String())
}

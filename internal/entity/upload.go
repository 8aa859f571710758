package entity

// TransportStatus is the status reported by the upload transport for a
// single file part. Values follow the classic multipart upload error codes.
type TransportStatus int

const (
	TransportOK TransportStatus = iota
	TransportIniSize
	TransportFormSize
	TransportPartial
	TransportNoFile
	_
	TransportNoTmpDir
	TransportCantWrite
	TransportExtension
)

func (s TransportStatus) String() string {
	switch s {
	case TransportOK:
		return "ok"
	case TransportIniSize, TransportFormSize:
		return "file exceeds transport size limit"
	case TransportPartial:
		return "file was only partially uploaded"
	case TransportNoFile:
		return "no file was uploaded"
	case TransportNoTmpDir:
		return "missing temporary directory"
	case TransportCantWrite:
		return "failed to write file to disk"
	case TransportExtension:
		return "upload stopped by extension"
	default:
		return "unknown upload error"
	}
}

// Category selects the allowed content types for an upload.
type Category string

const (
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
)

// UploadDescriptor is a handle to a just-received file. Nothing in it is
// trusted for type information.
type UploadDescriptor struct {
	TempPath     string
	OriginalName string
	Size         int64
	Status       TransportStatus
}

type StorageTarget struct {
	Subdir       string
	Dir          string
	Filename     string
	AbsPath      string
	RelativePath string
}

type UploadResult struct {
	Success       bool           `json:"success"`
	Path          string         `json:"path,omitempty"`
	ThumbnailPath *string        `json:"thumbnail_path,omitempty"`
	Filename      string         `json:"filename,omitempty"`
	MimeType      string         `json:"mime_type,omitempty"`
	Size          int64          `json:"size,omitempty"`
	Message       string         `json:"message,omitempty"`
	Errors        []*UploadError `json:"errors,omitempty"`
}

func Succeeded(target StorageTarget, mimeType string, size int64, message string) *UploadResult {
	return &UploadResult{
		Success:  true,
		Path:     target.RelativePath,
		Filename: target.Filename,
		MimeType: mimeType,
		Size:     size,
		Message:  message,
	}
}

func Failed(errs ...*UploadError) *UploadResult {
	return &UploadResult{
		Success: false,
		Errors:  errs,
	}
}

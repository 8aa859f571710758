package media

import (
	"fmt"
	"os"
	"regexp"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/gabriel-vasile/mimetype"
)

var safeNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]+$`)

// Validator checks an upload before anything is written. Every rule runs so
// a form can show all problems at once.
type Validator struct {
	allowed map[entity.Category]map[string]struct{}
}

func NewValidator(imageTypes, documentTypes []string) *Validator {
	return &Validator{
		allowed: map[entity.Category]map[string]struct{}{
			entity.CategoryImage:    toSet(imageTypes),
			entity.CategoryDocument: toSet(documentTypes),
		},
	}
}

// Validate returns the violations found and, when content could be
// inspected, the sniffed MIME type.
func (v *Validator) Validate(desc entity.UploadDescriptor, category entity.Category, maxBytes int64) (string, []*entity.UploadError) {
	var problems []*entity.UploadError

	transportOK := desc.Status == entity.TransportOK
	if !transportOK {
		problems = append(problems, &entity.UploadError{
			Kind:  entity.KindTransport,
			Field: "file",
			Err:   fmt.Errorf("%s", desc.Status),
		})
	}

	// a file that never arrived has no name to judge
	nameMissing := !transportOK && desc.OriginalName == ""
	if !nameMissing && !safeNamePattern.MatchString(desc.OriginalName) {
		problems = append(problems, &entity.UploadError{
			Kind:  entity.KindUnsafeName,
			Field: "filename",
		})
	}

	// without a received file there is nothing to measure or sniff
	if !transportOK {
		return "", problems
	}

	size := desc.Size
	if info, err := os.Stat(desc.TempPath); err == nil && info.Size() > size {
		size = info.Size()
	}
	if size > maxBytes {
		problems = append(problems, &entity.UploadError{
			Kind:  entity.KindSizeExceeded,
			Field: "file",
			Limit: maxBytes,
		})
	}

	mt, err := mimetype.DetectFile(desc.TempPath)
	if err != nil {
		mt = nil
	}

	detected := v.match(category, mt)
	if detected == "" {
		sniffed := ""
		if mt != nil {
			sniffed = mt.String()
		}
		problems = append(problems, &entity.UploadError{
			Kind:     entity.KindUnsupportedType,
			Field:    "file",
			Detected: sniffed,
			Err:      err,
		})
	}

	return detected, problems
}

// match returns the allowed type the sniffed one belongs to. Subtypes count
// as their parent: an animated PNG (image/vnd.mozilla.apng) is a PNG.
func (v *Validator) match(category entity.Category, mt *mimetype.MIME) string {
	for m := mt; m != nil; m = m.Parent() {
		for allowed := range v.allowed[category] {
			if m.Is(allowed) {
				return allowed
			}
		}
	}

	return ""
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

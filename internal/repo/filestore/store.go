package filestore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/andreyxaxa/Media-Pipeline/internal/entity"
	"github.com/andreyxaxa/Media-Pipeline/pkg/types/errs"
	"github.com/google/uuid"
)

const (
	_defaultDirPerm  = 0o750
	_defaultFilePerm = 0o644
)

var subdirPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Store places files under a single uploads root. Relative paths handed
// out always start with the public prefix; absolute paths never leave the
// store.
type Store struct {
	root   string
	prefix string

	dirPerm fs.FileMode
	now     func() time.Time
	token   func() string
}

func New(root, publicPrefix string, opts ...Option) (*Store, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("Store - New - filepath.Abs: %w", err)
	}

	s := &Store{
		root:    filepath.Clean(absRoot),
		prefix:  strings.Trim(path.Clean("/"+filepath.ToSlash(publicPrefix)), "/"),
		dirPerm: _defaultDirPerm,
		now:     time.Now,
		token:   newToken,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.prefix == "" {
		return nil, fmt.Errorf("Store - New: %w: empty public prefix", errs.ErrInvalidReference)
	}

	err = os.MkdirAll(s.root, s.dirPerm)
	if err != nil {
		return nil, fmt.Errorf("Store - New - os.MkdirAll: %w", err)
	}

	return s, nil
}

func (s *Store) Root() string {
	return s.root
}

func (s *Store) Prefix() string {
	return s.prefix
}

// Resolve ensures <root>/<subdir> exists and returns a fresh target named
// <token>_<unix seconds>.<ext>. Nothing is written besides the directory.
func (s *Store) Resolve(subdir, ext string) (entity.StorageTarget, error) {
	if !subdirPattern.MatchString(subdir) {
		return entity.StorageTarget{}, fmt.Errorf("Store - Resolve: %w: %q", errs.ErrInvalidSubdir, subdir)
	}

	dir := filepath.Join(s.root, subdir)

	err := os.MkdirAll(dir, s.dirPerm)
	if err != nil {
		return entity.StorageTarget{}, fmt.Errorf("Store - Resolve - os.MkdirAll: %w: %w", errs.ErrStorage, err)
	}

	name := fmt.Sprintf("%s_%d", s.token(), s.now().Unix())
	if ext = strings.ToLower(strings.TrimPrefix(ext, ".")); ext != "" {
		name += "." + ext
	}

	return entity.StorageTarget{
		Subdir:       subdir,
		Dir:          dir,
		Filename:     name,
		AbsPath:      filepath.Join(dir, name),
		RelativePath: path.Join(s.prefix, subdir, name),
	}, nil
}

// Place moves the file at src into target. A rename is tried first; when
// src lives on another device the content is copied and src removed.
func (s *Store) Place(src string, target entity.StorageTarget) error {
	err := os.Rename(src, target.AbsPath)
	if err == nil {
		return s.chmod(target.AbsPath)
	}

	err = copyFile(src, target.AbsPath)
	if err != nil {
		return fmt.Errorf("Store - Place - copyFile: %w: %w", errs.ErrStorage, err)
	}

	_ = os.Remove(src)

	return s.chmod(target.AbsPath)
}

// RelativeOf converts an absolute path inside the root into its public
// relative path.
func (s *Store) RelativeOf(absPath string) (string, error) {
	rel, err := filepath.Rel(s.root, filepath.Clean(absPath))
	if err != nil || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("Store - RelativeOf: %w", errs.ErrPathOutsideRoot)
	}

	return path.Join(s.prefix, filepath.ToSlash(rel)), nil
}

// Abs maps a relative asset reference onto the filesystem. The result is
// canonicalized (symlinks included) and must stay inside the root; a
// reference to a missing file yields fs.ErrNotExist.
func (s *Store) Abs(relPath string) (string, error) {
	rel := filepath.ToSlash(strings.TrimSpace(relPath))
	if rel == "" || strings.ContainsRune(rel, 0) {
		return "", fmt.Errorf("Store - Abs: %w", errs.ErrInvalidReference)
	}

	rel = strings.TrimPrefix(rel, "/")
	inner, ok := strings.CutPrefix(rel, s.prefix+"/")
	if !ok {
		return "", fmt.Errorf("Store - Abs: %w: missing prefix %q", errs.ErrInvalidReference, s.prefix)
	}

	local := filepath.FromSlash(inner)
	if !filepath.IsLocal(local) {
		return "", fmt.Errorf("Store - Abs: %w", errs.ErrPathOutsideRoot)
	}

	joined := filepath.Join(s.root, local)

	realRoot, err := filepath.EvalSymlinks(s.root)
	if err != nil {
		return "", fmt.Errorf("Store - Abs - filepath.EvalSymlinks(root): %w", err)
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", fmt.Errorf("Store - Abs - filepath.EvalSymlinks: %w", err)
	}

	within, err := filepath.Rel(realRoot, resolved)
	if err != nil || !filepath.IsLocal(within) {
		return "", fmt.Errorf("Store - Abs: %w", errs.ErrPathOutsideRoot)
	}

	return resolved, nil
}

// Remove deletes the referenced regular file. It reports false with a nil
// error when the file is already gone.
func (s *Store) Remove(relPath string) (bool, error) {
	abs, err := s.Abs(relPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("Store - Remove - os.Stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return false, fmt.Errorf("Store - Remove: %w: not a regular file", errs.ErrInvalidReference)
	}

	err = os.Remove(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("Store - Remove - os.Remove: %w", err)
	}

	return true, nil
}

func (s *Store) chmod(p string) error {
	err := os.Chmod(p, _defaultFilePerm)
	if err != nil {
		return fmt.Errorf("Store - chmod: %w: %w", errs.ErrStorage, err)
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, _defaultFilePerm)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}

	return out.Close()
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

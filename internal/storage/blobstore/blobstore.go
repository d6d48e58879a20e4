// Package blobstore is a path-addressed bucket backed by the local disk.
// Blobs are written with a temp-file/fsync/rename sequence so a partially
// written file is never visible under its final path.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"hrcore/internal/apperrors"
)

// Store addresses blobs inside a single bucket rooted at a data directory.
type Store struct {
	root    string
	baseURL string
	bucket  string
}

// New creates the bucket directory if needed and returns a Store. baseURL is
// the externally reachable origin used to derive public URLs.
func New(root, baseURL, bucket string) (*Store, error) {
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create bucket dir %s: %w", dir, err)
	}
	return &Store{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucket,
	}, nil
}

// Bucket returns the bucket name the store addresses.
func (s *Store) Bucket() string { return s.bucket }

func (s *Store) validate(storagePath string) error {
	if storagePath == "" {
		return errors.New("empty storage path")
	}
	clean := path.Clean("/" + storagePath)
	if clean != "/"+storagePath || strings.Contains(storagePath, "..") {
		return fmt.Errorf("invalid storage path %q", storagePath)
	}
	return nil
}

func (s *Store) fullPath(storagePath string) string {
	return filepath.Join(s.root, s.bucket, filepath.FromSlash(storagePath))
}

// Upload stores the reader's bytes at storagePath. A blob already present at
// that path is a collision and fails the upload; paths are constructed to be
// unique upstream, so a collision signals a real conflict, not a retry.
func (s *Store) Upload(storagePath string, r io.Reader) (int64, error) {
	if err := s.validate(storagePath); err != nil {
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	full := s.fullPath(storagePath)
	if _, err := os.Stat(full); err == nil {
		return 0, apperrors.NewRemoteError("blob upload", fmt.Errorf("path collision: %s", storagePath))
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return 0, apperrors.NewRemoteError("blob upload", err)
	}

	tmp := full + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return 0, apperrors.NewRemoteError("blob upload", err)
	}
	return size, nil
}

// Remove deletes the blob at storagePath. A missing blob is reported as
// ErrNotFound so callers can decide that absence is acceptable; any other
// failure is a RemoteError.
func (s *Store) Remove(storagePath string) error {
	if err := s.validate(storagePath); err != nil {
		return apperrors.NewRemoteError("blob remove", err)
	}
	err := os.Remove(s.fullPath(storagePath))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return fmt.Errorf("blob %s: %w", storagePath, apperrors.ErrNotFound)
	}
	return apperrors.NewRemoteError("blob remove", err)
}

// Exists reports whether a blob is present at storagePath.
func (s *Store) Exists(storagePath string) (bool, error) {
	if err := s.validate(storagePath); err != nil {
		return false, apperrors.NewRemoteError("blob stat", err)
	}
	_, err := os.Stat(s.fullPath(storagePath))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, apperrors.NewRemoteError("blob stat", err)
}

// Open returns the blob for reading. The caller closes it.
func (s *Store) Open(storagePath string) (*os.File, error) {
	if err := s.validate(storagePath); err != nil {
		return nil, apperrors.NewRemoteError("blob open", err)
	}
	f, err := os.Open(s.fullPath(storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("blob %s: %w", storagePath, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewRemoteError("blob open", err)
	}
	return f, nil
}

// PublicURL derives the public access URL for a storage path. It is a pure
// function of the path; no URL is ever persisted, so a changed base URL takes
// effect on the next listing.
func (s *Store) PublicURL(storagePath string) string {
	return s.baseURL + "/storage/" + s.bucket + "/" + storagePath
}

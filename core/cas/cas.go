// Package cas provides content-addressed storage for slide and background
// image blobs. Blobs are stored by their BLAKE3 digest, which deduplicates
// repeated uploads and lets metadata rows reference content by hash.
package cas

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/zeebo/blake3"
)

// ErrBlobNotFound is returned when no blob exists for the given digest.
var ErrBlobNotFound = errors.New("blob not found")

// ErrInvalidDigest is returned when a digest string is not a valid
// lowercase BLAKE3 hex string.
var ErrInvalidDigest = errors.New("invalid digest format")

// digestPattern matches a lowercase 256-bit hex digest.
var digestPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Store is a content-addressed blob store rooted at a directory.
// Blobs live at <root>/blobs/<first2>/<digest>.
type Store struct {
	root string
}

// NewStore opens a store at root, creating the directory structure if
// needed.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(root, "blobs"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}
	return &Store{root: root}, nil
}

// Digest computes the BLAKE3 digest of data without storing it.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Put stores data and returns its digest. Storing the same content twice
// is a no-op.
func (s *Store) Put(data []byte) (string, error) {
	digest := Digest(data)

	blobPath := s.pathFor(digest)
	if _, err := os.Stat(blobPath); err == nil {
		return digest, nil
	}

	if err := os.MkdirAll(filepath.Dir(blobPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create prefix directory: %w", err)
	}

	// Write via a temp file so a concurrent reader never sees a partial
	// blob; rename is atomic on POSIX.
	tmp, err := os.CreateTemp(filepath.Dir(blobPath), ".blob-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, blobPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to rename blob: %w", err)
	}

	return digest, nil
}

// Get retrieves the blob with the given digest.
func (s *Store) Get(digest string) ([]byte, error) {
	if !validDigest(digest) {
		return nil, ErrInvalidDigest
	}
	data, err := os.ReadFile(s.pathFor(digest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("failed to read blob: %w", err)
	}
	return data, nil
}

// Exists reports whether a blob with the given digest is stored.
func (s *Store) Exists(digest string) bool {
	if !validDigest(digest) {
		return false
	}
	_, err := os.Stat(s.pathFor(digest))
	return err == nil
}

// Delete removes a blob. Deleting an absent blob is not an error;
// metadata soft-delete normally keeps blobs around for restore, so this
// only runs on permanent purges.
func (s *Store) Delete(digest string) error {
	if !validDigest(digest) {
		return ErrInvalidDigest
	}
	if err := os.Remove(s.pathFor(digest)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}

func (s *Store) pathFor(digest string) string {
	return filepath.Join(s.root, "blobs", digest[:2], digest)
}

func validDigest(digest string) bool {
	return digestPattern.MatchString(digest)
}

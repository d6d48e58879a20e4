// Package documents coordinates the document metadata table and the blob
// bucket. The two stores offer no cross-resource transaction, so consistency
// is kept with ordered writes and best-effort compensating deletes.
package documents

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
)

// BlobStore is the blob bucket boundary the manager writes through.
type BlobStore interface {
	Upload(path string, r io.Reader) (int64, error)
	Remove(path string) error
	PublicURL(path string) string
}

// MetadataStore is the documents table boundary.
type MetadataStore interface {
	Insert(ctx context.Context, doc *models.Document) error
	Get(ctx context.Context, id string) (*models.Document, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Document, error)
}

// Manager keeps metadata rows and blobs consistent under upload and delete.
type Manager struct {
	blobs BlobStore
	meta  MetadataStore
	lg    *zap.SugaredLogger
	now   func() time.Time
}

func NewManager(blobs BlobStore, meta MetadataStore, lg *zap.SugaredLogger) *Manager {
	return &Manager{blobs: blobs, meta: meta, lg: lg, now: time.Now}
}

// UploadInput describes an incoming file.
type UploadInput struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// StoragePath builds the deterministic blob path for an upload. The
// millisecond timestamp makes the path unique per uploader even for repeated
// identical filenames, so no locking protocol is needed.
func StoragePath(uploaderID string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%d_%s", uploaderID, at.UnixMilli(), filepath.Base(fileName))
}

// Upload stores the blob first and the metadata row second. A failed blob
// write aborts with no partial state; a failed row insert triggers a
// compensating blob delete so no orphaned blob survives the operation.
func (m *Manager) Upload(ctx context.Context, uploaderID string, in UploadInput) (*models.Document, error) {
	if uploaderID == "" {
		return nil, apperrors.NewAuthError(apperrors.ReasonUnauthorized, nil)
	}
	if in.FileName == "" {
		return nil, &apperrors.ValidationError{Missing: []string{"file_name"}}
	}

	now := m.now()
	path := StoragePath(uploaderID, now, in.FileName)

	size, err := m.blobs.Upload(path, in.Body)
	if err != nil {
		return nil, err
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc := &models.Document{
		ID:         uuid.NewString(),
		FileName:   filepath.Base(in.FileName),
		FilePath:   path,
		FileType:   contentType,
		FileSize:   size,
		UploadedBy: uploaderID,
		CreatedAt:  now,
	}
	if err := m.meta.Insert(ctx, doc); err != nil {
		// Compensate: remove the blob so no orphan survives, then surface
		// the original insert error even if the compensation also failed.
		if rmErr := m.blobs.Remove(path); rmErr != nil && !apperrors.IsNotFound(rmErr) {
			m.lg.Errorw("compensating blob delete failed after metadata insert error",
				"path", path, "insert_error", err, "remove_error", rmErr)
		}
		return nil, err
	}

	doc.URL = m.blobs.PublicURL(path)
	return doc, nil
}

// Delete removes the metadata row first, then the blob. A failed row delete
// aborts with everything intact. A failed blob delete after the row is gone
// is a tolerated inconsistency: the user-visible document no longer exists,
// so the operation reports success and the orphan blob is only logged.
func (m *Manager) Delete(ctx context.Context, id string) error {
	doc, err := m.meta.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := m.meta.Delete(ctx, id); err != nil {
		return err
	}

	if err := m.blobs.Remove(doc.FilePath); err != nil && !apperrors.IsNotFound(err) {
		m.lg.Warnw("blob delete failed after metadata delete, orphan blob left behind",
			"path", doc.FilePath, "document_id", id, "error", err)
	}
	return nil
}

// List returns all documents with their public URLs recomputed from the
// stored paths. URLs are never cached or persisted.
func (m *Manager) List(ctx context.Context) ([]models.Document, error) {
	docs, err := m.meta.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		docs[i].URL = m.blobs.PublicURL(docs[i].FilePath)
	}
	return docs, nil
}

package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"testing"

	"go.uber.org/zap"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
)

type fakeBlobs struct {
	blobs     map[string][]byte
	uploadErr error
	removeErr error
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{blobs: make(map[string][]byte)}
}

func (f *fakeBlobs) Upload(path string, r io.Reader) (int64, error) {
	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	if _, ok := f.blobs[path]; ok {
		return 0, apperrors.NewRemoteError("blob upload", fmt.Errorf("path collision: %s", path))
	}
	var buf bytes.Buffer
	n, err := buf.ReadFrom(r)
	if err != nil {
		return 0, err
	}
	f.blobs[path] = buf.Bytes()
	return n, nil
}

func (f *fakeBlobs) Remove(path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	if _, ok := f.blobs[path]; !ok {
		return fmt.Errorf("blob %s: %w", path, apperrors.ErrNotFound)
	}
	delete(f.blobs, path)
	return nil
}

func (f *fakeBlobs) PublicURL(path string) string {
	return "http://localhost:8080/storage/company-documents/" + path
}

type fakeMeta struct {
	rows      map[string]models.Document
	order     []string
	insertErr error
	deleteErr error
}

func newFakeMeta() *fakeMeta {
	return &fakeMeta{rows: make(map[string]models.Document)}
}

func (f *fakeMeta) Insert(ctx context.Context, doc *models.Document) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows[doc.ID] = *doc
	f.order = append(f.order, doc.ID)
	return nil
}

func (f *fakeMeta) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, apperrors.ErrNotFound)
	}
	return &doc, nil
}

func (f *fakeMeta) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.rows[id]; !ok {
		return fmt.Errorf("document %s: %w", id, apperrors.ErrNotFound)
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeMeta) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	for _, id := range f.order {
		if doc, ok := f.rows[id]; ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func newTestManager(blobs *fakeBlobs, meta *fakeMeta) *Manager {
	return NewManager(blobs, meta, zap.NewNop().Sugar())
}

func TestUploadStoresBlobAndMetadata(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	payload := strings.Repeat("x", 2048)
	doc, err := m.Upload(context.Background(), "u-1", UploadInput{
		FileName:    "policy.pdf",
		ContentType: "application/pdf",
		Body:        strings.NewReader(payload),
	})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	pathPattern := regexp.MustCompile(`^u-1/\d+_policy\.pdf$`)
	if !pathPattern.MatchString(doc.FilePath) {
		t.Errorf("FilePath = %q, want match for %v", doc.FilePath, pathPattern)
	}
	if doc.FileSize != 2048 {
		t.Errorf("FileSize = %d, want 2048", doc.FileSize)
	}
	if doc.URL == "" {
		t.Error("Upload() returned no public URL")
	}

	docs, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 1 || docs[0].FileSize != 2048 {
		t.Errorf("List() = %+v, want one entry with file_size 2048", docs)
	}
}

func TestUploadRequiresAuthenticatedUploader(t *testing.T) {
	m := newTestManager(newFakeBlobs(), newFakeMeta())

	_, err := m.Upload(context.Background(), "", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	var ae *apperrors.AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("Upload() error = %v, want AuthError", err)
	}
	if ae.Reason != apperrors.ReasonUnauthorized {
		t.Errorf("reason = %q, want unauthorized", ae.Reason)
	}
}

func TestUploadBlobFailureCreatesNoMetadata(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.uploadErr = apperrors.NewRemoteError("blob upload", errors.New("quota exceeded"))
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	_, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if err == nil {
		t.Fatal("Upload() succeeded despite blob failure")
	}
	if len(meta.rows) != 0 {
		t.Errorf("metadata rows = %d, want 0 after aborted upload", len(meta.rows))
	}
}

func TestUploadMetadataFailureRemovesBlob(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	insertErr := apperrors.NewRemoteError("insert document", errors.New("permission denied"))
	meta.insertErr = insertErr
	m := newTestManager(blobs, meta)

	_, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if !errors.Is(err, insertErr) {
		t.Fatalf("Upload() error = %v, want the original insert error", err)
	}
	// Compensating delete: no orphan blob remains.
	if len(blobs.blobs) != 0 {
		t.Errorf("blobs left = %d, want 0 after compensation", len(blobs.blobs))
	}
}

func TestDeleteIsIdempotentFromTheCallersView(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	doc, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	if err := m.Delete(context.Background(), doc.ID); err != nil {
		t.Fatalf("first Delete() error = %v", err)
	}
	err = m.Delete(context.Background(), doc.ID)
	if !apperrors.IsNotFound(err) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if len(blobs.blobs) != 0 {
		t.Errorf("blobs left = %d, want 0", len(blobs.blobs))
	}
}

func TestDeleteRowFailureLeavesBlobIntact(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	doc, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	meta.deleteErr = apperrors.NewRemoteError("delete document", errors.New("deadlock"))
	if err := m.Delete(context.Background(), doc.ID); err == nil {
		t.Fatal("Delete() succeeded despite row delete failure")
	}
	// Metadata row and blob both remain: state stayed consistent.
	if _, ok := meta.rows[doc.ID]; !ok {
		t.Error("metadata row missing after aborted delete")
	}
	if _, ok := blobs.blobs[doc.FilePath]; !ok {
		t.Error("blob missing after aborted delete")
	}
}

func TestDeleteToleratesAlreadyMissingBlob(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	doc, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	// Someone removed the blob from the bucket out of band.
	delete(blobs.blobs, doc.FilePath)

	if err := m.Delete(context.Background(), doc.ID); err != nil {
		t.Errorf("Delete() error = %v, want success with missing blob", err)
	}
}

func TestDeleteToleratesBlobRemoveFailure(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	doc, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")})
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	blobs.removeErr = apperrors.NewRemoteError("blob remove", errors.New("io error"))
	// Row delete succeeded, blob delete failed: user-visible resource is
	// gone, so the operation still reports success.
	if err := m.Delete(context.Background(), doc.ID); err != nil {
		t.Errorf("Delete() error = %v, want success", err)
	}
	if _, ok := meta.rows[doc.ID]; ok {
		t.Error("metadata row still present")
	}
}

func TestListRecomputesURLsDeterministically(t *testing.T) {
	blobs := newFakeBlobs()
	meta := newFakeMeta()
	m := newTestManager(blobs, meta)

	if _, err := m.Upload(context.Background(), "u-1", UploadInput{FileName: "a.txt", Body: strings.NewReader("x")}); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}

	first, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if first[0].URL != second[0].URL {
		t.Errorf("URL differs between listings: %q vs %q", first[0].URL, second[0].URL)
	}
	// The stored row never carries a URL; it exists only in listings.
	if stored := meta.rows[first[0].ID]; stored.URL != "" {
		t.Errorf("stored row URL = %q, want empty", stored.URL)
	}
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrcore/internal/auth"
	"hrcore/internal/documents"
)

// maxUploadBytes bounds a single document upload (multipart memory cap).
const maxUploadBytes = 25 << 20

// ListDocuments returns every document with its public URL recomputed from
// the stored path.
func ListDocuments(m *documents.Manager, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		docs, err := m.List(r.Context())
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, docs)
	}
}

// UploadDocument accepts a multipart "file" part and runs the document
// lifecycle: blob first, metadata second, compensating blob delete on a
// failed insert.
func UploadDocument(m *documents.Manager, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file part required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		doc, err := m.Upload(r.Context(), auth.Subject(r.Context()), documents.UploadInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
		if err != nil {
			respondError(w, lg, err)
			return
		}
		respondStatus(w, http.StatusCreated, doc)
	}
}

// DeleteDocument removes the metadata row, then the blob. A blob that is
// already gone, or that fails to delete, does not fail the operation.
func DeleteDocument(m *documents.Manager, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := m.Delete(r.Context(), id); err != nil {
			respondError(w, lg, err)
			return
		}
		respondJSON(w, map[string]any{"deleted": true})
	}
}

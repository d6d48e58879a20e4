package handlers

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrcore/internal/apperrors"
	"hrcore/internal/storage/blobstore"
)

// ServeBlob serves public bucket reads. The route wildcard is the storage
// path; the store validates it against traversal.
func ServeBlob(store *blobstore.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := chi.URLParam(r, "*")
		f, err := store.Open(path)
		if err != nil {
			if apperrors.IsNotFound(err) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			respondError(w, lg, err)
			return
		}
		defer f.Close()

		st, err := f.Stat()
		if err != nil {
			respondError(w, lg, apperrors.NewRemoteError("blob stat", err))
			return
		}
		if ctype := mime.TypeByExtension(filepath.Ext(path)); ctype != "" {
			w.Header().Set("Content-Type", ctype)
		}
		http.ServeContent(w, r, filepath.Base(path), st.ModTime(), f)
	}
}

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrcore/internal/auth"
	"hrcore/internal/documents"
	"hrcore/internal/employees"
	"hrcore/internal/httpserver/handlers"
	"hrcore/internal/provider"
	"hrcore/internal/session"
	"hrcore/internal/storage/blobstore"
)

func NewRouter(db *gorm.DB, p *provider.Provider, docs *documents.Manager, emps *employees.Provisioner, blobs *blobstore.Store, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	// Public bucket reads; the derived public URLs resolve here.
	r.Get("/storage/"+blobs.Bucket()+"/*", handlers.ServeBlob(blobs, lg))

	limiter := newLoginLimiter()
	r.With(limiter.middleware).Post("/v1/auth/login", handlers.Login(p, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(db))
		protected.Get("/v1/me", handlers.Me(db, lg))
		protected.Post("/v1/auth/logout", handlers.Logout(p, lg))

		protected.Get("/v1/documents", handlers.ListDocuments(docs, lg))
		protected.Post("/v1/documents", handlers.UploadDocument(docs, lg))
		protected.Delete("/v1/documents/{id}", handlers.DeleteDocument(docs, lg))

		protected.Post("/v1/attendance/check-in", handlers.CheckIn(db, lg))
		protected.Post("/v1/attendance/check-out", handlers.CheckOut(db, lg))
		protected.Get("/v1/attendance", handlers.MyAttendance(db, lg))

		protected.Post("/v1/leave-requests", handlers.CreateLeaveRequest(db, lg))
		protected.Get("/v1/leave-requests", handlers.MyLeaveRequests(db, lg))

		protected.Get("/v1/notifications", handlers.MyNotifications(db, lg))
		protected.Patch("/v1/notifications/{id}/read", handlers.MarkNotificationRead(db, lg))

		protected.Get("/v1/logs", handlers.MyLogs(db, lg))

		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(session.RoleAdmin))
			admin.Get("/v1/admin/employees", handlers.ListEmployees(emps, lg))
			admin.Post("/v1/admin/employees", handlers.CreateEmployee(emps, lg))
			admin.Get("/v1/admin/attendance", handlers.ListAttendance(db, lg))
			admin.Get("/v1/admin/leave-requests", handlers.ListLeaveRequests(db, lg))
			admin.Patch("/v1/admin/leave-requests/{id}", handlers.UpdateLeaveStatus(db, lg))
		})
	})

	return r
}

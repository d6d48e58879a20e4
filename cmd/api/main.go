package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hrcore/internal/apperrors"
	"hrcore/internal/audit"
	"hrcore/internal/documents"
	"hrcore/internal/employees"
	"hrcore/internal/httpserver"
	"hrcore/internal/logger"
	"hrcore/internal/models"
	"hrcore/internal/provider"
	"hrcore/internal/session"
	"hrcore/internal/storage/blobstore"
)

const documentsBucket = "company-documents"

func main() {
	_ = godotenv.Load()
	lg := logger.New()
	defer lg.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		lg.Fatalw("DATABASE_URL is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		lg.Fatalw("db connect failed", "error", err)
	}
	if err := db.AutoMigrate(
		&models.Identity{}, &models.Employee{}, &models.Document{},
		&models.Session{}, &models.AuditLog{},
		&models.AttendanceRecord{}, &models.LeaveRequest{}, &models.Notification{},
	); err != nil {
		lg.Fatalw("automigrate failed", "error", err)
	}

	storageDir := os.Getenv("STORAGE_DIR")
	if storageDir == "" {
		storageDir = "./data/storage"
	}
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	blobs, err := blobstore.New(storageDir, baseURL, documentsBucket)
	if err != nil {
		lg.Fatalw("blob store init failed", "error", err)
	}

	prov := provider.New(db, lg)
	adminLogin := prov.LoginID("admin")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	created, err := seedDefaultAdmin(context.Background(),
		prov.LookupByLogin, prov.Admin().CreateIdentity, adminLogin, adminPassword)
	if err != nil {
		lg.Fatalw("admin seed failed", "login", adminLogin, "error", err)
	}
	if created {
		lg.Infow("seeded default admin", "login", adminLogin)
	}

	recorder := audit.NewRecorder(db, lg)
	recorder.Start(prov)
	defer recorder.Stop()

	docs := documents.NewManager(blobs, documents.NewStore(db), lg)
	emps := employees.NewProvisioner(prov.Admin(), employees.NewStore(db), prov.LoginID, lg)

	router := httpserver.NewRouter(db, prov, docs, emps, blobs, lg)
	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}
	lg.Infow("listening", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal(err)
	}
}

// seedDefaultAdmin creates the bootstrap admin identity through the
// provider's privileged surface unless one already exists. It reports
// whether an identity was created.
func seedDefaultAdmin(
	ctx context.Context,
	lookup func(context.Context, string) (*models.Identity, error),
	create func(context.Context, string, string, map[string]any) (string, error),
	login, password string,
) (bool, error) {
	_, err := lookup(ctx, login)
	if err == nil {
		return false, nil
	}
	if !apperrors.IsNotFound(err) {
		return false, err
	}
	if _, err := create(ctx, login, password, map[string]any{
		"user_role": session.RoleAdmin,
		"full_name": "System Administrator",
	}); err != nil {
		return false, err
	}
	return true, nil
}

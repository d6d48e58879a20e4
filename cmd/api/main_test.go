package main

import (
	"context"
	"errors"
	"testing"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
	"hrcore/internal/session"
)

func TestSeedDefaultAdminCreatesWhenMissing(t *testing.T) {
	var gotLogin, gotPassword string
	var gotMeta map[string]any
	lookup := func(ctx context.Context, login string) (*models.Identity, error) {
		return nil, apperrors.ErrNotFound
	}
	create := func(ctx context.Context, login, password string, meta map[string]any) (string, error) {
		gotLogin, gotPassword, gotMeta = login, password, meta
		return "id-1", nil
	}

	created, err := seedDefaultAdmin(context.Background(), lookup, create, "admin@company.internal", "admin123")
	if err != nil {
		t.Fatalf("seedDefaultAdmin() error = %v", err)
	}
	if !created {
		t.Fatal("expected an identity to be created")
	}
	if gotLogin != "admin@company.internal" || gotPassword != "admin123" {
		t.Errorf("created with login %q password %q", gotLogin, gotPassword)
	}
	if gotMeta["user_role"] != session.RoleAdmin {
		t.Errorf("user_role = %v, want %q", gotMeta["user_role"], session.RoleAdmin)
	}
}

func TestSeedDefaultAdminSkipsExisting(t *testing.T) {
	lookup := func(ctx context.Context, login string) (*models.Identity, error) {
		return &models.Identity{ID: "id-1", Login: login}, nil
	}
	create := func(ctx context.Context, login, password string, meta map[string]any) (string, error) {
		t.Fatal("create must not be called when the admin already exists")
		return "", nil
	}

	created, err := seedDefaultAdmin(context.Background(), lookup, create, "admin@company.internal", "admin123")
	if err != nil {
		t.Fatalf("seedDefaultAdmin() error = %v", err)
	}
	if created {
		t.Error("no identity should have been created")
	}
}

func TestSeedDefaultAdminSurfacesCreateError(t *testing.T) {
	wantErr := errors.New("hash failed")
	lookup := func(ctx context.Context, login string) (*models.Identity, error) {
		return nil, apperrors.ErrNotFound
	}
	create := func(ctx context.Context, login, password string, meta map[string]any) (string, error) {
		return "", wantErr
	}

	created, err := seedDefaultAdmin(context.Background(), lookup, create, "admin@company.internal", "admin123")
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
	if created {
		t.Error("a failed create must not report success")
	}
}

func TestSeedDefaultAdminSurfacesLookupError(t *testing.T) {
	wantErr := errors.New("connection refused")
	lookup := func(ctx context.Context, login string) (*models.Identity, error) {
		return nil, wantErr
	}
	create := func(ctx context.Context, login, password string, meta map[string]any) (string, error) {
		t.Fatal("create must not be called on a lookup failure")
		return "", nil
	}

	if _, err := seedDefaultAdmin(context.Background(), lookup, create, "admin@company.internal", "admin123"); !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

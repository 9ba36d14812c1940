package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// exerciseStore runs the behavior every back end must share.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()
	key := "test-" + t.Name()

	if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on missing key error = %v, expected ErrNotFound", err)
	}

	if err := s.Set(ctx, key, []byte(`{"completedDays":1}`)); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if string(got) != `{"completedDays":1}` {
		t.Errorf("Get() = %s", got)
	}

	if err := s.Set(ctx, key, []byte(`{"completedDays":2}`)); err != nil {
		t.Fatalf("Set() overwrite unexpected error: %v", err)
	}
	got, err = s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if string(got) != `{"completedDays":2}` {
		t.Errorf("Get() after overwrite = %s", got)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if _, err := s.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after Delete error = %v, expected ErrNotFound", err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Errorf("Delete() on missing key unexpected error: %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	value := []byte("abc")
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'z'

	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value changed through caller slice: %s", got)
	}
}

func TestFileStore(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("OpenFile() unexpected error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestFileStoreEscapesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() unexpected error: %v", err)
	}

	if err := s.Set(context.Background(), "../escape", []byte("x")); err != nil {
		t.Fatalf("Set() unexpected error: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one file in the state dir, got %d", len(entries))
	}
}

func TestFileStoreHonorsCanceledContext(t *testing.T) {
	s, err := OpenFile(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", []byte("v")); !errors.Is(err, context.Canceled) {
		t.Errorf("Set() error = %v, expected context.Canceled", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "nested", "state.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() unexpected error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "appState", []byte("saved")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "appState")
	if err != nil {
		t.Fatalf("Get() after reopen unexpected error: %v", err)
	}
	if string(got) != "saved" {
		t.Errorf("Get() after reopen = %s", got)
	}
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("SAVINGS_TEST_REDIS_URL")
	if url == "" {
		t.Skip("SAVINGS_TEST_REDIS_URL not set")
	}
	s, err := OpenRedis(context.Background(), url)
	if err != nil {
		t.Fatalf("OpenRedis() unexpected error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("SAVINGS_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SAVINGS_TEST_DATABASE_URL not set")
	}
	s, err := OpenPostgres(context.Background(), url)
	if err != nil {
		t.Fatalf("OpenPostgres() unexpected error: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Default is file", Options{Path: filepath.Join(dir, "files")}, false},
		{"File", Options{Driver: "file", Path: filepath.Join(dir, "files2")}, false},
		{"SQLite", Options{Driver: "SQLite", Path: filepath.Join(dir, "db", "state.db")}, false},
		{"Memory", Options{Driver: "memory"}, false},
		{"Postgres without url", Options{Driver: "postgres"}, true},
		{"Unknown", Options{Driver: "etcd"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				_ = s.Close()
			}
		})
	}
}

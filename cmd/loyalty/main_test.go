package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/loyalty-points/internal/infrastructure/config"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/filestore"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/memory"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/sqlite"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		cfg      config.Config
		wantType any
		wantPath string
	}{
		{
			name:     "file with configured path",
			cfg:      config.Config{Store: config.StoreFile, DataFile: filepath.Join(dir, "points.json")},
			wantType: &filestore.Store{},
			wantPath: filepath.Join(dir, "points.json"),
		},
		{
			name:     "file falls back to default path",
			cfg:      config.Config{Store: config.StoreFile},
			wantType: &filestore.Store{},
			wantPath: filestore.DefaultPath,
		},
		{
			name:     "unset store selects file",
			cfg:      config.Config{DataFile: filepath.Join(dir, "other.json")},
			wantType: &filestore.Store{},
			wantPath: filepath.Join(dir, "other.json"),
		},
		{
			name:     "memory",
			cfg:      config.Config{Store: config.StoreMemory},
			wantType: &memory.Store{},
		},
		{
			name:     "sqlite",
			cfg:      config.Config{Store: config.StoreSQLite, SQLitePath: filepath.Join(dir, "points.db")},
			wantType: &sqlite.Store{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, closeRepo, err := openStore(context.Background(), &tt.cfg, logger)
			require.NoError(t, err)
			require.NotNil(t, closeRepo)
			t.Cleanup(closeRepo)

			assert.IsType(t, tt.wantType, repo)
			if fs, ok := repo.(*filestore.Store); ok {
				assert.Equal(t, tt.wantPath, fs.Path())
			}
		})
	}
}

func TestOpenStore_SQLiteOpenFailure(t *testing.T) {
	cfg := &config.Config{Store: config.StoreSQLite, SQLitePath: "  "}

	_, closeRepo, err := openStore(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.Error(t, err)
	require.NotNil(t, closeRepo)
	closeRepo()
}

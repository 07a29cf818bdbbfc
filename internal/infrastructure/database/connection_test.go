package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumastory/lumastory/internal/shared/config"
)

func TestOpen_SQLiteMemory(t *testing.T) {
	gdb, err := Open(&config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"})
	require.NoError(t, err)

	var one int
	require.NoError(t, gdb.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestNewDialector(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DatabaseConfig
		want    string
		wantErr bool
	}{
		{name: "default mysql", cfg: config.DatabaseConfig{Host: "localhost", Port: 3306}, want: "mysql"},
		{name: "postgres", cfg: config.DatabaseConfig{Driver: "postgres", Host: "localhost", Port: 5432}, want: "postgres"},
		{name: "sqlite", cfg: config.DatabaseConfig{Driver: "sqlite", Database: "luma.db"}, want: "sqlite"},
		{name: "sqlite without path", cfg: config.DatabaseConfig{Driver: "sqlite"}, wantErr: true},
		{name: "unknown", cfg: config.DatabaseConfig{Driver: "oracle"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := newDialector(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDriver(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", DriverMySQL},
		{"MySQL", DriverMySQL},
		{"sqlite", DriverSQLite},
		{" SQLite3 ", DriverSQLite},
		{"mssql", "mssql"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDriver(tt.in))
			assert.Equal(t, tt.want == DriverSQLite, (&DatabaseConfig{Driver: tt.in}).IsSQLite())
		})
	}
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DatabaseConfig
		wantUser string
		wantPass string
		wantAddr string
		wantDB   string
	}{
		{
			name:     "host port and database",
			cfg:      DatabaseConfig{Username: "fitment", Password: "secret", Address: "db.internal:3307/parts"},
			wantUser: "fitment", wantPass: "secret", wantAddr: "db.internal:3307", wantDB: "parts",
		},
		{
			name:     "default port",
			cfg:      DatabaseConfig{Username: "fitment", Password: "secret", Address: "localhost/parts"},
			wantUser: "fitment", wantPass: "secret", wantAddr: "localhost:3306", wantDB: "parts",
		},
		{
			name:     "password with separators",
			cfg:      DatabaseConfig{Username: "fitment", Password: "p@ss:w/rd?x=1&y", Address: "db.internal/parts"},
			wantUser: "fitment", wantPass: "p@ss:w/rd?x=1&y", wantAddr: "db.internal:3306", wantDB: "parts",
		},
		{
			name:     "complete dsn passes through",
			cfg:      DatabaseConfig{Username: "ignored", Password: "ignored", Address: "ro:pw@tcp(replica:3308)/parts?timeout=5s"},
			wantUser: "ro", wantPass: "pw", wantAddr: "replica:3308", wantDB: "parts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := tt.cfg.GetDSN()
			parsed, err := mysql.ParseDSN(dsn)
			require.NoError(t, err, dsn)

			assert.Equal(t, tt.wantUser, parsed.User)
			assert.Equal(t, tt.wantPass, parsed.Passwd)
			assert.Equal(t, "tcp", parsed.Net)
			assert.Equal(t, tt.wantAddr, parsed.Addr)
			assert.Equal(t, tt.wantDB, parsed.DBName)
		})
	}
}

func TestDatabaseConfig_GetDSNSessionSettings(t *testing.T) {
	cfg := DatabaseConfig{Username: "fitment", Password: "secret", Address: "db.internal/parts"}

	dsn := cfg.GetDSN()
	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.True(t, parsed.ParseTime)
	assert.Equal(t, time.Local, parsed.Loc)
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestDatabaseConfig_HasFullDSN(t *testing.T) {
	tests := []struct {
		address string
		want    bool
	}{
		{"db.internal:3307/parts", false},
		{"localhost/parts", false},
		{"/tmp/fitment.db", false},
		{"fitment:secret@tcp(db.internal:3307)/parts", true},
		{"tcp(db.internal)/parts", true},
		{"fitment@tcp(db.internal", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			assert.Equal(t, tt.want, (&DatabaseConfig{Address: tt.address}).HasFullDSN())
		})
	}
}

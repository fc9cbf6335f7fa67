package database

import (
	"testing"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestConnect(t *testing.T) {
	t.Run("Invalid Connection", func(t *testing.T) {
		cfg := Config{
			Driver:         DriverMySQL,
			Host:           "localhost",
			Port:           9999, // Unused port
			User:           "root",
			Password:       "wrongpassword",
			Name:           "travel",
			TimeoutSeconds: 1,
		}

		db, err := Connect(cfg)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("Unsupported Driver", func(t *testing.T) {
		db, err := Connect(Config{Driver: "oracle"})
		assert.ErrorContains(t, err, "unsupported database driver")
		assert.Nil(t, db)
	})

	t.Run("SQLite Memory", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		sqlDB, err := db.DB()
		require.NoError(t, err)
		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	})

	t.Run("Translates Duplicate Keys", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
		require.NoError(t, err)

		require.NoError(t, db.Exec("CREATE TABLE pairs (a INTEGER, b INTEGER, UNIQUE(a, b))").Error)
		require.NoError(t, db.Exec("INSERT INTO pairs (a, b) VALUES (1, 2)").Error)

		err = db.Exec("INSERT INTO pairs (a, b) VALUES (1, 2)").Error
		assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	})
}

func TestDialector(t *testing.T) {
	tests := []struct {
		driver string
		name   string
	}{
		{DriverMySQL, "mysql"},
		{"", "mysql"},
		{DriverPostgres, "postgres"},
		{DriverSQLite, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Dialector(Config{Driver: tt.driver, Name: "travel", Host: "localhost", Port: 5432}, 5)
			require.NoError(t, err)
			assert.Equal(t, tt.name, d.Name())
		})
	}
}

func TestDialector_MySQLCredentialsVerbatim(t *testing.T) {
	cfg := Config{
		Driver:   DriverMySQL,
		Host:     "db.internal",
		Port:     3306,
		User:     "admin@travel",
		Password: "p@ss/w:rd?x=1",
		Name:     "travel",
	}

	d, err := Dialector(cfg, 5)
	require.NoError(t, err)

	dialector, ok := d.(*mysql.Dialector)
	require.True(t, ok)

	parsed, err := gomysql.ParseDSN(dialector.Config.DSN)
	require.NoError(t, err)
	assert.Equal(t, "admin@travel", parsed.User)
	assert.Equal(t, "p@ss/w:rd?x=1", parsed.Passwd)
	assert.Equal(t, "db.internal:3306", parsed.Addr)
	assert.Equal(t, "travel", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Equal(t, 5*time.Second, parsed.Timeout)
	assert.Contains(t, dialector.Config.DSN, "charset=utf8mb4")
}

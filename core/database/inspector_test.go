package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE hotel_amenities (id INTEGER PRIMARY KEY, hotel_id INTEGER, amenity_id INTEGER, is_deleted NUMERIC DEFAULT 0)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "hotel_amenities")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "integer", colMap["hotel_id"])
	assert.Equal(t, "numeric", colMap["is_deleted"])

	// PRAGMA table_info returns an empty result for a missing table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE hotel_amenities (id INTEGER PRIMARY KEY, hotel_id INTEGER)").Error)

	missing, err := MissingColumns(db, "hotel_amenities", "id", "hotel_id", "amenity_id", "is_deleted")
	require.NoError(t, err)
	assert.Equal(t, []string{"amenity_id", "is_deleted"}, missing)

	missing, err = MissingColumns(db, "absent", "id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, missing)
}

func TestGetTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("id", "INT UNSIGNED", "NO", "PRI", nil, "auto_increment").
		AddRow("Hotel_ID", "INT UNSIGNED", "NO", "MUL", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `hotel_amenities`").WillReturnRows(rows)

	columns, err := GetTableColumns(db, "hotel_amenities")
	require.NoError(t, err)
	require.Len(t, columns, 2)
	assert.Equal(t, "hotel_id", columns[1].Field)
	assert.Equal(t, "int unsigned", columns[1].Type)
	assert.Equal(t, "PRI", columns[0].Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

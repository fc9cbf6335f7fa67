package links

import (
	"context"
	"errors"
	"net"
	"testing"

	"travel-admin/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	return NewStore(db), mock
}

func TestStore_NetworkFailureIsClassified(t *testing.T) {
	store, mock := newMockStore(t)
	rel, _ := LookupRelation(KindHotelAmenity)

	opErr := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset by peer")}
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `hotel_amenities` SET").WillReturnError(opErr)
	mock.ExpectRollback()

	err := store.DeleteByPair(context.Background(), rel, 1, 7)
	assert.ErrorIs(t, err, reconcile.ErrNetwork)
	assert.Equal(t, reconcile.ClassNetwork, reconcile.Classify(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DuplicateKeyIsConflict(t *testing.T) {
	store, mock := newMockStore(t)
	rel, _ := LookupRelation(KindHotelAmenity)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id, is_deleted FROM `hotel_amenities`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "is_deleted"}))
	mock.ExpectExec("INSERT INTO `hotel_amenities`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry '1-9' for key 'uq_hotel_amenities_pair'"})
	mock.ExpectRollback()

	_, err := store.Create(context.Background(), rel, 1, 9)
	assert.ErrorIs(t, err, reconcile.ErrConflict)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ZeroRowsIsNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	rel, _ := LookupRelation(KindRestaurantDietaryOption)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `restaurant_dietary_options` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := store.DeleteByID(context.Background(), rel, 42)
	assert.ErrorIs(t, err, reconcile.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListError(t *testing.T) {
	store, mock := newMockStore(t)
	rel, _ := LookupRelation(KindActivityRestriction)

	mock.ExpectQuery("SELECT id, activity_id AS parent_id, restriction_id AS child_id, is_deleted FROM `leisure_activity_restrictions`").
		WillReturnError(errors.New("syntax error"))

	_, err := store.List(context.Background(), rel)
	assert.ErrorContains(t, err, "syntax error")
	assert.Equal(t, reconcile.ClassUnknown, reconcile.Classify(err))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))
	assert.ErrorIs(t, classify(gorm.ErrDuplicatedKey), reconcile.ErrConflict)
	assert.ErrorIs(t, classify(context.DeadlineExceeded), reconcile.ErrNetwork)

	wrapped := classify(reconcile.ErrNotFound)
	assert.Same(t, reconcile.ErrNotFound, wrapped)
}

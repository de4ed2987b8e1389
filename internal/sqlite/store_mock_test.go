package sqlite

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

var errDisk = errors.New("disk I/O error")

// newMockStore returns a Store over sqlmock with exact query matching.
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return newStore(db, "mock.db", slog.Default()), mock
}

func TestReadAll_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectAllSQL).WillReturnError(errDisk)

	_, err := s.ReadAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrStorageIO)
	assert.ErrorIs(t, err, errDisk)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAll_ScanError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectAllSQL).
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone_number"}).AddRow("Arnold", "1"))

	_, err := s.ReadAll()
	assert.Equal(t, types.KindStorageIO, types.KindOf(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadAll_RowError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectAllSQL).
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone_number", "work_number"}).
			AddRow("Arnold", "1", "2").
			AddRow("Jack", "3", "4").
			RowError(1, errDisk))

	_, err := s.ReadAll()
	assert.ErrorIs(t, err, types.ErrStorageIO)
	assert.ErrorIs(t, err, errDisk)
}

func TestReadAll_Rows(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectAllSQL).
		WillReturnRows(sqlmock.NewRows([]string{"name", "phone_number", "work_number"}).
			AddRow("Arnold", "9027590", "3795780357").
			AddRow("Jack", "02875902", "98270987"))

	pb, err := s.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, types.PhoneBook{
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
		"Jack":   {Mobile: "02875902", Work: "98270987"},
	}, pb)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadOne_QueryError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectOneSQL).WithArgs("Arnold").WillReturnError(errDisk)

	_, ok, err := s.ReadOne("Arnold")
	assert.False(t, ok)
	assert.ErrorIs(t, err, types.ErrStorageIO)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReadOne_Absent(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(selectOneSQL).WithArgs("Arnold").
		WillReturnRows(sqlmock.NewRows([]string{"phone_number", "work_number"}))

	_, ok, err := s.ReadOne("Arnold")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteOne_InsertErrorRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(deleteOneSQL).WithArgs("Arnold").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insertSQL).WithArgs("Arnold", "1", "2").WillReturnError(errDisk)
	mock.ExpectRollback()

	err := s.WriteOne("Arnold", types.Entry{Mobile: "1", Work: "2"})
	assert.ErrorIs(t, err, types.ErrStorageIO)
	assert.ErrorIs(t, err, errDisk)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteOne_BeginError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin().WillReturnError(errDisk)

	err := s.WriteOne("Arnold", types.Entry{})
	assert.ErrorIs(t, err, types.ErrStorageIO)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteOne_CommitError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(deleteOneSQL).WithArgs("Arnold").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insertSQL).WithArgs("Arnold", "1", "2").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit().WillReturnError(errDisk)

	err := s.WriteOne("Arnold", types.Entry{Mobile: "1", Work: "2"})
	assert.ErrorIs(t, err, types.ErrStorageIO)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveOne_ExecError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(deleteOneSQL).WithArgs("Arnold").WillReturnError(errDisk)

	err := s.RemoveOne("Arnold")
	assert.ErrorIs(t, err, types.ErrStorageIO)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAll_IsTransactional(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(deleteAllSQL).WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare(insertSQL)
	prep.ExpectExec().WithArgs("Arnold", "9027590", "3795780357").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("Jack", "02875902", "98270987").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := s.WriteAll(types.PhoneBook{
		"Jack":   {Mobile: "02875902", Work: "98270987"},
		"Arnold": {Mobile: "9027590", Work: "3795780357"},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAll_InsertErrorRollsBack(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(deleteAllSQL).WillReturnResult(sqlmock.NewResult(0, 3))
	prep := mock.ExpectPrepare(insertSQL)
	prep.ExpectExec().WithArgs("Arnold", "1", "2").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("Jack", "3", "4").WillReturnError(errDisk)
	mock.ExpectRollback()

	err := s.WriteAll(types.PhoneBook{
		"Arnold": {Mobile: "1", Work: "2"},
		"Jack":   {Mobile: "3", Work: "4"},
	})
	assert.ErrorIs(t, err, types.ErrStorageIO)
	assert.ErrorIs(t, err, errDisk)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteAll_Empty(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectBegin()
	mock.ExpectExec(deleteAllSQL).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, s.WriteAll(types.PhoneBook{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

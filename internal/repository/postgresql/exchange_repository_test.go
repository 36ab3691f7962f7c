package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "skillswap/internal/domain"
)

func TestCreateExchange(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	now := time.Now()
	ex := &entity.Exchange{
		ProfileID1: 1,
		ProfileID2: 2,
		SkillID1:   5,
		SkillID2:   10,
		Status:     entity.StatusRequested,
		Location:   "Online",
		DateStart:  now,
		DateEnd:    now,
	}

	mock.ExpectQuery("INSERT INTO exchange").
		WithArgs(ex.ProfileID1, ex.ProfileID2, ex.SkillID1, ex.SkillID2, ex.Status, ex.Location, ex.DateStart, ex.DateEnd).
		WillReturnRows(sqlmock.NewRows([]string{"exchange_id"}).AddRow(int64(42)))

	id, err := repo.CreateExchange(ex)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, int64(42), ex.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExchangeByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"exchange_id", "profile_id_1", "profile_id_2", "skill_id_1", "skill_id_2",
		"status", "location", "date_start", "date_end",
	}).AddRow(int64(42), int64(1), int64(2), int64(5), int64(10), "Requested", "Online", now, now)

	mock.ExpectQuery("SELECT (.+) FROM exchange WHERE exchange_id").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	ex, err := repo.GetExchangeByID(42)
	require.NoError(t, err)
	require.NotNil(t, ex)
	assert.Equal(t, int64(1), ex.ProfileID1)
	assert.Equal(t, entity.StatusRequested, ex.Status)
}

func TestGetExchangeByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM exchange WHERE exchange_id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exchange_id"}))

	ex, err := repo.GetExchangeByID(99)
	require.NoError(t, err)
	assert.Nil(t, ex)
}

func TestUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	mock.ExpectExec("UPDATE exchange SET status").
		WithArgs(entity.StatusActive, sqlmock.AnyArg(), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(42, entity.StatusActive))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	mock.ExpectExec("UPDATE exchange SET status").
		WithArgs(entity.StatusActive, sqlmock.AnyArg(), int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateStatus(99, entity.StatusActive)
	assert.ErrorIs(t, err, entity.ErrExchangeNotFound)
}

func TestGetReceived_FiltersRequestedOnly(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewExchangeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"exchange_id", "profile_id_1", "profile_id_2", "profile_1_name", "profile_2_name",
		"offered_skill", "requested_skill", "status", "location", "date_start", "date_end",
	}).AddRow(int64(42), int64(1), int64(2), "Alice", "Bob", "Guitar", "Spanish", "Requested", "Online", now, now)

	mock.ExpectQuery("FROM exchange e").
		WithArgs(int64(2), entity.StatusRequested).
		WillReturnRows(rows)

	views, err := repo.GetReceived(2)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Alice", views[0].Profile1Name)
	assert.Equal(t, "Guitar", views[0].OfferedSkill)
	assert.Equal(t, entity.StatusRequested, views[0].Status)
}

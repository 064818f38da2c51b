package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bongona/FlowLandSteward/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("disk on fire")

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	expectClean(t, db, mock)
	return db, mock
}

func expectClean(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) {
	t.Helper()
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		db.Close()
	})
}

func TestTributeConfig_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM tribute_config").WillReturnError(errBoom)

	_, err := NewWithDB(db).TributeConfig(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.NotErrorIs(t, err, model.ErrNotFound)
	assert.False(t, model.IsValidation(err))
}

func TestIncrementTributeStats_RollsBackOnLedgerFailure(t *testing.T) {
	db, mock := newMockDB(t)
	cols := []string{"id", "mode", "credits_accrued", "resource_usage_mb", "operations_tracked", "last_ritual_date", "updated_at"}

	mock.ExpectBegin()
	mock.ExpectQuery("UPDATE tribute_config SET").
		WithArgs(int64(1), int64(2), int64(3), sqlmock.AnyArg(), int64(1), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, "symbolic", 231, 152, 303, nil, int64(0)))
	mock.ExpectExec("INSERT INTO tribute_events").WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := NewWithDB(db).IncrementTributeStats(context.Background(), 1, 2, 3)
	assert.ErrorIs(t, err, errBoom)
}

func TestIncrementTributeStats_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errBoom)

	_, err := NewWithDB(db).IncrementTributeStats(context.Background(), 1, 1, 1)
	assert.ErrorIs(t, err, errBoom)
}

func TestCreateRitual_RollsBackWhenAgentUpdateFails(t *testing.T) {
	db, mock := newMockDB(t)
	cols := []string{"id", "start_date", "completion_date", "status", "days_analyzed", "recommended_mode", "insights", "data_selection_config"}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO monetization_rituals").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(1, int64(1000), nil, "pending", 3, nil, nil, `{"dataTypes":[]}`))
	mock.ExpectExec("UPDATE tribute_config SET last_ritual_date").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE agents SET status").WillReturnError(errBoom)
	mock.ExpectRollback()

	_, err := NewWithDB(db).CreateRitual(context.Background(), 3, nil)
	assert.ErrorIs(t, err, errBoom)
}

func TestLogs_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .* FROM activity_logs").WithArgs(defaultLogLimit).WillReturnError(errBoom)

	_, err := NewWithDB(db).Logs(context.Background(), 0)
	assert.ErrorIs(t, err, errBoom)
}

func TestPruneMetrics_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("DELETE FROM system_metrics").WillReturnError(errBoom)

	_, err := NewWithDB(db).PruneMetrics(context.Background(), time.Now())
	assert.ErrorIs(t, err, errBoom)
}

func TestPing_Error(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	expectClean(t, db, mock)
	mock.ExpectPing().WillReturnError(errBoom)

	assert.ErrorIs(t, NewWithDB(db).Ping(context.Background()), errBoom)
}

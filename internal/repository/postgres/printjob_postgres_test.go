package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/model"
	"printshop/internal/repository"
)

var printJobRowColumns = []string{
	"id", "user_id", "document_id", "printer_id", "token_type", "status",
	"copies", "color_mode", "paper_size", "orientation", "sides", "quality",
	"print_cost", "token_fee", "cost", "payment_id", "payment_status",
	"created_at", "updated_at", "completed_at",
}

func printJobRows(status model.JobStatus, paymentStatus any, completedAt any) *sqlmock.Rows {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(printJobRowColumns).AddRow(
		"job-1", "user-1", "doc-1", "printer-1", "priority", string(status),
		2, "Color", "A4", "Portrait", "One-sided", "High",
		5.0, 1.5, 6.5, nil, paymentStatus,
		created, created, completedAt,
	)
}

func TestPrintJobPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)
	printer := "printer-1"
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	job := &model.PrintJob{
		ID:         "job-1",
		UserID:     "user-1",
		DocumentID: "doc-1",
		PrinterID:  &printer,
		TokenType:  model.TokenPriority,
		Status:     model.JobPending,
		Settings: model.PrintSettings{
			Copies:      2,
			ColorMode:   model.ColorModeColor,
			PaperSize:   model.PaperA4,
			Orientation: model.OrientationPortrait,
			Sides:       model.SidesOne,
			Quality:     model.QualityHigh,
		},
		PrintCost: 5.0,
		TokenFee:  1.5,
		Cost:      6.5,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectQuery("INSERT INTO print_jobs").
		WithArgs("job-1", "user-1", "doc-1", "printer-1", "priority", "pending",
			2, "Color", "A4", "Portrait", "One-sided", "High",
			5.0, 1.5, 6.5, nil, nil, now, now, nil).
		WillReturnRows(printJobRows(model.JobPending, nil, nil))

	result, err := repo.Create(context.Background(), job)

	require.NoError(t, err)
	assert.Equal(t, model.JobPending, result.Status)
	require.NotNil(t, result.PrinterID)
	assert.Equal(t, "printer-1", *result.PrinterID)
	assert.Nil(t, result.PaymentStatus)
	assert.Equal(t, model.ColorModeColor, result.Settings.ColorMode)
	assert.InDelta(t, 6.5, result.Cost, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)
	ctx := context.Background()

	t.Run("scans nullable columns", func(t *testing.T) {
		done := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM print_jobs WHERE id = ?").
			WithArgs("job-1").
			WillReturnRows(printJobRows(model.JobCompleted, "completed", done))

		job, err := repo.FindByID(ctx, "job-1")

		require.NoError(t, err)
		require.NotNil(t, job.PaymentStatus)
		assert.Equal(t, model.PaymentCompleted, *job.PaymentStatus)
		require.NotNil(t, job.CompletedAt)
		assert.True(t, done.Equal(*job.CompletedAt))
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM print_jobs WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		job, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, job)
	})
}

func TestPrintJobPostgres_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM print_jobs WHERE user_id = (.+) ORDER BY created_at DESC").
		WithArgs("user-1").
		WillReturnRows(printJobRows(model.JobReady, nil, nil))

	jobs, err := repo.ListByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, model.JobReady, jobs[0].Status)
}

func TestPrintJobPostgres_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	job := &model.PrintJob{ID: "job-1", Status: model.JobPrinting, UpdatedAt: now}

	t.Run("guards on the previous status", func(t *testing.T) {
		mock.ExpectQuery("UPDATE print_jobs SET status = (.+) WHERE id = (.+) AND status = (.+)").
			WithArgs("job-1", "printing", now, nil, "pending").
			WillReturnRows(printJobRows(model.JobPrinting, nil, nil))

		result, err := repo.UpdateStatus(ctx, job, model.JobPending)

		require.NoError(t, err)
		assert.Equal(t, model.JobPrinting, result.Status)
	})

	t.Run("status moved on", func(t *testing.T) {
		mock.ExpectQuery("UPDATE print_jobs").
			WithArgs("job-1", "printing", now, nil, "pending").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("job-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := repo.UpdateStatus(ctx, job, model.JobPending)

		assert.ErrorIs(t, err, repository.ErrStale)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectQuery("UPDATE print_jobs").
			WithArgs("job-1", "printing", now, nil, "pending").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs("job-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := repo.UpdateStatus(ctx, job, model.JobPending)

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobPostgres_SetPayment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)
	now := time.Date(2024, 3, 1, 11, 0, 0, 0, time.UTC)
	done := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	mock.ExpectQuery("UPDATE print_jobs SET payment_id = (.+), payment_status = (.+), updated_at = (.+) WHERE id = (.+) RETURNING").
		WithArgs("job-1", "pay-1", "completed", now).
		WillReturnRows(printJobRows(model.JobCompleted, "completed", done))

	result, err := repo.SetPayment(context.Background(), "job-1", "pay-1", model.PaymentCompleted, now)

	require.NoError(t, err)
	assert.Equal(t, model.JobCompleted, result.Status)
	require.NotNil(t, result.PaymentStatus)
	assert.Equal(t, model.PaymentCompleted, *result.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM print_jobs WHERE id = (.+) AND status = (.+)").
		WithArgs("job-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, "job-1", model.JobPending))

	mock.ExpectExec("DELETE FROM print_jobs").
		WithArgs("job-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	assert.ErrorIs(t, repo.Delete(ctx, "job-1", model.JobPending), repository.ErrStale)

	mock.ExpectExec("DELETE FROM print_jobs").
		WithArgs("job-1", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("job-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	assert.ErrorIs(t, repo.Delete(ctx, "job-1", model.JobPending), repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPrintJobPostgres_CountByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPrintJobPostgres(db)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) FROM print_jobs GROUP BY status").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow("pending", 3).
			AddRow("completed", 1))

	counts, err := repo.CountByStatus(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[model.JobStatus]int{model.JobPending: 3, model.JobCompleted: 1}, counts)
}

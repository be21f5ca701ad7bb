package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/model"
	"printshop/internal/repository"
)

func TestDocumentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository()
	now := time.Now().UTC()

	doc := &model.Document{
		ID:             "doc-1",
		UserID:         "user-1",
		Name:           "report.pdf",
		Filename:       "abc.pdf",
		StoragePath:    "documents/abc.pdf",
		FileType:       "pdf",
		ContentType:    "application/pdf",
		Size:           2048,
		EstimatedPages: 1,
		CreatedAt:      now,
	}

	t.Run("round trip", func(t *testing.T) {
		_, err := repo.Create(ctx, doc)
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, *doc, *got)
	})

	t.Run("returned copy does not alias storage", func(t *testing.T) {
		got, err := repo.FindByID(ctx, "doc-1")
		require.NoError(t, err)
		got.Name = "changed"

		again, err := repo.FindByID(ctx, "doc-1")
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", again.Name)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := repo.Create(ctx, doc)
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("list by user newest first", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Document{ID: "doc-2", UserID: "user-1", CreatedAt: now.Add(time.Minute)})
		require.NoError(t, err)
		_, err = repo.Create(ctx, &model.Document{ID: "doc-3", UserID: "user-2", CreatedAt: now.Add(2 * time.Minute)})
		require.NoError(t, err)

		docs, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "doc-2", docs[0].ID)
		assert.Equal(t, "doc-1", docs[1].ID)
	})

	t.Run("paginated list", func(t *testing.T) {
		res, err := repo.List(ctx, repository.PageQuery{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, "doc-2", res.Items[0].ID)

		res, err = repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, res.Items)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "doc-1"))
		require.NoError(t, repo.Delete(ctx, "doc-1"))

		_, err := repo.FindByID(ctx, "doc-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestPrintJobRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPrintJobRepository()
	now := time.Now().UTC()

	for i, id := range []string{"job-a", "job-b", "job-c"} {
		_, err := repo.Create(ctx, &model.PrintJob{
			ID:        id,
			UserID:    "user-1",
			Status:    model.JobPending,
			CreatedAt: now,
		})
		require.NoError(t, err, i)
	}

	t.Run("ties on created_at keep insertion order, newest first", func(t *testing.T) {
		jobs, err := repo.ListByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, jobs, 3)
		assert.Equal(t, []string{"job-c", "job-b", "job-a"}, []string{jobs[0].ID, jobs[1].ID, jobs[2].ID})
	})

	t.Run("update and count", func(t *testing.T) {
		job, err := repo.FindByID(ctx, "job-b")
		require.NoError(t, err)
		job.Status = model.JobCompleted
		_, err = repo.UpdateStatus(ctx, job, model.JobPending)
		require.NoError(t, err)

		counts, err := repo.CountByStatus(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, counts[model.JobPending])
		assert.Equal(t, 1, counts[model.JobCompleted])
	})

	t.Run("update unknown", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, &model.PrintJob{ID: "missing"}, model.JobPending)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("guarded writes see the stored status", func(t *testing.T) {
		_, err := repo.UpdateStatus(ctx, &model.PrintJob{ID: "job-b", Status: model.JobReady}, model.JobPending)
		assert.ErrorIs(t, err, repository.ErrStale)
		assert.ErrorIs(t, repo.Delete(ctx, "job-b", model.JobPending), repository.ErrStale)

		job, err := repo.FindByID(ctx, "job-b")
		require.NoError(t, err)
		assert.Equal(t, model.JobCompleted, job.Status)
	})

	t.Run("set payment keeps status", func(t *testing.T) {
		at := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
		job, err := repo.SetPayment(ctx, "job-b", "pay-1", model.PaymentCompleted, at)
		require.NoError(t, err)
		assert.Equal(t, model.JobCompleted, job.Status)
		require.NotNil(t, job.PaymentID)
		assert.Equal(t, "pay-1", *job.PaymentID)
		assert.True(t, at.Equal(job.UpdatedAt))

		_, err = repo.SetPayment(ctx, "missing", "pay-1", model.PaymentCompleted, at)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		assert.NoError(t, repo.Delete(ctx, "job-a", model.JobPending))
		assert.ErrorIs(t, repo.Delete(ctx, "missing", model.JobPending), repository.ErrNotFound)
	})
}

func TestUserRepository_Duplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.Create(ctx, &model.User{ID: "u1", Username: "asha", Email: "asha@example.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &model.User{ID: "u2", Username: "other", Email: "ASHA@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	_, err = repo.Create(ctx, &model.User{ID: "u3", Username: "asha", Email: "new@example.com"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := repo.FindByEmail(ctx, "Asha@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPrinterRepository_ListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewPrinterRepository()

	for _, id := range []string{"p3", "p1", "p2"} {
		_, err := repo.Create(ctx, &model.Printer{ID: id, Name: id})
		require.NoError(t, err)
	}

	printers, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, printers, 3)
	assert.Equal(t, "p3", printers[0].ID)
	assert.Equal(t, "p2", printers[2].ID)
}

func TestPaymentRepository_SumCompleted(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRepository()

	payments := []model.Payment{
		{ID: "a", UserID: "u", Amount: 0.1, Status: model.PaymentCompleted},
		{ID: "b", UserID: "u", Amount: 0.2, Status: model.PaymentCompleted},
		{ID: "c", UserID: "u", Amount: 99, Status: model.PaymentCancelled},
		{ID: "d", UserID: "u", Amount: 5, Status: model.PaymentPending},
	}
	for i := range payments {
		_, err := repo.Create(ctx, &payments[i])
		require.NoError(t, err)
	}

	sum, err := repo.SumCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.3, sum)
}

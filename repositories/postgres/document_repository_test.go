package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/models"
)

func newMockRepo(t *testing.T) (*DocumentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDocumentRepository(db, zap.NewNop()), mock
}

func TestPut(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(sqlmock.AnyArg(), "tenant-a", "admin", "ADMIN_PAYROLL", "salary table").
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc, err := repo.Put(context.Background(), "tenant-a", models.ClassificationAdmin, "ADMIN_PAYROLL", "salary table")

	require.NoError(t, err)
	assert.NotEmpty(t, doc.DocID)
	assert.Equal(t, "tenant-a", doc.TenantID)
	assert.Equal(t, models.ClassificationAdmin, doc.Classification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPutError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO documents").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Put(context.Background(), "tenant-a", models.ClassificationPublic, "t", "b")
	assert.ErrorContains(t, err, "failed to insert document")
}

func TestListScoped(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"doc_id", "tenant_id", "classification", "title", "body"}).
		AddRow("doc-1", "tenant-a", "public", "handbook", "welcome").
		AddRow("doc-2", "tenant-a", "admin", "payroll", "salaries")

	mock.ExpectQuery("SELECT doc_id, tenant_id, classification, title, body").
		WithArgs("tenant-a", pq.Array([]string{"public", "admin"})).
		WillReturnRows(rows)

	docs, err := repo.ListScoped(context.Background(), "tenant-a",
		[]models.Classification{models.ClassificationPublic, models.ClassificationAdmin})

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "doc-1", docs[0].DocID)
	assert.Equal(t, models.ClassificationAdmin, docs[1].Classification)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListScopedEmptyAllowedSkipsQuery(t *testing.T) {
	repo, mock := newMockRepo(t)

	// No allowed classifications means no query at all: the empty set is
	// answered without touching the database.
	docs, err := repo.ListScoped(context.Background(), "tenant-a", nil)

	require.NoError(t, err)
	assert.Nil(t, docs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListScopedQueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT doc_id, tenant_id, classification, title, body").
		WillReturnError(errors.New("relation does not exist"))

	_, err := repo.ListScoped(context.Background(), "tenant-a",
		[]models.Classification{models.ClassificationPublic})
	assert.ErrorContains(t, err, "failed to list documents")
}

func TestClear(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM documents").
		WillReturnResult(sqlmock.NewResult(0, 3))

	assert.NoError(t, repo.Clear(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

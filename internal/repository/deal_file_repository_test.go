package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
)

func seedFile(t *testing.T, repo *repository.DealFileRepository, deal *domain.Deal, category domain.FileCategory, storageKey string) *domain.DealFile {
	t.Helper()
	f := &domain.DealFile{
		DealID:         deal.ID,
		Category:       category,
		StorageKey:     storageKey,
		Filename:       "upload.jpg",
		ContentType:    "image/jpeg",
		Size:           2048,
		UploadedByID:   "user-1",
		UploadedByName: "Alex Reyes",
	}
	require.NoError(t, repo.Create(context.Background(), f))
	return f
}

func TestDealFileRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDealFileRepository(db)
	ctx := context.Background()

	rep := seedRep(t, db, "Alex Reyes")
	deal := seedDeal(t, db, rep, domain.DealStatusLead, "Pat Miller")

	created := seedFile(t, repo, deal, domain.FileCategoryInspectionPhoto, "ab/cd/abcd-photo.jpg")

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, deal.ID, got.DealID)
	assert.Equal(t, domain.FileCategoryInspectionPhoto, got.Category)
	assert.Equal(t, "ab/cd/abcd-photo.jpg", got.StorageKey)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, int64(2048), got.Size)
	assert.Equal(t, "Alex Reyes", got.UploadedByName)
}

func TestDealFileRepository_GetByStorageKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDealFileRepository(db)
	ctx := context.Background()

	rep := seedRep(t, db, "Alex Reyes")
	deal := seedDeal(t, db, rep, domain.DealStatusSigned, "Pat Miller")
	seedFile(t, repo, deal, domain.FileCategoryContractSignature, "ef/01/ef01-contract.pdf")

	got, err := repo.GetByStorageKey(ctx, "ef/01/ef01-contract.pdf")
	require.NoError(t, err)
	assert.Equal(t, deal.ID, got.DealID)

	_, err = repo.GetByStorageKey(ctx, "no/such/key.pdf")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDealFileRepository_ListByDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDealFileRepository(db)
	ctx := context.Background()

	rep := seedRep(t, db, "Alex Reyes")
	deal := seedDeal(t, db, rep, domain.DealStatusLead, "Pat Miller")
	other := seedDeal(t, db, rep, domain.DealStatusLead, "Sam Carter")

	// Explicit timestamps make the newest-first ordering deterministic
	old := &domain.DealFile{
		DealID:     deal.ID,
		Category:   domain.FileCategoryInspectionPhoto,
		StorageKey: "aa/aa/first.jpg",
		Filename:   "first.jpg",
	}
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, old))

	newest := &domain.DealFile{
		DealID:     deal.ID,
		Category:   domain.FileCategoryInspectionPhoto,
		StorageKey: "bb/bb/second.jpg",
		Filename:   "second.jpg",
	}
	newest.CreatedAt = time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newest))

	seedFile(t, repo, other, domain.FileCategoryInspectionPhoto, "cc/cc/other.jpg")

	files, err := repo.ListByDeal(ctx, deal.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "second.jpg", files[0].Filename)
	assert.Equal(t, "first.jpg", files[1].Filename)
}

func TestDealFileRepository_ListByDealAndCategory(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDealFileRepository(db)
	ctx := context.Background()

	rep := seedRep(t, db, "Alex Reyes")
	deal := seedDeal(t, db, rep, domain.DealStatusInstalled, "Pat Miller")

	seedFile(t, repo, deal, domain.FileCategoryInstallPhoto, "dd/dd/install.jpg")
	seedFile(t, repo, deal, domain.FileCategoryCompletionRepSignature, "ee/ee/rep-sig.png")
	seedFile(t, repo, deal, domain.FileCategoryCompletionHomeownerSignature, "ff/ff/homeowner-sig.png")

	sigs, err := repo.ListByDealAndCategory(ctx, deal.ID, domain.FileCategoryCompletionRepSignature)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "ee/ee/rep-sig.png", sigs[0].StorageKey)

	count, err := repo.CountByDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDealFileRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewDealFileRepository(db)
	ctx := context.Background()

	rep := seedRep(t, db, "Alex Reyes")
	deal := seedDeal(t, db, rep, domain.DealStatusLead, "Pat Miller")
	f := seedFile(t, repo, deal, domain.FileCategoryInspectionPhoto, "11/22/gone.jpg")

	require.NoError(t, repo.Delete(ctx, f.ID))

	_, err := repo.GetByID(ctx, f.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountByDeal(ctx, deal.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

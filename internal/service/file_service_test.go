package service_test

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
	"github.com/ridgeline-exteriors/deal-api/internal/storage"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

func newTestFileService(t *testing.T, db *gorm.DB) *service.FileService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080", "test-sign-secret")
	require.NoError(t, err)

	return service.NewFileService(
		repository.NewDealFileRepository(db),
		repository.NewDealRepository(db),
		repository.NewNotificationRepository(db),
		workflow.NewEngine(workflow.DefaultPipeline()),
		store,
		time.Minute,
		nil,
		zap.NewNop(),
	)
}

func uploadTestFile(t *testing.T, svc *service.FileService, ctx context.Context, dealID uuid.UUID, category domain.FileCategory, name string) *domain.DealFileDTO {
	t.Helper()
	dto, err := svc.UploadToDeal(ctx, dealID, category, name, "application/octet-stream", bytes.NewReader([]byte("content of "+name)))
	require.NoError(t, err)
	return dto
}

func TestFileService_UploadToDeal(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestFileService(t, db)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)
	dealRepo := repository.NewDealRepository(db)

	t.Run("document upload binds its slot", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusSigned)

		dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryPermit, "permit.pdf")
		assert.Equal(t, domain.FileCategoryPermit, dto.Category)
		assert.NotEmpty(t, dto.StorageKey)
		assert.NotEmpty(t, dto.SignedURL)
		assert.Equal(t, "Alex Reyes", dto.UploadedByName)

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.StorageKey, got.PermitURL)
		assert.Equal(t, domain.DealStatusSigned, got.Status, "plain documents never move the deal")
		assert.Equal(t, int64(2), got.Revision)
	})

	t.Run("photo categories append", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusInstallScheduled)

		first := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInstallPhoto, "roof-1.jpg")
		second := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInstallPhoto, "roof-2.jpg")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StringList{first.StorageKey, second.StorageKey}, got.InstallPhotos)
	})

	t.Run("inspection photo pulls a lead into the pipeline", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)

		dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInspectionPhoto, "inspection.jpg")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusInspectionScheduled, got.Status)
		assert.Equal(t, domain.StringList{dto.StorageKey}, got.InspectionPhotos)
		require.NotNil(t, got.InspectionDate, "arrival stamped by the shortcut")

		var history []domain.DealStatusHistory
		require.NoError(t, db.Where("deal_id = ?", deal.ID).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, domain.TransitionSourceAuto, history[0].Source)
	})

	t.Run("inspection photo elsewhere is just a photo", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusSigned)

		uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInspectionPhoto, "late-photo.jpg")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusSigned, got.Status)
		assert.Len(t, got.InspectionPhotos, 1)
	})

	t.Run("second completion signature advances the installed deal", func(t *testing.T) {
		deal := &domain.Deal{
			Status:                    domain.DealStatusInstalled,
			Revision:                  1,
			RepID:                     rep.ID,
			HomeownerName:             "Pat Miller",
			Address:                   "712 Live Oak Dr",
			CompletionRepSignatureURL: "aa/bb/rep-sig.png",
		}
		require.NoError(t, db.Create(deal).Error)

		dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryCompletionHomeownerSignature, "homeowner-sig.png")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusCompletionSigned, got.Status)
		assert.Equal(t, dto.StorageKey, got.CompletionHomeownerSignatureURL)
		assert.Equal(t, "aa/bb/rep-sig.png", got.CompletionRepSignatureURL)
		require.NotNil(t, got.CompletionSignedDate)

		var history []domain.DealStatusHistory
		require.NoError(t, db.Where("deal_id = ?", deal.ID).Find(&history).Error)
		require.Len(t, history, 1)
		assert.Equal(t, domain.TransitionSourceAuto, history[0].Source)
	})

	t.Run("first completion signature alone does not move the deal", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusInstalled)

		dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryCompletionRepSignature, "rep-sig.png")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DealStatusInstalled, got.Status)
		assert.Equal(t, dto.StorageKey, got.CompletionRepSignatureURL)
	})

	t.Run("contract signature sets the signed flag", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusInspectionScheduled)

		dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryContractSignature, "contract.png")

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, dto.StorageKey, got.ContractSignatureURL)
		assert.True(t, got.ContractSigned)
		assert.Equal(t, domain.DealStatusInspectionScheduled, got.Status, "signature waits for the rep's save")
	})

	t.Run("unknown category", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusLead)
		_, err := svc.UploadToDeal(ctx, deal.ID, "blueprint", "b.pdf", "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rep cannot upload to another rep's deal", func(t *testing.T) {
		other := createTestRep(t, db, "Jordan Vega", domain.CommissionLevelJunior)
		deal := createTestDeal(t, db, other, domain.DealStatusLead)

		_, err := svc.UploadToDeal(ctx, deal.ID, domain.FileCategoryPermit, "p.pdf", "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("unknown deal", func(t *testing.T) {
		_, err := svc.UploadToDeal(ctx, uuid.New(), domain.FileCategoryPermit, "p.pdf", "application/pdf", strings.NewReader("x"))
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestFileService_ListDealFiles(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestFileService(t, db)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)
	deal := createTestDeal(t, db, rep, domain.DealStatusSigned)

	uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryPermit, "permit.pdf")
	uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInstallPhoto, "roof.jpg")

	files, err := svc.ListDealFiles(ctx, deal.ID)
	require.NoError(t, err)

	require.Len(t, files, 2)
	for _, f := range files {
		assert.NotEmpty(t, f.SignedURL)
	}

	_, err = svc.ListDealFiles(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestFileService_DeleteDealFile(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestFileService(t, db)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)
	dealRepo := repository.NewDealRepository(db)

	t.Run("photo delete removes the list entry", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusInstallScheduled)
		keep := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInstallPhoto, "keep.jpg")
		drop := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryInstallPhoto, "drop.jpg")

		require.NoError(t, svc.DeleteDealFile(ctx, deal.ID, drop.ID))

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StringList{keep.StorageKey}, got.InstallPhotos)

		files, err := svc.ListDealFiles(ctx, deal.ID)
		require.NoError(t, err)
		assert.Len(t, files, 1)
	})

	t.Run("contract signature delete clears the signed flag", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusInspectionScheduled)
		sig := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryContractSignature, "contract.png")

		require.NoError(t, svc.DeleteDealFile(ctx, deal.ID, sig.ID))

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ContractSignatureURL)
		assert.False(t, got.ContractSigned)
	})

	t.Run("superseded document leaves the newer binding alone", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusSigned)
		old := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryPermit, "permit-v1.pdf")
		current := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryPermit, "permit-v2.pdf")

		require.NoError(t, svc.DeleteDealFile(ctx, deal.ID, old.ID))

		got, err := dealRepo.GetByID(ctx, deal.ID)
		require.NoError(t, err)
		assert.Equal(t, current.StorageKey, got.PermitURL)
	})

	t.Run("file on another deal reads as not found", func(t *testing.T) {
		deal := createTestDeal(t, db, rep, domain.DealStatusSigned)
		otherDeal := createTestDeal(t, db, rep, domain.DealStatusSigned)
		file := uploadTestFile(t, svc, ctx, otherDeal.ID, domain.FileCategoryPermit, "p.pdf")

		err := svc.DeleteDealFile(ctx, deal.ID, file.ID)
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}

func TestFileService_OpenSignedDownload(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newTestFileService(t, db)
	rep := createTestRep(t, db, "Alex Reyes", domain.CommissionLevelSenior)
	ctx := repContext(rep)
	deal := createTestDeal(t, db, rep, domain.DealStatusSigned)

	dto := uploadTestFile(t, svc, ctx, deal.ID, domain.FileCategoryPermit, "permit.pdf")

	signed, err := url.Parse(dto.SignedURL)
	require.NoError(t, err)
	query := signed.Query()
	path := query.Get("path")
	expires, err := strconv.ParseInt(query.Get("expires"), 10, 64)
	require.NoError(t, err)
	sig := query.Get("sig")

	t.Run("valid signature serves the file", func(t *testing.T) {
		reader, file, err := svc.OpenSignedDownload(ctx, path, expires, sig)
		require.NoError(t, err)
		defer reader.Close()

		assert.Equal(t, "permit.pdf", file.Filename)
		content, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, "content of permit.pdf", string(content))
	})

	t.Run("tampered signature is refused", func(t *testing.T) {
		_, _, err := svc.OpenSignedDownload(ctx, path, expires, "deadbeef")
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})

	t.Run("expired link is refused", func(t *testing.T) {
		_, _, err := svc.OpenSignedDownload(ctx, path, time.Now().Add(-time.Hour).Unix(), sig)
		assert.ErrorIs(t, err, service.ErrPermissionDenied)
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/auth"
	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/mapper"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/storage"
	"github.com/ridgeline-exteriors/deal-api/internal/workflow"
)

// FileService handles deal uploads: the file lands in storage, a DealFile
// row records it, the storage key is bound to the deal field its category
// maps to, and the workflow shortcut hooks run.
type FileService struct {
	fileRepo         *repository.DealFileRepository
	dealRepo         *repository.DealRepository
	notificationRepo *repository.NotificationRepository
	engine           *workflow.Engine
	storage          storage.Storage
	signedTTL        time.Duration
	adminUserIDs     []uuid.UUID
	logger           *zap.Logger
}

func NewFileService(
	fileRepo *repository.DealFileRepository,
	dealRepo *repository.DealRepository,
	notificationRepo *repository.NotificationRepository,
	engine *workflow.Engine,
	store storage.Storage,
	signedTTL time.Duration,
	adminUserIDs []uuid.UUID,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		fileRepo:         fileRepo,
		dealRepo:         dealRepo,
		notificationRepo: notificationRepo,
		engine:           engine,
		storage:          store,
		signedTTL:        signedTTL,
		adminUserIDs:     adminUserIDs,
		logger:           logger,
	}
}

// UploadToDeal stores a file against a deal. Photo categories append to
// the deal's photo list; document categories overwrite the one slot the
// category maps to. An inspection photo on a fresh lead and the second
// completion signature both trigger their workflow shortcuts.
func (s *FileService) UploadToDeal(
	ctx context.Context,
	dealID uuid.UUID,
	category domain.FileCategory,
	filename, contentType string,
	data io.Reader,
) (*domain.DealFileDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown file category %q", ErrInvalidInput, category)
	}

	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}
	if !userCtx.CanEditDeal(&deal.RepID) {
		return nil, ErrPermissionDenied
	}

	storageKey, size, err := s.storage.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	file := &domain.DealFile{
		DealID:         deal.ID,
		Category:       category,
		StorageKey:     storageKey,
		Filename:       filename,
		ContentType:    contentType,
		Size:           size,
		UploadedByID:   userCtx.UserID.String(),
		UploadedByName: userCtx.DisplayName,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// Try to delete from storage (best effort cleanup)
		if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
			s.logger.Warn("failed to cleanup file from storage after DB error",
				zap.Error(delErr),
				zap.String("storage_key", storageKey))
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	if err := s.bindAndAdvance(ctx, deal, category, storageKey, userCtx); err != nil {
		return nil, err
	}

	signedURL, err := s.storage.SignedURL(ctx, storageKey, s.signedTTL)
	if err != nil {
		s.logger.Warn("failed to sign download url",
			zap.Error(err),
			zap.String("storage_key", storageKey))
		signedURL = ""
	}

	dto := mapper.ToDealFileDTO(file, signedURL)
	return &dto, nil
}

// ListDealFiles returns a deal's files with signed download URLs, newest
// first.
func (s *FileService) ListDealFiles(ctx context.Context, dealID uuid.UUID) ([]domain.DealFileDTO, error) {
	if _, err := s.dealRepo.GetByID(ctx, dealID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get deal: %w", err)
	}

	files, err := s.fileRepo.ListByDeal(ctx, dealID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deal files: %w", err)
	}

	dtos := make([]domain.DealFileDTO, 0, len(files))
	for i := range files {
		signedURL, err := s.storage.SignedURL(ctx, files[i].StorageKey, s.signedTTL)
		if err != nil {
			s.logger.Warn("failed to sign download url",
				zap.Error(err),
				zap.String("storage_key", files[i].StorageKey))
			signedURL = ""
		}
		dtos = append(dtos, mapper.ToDealFileDTO(&files[i], signedURL))
	}
	return dtos, nil
}

// DeleteDealFile removes an upload from storage and the record of it. A
// photo entry is also removed from the deal's photo list; a document slot
// is cleared only while it still points at the deleted file.
func (s *FileService) DeleteDealFile(ctx context.Context, dealID, fileID uuid.UUID) error {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	deal, err := s.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get deal: %w", err)
	}
	if !userCtx.CanEditDeal(&deal.RepID) {
		return ErrPermissionDenied
	}

	file, err := s.fileRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get file: %w", err)
	}
	if file.DealID != deal.ID {
		return ErrNotFound
	}

	// Delete from storage (log warning if fails, continue)
	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		s.logger.Warn("failed to delete file from storage",
			zap.Error(err),
			zap.String("storage_key", file.StorageKey),
			zap.String("file_id", fileID.String()))
	}

	if err := s.fileRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	cols := unbindColumns(deal, file.Category, file.StorageKey)
	if len(cols) > 0 {
		if err := s.dealRepo.UpdateWithRevision(ctx, deal.ID, deal.Revision, cols); err != nil {
			return s.mapFileWriteError(err)
		}
	}
	return nil
}

// OpenSignedDownload serves a file through the local signed-URL route.
// Cloud storage hands out SAS URLs instead, so this only answers in local
// mode. Returns the content reader together with the stored metadata.
func (s *FileService) OpenSignedDownload(ctx context.Context, storageKey string, expires int64, sig string) (io.ReadCloser, *domain.DealFile, error) {
	local, ok := s.storage.(*storage.LocalStorage)
	if !ok {
		return nil, nil, ErrNotFound
	}
	if !local.VerifySignedPath(storageKey, expires, sig) {
		return nil, nil, ErrPermissionDenied
	}

	file, err := s.fileRepo.GetByStorageKey(ctx, storageKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to resolve file: %w", err)
	}

	reader, err := local.Download(ctx, storageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return reader, file, nil
}

// bindAndAdvance writes the category's field binding and runs the workflow
// shortcuts: an inspection photo pulls a lead straight into the pipeline,
// and the second completion signature advances the installed deal.
func (s *FileService) bindAndAdvance(
	ctx context.Context,
	deal *domain.Deal,
	category domain.FileCategory,
	storageKey string,
	userCtx *auth.UserContext,
) error {
	patch := uploadPatch(deal, category, storageKey)
	now := time.Now().UTC()

	var (
		out workflow.Outcome
		err error
	)
	switch {
	case category == domain.FileCategoryInspectionPhoto:
		merged := *deal
		patch.Apply(&merged)
		out, err = s.engine.ApplyInspectionPhoto(&merged, now)
	case isCompletionSignature(category) && deal.Status == domain.DealStatusInstalled:
		out, err = s.engine.AttemptAdvance(deal, patch, now)
	default:
		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := s.dealRepo.UpdateWithRevision(ctx, deal.ID, deal.Revision, cols); err != nil {
			return s.mapFileWriteError(err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to evaluate deal %s: %w", deal.ID, err)
	}

	if !out.StatusChanged {
		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := s.dealRepo.UpdateWithRevision(ctx, deal.ID, deal.Revision, cols); err != nil {
			return s.mapFileWriteError(err)
		}
		return nil
	}

	from := out.From
	rec := repository.TransitionRecord{
		DealID:      deal.ID,
		Revision:    deal.Revision,
		Columns:     patch.Columns(),
		ToStatus:    out.To,
		StampColumn: out.StampField,
		OccurredAt:  now,
		History: domain.DealStatusHistory{
			FromStatus:    &from,
			ToStatus:      out.To,
			Source:        domain.TransitionSourceAuto,
			ChangedByID:   userCtx.UserID.String(),
			ChangedByName: userCtx.DisplayName,
			ChangedByRole: userCtx.Role,
			ChangedAt:     now,
		},
	}
	if err := s.dealRepo.Transition(ctx, rec); err != nil {
		return s.mapFileWriteError(err)
	}

	fanOutAwaitingAdmin(ctx, s.notificationRepo, s.engine.Pipeline(), s.adminUserIDs, deal, out.To, s.logger)
	return nil
}

func (s *FileService) mapFileWriteError(err error) error {
	switch {
	case errors.Is(err, repository.ErrRevisionConflict):
		return ErrRevisionConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	}
	return fmt.Errorf("failed to save deal: %w", err)
}

// uploadPatch maps an upload category to the deal field it fills. Photo
// categories append; everything else overwrites its slot.
func uploadPatch(deal *domain.Deal, category domain.FileCategory, key string) *domain.DealPatch {
	patch := &domain.DealPatch{}
	switch category {
	case domain.FileCategoryInspectionPhoto:
		list := appendKey(deal.InspectionPhotos, key)
		patch.InspectionPhotos = &list
	case domain.FileCategoryInstallPhoto:
		list := appendKey(deal.InstallPhotos, key)
		patch.InstallPhotos = &list
	case domain.FileCategoryCompletionPhoto:
		list := appendKey(deal.CompletionPhotos, key)
		patch.CompletionPhotos = &list
	case domain.FileCategoryLostStatement:
		patch.LostStatementURL = &key
	case domain.FileCategoryInsuranceAgreement:
		patch.InsuranceAgreementURL = &key
	case domain.FileCategoryPermit:
		patch.PermitURL = &key
	case domain.FileCategoryACVReceipt:
		patch.ACVReceiptURL = &key
	case domain.FileCategoryDeductibleReceipt:
		patch.DeductibleReceiptURL = &key
	case domain.FileCategoryDepreciationReceipt:
		patch.DepreciationReceiptURL = &key
	case domain.FileCategoryInvoice:
		patch.InvoiceURL = &key
	case domain.FileCategoryContractSignature:
		signed := true
		patch.ContractSignatureURL = &key
		patch.ContractSigned = &signed
	case domain.FileCategoryCompletionRepSignature:
		patch.CompletionRepSignatureURL = &key
	case domain.FileCategoryCompletionHomeownerSignature:
		patch.CompletionHomeownerSignatureURL = &key
	}
	return patch
}

// unbindColumns reverses an upload's field binding for file deletion.
func unbindColumns(deal *domain.Deal, category domain.FileCategory, key string) map[string]interface{} {
	cols := make(map[string]interface{})
	switch category {
	case domain.FileCategoryInspectionPhoto:
		cols["inspection_photos"] = removeKey(deal.InspectionPhotos, key)
	case domain.FileCategoryInstallPhoto:
		cols["install_photos"] = removeKey(deal.InstallPhotos, key)
	case domain.FileCategoryCompletionPhoto:
		cols["completion_photos"] = removeKey(deal.CompletionPhotos, key)
	case domain.FileCategoryLostStatement:
		if deal.LostStatementURL == key {
			cols["lost_statement_url"] = ""
		}
	case domain.FileCategoryInsuranceAgreement:
		if deal.InsuranceAgreementURL == key {
			cols["insurance_agreement_url"] = ""
		}
	case domain.FileCategoryPermit:
		if deal.PermitURL == key {
			cols["permit_url"] = ""
		}
	case domain.FileCategoryACVReceipt:
		if deal.ACVReceiptURL == key {
			cols["acv_receipt_url"] = ""
		}
	case domain.FileCategoryDeductibleReceipt:
		if deal.DeductibleReceiptURL == key {
			cols["deductible_receipt_url"] = ""
		}
	case domain.FileCategoryDepreciationReceipt:
		if deal.DepreciationReceiptURL == key {
			cols["depreciation_receipt_url"] = ""
		}
	case domain.FileCategoryInvoice:
		if deal.InvoiceURL == key {
			cols["invoice_url"] = ""
		}
	case domain.FileCategoryContractSignature:
		if deal.ContractSignatureURL == key {
			cols["contract_signature_url"] = ""
			cols["contract_signed"] = false
		}
	case domain.FileCategoryCompletionRepSignature:
		if deal.CompletionRepSignatureURL == key {
			cols["completion_rep_signature_url"] = ""
		}
	case domain.FileCategoryCompletionHomeownerSignature:
		if deal.CompletionHomeownerSignatureURL == key {
			cols["completion_homeowner_signature_url"] = ""
		}
	}
	return cols
}

func isCompletionSignature(category domain.FileCategory) bool {
	return category == domain.FileCategoryCompletionRepSignature ||
		category == domain.FileCategoryCompletionHomeownerSignature
}

func appendKey(list domain.StringList, key string) domain.StringList {
	out := make(domain.StringList, 0, len(list)+1)
	out = append(out, list...)
	return append(out, key)
}

func removeKey(list domain.StringList, key string) domain.StringList {
	out := make(domain.StringList, 0, len(list))
	for _, k := range list {
		if k != key {
			out = append(out, k)
		}
	}
	return out
}

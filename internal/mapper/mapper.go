package mapper

import (
	"time"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
)

const timeLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(timeLayout)
	return &s
}

func photos(list domain.StringList) []string {
	if list == nil {
		return []string{}
	}
	return []string(list)
}

// ToDealDTO converts Deal to DealDTO
func ToDealDTO(deal *domain.Deal) domain.DealDTO {
	commissions := make([]domain.DealCommissionDTO, len(deal.DealCommissions))
	for i, c := range deal.DealCommissions {
		commissions[i] = ToDealCommissionDTO(&c)
	}

	repName := deal.RepName
	if deal.Rep != nil {
		repName = deal.Rep.Name
	}

	return domain.DealDTO{
		ID:       deal.ID,
		Status:   deal.Status,
		Revision: deal.Revision,

		RepID:   deal.RepID,
		RepName: repName,

		HomeownerName:  deal.HomeownerName,
		HomeownerPhone: deal.HomeownerPhone,
		HomeownerEmail: deal.HomeownerEmail,
		Address:        deal.Address,
		City:           deal.City,
		State:          deal.State,
		Zip:            deal.Zip,
		RoofType:       deal.RoofType,
		RoofSquares:    deal.RoofSquares,

		InsuranceCompany:    deal.InsuranceCompany,
		PolicyNumber:        deal.PolicyNumber,
		ClaimNumber:         deal.ClaimNumber,
		DateOfLoss:          formatTimePtr(deal.DateOfLoss),
		AdjusterName:        deal.AdjusterName,
		AdjusterPhone:       deal.AdjusterPhone,
		AdjusterMeetingDate: formatTimePtr(deal.AdjusterMeetingDate),

		RCV:          deal.RCV,
		ACV:          deal.ACV,
		Deductible:   deal.Deductible,
		Depreciation: deal.Depreciation,

		MaterialCategory: deal.MaterialCategory,
		MetalType:        deal.MetalType,
		Color:            deal.Color,
		DripEdgeColor:    deal.DripEdgeColor,
		VentColor:        deal.VentColor,

		InspectionPhotos: photos(deal.InspectionPhotos),
		InstallPhotos:    photos(deal.InstallPhotos),
		CompletionPhotos: photos(deal.CompletionPhotos),

		LostStatementURL:                deal.LostStatementURL,
		InsuranceAgreementURL:           deal.InsuranceAgreementURL,
		PermitURL:                       deal.PermitURL,
		ACVReceiptURL:                   deal.ACVReceiptURL,
		DeductibleReceiptURL:            deal.DeductibleReceiptURL,
		DepreciationReceiptURL:          deal.DepreciationReceiptURL,
		InvoiceURL:                      deal.InvoiceURL,
		ContractSignatureURL:            deal.ContractSignatureURL,
		CompletionRepSignatureURL:       deal.CompletionRepSignatureURL,
		CompletionHomeownerSignatureURL: deal.CompletionHomeownerSignatureURL,

		ContractSigned:             deal.ContractSigned,
		ACVCheckCollected:          deal.ACVCheckCollected,
		DepreciationCheckCollected: deal.DepreciationCheckCollected,
		PaymentRequested:           deal.PaymentRequested,
		CommissionPaid:             deal.CommissionPaid,

		InspectionDate:            formatTimePtr(deal.InspectionDate),
		SignedDate:                formatTimePtr(deal.SignedDate),
		ClaimFiledDate:            formatTimePtr(deal.ClaimFiledDate),
		AdjusterMetDate:           formatTimePtr(deal.AdjusterMetDate),
		ApprovedDate:              formatTimePtr(deal.ApprovedDate),
		ACVCollectedDate:          formatTimePtr(deal.ACVCollectedDate),
		DeductibleCollectedDate:   formatTimePtr(deal.DeductibleCollectedDate),
		MaterialsSelectedDate:     formatTimePtr(deal.MaterialsSelectedDate),
		InstallDate:               formatTimePtr(deal.InstallDate),
		CompletionSignedDate:      formatTimePtr(deal.CompletionSignedDate),
		InvoiceSentDate:           formatTimePtr(deal.InvoiceSentDate),
		DepreciationCollectedDate: formatTimePtr(deal.DepreciationCollectedDate),
		CompletedDate:             formatTimePtr(deal.CompletedDate),
		CommissionPaidDate:        formatTimePtr(deal.CommissionPaidDate),

		DealCommissions: commissions,

		CreatedAt: formatTime(deal.CreatedAt),
		UpdatedAt: formatTime(deal.UpdatedAt),
	}
}

// ToDealDTOs converts a slice of deals for list responses
func ToDealDTOs(deals []domain.Deal) []domain.DealDTO {
	dtos := make([]domain.DealDTO, len(deals))
	for i := range deals {
		dtos[i] = ToDealDTO(&deals[i])
	}
	return dtos
}

// ToDealCommissionDTO converts DealCommission to DealCommissionDTO
func ToDealCommissionDTO(c *domain.DealCommission) domain.DealCommissionDTO {
	return domain.DealCommissionDTO{
		ID:                c.ID,
		DealID:            c.DealID,
		CommissionPercent: c.CommissionPercent,
		CommissionAmount:  c.CommissionAmount,
		Paid:              c.Paid,
		PaidDate:          formatTimePtr(c.PaidDate),
		CreatedAt:         formatTime(c.CreatedAt),
		UpdatedAt:         formatTime(c.UpdatedAt),
	}
}

// ToDealStatusHistoryDTO converts DealStatusHistory to its DTO
func ToDealStatusHistoryDTO(h *domain.DealStatusHistory) domain.DealStatusHistoryDTO {
	return domain.DealStatusHistoryDTO{
		ID:            h.ID,
		DealID:        h.DealID,
		FromStatus:    h.FromStatus,
		ToStatus:      h.ToStatus,
		Source:        h.Source,
		ChangedByID:   h.ChangedByID,
		ChangedByName: h.ChangedByName,
		ChangedByRole: h.ChangedByRole,
		ChangedAt:     formatTime(h.ChangedAt),
	}
}

// ToDealStatusHistoryDTOs converts a history slice, newest first as stored
func ToDealStatusHistoryDTOs(entries []domain.DealStatusHistory) []domain.DealStatusHistoryDTO {
	dtos := make([]domain.DealStatusHistoryDTO, len(entries))
	for i := range entries {
		dtos[i] = ToDealStatusHistoryDTO(&entries[i])
	}
	return dtos
}

// ToRepDTO converts Rep to RepDTO
func ToRepDTO(rep *domain.Rep, dealCount int64) domain.RepDTO {
	return domain.RepDTO{
		ID:                       rep.ID,
		Name:                     rep.Name,
		Email:                    rep.Email,
		Phone:                    rep.Phone,
		CommissionLevel:          rep.CommissionLevel,
		DefaultCommissionPercent: rep.DefaultCommissionPercent,
		Active:                   rep.Active,
		DealCount:                dealCount,
		CreatedAt:                formatTime(rep.CreatedAt),
		UpdatedAt:                formatTime(rep.UpdatedAt),
	}
}

// ToDealFileDTO converts DealFile to DealFileDTO. The signed URL is
// minted per request and never stored.
func ToDealFileDTO(file *domain.DealFile, signedURL string) domain.DealFileDTO {
	return domain.DealFileDTO{
		ID:             file.ID,
		DealID:         file.DealID,
		Category:       file.Category,
		StorageKey:     file.StorageKey,
		Filename:       file.Filename,
		ContentType:    file.ContentType,
		Size:           file.Size,
		UploadedByName: file.UploadedByName,
		SignedURL:      signedURL,
		CreatedAt:      formatTime(file.CreatedAt),
	}
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(notification *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         notification.ID,
		Type:       notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Read:       notification.Read,
		EntityID:   notification.EntityID,
		EntityType: notification.EntityType,
		CreatedAt:  formatTime(notification.CreatedAt),
	}
}

// ToAuditLogDTO converts AuditLog to AuditLogDTO
func ToAuditLogDTO(log *domain.AuditLog) domain.AuditLogDTO {
	return domain.AuditLogDTO{
		ID:         log.ID,
		UserID:     log.UserID,
		UserName:   log.UserName,
		UserRole:   log.UserRole,
		Method:     log.Method,
		Path:       log.Path,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		StatusCode: log.StatusCode,
		RequestID:  log.RequestID,
		IPAddress:  log.IPAddress,
		CreatedAt:  formatTime(log.CreatedAt),
	}
}

package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/service"
)

type FileHandler struct {
	fileService *service.FileService
	maxUploadMB int64
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, maxUploadMB int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
		logger:      logger,
	}
}

// @Summary Upload file to deal
// @Description Upload a photo, receipt or signed document. The category decides which deal field the file fills, and inspection photos and completion signatures trigger their workflow shortcuts.
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Deal ID"
// @Param file formData file true "File to upload"
// @Param category formData string true "File category (inspection_photo, contract_signature, acv_receipt, ...)"
// @Success 201 {object} domain.DealFileDTO
// @Security BearerAuth
// @Router /deals/{id}/files [post]
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	dealID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	// Limit request size
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	category := domain.FileCategory(r.FormValue("category"))
	if category == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: category field is required")
		return
	}

	fileDTO, err := h.fileService.UploadToDeal(r.Context(), dealID, category, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, fileDTO)
}

// @Summary List deal files
// @Description List a deal's uploads with signed download URLs, newest first
// @Tags Files
// @Produce json
// @Param id path string true "Deal ID"
// @Success 200 {array} domain.DealFileDTO
// @Security BearerAuth
// @Router /deals/{id}/files [get]
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	dealID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	files, err := h.fileService.ListDealFiles(r.Context(), dealID)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, files)
}

// @Summary Delete deal file
// @Description Remove an upload from storage and clear the deal field it filled
// @Tags Files
// @Param id path string true "Deal ID"
// @Param fileID path string true "File ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /deals/{id}/files/{fileID} [delete]
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	dealID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid deal ID: must be a valid UUID")
		return
	}

	fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file ID: must be a valid UUID")
		return
	}

	if err := h.fileService.DeleteDealFile(r.Context(), dealID, fileID); err != nil {
		respondServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Download file via signed URL
// @Description Serve a file through the local signed-URL route. The URL comes from an upload or list response; no bearer token is needed.
// @Tags Files
// @Produce application/octet-stream
// @Param path query string true "Storage key"
// @Param expires query int true "Expiry unix timestamp"
// @Param sig query string true "Signature"
// @Success 200
// @Router /files/download [get]
func (h *FileHandler) SignedDownload(w http.ResponseWriter, r *http.Request) {
	storageKey := r.URL.Query().Get("path")
	sig := r.URL.Query().Get("sig")
	expires, err := strconv.ParseInt(r.URL.Query().Get("expires"), 10, 64)
	if storageKey == "" || sig == "" || err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid download link")
		return
	}

	reader, file, err := h.fileService.OpenSignedDownload(r.Context(), storageKey, expires, sig)
	if err != nil {
		respondServiceError(w, h.logger, err)
		return
	}
	defer reader.Close()

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Disposition", "attachment; filename=\""+file.Filename+"\"")
	w.Header().Set("Content-Type", contentType)

	_, _ = io.Copy(w, reader)
}

package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/SalangsangJohnPatrick/inventory-management/api/responses"
	"github.com/SalangsangJohnPatrick/inventory-management/internal/inventory"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/config"
	pkgerrors "github.com/SalangsangJohnPatrick/inventory-management/pkg/errors"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/logger"
	"github.com/SalangsangJohnPatrick/inventory-management/pkg/validation"
)

const (
	importFileField = "file"
	// multipartOverhead leaves room for boundaries and headers around the file.
	multipartOverhead = 1 << 20
)

var (
	importExtensions = map[string]bool{".csv": true, ".txt": true}
	importMIMETypes  = []string{"text/csv", "text/plain"}
)

// InventoryImport accepts a multipart CSV upload and imports it row by row.
func InventoryImport(svc inventory.Service, cfg config.ImportConfig, logg *logger.Logger) http.HandlerFunc {
	maxBytes := cfg.MaxUploadBytes()
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			writeServiceUnavailable(w, r, logg)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
		file, header, err := r.FormFile(importFileField)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, uploadError(err, maxBytes))
			return
		}
		defer file.Close()

		if err := checkUpload(file, header, maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Import(r.Context(), file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(r.Context(), "imported", result.Imported), "inventory.import.completed")
		}
		responses.WriteSuccess(w, result)
	}
}

func uploadError(err error, maxBytes int64) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fileError(err, fmt.Sprintf("The file may not be greater than %d kilobytes.", maxBytes/1024))
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return fileError(err, "The file field is required.")
	}
	return fileError(err, "The file failed to upload.")
}

// checkUpload enforces size, extension and sniffed content type, then
// rewinds the file for parsing.
func checkUpload(file multipart.File, header *multipart.FileHeader, maxBytes int64) error {
	if header.Size > maxBytes {
		return fileError(nil, fmt.Sprintf("The file may not be greater than %d kilobytes.", maxBytes/1024))
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !importExtensions[ext] {
		return fileError(nil, "The file must be a file of type: csv, txt.")
	}

	detected, err := mimetype.DetectReader(file)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Unable to import inventory.").Public()
	}
	if !isTextUpload(detected) {
		return fileError(nil, "The file must be a file of type: csv, txt.")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "Unable to import inventory.").Public()
	}
	return nil
}

func isTextUpload(detected *mimetype.MIME) bool {
	for m := detected; m != nil; m = m.Parent() {
		for _, allowed := range importMIMETypes {
			if m.Is(allowed) {
				return true
			}
		}
	}
	return false
}

func fileError(cause error, msg string) error {
	return pkgerrors.Wrap(pkgerrors.CodeValidation, cause, msg).
		WithDetails(validation.FieldErrors{importFileField: msg})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/solacejournal/solace-backend/internal/config"
	"github.com/solacejournal/solace-backend/internal/services"
)

var cloudinaryService *services.CloudinaryService

func InitCloudinaryService(cfg *config.Config) error {
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

// UploadAttachment uploads a journal attachment and returns the metadata the
// client embeds into an entry's attachments list. Max upload size is 10MB.
func UploadAttachment(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		writeUnauthorized(w)
		return
	}
	if cloudinaryService == nil {
		writeMessage(w, http.StatusServiceUnavailable, false, "File uploads are not available")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeMessage(w, http.StatusBadRequest, false, "Failed to parse form: "+err.Error())
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, false, "No file provided")
		return
	}
	defer file.Close()

	url, err := cloudinaryService.UploadAttachment(r.Context(), fileHeader, "solace/attachments")
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, false, "Failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"attachment": map[string]interface{}{
			"url":        url,
			"filename":   fileHeader.Filename,
			"size":       fileHeader.Size,
			"uploadedAt": time.Now().UTC(),
		},
	})
}

package handlers

import (
	"net/http"

	"aguaruta-service/internal/adapters/photos"
	"aguaruta-service/internal/api/dto"
)

// PhotoHandler issues signed Cloudinary upload parameters for delivery
// evidence photos.
type PhotoHandler struct {
	// Optional; nil means photo uploads are not configured.
	Signer *photos.Signer
}

func (h *PhotoHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if h.Signer == nil {
		writeError(w, r, http.StatusServiceUnavailable, "photo uploads are not configured")
		return
	}

	ticket := h.Signer.Sign()
	writeJSON(w, r, http.StatusOK, dto.SignPhotoResponse{
		CloudName: ticket.CloudName,
		APIKey:    ticket.APIKey,
		Timestamp: ticket.Timestamp,
		Signature: ticket.Signature,
		Folder:    ticket.Folder,
		PublicID:  ticket.PublicID,
		PhotoURL:  h.Signer.PhotoURL(ticket.Folder + "/" + ticket.PublicID),
	})
}

package handlers

import (
	"net/http"

	"habitTrackerAPI/services"
)

type SignatureHandler struct {
	signatureService *services.SignatureService
}

func NewSignatureHandler(signatureService *services.SignatureService) *SignatureHandler {
	return &SignatureHandler{signatureService: signatureService}
}

func (h *SignatureHandler) CreateSignature(w http.ResponseWriter, r *http.Request) {
	sig, err := h.signatureService.Sign()
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sig)
}

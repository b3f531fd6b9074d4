package dto

import (
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/service"
)

// ShowUploadRequest addresses one upload token.
type ShowUploadRequest struct {
	Token string `json:"token"`
}

// UploadBody is the token plus everything registered under it.
// Attachment mirrors the most recently added record.
type UploadBody struct {
	Token       string              `json:"token"`
	Attachment  *domain.Attachment  `json:"attachment,omitempty"`
	Attachments []domain.Attachment `json:"attachments"`
}

// UploadResponse wraps the upload body the way the simulated API does.
type UploadResponse struct {
	Upload UploadBody `json:"upload"`
}

// NewUploadResponse assembles the upload envelope.
func NewUploadResponse(result *service.UploadResult) UploadResponse {
	body := UploadBody{Token: result.Token, Attachments: result.Attachments}
	if n := len(result.Attachments); n > 0 {
		latest := result.Attachments[n-1]
		body.Attachment = &latest
	}
	return UploadResponse{Upload: body}
}

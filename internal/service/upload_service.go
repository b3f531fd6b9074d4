package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-sim/internal/clock"
	"github.com/spec-kit/helpdesk-sim/internal/domain"
	"github.com/spec-kit/helpdesk-sim/internal/persistence"
	"github.com/spec-kit/helpdesk-sim/internal/repository"
	"github.com/spec-kit/helpdesk-sim/pkg/util"
)

const (
	mockAttachmentHost  = "https://mock.zendesk.com"
	defaultUploadSize   = 1024
	fallbackContentType = "application/octet-stream"
)

// UploadService produces mock attachments and registers them under
// upload tokens. Tokens are the opaque handles ticket comments later
// resolve into attachment id lists.
type UploadService struct {
	state       *persistence.State
	attachments repository.AttachmentRepository
	uploads     repository.UploadRepository
	clk         clock.Clock
}

// UploadDependencies bundles collaborators for the upload service.
type UploadDependencies struct {
	State          *persistence.State
	AttachmentRepo repository.AttachmentRepository
	UploadRepo     repository.UploadRepository
	Clock          clock.Clock
}

// NewUploadService constructs the service.
func NewUploadService(deps UploadDependencies) *UploadService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.Real()
	}
	return &UploadService{
		state:       deps.State,
		attachments: deps.AttachmentRepo,
		uploads:     deps.UploadRepo,
		clk:         clk,
	}
}

// UploadInput describes one file upload.
type UploadInput struct {
	Filename    string `json:"filename"`
	Token       string `json:"token,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	FileSize    int64  `json:"file_size,omitempty"`
}

// UploadResult carries a token and every attachment registered under
// it so far.
type UploadResult struct {
	Token       string
	Attachments []domain.Attachment
}

// UploadFile creates a mock attachment for the named file and
// registers it under the given token, or under a fresh one when no
// token is supplied. Image uploads get fixed 800x600 dimensions and a
// small thumbnail.
func (s *UploadService) UploadFile(ctx context.Context, input UploadInput) (*UploadResult, error) {
	if strings.TrimSpace(input.Filename) == "" {
		return nil, util.NewValidationError("filename is required", nil)
	}

	s.state.Lock()
	defer s.state.Unlock()

	now := s.clk.Now().UTC().Truncate(time.Second)
	contentType := input.ContentType
	if contentType == "" {
		contentType = guessContentType(input.Filename)
	}
	size := input.FileSize
	if size <= 0 {
		size = defaultUploadSize
	}

	attachment := s.buildMockAttachment(input.Filename, contentType, size, now)
	s.attachments.Insert(attachment)

	token := input.Token
	if token == "" {
		token = uuid.NewString()
	}
	upload, ok := s.uploads.Get(token)
	if !ok {
		upload = &domain.Upload{Token: token, CreatedAt: now}
		s.uploads.Put(upload)
	}
	upload.Attachments = append(upload.Attachments, attachment.ID)

	return &UploadResult{
		Token:       token,
		Attachments: s.attachmentRecords(upload.Attachments),
	}, nil
}

// ShowUpload resolves a token into its accumulated attachments.
func (s *UploadService) ShowUpload(ctx context.Context, token string) (*UploadResult, error) {
	s.state.Lock()
	defer s.state.Unlock()

	upload, ok := s.uploads.Get(token)
	if !ok {
		return nil, util.NewUploadTokenNotFound(token)
	}
	return &UploadResult{
		Token:       upload.Token,
		Attachments: s.attachmentRecords(upload.Attachments),
	}, nil
}

func (s *UploadService) attachmentRecords(ids []int64) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(ids))
	for _, id := range ids {
		if attachment, ok := s.attachments.Get(id); ok {
			out = append(out, attachment.Clone())
		}
	}
	return out
}

func (s *UploadService) buildMockAttachment(filename, contentType string, size int64, now time.Time) *domain.Attachment {
	id := s.state.IDs.Allocate(persistence.NamespaceAttachment)
	contentURL := fmt.Sprintf("%s/attachments/%d/download", mockAttachmentHost, id)

	attachment := &domain.Attachment{
		ID:               id,
		FileName:         filename,
		ContentType:      contentType,
		ContentURL:       contentURL,
		Size:             size,
		Thumbnails:       []domain.Thumbnail{},
		URL:              fmt.Sprintf("%s/api/v2/attachments/%d.json", mockAttachmentHost, id),
		MappedContentURL: contentURL,
		CreatedAt:        now,
	}
	if strings.HasPrefix(contentType, "image/") {
		attachment.Width = "800"
		attachment.Height = "600"
		attachment.Thumbnails = []domain.Thumbnail{{
			ID:   id*1000 + 1,
			URL:  fmt.Sprintf("%s/attachments/%d/thumbnails/small.jpg", mockAttachmentHost, id),
			Size: "small",
		}}
	}
	return attachment
}

// guessContentType resolves a MIME type from the file extension,
// without the charset parameters Go's mime package appends.
func guessContentType(filename string) string {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		return fallbackContentType
	}
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return contentType
}

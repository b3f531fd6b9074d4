package persistence

import (
	"strconv"
	"time"

	"github.com/spec-kit/helpdesk-sim/internal/domain"
)

// SeedUploadToken is the well-known token the seed registers, so
// scripted sessions can attach a file without uploading one first.
const SeedUploadToken = "seed-upload-token"

// Seed populates an empty state with a small deterministic user
// registry and one upload, so scenarios and comment authors have
// referents. Seeding a non-empty state is a no-op.
func Seed(s *State) {
	s.Lock()
	defer s.Unlock()
	if len(s.Users) > 0 {
		return
	}

	seededAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedUsers := []struct {
		name  string
		email string
		role  domain.UserRole
	}{
		{"Morgan Hale", "morgan.hale@example.com", domain.UserRoleAdmin},
		{"Riley Chen", "riley.chen@example.com", domain.UserRoleAgent},
		{"Dana Whitfield", "dana.whitfield@example.com", domain.UserRoleAgent},
		{"Jordan Velez", "jordan.velez@example.com", domain.UserRoleEndUser},
		{"Sam Okafor", "sam.okafor@example.com", domain.UserRoleEndUser},
	}

	for _, su := range seedUsers {
		id := s.IDs.Allocate(NamespaceUser)
		s.Users[id] = &domain.User{
			ID:        id,
			Name:      su.name,
			Email:     su.email,
			Role:      su.role,
			Active:    true,
			Verified:  true,
			URL:       UserURL(id),
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		}
	}

	attachmentID := s.IDs.Allocate(NamespaceAttachment)
	contentURL := "https://mock.zendesk.com/attachments/" + strconv.FormatInt(attachmentID, 10) + "/download"
	s.Attachments[attachmentID] = &domain.Attachment{
		ID:               attachmentID,
		FileName:         "error-report.txt",
		ContentType:      "text/plain",
		ContentURL:       contentURL,
		Size:             1024,
		Thumbnails:       []domain.Thumbnail{},
		URL:              "https://mock.zendesk.com/api/v2/attachments/" + strconv.FormatInt(attachmentID, 10) + ".json",
		MappedContentURL: contentURL,
		CreatedAt:        seededAt,
	}
	s.Uploads[SeedUploadToken] = &domain.Upload{
		Token:       SeedUploadToken,
		Attachments: []int64{attachmentID},
		CreatedAt:   seededAt,
	}
}

// UserURL builds the API path user records carry.
func UserURL(id int64) string {
	return "/api/v2/users/" + strconv.FormatInt(id, 10) + ".json"
}

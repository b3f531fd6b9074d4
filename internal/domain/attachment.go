package domain

import "time"

// Thumbnail is a reduced rendition attached to image uploads.
type Thumbnail struct {
	ID   int64  `json:"id"`
	URL  string `json:"url"`
	Size string `json:"size"`
}

// Attachment is mock file metadata produced by the upload flow. Width
// and height are string-typed on the wire and set only for images.
type Attachment struct {
	ID               int64       `json:"id"`
	FileName         string      `json:"file_name"`
	ContentType      string      `json:"content_type"`
	ContentURL       string      `json:"content_url"`
	Size             int64       `json:"size"`
	Width            string      `json:"width,omitempty"`
	Height           string      `json:"height,omitempty"`
	Inline           bool        `json:"inline"`
	Deleted          bool        `json:"deleted"`
	Thumbnails       []Thumbnail `json:"thumbnails"`
	URL              string      `json:"url"`
	MappedContentURL string      `json:"mapped_content_url,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Clone returns an independent copy.
func (a Attachment) Clone() Attachment {
	out := a
	out.Thumbnails = append([]Thumbnail(nil), a.Thumbnails...)
	return out
}

// Upload maps an opaque token to the attachments registered under it.
type Upload struct {
	Token       string    `json:"token"`
	Attachments []int64   `json:"attachments"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns an independent copy.
func (u Upload) Clone() Upload {
	out := u
	out.Attachments = append([]int64(nil), u.Attachments...)
	return out
}

package signature

import "time"

// MaxImageSize is the upload limit for signature images.
const MaxImageSize = 2 * 1024 * 1024

// AllowedContentTypes lists the accepted signature image formats.
var AllowedContentTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif"}

// Signature is a user's current digital signature image. At most one per
// user; uploading again overwrites the previous one.
type Signature struct {
	UserID      string
	Image       []byte
	ContentType string
	FileName    string
	SizeBytes   int
	UpdatedAt   time.Time
}

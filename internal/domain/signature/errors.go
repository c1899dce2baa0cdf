package signature

import "errors"

var (
	ErrSignatureNotFound    = errors.New("signature not found")
	ErrUnsupportedImageType = errors.New("only JPG, PNG or GIF signature images are allowed")
	ErrImageTooLarge        = errors.New("signature image must not exceed 2MB")
	ErrEmptyImage           = errors.New("signature image is empty")
)

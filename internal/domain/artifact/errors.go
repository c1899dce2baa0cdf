package artifact

import "errors"

var (
	ErrArtifactNotFound = errors.New("request document not found")
)

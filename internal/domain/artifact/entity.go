package artifact

import "time"

// DownloadState gates access to a stored request letter. It is derived
// from lifecycle transitions but tracked separately from the request
// status: the letter of an authorized request is restricted, everything
// else defaults to open.
type DownloadState string

const (
	DownloadOpen       DownloadState = "open"
	DownloadRestricted DownloadState = "restricted"
)

// PdfArtifact is the compressed request letter bound 1:1 to a leave
// request header.
type PdfArtifact struct {
	RequestID     string
	Data          []byte // compressed payload
	DownloadState DownloadState
	GeneratedAt   time.Time
}

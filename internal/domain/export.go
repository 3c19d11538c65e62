package domain

import (
	"context"
	"errors"
)

// Sentinel errors for export operations.
var (
	// ErrMissingCredential is returned when a folder export is requested
	// without an access token. The export is not attempted.
	ErrMissingCredential = errors.New("missing access token")
)

// MediaFetcher retrieves the bytes of an already-uploaded media object by
// its public URL.
type MediaFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Folder is a remote export folder created in the organizer's cloud storage.
type Folder struct {
	ID   string `json:"id"`
	Link string `json:"link"`
}

// DriveClient is the cloud export target. All calls are authenticated with a
// caller-supplied bearer token; the token exchange itself happens elsewhere.
type DriveClient interface {
	CreateFolder(ctx context.Context, accessToken, name string) (*Folder, error)
	CreateFile(ctx context.Context, accessToken, parentID, name, mimeType string, data []byte) error
}

// ExportFailure records one memory whose media could not be exported.
type ExportFailure struct {
	SenderName string `json:"sender_name"`
	Reason     string `json:"reason"`
}

// ExportReport summarizes the per-item outcomes of one export batch.
// A partially failed batch still produces an artifact; failed items are
// listed here instead of aborting their siblings.
type ExportReport struct {
	MediaTotal    int             `json:"media_total"`
	MediaExported int             `json:"media_exported"`
	Failures      []ExportFailure `json:"failures,omitempty"`
}

// FolderExport is the result of exporting an event into a cloud folder.
// swagger:model FolderExport
type FolderExport struct {
	FolderID   string        `json:"folder_id"`
	FolderLink string        `json:"folder_link"`
	Report     *ExportReport `json:"report"`
}

// ExportService turns an event's memory list into a downloadable archive or
// a remote folder of files. Memories are read-only inputs; the given order
// is preserved in the summary document.
type ExportService interface {
	ExportArchive(ctx context.Context, eventName string, memories []*Memory) (archive []byte, report *ExportReport, err error)
	ExportToFolder(ctx context.Context, accessToken, eventName string, memories []*Memory) (*FolderExport, error)
}

package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"memoir/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	byURL   map[string][]byte
	failing map[string]error
	calls   int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		byURL:   make(map[string][]byte),
		failing: make(map[string]error),
	}
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err, ok := f.failing[url]; ok {
		return nil, err
	}
	if data, ok := f.byURL[url]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("no such object: %s", url)
}

type driveFile struct {
	parentID string
	name     string
	mimeType string
	data     []byte
}

type fakeDrive struct {
	mu        sync.Mutex
	folderErr error
	fileErrs  map[string]error
	folders   []string
	files     []driveFile
}

func (f *fakeDrive) CreateFolder(ctx context.Context, accessToken, name string) (*domain.Folder, error) {
	if f.folderErr != nil {
		return nil, f.folderErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, name)
	return &domain.Folder{ID: "folder-1", Link: "https://drive.example.com/folder-1"}, nil
}

func (f *fakeDrive) CreateFile(ctx context.Context, accessToken, parentID, name, mimeType string, data []byte) error {
	if err, ok := f.fileErrs[name]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, driveFile{parentID: parentID, name: name, mimeType: mimeType, data: data})
	return nil
}

func (f *fakeDrive) fileNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.files))
	for _, file := range f.files {
		names = append(names, file.name)
	}
	return names
}

func strPtr(s string) *string { return &s }

// exportFixture builds the three-memory batch used across the export tests:
// one text-only memory, one image whose fetch succeeds, and one video whose
// fetch fails.
func exportFixture(fetcher *fakeFetcher) []*domain.Memory {
	created := time.Date(2026, 6, 14, 10, 0, 0, 0, time.UTC)
	photoURL := "https://media.example.com/ev-1/1718355600000-photo.jpg"
	videoURL := "https://media.example.com/ev-1/1718355601000-clip.mp4"

	fetcher.byURL[photoURL] = []byte("jpeg-bytes")
	fetcher.failing[videoURL] = errors.New("connection reset")

	return []*domain.Memory{
		{
			ID: "m-1", EventID: "ev-1", SenderName: "Mia",
			Message: "Congratulations!", MediaType: domain.MediaNone,
			CreatedAt: created,
		},
		{
			ID: "m-2", EventID: "ev-1", SenderName: "  ",
			Message: "So happy for you", MediaURL: strPtr(photoURL),
			MediaType: domain.MediaImage, CreatedAt: created.Add(time.Minute),
		},
		{
			ID: "m-3", EventID: "ev-1", SenderName: "Tom",
			Message: "Best party ever", MediaURL: strPtr(videoURL),
			MediaType: domain.MediaVideo, CreatedAt: created.Add(2 * time.Minute),
		},
	}
}

func readArchive(t *testing.T, archive []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	out := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = data
	}
	return out
}

func TestExportService_ExportArchive(t *testing.T) {
	ctx := context.Background()
	fetcher := newFakeFetcher()
	memories := exportFixture(fetcher)
	svc := NewExportService(fetcher, &fakeDrive{}, testLogger, 2)

	archive, report, err := svc.ExportArchive(ctx, "Ana & Leo", memories)
	require.NoError(t, err)

	files := readArchive(t, archive)
	require.Contains(t, files, "SUMMARY.txt")

	summary := string(files["SUMMARY.txt"])
	i1 := strings.Index(summary, "Memory #1")
	i2 := strings.Index(summary, "Memory #2")
	i3 := strings.Index(summary, "Memory #3")
	require.True(t, i1 >= 0 && i2 > i1 && i3 > i2, "summary lists all memories in order:\n%s", summary)
	assert.Contains(t, summary, "Name: Mia")
	assert.Contains(t, summary, "Name: Guest")
	assert.Contains(t, summary, "Name: Tom")
	assert.Contains(t, summary, "Date: 2026-06-14")
	assert.Contains(t, summary, "Media: None")
	assert.Contains(t, summary, "Media: Yes - image")
	assert.Contains(t, summary, strings.Repeat("-", 50))

	// Only the fetchable image made it into the archive.
	require.Len(t, files, 2)
	assert.Equal(t, []byte("jpeg-bytes"), files["memories/1718355600000-photo.jpg"])

	assert.Equal(t, 2, report.MediaTotal)
	assert.Equal(t, 1, report.MediaExported)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Tom", report.Failures[0].SenderName)
	assert.Contains(t, report.Failures[0].Reason, "connection reset")
}

func TestExportService_ExportArchive_NoMemories(t *testing.T) {
	svc := NewExportService(newFakeFetcher(), &fakeDrive{}, testLogger, 0)

	archive, report, err := svc.ExportArchive(context.Background(), "Empty", nil)
	require.NoError(t, err)

	files := readArchive(t, archive)
	require.Len(t, files, 1)
	assert.Empty(t, files["SUMMARY.txt"])
	assert.Zero(t, report.MediaTotal)
	assert.Zero(t, report.MediaExported)
	assert.Empty(t, report.Failures)
}

func TestExportService_ExportToFolder(t *testing.T) {
	ctx := context.Background()
	fetcher := newFakeFetcher()
	memories := exportFixture(fetcher)
	drive := &fakeDrive{}
	svc := NewExportService(fetcher, drive, testLogger, 2)

	result, err := svc.ExportToFolder(ctx, "token-abc", "Ana & Leo", memories)
	require.NoError(t, err)

	assert.Equal(t, "folder-1", result.FolderID)
	assert.Equal(t, "https://drive.example.com/folder-1", result.FolderLink)
	require.Equal(t, []string{"Memoir - Ana & Leo"}, drive.folders)

	names := drive.fileNames()
	require.Len(t, names, 2)
	assert.Contains(t, names, "Ana & Leo - Summary.txt")

	var media driveFile
	for _, f := range drive.files {
		if f.name != "Ana & Leo - Summary.txt" {
			media = f
		} else {
			assert.Equal(t, "text/plain", f.mimeType)
			assert.Contains(t, string(f.data), "Memory #3")
		}
		assert.Equal(t, "folder-1", f.parentID)
	}
	// Image file named after the sender and creation instant.
	wantName := fmt.Sprintf("Guest-%d.jpg", memories[1].CreatedAt.UnixMilli())
	assert.Equal(t, wantName, media.name)
	assert.Equal(t, "image/jpeg", media.mimeType)
	assert.Equal(t, []byte("jpeg-bytes"), media.data)

	report := result.Report
	assert.Equal(t, 2, report.MediaTotal)
	assert.Equal(t, 1, report.MediaExported)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "Tom", report.Failures[0].SenderName)
}

func TestExportService_ExportToFolder_MissingToken(t *testing.T) {
	drive := &fakeDrive{}
	svc := NewExportService(newFakeFetcher(), drive, testLogger, 2)

	_, err := svc.ExportToFolder(context.Background(), "   ", "Ana & Leo", nil)
	require.ErrorIs(t, err, domain.ErrMissingCredential)
	assert.Empty(t, drive.folders)
}

func TestExportService_ExportToFolder_FolderCreationFatal(t *testing.T) {
	fetcher := newFakeFetcher()
	memories := exportFixture(fetcher)
	drive := &fakeDrive{folderErr: errors.New("quota exceeded")}
	svc := NewExportService(fetcher, drive, testLogger, 2)

	_, err := svc.ExportToFolder(context.Background(), "token-abc", "Ana & Leo", memories)
	require.ErrorContains(t, err, "create folder")
	assert.Zero(t, fetcher.calls, "no per-item work after fatal folder failure")
}

func TestExportService_ExportToFolder_UploadFailureRecorded(t *testing.T) {
	fetcher := newFakeFetcher()
	memories := exportFixture(fetcher)
	mediaName := fmt.Sprintf("Guest-%d.jpg", memories[1].CreatedAt.UnixMilli())
	drive := &fakeDrive{fileErrs: map[string]error{mediaName: errors.New("upload refused")}}
	svc := NewExportService(fetcher, drive, testLogger, 2)

	result, err := svc.ExportToFolder(context.Background(), "token-abc", "Ana & Leo", memories)
	require.NoError(t, err)

	report := result.Report
	assert.Zero(t, report.MediaExported)
	require.Len(t, report.Failures, 2)
	senders := []string{report.Failures[0].SenderName, report.Failures[1].SenderName}
	assert.ElementsMatch(t, []string{"Guest", "Tom"}, senders)
}

func TestExportService_VideoFolderFileName(t *testing.T) {
	created := time.Date(2026, 6, 14, 12, 0, 0, 0, time.UTC)
	m := &domain.Memory{
		SenderName: "Tom", MediaURL: strPtr("https://x/clip.mp4"),
		MediaType: domain.MediaVideo, CreatedAt: created,
	}
	name, mime := folderFileName(m)
	assert.Equal(t, fmt.Sprintf("Tom-%d.mp4", created.UnixMilli()), name)
	assert.Equal(t, "video/mp4", mime)
}

func TestArchiveFileName(t *testing.T) {
	tests := []struct {
		name string
		m    *domain.Memory
		want string
	}{
		{
			name: "url tail",
			m:    &domain.Memory{ID: "m-1", MediaURL: strPtr("https://cdn.example.com/a/b/photo.jpg")},
			want: "photo.jpg",
		},
		{
			name: "trailing slash falls back",
			m:    &domain.Memory{ID: "m-2", MediaURL: strPtr("https://cdn.example.com/a/")},
			want: "a",
		},
		{
			name: "no usable tail falls back to id",
			m:    &domain.Memory{ID: "m-3", MediaURL: strPtr("/")},
			want: "memory_m-3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, archiveFileName(tt.m))
		})
	}
}

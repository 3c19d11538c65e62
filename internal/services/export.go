package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"memoir/internal/domain"
)

// DefaultExportWorkers bounds concurrent media fetches per export batch.
const DefaultExportWorkers = 4

const (
	summaryFileName  = "SUMMARY.txt"
	archiveMediaDir  = "memories"
	folderNamePrefix = "Memoir - "
)

type exportService struct {
	fetcher domain.MediaFetcher
	drive   domain.DriveClient
	logger  *slog.Logger
	workers int
}

// NewExportService returns the ExportService. workers bounds how many media
// objects are fetched (and, for folder exports, uploaded) at once; values
// below 1 fall back to DefaultExportWorkers.
func NewExportService(fetcher domain.MediaFetcher, drive domain.DriveClient, logger *slog.Logger, workers int) domain.ExportService {
	if workers < 1 {
		workers = DefaultExportWorkers
	}
	return &exportService{
		fetcher: fetcher,
		drive:   drive,
		logger:  logger,
		workers: workers,
	}
}

// ExportArchive builds a zip containing the summary document plus one file
// per memory whose media could be fetched. Fetches run on the worker pool;
// the zip itself is written sequentially afterwards because the archive
// writer is not safe for concurrent use. A single memory's fetch failure is
// recorded in the report and does not abort the batch.
func (s *exportService) ExportArchive(ctx context.Context, eventName string, memories []*domain.Memory) ([]byte, *domain.ExportReport, error) {
	jobID := uuid.NewString()
	report := &domain.ExportReport{}

	s.logger.InfoContext(ctx, "archive export started",
		"job_id", jobID, "event", eventName, "memories", len(memories))

	fetched := s.fetchAll(ctx, memories, report)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create(summaryFileName)
	if err != nil {
		return nil, nil, fmt.Errorf("write summary: %w", err)
	}
	if _, err := w.Write([]byte(buildSummary(memories))); err != nil {
		return nil, nil, fmt.Errorf("write summary: %w", err)
	}

	for i, m := range memories {
		if fetched[i] == nil {
			continue
		}
		name := fmt.Sprintf("%s/%s", archiveMediaDir, archiveFileName(m))
		w, err := zw.Create(name)
		if err != nil {
			recordFailure(report, m, fmt.Errorf("write archive entry: %w", err))
			continue
		}
		if _, err := w.Write(fetched[i]); err != nil {
			recordFailure(report, m, fmt.Errorf("write archive entry: %w", err))
			continue
		}
		report.MediaExported++
	}

	if err := zw.Close(); err != nil {
		return nil, nil, fmt.Errorf("close archive: %w", err)
	}

	s.logger.InfoContext(ctx, "archive export finished",
		"job_id", jobID, "media_total", report.MediaTotal,
		"media_exported", report.MediaExported, "failures", len(report.Failures))

	return buf.Bytes(), report, nil
}

// ExportToFolder creates a remote folder, uploads the summary document, and
// then uploads each memory's media. Folder creation failure is fatal and is
// reported before any per-item work; per-item fetch/upload failures are
// recorded and skipped. Uploads are independent remote creates, so each
// worker fetches and uploads its own items.
func (s *exportService) ExportToFolder(ctx context.Context, accessToken, eventName string, memories []*domain.Memory) (*domain.FolderExport, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, domain.ErrMissingCredential
	}

	jobID := uuid.NewString()
	report := &domain.ExportReport{}

	s.logger.InfoContext(ctx, "folder export started",
		"job_id", jobID, "event", eventName, "memories", len(memories))

	folder, err := s.drive.CreateFolder(ctx, accessToken, folderNamePrefix+eventName)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}

	summaryName := fmt.Sprintf("%s - Summary.txt", eventName)
	if err := s.drive.CreateFile(ctx, accessToken, folder.ID, summaryName, "text/plain", []byte(buildSummary(memories))); err != nil {
		return nil, fmt.Errorf("upload summary: %w", err)
	}

	var mu sync.Mutex
	s.forEachMedia(ctx, memories, func(ctx context.Context, _ int, m *domain.Memory) error {
		data, err := s.fetcher.Fetch(ctx, *m.MediaURL)
		if err != nil {
			return fmt.Errorf("fetch media: %w", err)
		}
		name, mimeType := folderFileName(m)
		if err := s.drive.CreateFile(ctx, accessToken, folder.ID, name, mimeType, data); err != nil {
			return fmt.Errorf("upload media: %w", err)
		}
		mu.Lock()
		report.MediaExported++
		mu.Unlock()
		return nil
	}, func(m *domain.Memory, err error) {
		mu.Lock()
		recordFailure(report, m, err)
		mu.Unlock()
	})
	report.MediaTotal = countMedia(memories)

	s.logger.InfoContext(ctx, "folder export finished",
		"job_id", jobID, "folder_id", folder.ID, "media_total", report.MediaTotal,
		"media_exported", report.MediaExported, "failures", len(report.Failures))

	return &domain.FolderExport{
		FolderID:   folder.ID,
		FolderLink: folder.Link,
		Report:     report,
	}, nil
}

// fetchAll fetches every referenced media object on the worker pool and
// returns the bytes aligned with the input slice; entries stay nil for
// memories without media or whose fetch failed (recorded in the report).
func (s *exportService) fetchAll(ctx context.Context, memories []*domain.Memory, report *domain.ExportReport) [][]byte {
	fetched := make([][]byte, len(memories))
	var mu sync.Mutex
	s.forEachMedia(ctx, memories, func(ctx context.Context, i int, m *domain.Memory) error {
		data, err := s.fetcher.Fetch(ctx, *m.MediaURL)
		if err != nil {
			return fmt.Errorf("fetch media: %w", err)
		}
		fetched[i] = data
		return nil
	}, func(m *domain.Memory, err error) {
		mu.Lock()
		recordFailure(report, m, err)
		mu.Unlock()
	})
	report.MediaTotal = countMedia(memories)
	return fetched
}

// forEachMedia runs fn for every memory with a media reference, at most
// s.workers at a time. Cancellation of ctx abandons items not yet started;
// failures go to onErr and never stop the remaining items.
func (s *exportService) forEachMedia(ctx context.Context, memories []*domain.Memory, fn func(ctx context.Context, i int, m *domain.Memory) error, onErr func(m *domain.Memory, err error)) {
	type job struct {
		i int
		m *domain.Memory
	}
	jobs := make(chan job)
	var wg sync.WaitGroup

	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if err := ctx.Err(); err != nil {
					onErr(j.m, err)
					continue
				}
				if err := fn(ctx, j.i, j.m); err != nil {
					onErr(j.m, err)
				}
			}
		}()
	}

	for i, m := range memories {
		if m.MediaURL == nil {
			continue
		}
		jobs <- job{i: i, m: m}
	}
	close(jobs)
	wg.Wait()
}

func countMedia(memories []*domain.Memory) int {
	n := 0
	for _, m := range memories {
		if m.MediaURL != nil {
			n++
		}
	}
	return n
}

func recordFailure(report *domain.ExportReport, m *domain.Memory, err error) {
	report.Failures = append(report.Failures, domain.ExportFailure{
		SenderName: senderOrDefault(m),
		Reason:     err.Error(),
	})
}

func senderOrDefault(m *domain.Memory) string {
	if strings.TrimSpace(m.SenderName) == "" {
		return domain.DefaultSenderName
	}
	return m.SenderName
}

// buildSummary renders the summary document: one block per memory in the
// given order, which is the list's reverse-chronological order. Per-item
// media failures never change this listing.
func buildSummary(memories []*domain.Memory) string {
	var b strings.Builder
	for i, m := range memories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Memory #%d\n", i+1)
		b.WriteString(strings.Repeat("-", 50))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Name: %s\n", senderOrDefault(m))
		fmt.Fprintf(&b, "Date: %s\n", m.CreatedAt.Format("2006-01-02"))
		fmt.Fprintf(&b, "Message: %s\n", m.Message)
		if m.MediaURL != nil {
			fmt.Fprintf(&b, "Media: Yes - %s\n", m.MediaType)
		} else {
			b.WriteString("Media: None\n")
		}
	}
	return b.String()
}

// archiveFileName reuses the tail segment of the media URL, falling back to
// a name derived from the memory ID when the URL has no usable tail.
func archiveFileName(m *domain.Memory) string {
	url := *m.MediaURL
	url = strings.TrimSuffix(url, "/")
	if i := strings.LastIndex(url, "/"); i >= 0 {
		url = url[i+1:]
	}
	if url == "" {
		return fmt.Sprintf("memory_%s", m.ID)
	}
	return url
}

// folderFileName synthesizes the cloud file name and mime type from the
// sender, creation time, and media classification.
func folderFileName(m *domain.Memory) (name, mimeType string) {
	ext, mime := ".jpg", "image/jpeg"
	if m.MediaType == domain.MediaVideo {
		ext, mime = ".mp4", "video/mp4"
	}
	return fmt.Sprintf("%s-%d%s", senderOrDefault(m), m.CreatedAt.UnixMilli(), ext), mime
}

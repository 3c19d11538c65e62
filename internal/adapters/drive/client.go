package drive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"memoir/internal/domain"
)

// DefaultAPIBase is the Google Drive v3 endpoint. Tests point APIBase at a
// local server instead.
const DefaultAPIBase = "https://www.googleapis.com"

const folderMimeType = "application/vnd.google-apps.folder"

type driveClient struct {
	client  *http.Client
	apiBase string
}

// NewClient returns a DriveClient that talks to the Google Drive v3 REST API
// with a caller-supplied bearer token. apiBase may be empty for the real API.
func NewClient(client *http.Client, apiBase string) domain.DriveClient {
	if client == nil {
		client = http.DefaultClient
	}
	if apiBase == "" {
		apiBase = DefaultAPIBase
	}
	return &driveClient{client: client, apiBase: strings.TrimSuffix(apiBase, "/")}
}

type fileMetadata struct {
	Name     string   `json:"name"`
	MimeType string   `json:"mimeType,omitempty"`
	Parents  []string `json:"parents,omitempty"`
}

type fileResource struct {
	ID          string `json:"id"`
	WebViewLink string `json:"webViewLink"`
}

func (c *driveClient) CreateFolder(ctx context.Context, accessToken, name string) (*domain.Folder, error) {
	body, err := json.Marshal(fileMetadata{Name: name, MimeType: folderMimeType})
	if err != nil {
		return nil, fmt.Errorf("failed to encode folder metadata: %w", err)
	}

	url := c.apiBase + "/drive/v3/files?fields=id,webViewLink"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("drive api returned status: %d", resp.StatusCode)
	}
	var res fileResource
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("failed to decode drive response: %w", err)
	}
	return &domain.Folder{ID: res.ID, Link: res.WebViewLink}, nil
}

// CreateFile uploads one file into parentID using the multipart upload form:
// a JSON metadata part followed by the media part.
func (c *driveClient) CreateFile(ctx context.Context, accessToken, parentID, name, mimeType string, data []byte) error {
	meta, err := json.Marshal(fileMetadata{Name: name, Parents: []string{parentID}})
	if err != nil {
		return fmt.Errorf("failed to encode file metadata: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	part, err := mw.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("failed to create metadata part: %w", err)
	}
	if _, err := part.Write(meta); err != nil {
		return fmt.Errorf("failed to write metadata part: %w", err)
	}

	mediaHeader := textproto.MIMEHeader{}
	if mimeType != "" {
		mediaHeader.Set("Content-Type", mimeType)
	}
	part, err = mw.CreatePart(mediaHeader)
	if err != nil {
		return fmt.Errorf("failed to create media part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write media part: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	url := c.apiBase + "/upload/drive/v3/files?uploadType=multipart"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "multipart/related; boundary="+mw.Boundary())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("drive api returned status: %d", resp.StatusCode)
	}
	return nil
}

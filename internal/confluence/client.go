package confluence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/gabesw/confluence-readme-sync/internal/models"
)

// DefaultVersionMessage is recorded on every page version written by the sync
const DefaultVersionMessage = "Page updated automatically by confluence-readme-sync GitHub action"

// Client talks to the Confluence Cloud REST API of one site
type Client struct {
	BaseURL    string
	Username   string
	Token      string
	httpClient *http.Client
}

// NewClient creates a client for https://{domain} authenticating with an
// account email and API token
func NewClient(domain, username, token string) *Client {
	return &Client{
		BaseURL:  "https://" + domain,
		Username: username,
		Token:    token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL points the client at another server, e.g. a test server
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.BaseURL = baseURL
	return c
}

type storageValue struct {
	Representation string `json:"representation,omitempty"`
	Value          string `json:"value"`
}

type pageVersion struct {
	Number  int    `json:"number"`
	Message string `json:"message,omitempty"`
}

type pageResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Title  string `json:"title"`
	Body   struct {
		Storage storageValue `json:"storage"`
	} `json:"body"`
	Version pageVersion `json:"version"`
}

type updatePageRequest struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Title   string       `json:"title"`
	Body    storageValue `json:"body"`
	Version pageVersion  `json:"version"`
}

// GetPage fetches a page with its body in storage format
func (c *Client) GetPage(ctx context.Context, pageID string) (*models.Page, error) {
	pageURL := fmt.Sprintf("%s/wiki/api/v2/pages/%s?body-format=storage", c.BaseURL, url.PathEscape(pageID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create page request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.Username, c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("confluence API returned status %d: %s", resp.StatusCode, string(body))
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode page response: %w", err)
	}

	id := page.ID
	if id == "" {
		id = pageID
	}

	return &models.Page{
		ID:      id,
		Status:  page.Status,
		Title:   page.Title,
		Body:    page.Body.Storage.Value,
		Version: page.Version.Number,
	}, nil
}

// UpdatePage writes page back as the version after page.Version. Confluence
// rejects the write when the page changed in the meantime.
func (c *Client) UpdatePage(ctx context.Context, page *models.Page, message string) error {
	payload, err := json.Marshal(updatePageRequest{
		ID:     page.ID,
		Status: page.Status,
		Title:  page.Title,
		Body: storageValue{
			Representation: "storage",
			Value:          page.Body,
		},
		Version: pageVersion{
			Number:  page.Version + 1,
			Message: message,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to encode page update: %w", err)
	}

	pageURL := fmt.Sprintf("%s/wiki/api/v2/pages/%s", c.BaseURL, url.PathEscape(page.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, pageURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Username, c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("confluence API returned status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// UploadAttachment adds filename to the page, replacing an attachment of the
// same name. It returns the HTTP status of the response; err is only set when
// no response was received.
func (c *Client) UploadAttachment(ctx context.Context, pageID, filename string, content io.Reader, comment string) (int, error) {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return 0, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return 0, fmt.Errorf("failed to read attachment content: %w", err)
	}
	if comment != "" {
		if err := form.WriteField("comment", comment); err != nil {
			return 0, fmt.Errorf("failed to write comment field: %w", err)
		}
	}
	if err := form.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/wiki/rest/api/content/%s/child/attachment", c.BaseURL, url.PathEscape(pageID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, &body)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("X-Atlassian-Token", "nocheck")
	req.SetBasicAuth(c.Username, c.Token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to upload attachment: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

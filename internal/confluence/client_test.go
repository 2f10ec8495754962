package confluence

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabesw/confluence-readme-sync/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient("example.atlassian.net", "user@example.com", "api_token").WithBaseURL(srv.URL)
}

func TestNewClient(t *testing.T) {
	c := NewClient("example.atlassian.net", "user", "token")
	assert.Equal(t, "https://example.atlassian.net", c.BaseURL)
	assert.Equal(t, "user", c.Username)
	assert.Equal(t, "token", c.Token)
}

func TestGetPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/wiki/api/v2/pages/12345", r.URL.Path)
		assert.Equal(t, "storage", r.URL.Query().Get("body-format"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user@example.com", user)
		assert.Equal(t, "api_token", pass)

		_, _ = w.Write([]byte(`{"id":"12345","status":"current","title":"Readme","body":{"storage":{"value":"<p>hi</p>","representation":"storage"}},"version":{"number":7}}`))
	})

	page, err := c.GetPage(context.Background(), "12345")
	require.NoError(t, err)
	assert.Equal(t, &models.Page{
		ID:      "12345",
		Status:  "current",
		Title:   "Readme",
		Body:    "<p>hi</p>",
		Version: 7,
	}, page)
}

func TestGetPageErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("unauthorized"))
	})

	_, err := c.GetPage(context.Background(), "12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "unauthorized")
}

func TestUpdatePage(t *testing.T) {
	var got updatePageRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/wiki/api/v2/pages/12345", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	})

	err := c.UpdatePage(context.Background(), &models.Page{
		ID:      "12345",
		Status:  "current",
		Title:   "Readme",
		Body:    "<p>new</p>",
		Version: 7,
	}, DefaultVersionMessage)
	require.NoError(t, err)

	assert.Equal(t, "12345", got.ID)
	assert.Equal(t, "current", got.Status)
	assert.Equal(t, "Readme", got.Title)
	assert.Equal(t, "storage", got.Body.Representation)
	assert.Equal(t, "<p>new</p>", got.Body.Value)
	assert.Equal(t, 8, got.Version.Number)
	assert.Equal(t, DefaultVersionMessage, got.Version.Message)
}

func TestUpdatePageConflict(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("version mismatch"))
	})

	err := c.UpdatePage(context.Background(), &models.Page{ID: "1", Version: 1}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestUploadAttachment(t *testing.T) {
	tests := []struct {
		name        string
		comment     string
		status      int
		wantComment bool
	}{
		{name: "with comment", comment: "Test upload", status: http.StatusOK, wantComment: true},
		{name: "without comment", status: http.StatusCreated},
		{name: "forbidden", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/wiki/rest/api/content/12345/child/attachment", r.URL.Path)
				assert.Equal(t, "nocheck", r.Header.Get("X-Atlassian-Token"))
				assert.Equal(t, "application/json", r.Header.Get("Accept"))

				require.NoError(t, r.ParseMultipartForm(1<<20))
				file, header, err := r.FormFile("file")
				require.NoError(t, err)
				defer file.Close()
				content, _ := io.ReadAll(file)

				assert.Equal(t, "test_image.png", header.Filename)
				assert.Equal(t, "fake image content", string(content))

				_, hasComment := r.MultipartForm.Value["comment"]
				assert.Equal(t, tt.wantComment, hasComment)
				if tt.wantComment {
					assert.Equal(t, tt.comment, r.FormValue("comment"))
				}

				w.WriteHeader(tt.status)
			})

			status, err := c.UploadAttachment(context.Background(), "12345", "test_image.png", strings.NewReader("fake image content"), tt.comment)
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestUploadAttachmentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient("example.atlassian.net", "u", "t").WithBaseURL(srv.URL)
	_, err := c.UploadAttachment(context.Background(), "1", "a.png", strings.NewReader("x"), "")
	assert.Error(t, err)
}

// Package ipfs implements the transfer capability against the IPFS HTTP
// API (/api/v0/add), the backend the deployed network runs.
package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/oklog/ulid/v2"

	"github.com/socialx/socialx-go/internal/transfer"
)

var _ transfer.Transfer = (*Client)(nil)

// Client talks to an IPFS node's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient points at an IPFS API endpoint, e.g. "http://127.0.0.1:5001".
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// Upload posts the file as multipart form data to /api/v0/add and returns
// the node's add response verbatim.
func (c *Client) Upload(ctx context.Context, localPath string, onStart transfer.StartFunc, onProgress transfer.ProgressFunc) (*transfer.Result, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	uploadID := ulid.Make().String()
	if onStart != nil {
		onStart(uploadID)
	}

	// Buffer the multipart body so progress tracks file bytes, not
	// chunked transfer framing.
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filepath.Base(localPath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, transfer.NewProgressReader(f, info.Size(), uploadID, onProgress)); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v0/add", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("add request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read add response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("add request failed: status %d", resp.StatusCode)
	}

	// sanity check the response shape before handing it back
	var addResp transfer.AddResponse
	if err := json.Unmarshal(body, &addResp); err != nil {
		return nil, fmt.Errorf("unexpected add response: %w", err)
	}

	return &transfer.Result{UploadID: uploadID, ResponseBody: body}, nil
}

// Package transfer defines the file-transfer capability used for binary
// payloads (avatar images). A transfer yields an upload id as soon as the
// backend accepts it, reports progress while bytes move, and returns a
// JSON response body carrying the content hash.
package transfer

import "context"

// StartFunc is invoked once, as soon as the backend assigns an upload id.
type StartFunc func(uploadID string)

// ProgressFunc is invoked on every progress step with a 0–99 percentage.
type ProgressFunc func(uploadID string, progress int)

// Result is the final response of a transfer. ResponseBody is a JSON
// object containing at least a "Hash" field.
type Result struct {
	UploadID     string
	ResponseBody []byte
}

// AddResponse is the response body shape shared by the transfer backends:
// the IPFS add response, which the MinIO backend mirrors.
type AddResponse struct {
	Name string `json:"Name"`
	Hash string `json:"Hash"`
	Size string `json:"Size"`
}

// Transfer uploads local files to the content-addressed storage backend.
type Transfer interface {
	Upload(ctx context.Context, localPath string, onStart StartFunc, onProgress ProgressFunc) (*Result, error)
}

package uploads

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/socialx/socialx-go/internal/common"
	"github.com/socialx/socialx-go/internal/transfer"
)

// Run drives one file through the three-phase upload protocol and returns
// its content hash:
//
//  1. bootstrap: the backend accepts the transfer and assigns an upload
//     id; a zero-progress record is written.
//  2. progress: every callback overwrites the record with the new
//     percentage.
//  3. completion: the response body's Hash is recorded with progress 100
//     and done=true.
//
// The function only returns after phase 3 has been written, so callers
// may safely issue the follow-up entity update as soon as Run returns.
// If Tracker.Abort cancels the transfer, Run returns
// common.ErrUploadAborted and the record stays in its aborted state.
func Run(ctx context.Context, tr transfer.Transfer, t *Tracker, path string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	t.track(path, cancel)
	defer t.untrack(path)

	onStart := func(uploadID string) {
		t.Set(Status{Path: path, UploadID: uploadID, Progress: 0})
	}
	onProgress := func(uploadID string, progress int) {
		t.Set(Status{Path: path, UploadID: uploadID, Progress: progress})
	}

	res, err := tr.Upload(ctx, path, onStart, onProgress)
	if err != nil {
		if t.aborting(path) {
			return "", common.ErrUploadAborted
		}
		return "", err
	}

	var addResp transfer.AddResponse
	if err := json.Unmarshal(res.ResponseBody, &addResp); err != nil {
		return "", fmt.Errorf("malformed upload response: %w", err)
	}

	t.Set(Status{
		Path:     path,
		UploadID: res.UploadID,
		Progress: 100,
		Done:     true,
		Hash:     addResp.Hash,
	})
	return addResp.Hash, nil
}

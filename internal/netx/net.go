// Package netx moves attachment bodies to and from object storage through
// presigned URLs.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 5 * time.Minute}

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 1 << 10

// UploadToS3PresignedURL PUTs data to a presigned upload URL.
func UploadToS3PresignedURL(ctx context.Context, url string, data []byte) error {
	resp, err := send(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}
	return resp.Body.Close()
}

// DownloadFromS3PresignedURL GETs the object behind a presigned download URL.
func DownloadFromS3PresignedURL(ctx context.Context, url string) ([]byte, error) {
	resp, err := send(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// send performs the request and turns any non-200 reply into an error. On
// success the caller owns resp.Body.
func send(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/octet-stream")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%s: %s", resp.Status, bytes.TrimSpace(msg))
	}
	return resp, nil
}

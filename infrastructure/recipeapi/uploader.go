package recipeapi

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
	"strings"

	"go.uber.org/zap"

	pkgerrors "cookbook/pkg/errors"
)

// Upload pushes a device-local media file to the remote media host and
// returns the resolved secure URL. Supported local references are bare paths
// and file:// URIs. A failed upload has no side effect on any recipe record.
func (c *Client) Upload(ctx context.Context, localURI string) (string, error) {
	path := localPath(localURI)
	if path == "" {
		return "", pkgerrors.NewValidationError(fmt.Sprintf("unsupported local media reference %q", localURI))
	}

	file, err := os.Open(path)
	if err != nil {
		return "", pkgerrors.NewNetworkError("failed to read local media", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", pkgerrors.NewInternalError("failed to build upload form").WithCause(err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", pkgerrors.NewNetworkError("failed to read local media", err)
	}
	if err := writer.Close(); err != nil {
		return "", pkgerrors.NewInternalError("failed to finalize upload form").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", pkgerrors.NewInternalError("failed to build upload request").WithCause(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(req)

	raw, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("upload: unexpected status %d", resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		c.logger.Warn("media upload failed",
			zap.String("localUri", localURI),
			zap.Error(err),
		)
		return "", pkgerrors.NewNetworkError("media upload failed", err)
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw.([]byte), &result); err != nil || result.URL == "" {
		return "", pkgerrors.NewNetworkError("media host returned no URL", err)
	}
	return result.URL, nil
}

// localPath maps a local media reference onto a filesystem path. Returns ""
// for schemes that cannot be read from this process.
func localPath(uri string) string {
	uri = strings.TrimSpace(uri)
	if strings.HasPrefix(strings.ToLower(uri), "file://") {
		return uri[len("file://"):]
	}
	if strings.Contains(uri, "://") {
		return ""
	}
	return uri
}

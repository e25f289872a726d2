// Package netx contains small networking helpers shared by the client.
package netx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
)

// UploadToPresignedURL PUTs data to a presigned object-storage URL. The
// server hands out these URLs for avatar uploads; the image bytes never
// pass through the chat API itself.
func UploadToPresignedURL(url, contentType string, data []byte) error {
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

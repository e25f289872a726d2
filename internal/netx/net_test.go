package netx

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadToPresignedURL(t *testing.T) {
	img := []byte("not-really-a-png")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT string
		var gotMethod string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			body, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			gotBody = body
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		err := UploadToPresignedURL(ts.URL+"/avatars/presigned?X-Amz-Signature=abc", "image/png", img)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPut {
			t.Fatalf("method = %q, want PUT", gotMethod)
		}
		if gotCT != "image/png" {
			t.Fatalf("Content-Type = %q, want image/png", gotCT)
		}
		if !bytes.Equal(gotBody, img) {
			t.Fatalf("body = %q, want %q", string(gotBody), string(img))
		}
	})

	t.Run("empty content type defaults to octet-stream", func(t *testing.T) {
		var gotCT string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotCT = r.Header.Get("Content-Type")
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		if err := UploadToPresignedURL(ts.URL, "", img); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotCT != "application/octet-stream" {
			t.Fatalf("Content-Type = %q, want application/octet-stream", gotCT)
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden) // 403
		}))
		defer ts.Close()

		err := UploadToPresignedURL(ts.URL, "image/png", img)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "upload failed: 403") {
			t.Fatalf("error = %q, want to contain 403", err.Error())
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToPresignedURL(ts.URL, "image/png", img)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !isNetOpError(err) {
			if strings.Contains(err.Error(), "upload failed") {
				t.Fatalf("got wrong kind of error: %v", err)
			}
		}
	})
}

type netOpErrorLike interface {
	error
	Timeout() bool
	Temporary() bool
}

func isNetOpError(err error) bool {
	var target netOpErrorLike
	return errors.As(err, &target)
}

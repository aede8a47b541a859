// Package uploader is a thin client for the external resume host.  The host
// speaks the Cloudinary unsigned raw-upload protocol: a multipart POST with
// the file, an upload preset and a folder, answered with a stable delivery
// URL plus a public identifier, or a JSON error carrying a human-readable
// message.  Enforcement of type and size limits happens in the submission
// flow before this client is ever called; the client itself transfers
// whatever it is given in a single attempt with no retries.
package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// File is the attachment handed to Upload.  Content is read exactly once.
type File struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// Result is the host's answer to a successful upload.  SecureURL is the
// stable retrievable URL stored on the application record; PublicID is the
// host-side identifier kept alongside it.
type Result struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

// HostError is a failure reported by the upload host itself, as opposed to
// a transport failure.  The message is surfaced to the end user so they can
// distinguish "couldn't upload your file" causes.
type HostError struct {
	StatusCode int
	Message    string
}

func (e *HostError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upload host rejected file: %s", e.Message)
	}
	return fmt.Sprintf("upload host rejected file: status %d", e.StatusCode)
}

// Client posts resumes to the external host.
type Client struct {
	endpoint string
	preset   string
	folder   string
	trusted  string
	hc       *http.Client
}

// New builds a Client for the given raw-upload endpoint.  trustedHost is
// the delivery URL prefix that stored resume URLs must live on.
func New(endpoint, preset, folder, trustedHost string) *Client {
	return &Client{
		endpoint: endpoint,
		preset:   preset,
		folder:   folder,
		trusted:  trustedHost,
		hc:       &http.Client{Timeout: 60 * time.Second},
	}
}

// Upload performs a single multipart upload attempt and returns the host's
// answer.  Any non-2xx response is decoded into a HostError when the body
// carries the host's error shape; transport errors come back as-is.
func (c *Client) Upload(ctx context.Context, f File) (Result, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", f.Name)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("upload_preset", c.preset); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("folder", c.folder); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, pr)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, &HostError{StatusCode: resp.StatusCode, Message: decodeHostMessage(body)}
	}

	var out Result
	if err := json.Unmarshal(body, &out); err != nil {
		return Result{}, fmt.Errorf("decode upload response: %w", err)
	}
	if out.SecureURL == "" {
		return Result{}, &HostError{StatusCode: resp.StatusCode, Message: "response missing secure_url"}
	}
	return out, nil
}

// decodeHostMessage pulls the nested error message out of the host's error
// body: {"error": {"message": "..."}}.
func decodeHostMessage(body []byte) string {
	var e struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	return e.Error.Message
}

// Trusted reports whether url points at the configured delivery host.  An
// application record never stores a resume URL this returns false for.
func (c *Client) Trusted(url string) bool {
	return url != "" && strings.HasPrefix(url, c.trusted)
}

// DownloadURL derives the forced-download variant of a delivery URL by the
// host's deterministic path transformation.  URLs without the raw upload
// segment are returned unchanged.
func DownloadURL(url string) string {
	return strings.Replace(url, "/raw/upload/", "/raw/upload/fl_attachment/", 1)
}

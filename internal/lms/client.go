// internal/lms/client.go
//
// Client for the external Lead Management System. One form POST per call,
// no retries, no queueing; in-flight suppression is the caller's job via
// the session's submitting flag.

package lms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrSubmitFailed wraps every transport or HTTP failure so callers can
// branch without caring which layer broke. The user-facing copy lives in
// the renderer, not here.
var ErrSubmitFailed = errors.New("lms: submission failed")

// Payload is one lead or booking submission. Summary distinguishes the two
// intake shapes the LMS accepts: the welcome-screen lead carries a summary
// and callback parameters, the booking form carries plain date/time fields.
type Payload struct {
	Name    string
	Mobile  string // 10-digit string, pre-validated
	Date    string // 2006-01-02
	Time    string // 15:04
	Summary string // welcome-screen flow only
}

func (p Payload) values() url.Values {
	v := url.Values{}
	v.Set("name", p.Name)
	v.Set("mobile_no", p.Mobile)
	if p.Summary != "" {
		v.Set("param19", p.Date)
		v.Set("param23", p.Time)
		v.Set("summary_dtls", p.Summary)
	} else {
		v.Set("date", p.Date)
		v.Set("time", p.Time)
	}
	return v
}

// Client performs submissions against a fixed endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient builds a client for the given endpoint. timeout bounds the
// whole round trip of a single Submit.
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// Submit posts the payload and normalizes the outcome: nil on a 2xx
// response, an error wrapping ErrSubmitFailed otherwise. At most one
// attempt per call.
func (c *Client) Submit(ctx context.Context, p Payload) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(p.values().Encode()))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrSubmitFailed, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	defer resp.Body.Close()
	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: lms responded %s", ErrSubmitFailed, resp.Status)
	}
	return nil
}

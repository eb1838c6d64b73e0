package common

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Shared client for all outbound gateway calls. Every call is bounded by
// the same timeout; there is no per-request context plumbing because the
// whole flow is synchronous.
var httpClient = &http.Client{Timeout: 30 * time.Second}

// SetTimeout adjusts the shared client timeout (configured once at startup).
func SetTimeout(d time.Duration) {
	if d > 0 {
		httpClient.Timeout = d
	}
}

// PostJSON sends a POST request with a JSON body and returns the raw
// response body and HTTP status code.
func PostJSON(url string, payload interface{}, headers map[string]string) ([]byte, int, error) {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(req)
}

// PostForm sends a POST request with an x-www-form-urlencoded body.
func PostForm(urlStr string, data url.Values, headers map[string]string) ([]byte, int, error) {
	req, err := http.NewRequest("POST", urlStr, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, 0, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(req)
}

// Get sends a GET request and returns the raw response body and status code.
func Get(url string, headers map[string]string) ([]byte, int, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, 0, err
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return do(req)
}

func do(req *http.Request) ([]byte, int, error) {
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}

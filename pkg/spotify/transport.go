package spotify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
)

// apiErrorBody is the structured error shape the Web API returns.
type apiErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// get issues an authenticated GET against the Web API and decodes the
// JSON response into v.
//
// Every failure is returned as a *Error. No retries and no backoff:
// each failure is terminal for the call, and timeouts are left to the
// injected http.Client. Context cancellation is honored through the
// request.
func (c *Client) get(ctx context.Context, path string, query url.Values, token string, v interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to create request", cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "vybrato/1.0")

	c.logDebugf("spotify: GET %s", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "request failed", cause: err}
	}

	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to read response", cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode, body)
		c.logDebugf("spotify: GET %s failed: %v", path, apiErr)
		return apiErr
	}

	if v != nil {
		if err := json.Unmarshal(body, v); err != nil {
			return &Error{
				Kind:    KindMalformed,
				Status:  resp.StatusCode,
				Message: "unexpected response shape",
				cause:   err,
			}
		}
	}

	c.logDebugf("spotify: GET %s succeeded", path)
	return nil
}

// newStatusError maps a non-2xx response to a typed error. The message
// comes from the structured error body when parseable, otherwise the
// HTTP status text.
func newStatusError(status int, body []byte) *Error {
	message := http.StatusText(status)

	var parsed apiErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	kind := KindUpstream
	switch status {
	case http.StatusUnauthorized:
		kind = KindUnauthorized
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}

	return &Error{Kind: kind, Status: status, Message: message}
}

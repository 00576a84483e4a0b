package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// Response is a successful API response
type Response struct {
	StatusCode int
	Body       any            // the decoded response body, unchanged (a Payload for JSON objects)
	Payload    Payload        // the fields of Body when it is an object, otherwise empty
	Cookies    []*http.Cookie // cookies set by the API, e.g the session cookie after a login
}

// Do sends a POST request with a JSON body to <origin>/api<path>.
//
// body is marshaled to JSON, a nil body is sent as {}.
// Cookies stored in ctx with ContextWithCredentials are forwarded to the API.
//
// A request fails when the API responds with a non-2xx status or when the response body contains an error field.
// Failed requests return a *ClientError. Response bodies that are not valid JSON are treated as an empty object,
// bodies larger than 1MB are rejected.
//
// Each call sends exactly one request: there are no retries and no caching.
func (c *Client) Do(ctx context.Context, path string, body any) (*Response, error) {
	jsonData := []byte("{}")
	if body != nil {
		var err error
		jsonData, err = json.Marshal(body)
		if err != nil {
			return nil, NewClientInternalError(err, "marshaling request body")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(jsonData))
	if err != nil {
		return nil, NewClientInternalError(err, "creating request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if cookies, ok := ContextCredentials(ctx); ok {
		for _, cookie := range cookies {
			req.AddCookie(cookie)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewClientConnectionError(err)
	}
	defer res.Body.Close()

	// a body that cannot be read is handled the same way as one that cannot be parsed
	data, _ := io.ReadAll(io.LimitReader(res.Body, maxResponseSize+1))
	if len(data) > maxResponseSize {
		return nil, NewClientResponseTooLargeError(res.StatusCode)
	}

	decoded := parseBody(data)
	payload := payloadOf(decoded)

	if !isSuccess(res.StatusCode, payload) {
		return nil, NewClientApiError(res.StatusCode, payload)
	}

	return &Response{
		StatusCode: res.StatusCode,
		Body:       decoded,
		Payload:    payload,
		Cookies:    res.Cookies(),
	}, nil
}

// Post sends a request (see Do) and returns the decoded response body
func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	res, err := c.Do(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return res.Body, nil
}

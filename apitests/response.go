package apitests

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is what the postal-code service sent back for one request.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Elapsed     time.Duration
	Body        []byte

	// Document is the parsed body; it is only set after ParseBody succeeds.
	Document ldvalue.Value
}

func get(client *http.Client, url string) (*Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", url, err)
	}
	return &Response{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Elapsed:     time.Since(start),
		Body:        body,
	}, nil
}

// IsJSON is true if the media type is application/json or a +json type.
func (r *Response) IsJSON() bool {
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// ParseBody parses the body as JSON into Document.
func (r *Response) ParseBody() error {
	var doc ldvalue.Value
	if err := json.Unmarshal(r.Body, &doc); err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	r.Document = doc
	return nil
}

// Field returns a top-level string property of the document, or "" if it is missing or not a string.
func (r *Response) Field(name string) string {
	return r.Document.GetByKey(name).StringValue()
}

// Package api fetches CV records from the backend.
package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Zachkp/cv-site/internal/content"
)

// Failure kinds. Returned errors wrap one of these.
var (
	ErrNetwork = errors.New("network failure")
	ErrParse   = errors.New("parse failure")
)

// Collection endpoints.
const (
	PathExperiences = "/api/experiences/"
	PathEducations  = "/api/educations/"
	PathSkills      = "/api/skills/"
	PathProjects    = "/api/projects/"
	PathArticles    = "/api/articles/"
)

// Client talks to the CV backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Experiences(ctx context.Context) ([]content.Record, error) {
	return c.list(ctx, PathExperiences)
}

func (c *Client) Educations(ctx context.Context) ([]content.Record, error) {
	return c.list(ctx, PathEducations)
}

func (c *Client) Skills(ctx context.Context) ([]content.Record, error) {
	return c.list(ctx, PathSkills)
}

func (c *Client) Projects(ctx context.Context) ([]content.Record, error) {
	return c.list(ctx, PathProjects)
}

func (c *Client) Articles(ctx context.Context) ([]content.Record, error) {
	return c.list(ctx, PathArticles)
}

func (c *Client) list(ctx context.Context, path string) (records []content.Record, err error) {
	var body []byte
	body, err = c.Get(ctx, c.baseURL+path)
	if err != nil {
		return records, err
	}

	records, err = ParseRecords(body)
	if err != nil {
		err = errors.Wrapf(err, "decoding %s", path)
		return records, err
	}
	return records, err
}

// Get performs a GET and returns the body of a 2xx response.
func (c *Client) Get(ctx context.Context, url string) (body []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = errors.Wrapf(ErrNetwork, "creating request for %s: %v", url, err)
		return body, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "cv-site/1.0")

	var resp *http.Response
	resp, err = c.httpClient.Do(req)
	if err != nil {
		err = errors.Wrapf(ErrNetwork, "GET %s: %v", url, err)
		return body, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err = errors.Wrapf(ErrNetwork, "GET %s: status %d", url, resp.StatusCode)
		return body, err
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrapf(ErrNetwork, "reading %s: %v", url, err)
		return body, err
	}
	return body, nil
}

// ParseRecords decodes a JSON array of flat objects. String values are kept
// as-is, other scalars as their JSON text, nulls are dropped.
func ParseRecords(body []byte) ([]content.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.Wrap(ErrParse, "body is not valid JSON")
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, errors.Wrap(ErrParse, "expected a JSON array")
	}

	var records []content.Record
	var bad error
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			bad = errors.Wrapf(ErrParse, "expected an object, got %s", item.Type)
			return false
		}
		record := content.Record{}
		item.ForEach(func(key, value gjson.Result) bool {
			switch value.Type {
			case gjson.Null:
			case gjson.String:
				record[key.String()] = value.Str
			default:
				record[key.String()] = value.Raw
			}
			return true
		})
		records = append(records, record)
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if records == nil {
		records = []content.Record{}
	}
	return records, nil
}

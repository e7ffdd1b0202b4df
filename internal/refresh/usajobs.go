package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Posting is the slice of a Historic JOA record the pipeline reads.
type Posting struct {
	PositionTitle string        `json:"positionTitle"`
	JobCategories []jobCategory `json:"jobCategories"`
}

type jobCategory struct {
	Series flexString `json:"series"`
}

// flexString absorbs the API's habit of returning series codes as either
// strings or numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// Series returns the posting's non-empty occupational series codes.
func (p Posting) Series() []string {
	var series []string
	for _, c := range p.JobCategories {
		if s := strings.TrimSpace(string(c.Series)); s != "" {
			series = append(series, s)
		}
	}
	return series
}

type joaPage struct {
	Data   []Posting `json:"data"`
	Paging struct {
		Next     string `json:"next"`
		Metadata struct {
			ContinuationToken string `json:"continuationToken"`
		} `json:"metadata"`
	} `json:"paging"`
}

// Client fetches Historic JOA postings. The endpoint is public and needs
// no key; date-range filters bound each request to one window.
type Client struct {
	BaseURL  string
	PageSize int
	HTTP     *http.Client
}

// NewClient returns a client for the given endpoint.
func NewClient(baseURL string, pageSize int) *Client {
	return &Client{
		BaseURL:  baseURL,
		PageSize: pageSize,
		HTTP:     &http.Client{Timeout: 60 * time.Second},
	}
}

// FetchWindow retrieves every posting opened in [start, end), following
// continuation tokens until the API reports no next page.
func (c *Client) FetchWindow(ctx context.Context, start, end time.Time) ([]Posting, error) {
	var postings []Posting
	continuation := ""

	for {
		params := url.Values{}
		params.Set("StartPositionOpenDate", fmtAPIDate(start))
		params.Set("EndPositionOpenDate", fmtAPIDate(end))
		params.Set("PageSize", fmt.Sprint(c.PageSize))
		if continuation != "" {
			params.Set("ContinuationToken", continuation)
		}

		page, err := c.fetchPage(ctx, params)
		if err != nil {
			return nil, err
		}
		postings = append(postings, page.Data...)

		continuation = page.Paging.Metadata.ContinuationToken
		if page.Paging.Next == "" || continuation == "" {
			return postings, nil
		}
	}
}

func (c *Client) fetchPage(ctx context.Context, params url.Values) (*joaPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch postings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch postings: unexpected status %s", resp.Status)
	}
	var page joaPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode postings page: %w", err)
	}
	return &page, nil
}

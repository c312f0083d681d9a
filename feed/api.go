package feed

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

// APIClient fetches the JSON arrivals document for one station.
type APIClient struct {
	httpClient *http.Client
	endpoint   string
	stationID  string
	limit      int
}

// NewAPIClient creates a client. endpoint may also be a local file path.
func NewAPIClient(httpClient *http.Client, endpoint, stationID string, limit int) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &APIClient{httpClient: httpClient, endpoint: endpoint, stationID: stationID, limit: limit}
}

// URL returns the request URL including station and limit parameters.
func (c *APIClient) URL() string {
	if !strings.HasPrefix(c.endpoint, "http") {
		return c.endpoint
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return c.endpoint
	}
	q := u.Query()
	if c.stationID != "" {
		q.Set("station_id", c.stationID)
	}
	if c.limit > 0 {
		q.Set("limit", strconv.Itoa(c.limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *APIClient) FetchArrivals(ctx context.Context) ([]arrivals.Sample, error) {
	target := c.URL()
	reqID := uuid.NewString()
	body, err := fetch(ctx, c.httpClient, target, http.Header{"X-Request-Id": {reqID}})
	if err != nil {
		return nil, &FetchError{Source: target, Err: err}
	}
	samples, bad, err := arrivals.Decode(body)
	if err != nil {
		return nil, &FetchError{Source: target, Err: err}
	}
	if len(bad) > 0 {
		log.Printf("arrivals %s: skipped %d malformed records (first: %v)", reqID, len(bad), bad[0])
	}
	return samples, nil
}

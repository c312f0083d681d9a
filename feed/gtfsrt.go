package feed

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

// GTFSRTClient reads GTFS-Realtime TripUpdates feeds and extracts the
// arrivals at one parent station. Platform stops are the parent id followed
// by the direction letter ("B06N", "B06S").
type GTFSRTClient struct {
	httpClient *http.Client
	feedURLs   []string
	stationID  string
	header     http.Header

	// Now is the clock used to turn arrival epochs into minutes.
	Now func() time.Time
}

// NewGTFSRTClient creates a client over one or more feed URLs (or file paths).
func NewGTFSRTClient(httpClient *http.Client, stationID string, feedURLs ...string) *GTFSRTClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GTFSRTClient{
		httpClient: httpClient,
		feedURLs:   feedURLs,
		stationID:  stationID,
		header:     http.Header{},
		Now:        time.Now,
	}
}

// SetHeader adds a header (e.g. an API key) to every feed request.
func (c *GTFSRTClient) SetHeader(key, value string) { c.header.Set(key, value) }

func (c *GTFSRTClient) FetchArrivals(ctx context.Context) ([]arrivals.Sample, error) {
	var out []arrivals.Sample
	for _, u := range c.feedURLs {
		if u == "" {
			continue
		}
		b, err := fetch(ctx, c.httpClient, u, c.header)
		if err != nil {
			return nil, &FetchError{Source: u, Err: err}
		}
		var fm gtfsrtpb.FeedMessage
		if err := proto.Unmarshal(b, &fm); err != nil {
			return nil, &FetchError{Source: u, Err: fmt.Errorf("decode feed: %w", err)}
		}
		out = append(out, c.samplesFrom(&fm)...)
	}
	return out, nil
}

func (c *GTFSRTClient) samplesFrom(fm *gtfsrtpb.FeedMessage) []arrivals.Sample {
	now := c.Now().Unix()
	var out []arrivals.Sample
	for _, e := range fm.Entity {
		if e.TripUpdate == nil || e.TripUpdate.Trip == nil || e.TripUpdate.Trip.RouteId == nil {
			continue
		}
		line := *e.TripUpdate.Trip.RouteId
		for _, stu := range e.TripUpdate.StopTimeUpdate {
			if stu.StopId == nil {
				continue
			}
			dir, ok := c.directionOf(*stu.StopId)
			if !ok {
				continue
			}
			var at int64
			if stu.Arrival != nil && stu.Arrival.Time != nil {
				at = int64(*stu.Arrival.Time)
			} else if stu.Departure != nil && stu.Departure.Time != nil {
				at = int64(*stu.Departure.Time)
			}
			if at == 0 || at < now {
				continue
			}
			m := int((at - now) / 60)
			out = append(out, arrivals.Sample{Line: line, Direction: dir, Minutes: &m})
		}
	}
	return out
}

func (c *GTFSRTClient) directionOf(stopID string) (arrivals.Direction, bool) {
	if !strings.HasPrefix(stopID, c.stationID) || len(stopID) != len(c.stationID)+1 {
		return 0, false
	}
	return arrivals.ParseDirection(stopID[len(c.stationID):])
}

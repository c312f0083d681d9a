// Package feed fetches arrival predictions for the display.
//
// Two sources are supported:
//   - APIClient: the JSON arrivals API ({"arrivals": [...]}), or a local file with the same shape
//   - GTFSRTClient: GTFS-Realtime TripUpdates protobuf feeds, filtered to one station
//
// Cache wraps a Source and keeps the soonest arrival per direction, refreshed
// on a fixed interval. A failed refresh keeps the previous values.
package feed

// Package presenter drives the station display: it classifies the cached
// arrivals of the selected direction, animates the status clip, icon and
// border flow, and writes the result to a display.Surface once per tick.
package presenter

// Package display is the render side of the device.
//
// The presentation code talks to a Surface: a handful of setters for text,
// color, visibility, geometry and tile frame of pre-registered elements. A
// Scene is the in-memory Surface. It records element state and, on Flush,
// hands itself to its sinks: a lipgloss terminal preview, a websocket/HTTP
// mirror and the PNG rasterizer used by both the mirror and snapshots.
package display

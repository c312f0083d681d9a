// Package board provides the two selection buttons: GPIO inputs on the
// device and a raw-mode keyboard for desktop simulation.
package board

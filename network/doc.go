// Package network brings the device online at boot.
//
// Acquirer scans for a bounded window, then tries the known networks in
// priority order: first those seen in the scan, then all of them again so
// that hidden SSIDs still get a chance. The Radio interface is the only
// contact with the Wi-Fi hardware.
package network

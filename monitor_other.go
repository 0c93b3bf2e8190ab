//go:build !windows || !(amd64 || arm64)

package dxgi

// primaryMonitor returns a fixed handle. There is no monitor API to query.
func primaryMonitor() (HMONITOR, Rect) {
	return fallbackMonitor, fallbackDesktop
}

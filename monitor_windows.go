//go:build windows && (amd64 || arm64)

package dxgi

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	moduser32            = windows.NewLazySystemDLL("user32.dll")
	procMonitorFromPoint = moduser32.NewProc("MonitorFromPoint")
	procGetMonitorInfoW  = moduser32.NewProc("GetMonitorInfoW")
)

const monitorDefaultToPrimary = 0x00000001

type monitorInfo struct {
	cbSize    uint32
	rcMonitor Rect
	rcWork    Rect
	dwFlags   uint32
}

// primaryMonitor returns the monitor containing the desktop origin.
func primaryMonitor() (HMONITOR, Rect) {
	// POINT{0, 0} is passed by value in a single register.
	h, _, _ := procMonitorFromPoint.Call(0, monitorDefaultToPrimary)
	if h == 0 {
		return fallbackMonitor, fallbackDesktop
	}
	mi := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	if ok, _, err := procGetMonitorInfoW.Call(h, uintptr(unsafe.Pointer(&mi))); ok == 0 {
		Logger().Warn("dxgi: GetMonitorInfoW failed", "err", err)
		return HMONITOR(h), fallbackDesktop
	}
	return HMONITOR(h), mi.rcMonitor
}

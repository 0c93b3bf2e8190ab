package dxgi

// HMONITOR identifies a display monitor.
type HMONITOR uintptr

// HWND identifies a window.
type HWND uintptr

// Rect is a RECT in desktop coordinates.
type Rect struct {
	Left, Top, Right, Bottom int32
}

// Width returns the horizontal extent of r.
func (r Rect) Width() uint32 { return uint32(r.Right - r.Left) }

// Height returns the vertical extent of r.
func (r Rect) Height() uint32 { return uint32(r.Bottom - r.Top) }

// ModeRotation is a DXGI_MODE_ROTATION value.
type ModeRotation uint32

// Rotations.
const (
	ModeRotationUnspecified ModeRotation = 0
	ModeRotationIdentity    ModeRotation = 1
)

// OutputDesc mirrors DXGI_OUTPUT_DESC.
type OutputDesc struct {
	DeviceName         [32]uint16
	DesktopCoordinates Rect
	AttachedToDesktop  bool
	Rotation           ModeRotation
	Monitor            HMONITOR
}

// DeviceNameString decodes the NUL-terminated device name.
func (d *OutputDesc) DeviceNameString() string { return decodeUTF16(d.DeviceName[:]) }

// Rational is a refresh rate.
type Rational struct {
	Numerator   uint32
	Denominator uint32
}

// ModeDesc mirrors DXGI_MODE_DESC.
type ModeDesc struct {
	Width            uint32
	Height           uint32
	RefreshRate      Rational
	Format           Format
	ScanlineOrdering uint32
	Scaling          uint32
}

// SampleDesc mirrors DXGI_SAMPLE_DESC.
type SampleDesc struct {
	Count   uint32
	Quality uint32
}

// SurfaceDesc mirrors DXGI_SURFACE_DESC.
type SurfaceDesc struct {
	Width      uint32
	Height     uint32
	Format     Format
	SampleDesc SampleDesc
}

// Residency is a DXGI_RESIDENCY value.
type Residency uint32

// RGB is one gamma ramp entry.
type RGB struct {
	Red, Green, Blue float32
}

// GammaControlPoints is the number of entries in a gamma ramp.
const GammaControlPoints = 1025

// GammaControl mirrors DXGI_GAMMA_CONTROL.
type GammaControl struct {
	Scale      RGB
	Offset     RGB
	GammaCurve [GammaControlPoints]RGB
}

// GammaControlCapabilities mirrors DXGI_GAMMA_CONTROL_CAPABILITIES.
type GammaControlCapabilities struct {
	ScaleAndOffsetSupported bool
	MaxConvertedValue       float32
	MinConvertedValue       float32
	NumGammaControlPoints   uint32
	ControlPointPositions   [GammaControlPoints]float32
}

// FrameStatistics mirrors DXGI_FRAME_STATISTICS.
type FrameStatistics struct {
	PresentCount        uint32
	PresentRefreshCount uint32
	SyncRefreshCount    uint32
	SyncQPCTime         int64
	SyncGPUTime         int64
}

// OutputData is the per-monitor state shared between the presentation
// layer and capability queries.
type OutputData struct {
	FrameStats FrameStatistics
	GammaCurve GammaControl
	GammaDirty bool
}

// linearGamma returns the identity ramp.
func linearGamma() GammaControl {
	g := GammaControl{Scale: RGB{1, 1, 1}}
	for i := range g.GammaCurve {
		v := float32(i) / float32(GammaControlPoints-1)
		g.GammaCurve[i] = RGB{v, v, v}
	}
	return g
}

const (
	fallbackMonitor HMONITOR = 0x10001
	primaryName              = `\\.\DISPLAY1`
	defaultRefresh           = 60
)

var fallbackDesktop = Rect{Right: 1920, Bottom: 1080}

// Output is the single output exposed for the primary display.
type Output struct {
	ComObject
	adapter *Adapter
	monitor HMONITOR
	desktop Rect
}

func newOutput(adapter *Adapter, monitor HMONITOR, desktop Rect) *Output {
	o := &Output{adapter: adapter, monitor: monitor, desktop: desktop}
	adapter.AddRef()
	o.init(o, "output", o.teardown, IID_IDXGIObject, IID_IDXGIOutput)
	return o
}

func (o *Output) teardown() {
	o.adapter.Release()
}

// GetParent queries the adapter that enumerated the output.
func (o *Output) GetParent(riid GUID, ppParent *IUnknown) HRESULT {
	return queryParent(o.adapter, riid, ppParent)
}

// GetDesc describes the output.
func (o *Output) GetDesc(desc *OutputDesc) HRESULT {
	if desc == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*desc = OutputDesc{
		DesktopCoordinates: o.desktop,
		AttachedToDesktop:  true,
		Rotation:           ModeRotationIdentity,
		Monitor:            o.monitor,
	}
	encodeUTF16(desc.DeviceName[:], primaryName)
	return S_OK
}

// desktopMode returns the current mode of the output in format.
func (o *Output) desktopMode(format Format) ModeDesc {
	return ModeDesc{
		Width:       o.desktop.Width(),
		Height:      o.desktop.Height(),
		RefreshRate: Rational{Numerator: defaultRefresh, Denominator: 1},
		Format:      format,
	}
}

// GetDisplayModeList reports the desktop mode for every color format the
// adapter can map. A nil desc probes the count.
func (o *Output) GetDisplayModeList(format Format, flags uint32, numModes *uint32, desc []ModeDesc) HRESULT {
	if numModes == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	var modes []ModeDesc
	if LookupFormat(format, FormatModeColor).IsDefined() {
		modes = append(modes, o.desktopMode(format))
	}
	if desc == nil {
		*numModes = uint32(len(modes))
		return S_OK
	}
	n := copy(desc[:min(int(*numModes), len(desc))], modes)
	*numModes = uint32(n)
	if n < len(modes) {
		return DXGI_ERROR_MORE_DATA
	}
	return S_OK
}

// FindClosestMatchingMode returns the desktop mode.
func (o *Output) FindClosestMatchingMode(modeToMatch, closestMatch *ModeDesc, concernedDevice IUnknown) HRESULT {
	if modeToMatch == nil || closestMatch == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	format := modeToMatch.Format
	if format == FormatUnknown {
		if concernedDevice == nil {
			return DXGI_ERROR_INVALID_CALL
		}
		format = FormatR8G8B8A8Unorm
	}
	if !LookupFormat(format, FormatModeColor).IsDefined() {
		return DXGI_ERROR_NOT_FOUND
	}
	*closestMatch = o.desktopMode(format)
	return S_OK
}

// WaitForVBlank returns immediately.
func (o *Output) WaitForVBlank() HRESULT {
	Logger().Debug("dxgi: Output.WaitForVBlank: stub")
	return S_OK
}

// TakeOwnership accepts exclusive mode requests without changing any
// display state.
func (o *Output) TakeOwnership(device IUnknown, exclusive bool) HRESULT {
	if device == nil {
		return E_INVALIDARG
	}
	return S_OK
}

// ReleaseOwnership is the counterpart of TakeOwnership.
func (o *Output) ReleaseOwnership() {}

// GetGammaControlCapabilities reports a 1025-point ramp over [0, 1].
func (o *Output) GetGammaControlCapabilities(caps *GammaControlCapabilities) HRESULT {
	if caps == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*caps = GammaControlCapabilities{
		MaxConvertedValue:     1,
		NumGammaControlPoints: GammaControlPoints,
	}
	for i := range caps.ControlPointPositions {
		caps.ControlPointPositions[i] = float32(i) / float32(GammaControlPoints-1)
	}
	return S_OK
}

// SetGammaControl stores the ramp in the adapter's output cache, where the
// presentation layer picks it up.
func (o *Output) SetGammaControl(array *GammaControl) HRESULT {
	if array == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	gamma := *array
	o.adapter.updateOutputData(o.monitor, func(d *OutputData) {
		d.GammaCurve = gamma
		d.GammaDirty = true
	})
	return S_OK
}

// GetGammaControl returns the last ramp set, or the identity ramp.
func (o *Output) GetGammaControl(array *GammaControl) HRESULT {
	if array == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	var data OutputData
	switch hr := o.adapter.GetOutputData(o.monitor, &data); hr {
	case S_OK:
		*array = data.GammaCurve
	case DXGI_ERROR_NOT_FOUND:
		*array = linearGamma()
	default:
		return hr
	}
	return S_OK
}

// SetDisplaySurface is not implemented.
func (o *Output) SetDisplaySurface(scanoutSurface IUnknown) HRESULT {
	Logger().Warn("dxgi: Output.SetDisplaySurface: not implemented")
	return E_NOTIMPL
}

// GetDisplaySurfaceData is not implemented.
func (o *Output) GetDisplaySurfaceData(destination IUnknown) HRESULT {
	Logger().Warn("dxgi: Output.GetDisplaySurfaceData: not implemented")
	return E_NOTIMPL
}

// GetFrameStatistics returns the statistics the presentation layer last
// recorded for this monitor.
func (o *Output) GetFrameStatistics(stats *FrameStatistics) HRESULT {
	if stats == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	var data OutputData
	switch hr := o.adapter.GetOutputData(o.monitor, &data); hr {
	case S_OK:
		*stats = data.FrameStats
		return S_OK
	case DXGI_ERROR_NOT_FOUND:
		return DXGI_ERROR_NOT_CURRENTLY_AVAILABLE
	default:
		return hr
	}
}

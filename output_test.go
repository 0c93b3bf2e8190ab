package dxgi

import "testing"

func newTestOutput(t *testing.T) (*Adapter, IDXGIOutput) {
	t.Helper()
	a := newFakeAdapter(t, Config{}, newFakePhysical("GPU", 1, 2))
	var out IDXGIOutput
	if hr := a.EnumOutputs(0, &out); hr != S_OK {
		t.Fatalf("EnumOutputs(0) = %v, want S_OK", hr)
	}
	return a, out
}

func TestOutputDesc(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var desc OutputDesc
	if hr := out.GetDesc(&desc); hr != S_OK {
		t.Fatalf("GetDesc() = %v, want S_OK", hr)
	}
	if got := desc.DeviceNameString(); got != `\\.\DISPLAY1` {
		t.Errorf("DeviceName = %q, want %q", got, `\\.\DISPLAY1`)
	}
	if !desc.AttachedToDesktop {
		t.Error("AttachedToDesktop = false, want true")
	}
	if desc.Rotation != ModeRotationIdentity {
		t.Errorf("Rotation = %v, want identity", desc.Rotation)
	}
	if desc.DesktopCoordinates.Width() == 0 || desc.DesktopCoordinates.Height() == 0 {
		t.Errorf("DesktopCoordinates = %+v, want non-empty", desc.DesktopCoordinates)
	}
	if hr := out.GetDesc(nil); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("GetDesc(nil) = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}
}

func TestOutputDisplayModeList(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var n uint32
	if hr := out.GetDisplayModeList(FormatR8G8B8A8Unorm, 0, &n, nil); hr != S_OK {
		t.Fatalf("GetDisplayModeList(count) = %v, want S_OK", hr)
	}
	if n != 1 {
		t.Fatalf("mode count = %d, want 1", n)
	}

	modes := make([]ModeDesc, n)
	if hr := out.GetDisplayModeList(FormatR8G8B8A8Unorm, 0, &n, modes); hr != S_OK {
		t.Fatalf("GetDisplayModeList() = %v, want S_OK", hr)
	}
	var desc OutputDesc
	out.GetDesc(&desc)
	if modes[0].Width != desc.DesktopCoordinates.Width() || modes[0].Height != desc.DesktopCoordinates.Height() {
		t.Errorf("mode = %dx%d, want desktop size", modes[0].Width, modes[0].Height)
	}
	if modes[0].RefreshRate.Denominator == 0 {
		t.Error("RefreshRate denominator is zero")
	}

	n = 0
	if hr := out.GetDisplayModeList(FormatR8G8B8A8Unorm, 0, &n, modes); hr != DXGI_ERROR_MORE_DATA {
		t.Errorf("GetDisplayModeList(short) = %v, want DXGI_ERROR_MORE_DATA", hr)
	}

	if hr := out.GetDisplayModeList(FormatD24UnormS8Uint, 0, &n, nil); hr != S_OK || n != 0 {
		t.Errorf("GetDisplayModeList(depth) = %v, %d modes, want S_OK, 0", hr, n)
	}
	if hr := out.GetDisplayModeList(FormatR8G8B8A8Unorm, 0, nil, nil); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("GetDisplayModeList(nil) = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}
}

func TestOutputFindClosestMatchingMode(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var closest ModeDesc
	want := ModeDesc{Width: 640, Height: 480, Format: FormatB8G8R8A8Unorm}
	if hr := out.FindClosestMatchingMode(&want, &closest, nil); hr != S_OK {
		t.Fatalf("FindClosestMatchingMode() = %v, want S_OK", hr)
	}
	if closest.Format != FormatB8G8R8A8Unorm {
		t.Errorf("Format = %v, want %v", closest.Format, FormatB8G8R8A8Unorm)
	}

	unknown := ModeDesc{}
	if hr := out.FindClosestMatchingMode(&unknown, &closest, nil); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("FindClosestMatchingMode(unknown, no device) = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}
	dev := newTestObject()
	defer dev.Release()
	if hr := out.FindClosestMatchingMode(&unknown, &closest, dev); hr != S_OK {
		t.Errorf("FindClosestMatchingMode(unknown, device) = %v, want S_OK", hr)
	}
}

func TestOutputGammaControl(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var ramp GammaControl
	if hr := out.GetGammaControl(&ramp); hr != S_OK {
		t.Fatalf("GetGammaControl(default) = %v, want S_OK", hr)
	}
	if ramp.GammaCurve[GammaControlPoints-1].Red != 1 || ramp.GammaCurve[0].Red != 0 {
		t.Error("default ramp is not linear")
	}

	in := linearGamma()
	in.GammaCurve[512] = RGB{0.25, 0.25, 0.25}
	if hr := out.SetGammaControl(&in); hr != S_OK {
		t.Fatalf("SetGammaControl() = %v, want S_OK", hr)
	}
	if hr := out.GetGammaControl(&ramp); hr != S_OK {
		t.Fatalf("GetGammaControl() = %v, want S_OK", hr)
	}
	if ramp.GammaCurve[512] != in.GammaCurve[512] {
		t.Errorf("GammaCurve[512] = %v, want %v", ramp.GammaCurve[512], in.GammaCurve[512])
	}

	// The ramp lives in the adapter cache, so the presentation layer sees it.
	var desc OutputDesc
	out.GetDesc(&desc)
	var data OutputData
	if hr := a.GetOutputData(desc.Monitor, &data); hr != S_OK {
		t.Fatalf("GetOutputData() = %v, want S_OK", hr)
	}
	if !data.GammaDirty {
		t.Error("GammaDirty = false after SetGammaControl")
	}
}

func TestOutputGammaPreservesFrameStats(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var desc OutputDesc
	out.GetDesc(&desc)
	a.SetOutputData(desc.Monitor, &OutputData{FrameStats: FrameStatistics{PresentCount: 3}})

	ramp := linearGamma()
	out.SetGammaControl(&ramp)

	var stats FrameStatistics
	if hr := out.GetFrameStatistics(&stats); hr != S_OK {
		t.Fatalf("GetFrameStatistics() = %v, want S_OK", hr)
	}
	if stats.PresentCount != 3 {
		t.Errorf("PresentCount = %d, want 3", stats.PresentCount)
	}
}

func TestOutputGammaCapabilities(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var caps GammaControlCapabilities
	if hr := out.GetGammaControlCapabilities(&caps); hr != S_OK {
		t.Fatalf("GetGammaControlCapabilities() = %v, want S_OK", hr)
	}
	if caps.NumGammaControlPoints != GammaControlPoints {
		t.Errorf("NumGammaControlPoints = %d, want %d", caps.NumGammaControlPoints, GammaControlPoints)
	}
	if caps.ControlPointPositions[GammaControlPoints-1] != 1 {
		t.Errorf("last control point = %v, want 1", caps.ControlPointPositions[GammaControlPoints-1])
	}
}

func TestOutputFrameStatistics(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	var stats FrameStatistics
	if hr := out.GetFrameStatistics(&stats); hr != DXGI_ERROR_NOT_CURRENTLY_AVAILABLE {
		t.Errorf("GetFrameStatistics(no presents) = %v, want DXGI_ERROR_NOT_CURRENTLY_AVAILABLE", hr)
	}

	var desc OutputDesc
	out.GetDesc(&desc)
	a.SetOutputData(desc.Monitor, &OutputData{FrameStats: FrameStatistics{PresentCount: 11, SyncRefreshCount: 10}})
	if hr := out.GetFrameStatistics(&stats); hr != S_OK {
		t.Fatalf("GetFrameStatistics() = %v, want S_OK", hr)
	}
	if stats.PresentCount != 11 || stats.SyncRefreshCount != 10 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestOutputStubs(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()
	defer out.Release()

	if hr := out.WaitForVBlank(); hr != S_OK {
		t.Errorf("WaitForVBlank() = %v, want S_OK", hr)
	}
	if hr := out.TakeOwnership(nil, true); hr != E_INVALIDARG {
		t.Errorf("TakeOwnership(nil) = %v, want E_INVALIDARG", hr)
	}
	out.ReleaseOwnership()
	if hr := out.SetDisplaySurface(nil); hr != E_NOTIMPL {
		t.Errorf("SetDisplaySurface() = %v, want E_NOTIMPL", hr)
	}
	if hr := out.GetDisplaySurfaceData(nil); hr != E_NOTIMPL {
		t.Errorf("GetDisplaySurfaceData() = %v, want E_NOTIMPL", hr)
	}
}

func TestOutputHoldsAdapter(t *testing.T) {
	a, out := newTestOutput(t)
	defer a.Release()

	with := a.refCount()
	var parent IUnknown
	if hr := out.GetParent(IID_IDXGIAdapter, &parent); hr != S_OK {
		t.Fatalf("GetParent() = %v, want S_OK", hr)
	}
	if parent != IUnknown(a) {
		t.Error("GetParent returned an object other than the adapter")
	}
	parent.Release()

	out.Release()
	if got := a.refCount(); got != with-1 {
		t.Errorf("adapter refcount after output release = %d, want %d", got, with-1)
	}
}

package dxgi

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"

	"github.com/gogpu/dxgi/backend"
)

func TestLookupFormat(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		mode   FormatMode
		want   vk.Format
		aspect vk.ImageAspectFlags
	}{
		{"rgba8 any", FormatR8G8B8A8Unorm, FormatModeAny, vk.FormatR8g8b8a8Unorm, aspectColor},
		{"rgba8 color", FormatR8G8B8A8Unorm, FormatModeColor, vk.FormatR8g8b8a8Unorm, aspectColor},
		{"rgba8 depth", FormatR8G8B8A8Unorm, FormatModeDepth, vk.FormatUndefined, 0},
		{"bgra8 srgb", FormatB8G8R8A8UnormSrgb, FormatModeColor, vk.FormatB8g8r8a8Srgb, aspectColor},
		{"d24s8 depth", FormatD24UnormS8Uint, FormatModeDepth, vk.FormatD24UnormS8Uint, aspectDepthStencil},
		{"d24s8 any", FormatD24UnormS8Uint, FormatModeAny, vk.FormatD24UnormS8Uint, aspectDepthStencil},
		{"d24s8 color", FormatD24UnormS8Uint, FormatModeColor, vk.FormatUndefined, 0},
		{"r32 typeless color", FormatR32Typeless, FormatModeColor, vk.FormatR32Sfloat, aspectColor},
		{"r32 typeless depth", FormatR32Typeless, FormatModeDepth, vk.FormatD32Sfloat, aspectDepth},
		{"d32 raw", FormatD32Float, FormatModeRaw, vk.FormatD32Sfloat, aspectDepth},
		{"bc1", FormatBC1Unorm, FormatModeAny, vk.FormatBc1RgbaUnormBlock, aspectColor},
		{"bc7 srgb", FormatBC7UnormSrgb, FormatModeAny, vk.FormatBc7SrgbBlock, aspectColor},
		{"unknown", FormatUnknown, FormatModeAny, vk.FormatUndefined, 0},
		{"unmapped", Format(1000), FormatModeColor, vk.FormatUndefined, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LookupFormat(tt.format, tt.mode)
			if got.Format != tt.want {
				t.Errorf("Format = %v, want %v", got.Format, tt.want)
			}
			if got.Aspect != tt.aspect {
				t.Errorf("Aspect = %v, want %v", got.Aspect, tt.aspect)
			}
			if got.IsDefined() != (tt.want != vk.FormatUndefined) {
				t.Errorf("IsDefined() = %v", got.IsDefined())
			}
		})
	}
}

func TestLookupFormatUnknownIsZero(t *testing.T) {
	if got := LookupFormat(Format(9999), FormatModeAny); got != (FormatInfo{}) {
		t.Errorf("LookupFormat(unmapped) = %+v, want zero value", got)
	}
}

func TestLookupFormatSwizzle(t *testing.T) {
	x8 := LookupFormat(FormatB8G8R8X8Unorm, FormatModeColor)
	if x8.Swizzle.A != vk.ComponentSwizzleOne {
		t.Errorf("B8G8R8X8 alpha swizzle = %v, want one", x8.Swizzle.A)
	}
	if raw := LookupFormat(FormatB8G8R8X8Unorm, FormatModeRaw); raw.Swizzle != (vk.ComponentMapping{}) {
		t.Errorf("raw swizzle = %+v, want identity", raw.Swizzle)
	}

	a8 := LookupFormat(FormatA8Unorm, FormatModeColor)
	if a8.Format != vk.FormatR8Unorm || a8.Swizzle.A != vk.ComponentSwizzleR {
		t.Errorf("A8 = %+v, want R8 with alpha from red", a8)
	}
}

func TestLookupFormatTexture(t *testing.T) {
	tests := []struct {
		format Format
		mode   FormatMode
		want   gputypes.TextureFormat
	}{
		{FormatR8G8B8A8Unorm, FormatModeColor, gputypes.TextureFormatRGBA8Unorm},
		{FormatB8G8R8A8Unorm, FormatModeColor, gputypes.TextureFormatBGRA8Unorm},
		{FormatD32Float, FormatModeDepth, gputypes.TextureFormatDepth32Float},
		{FormatBC6HUF16, FormatModeColor, gputypes.TextureFormatBC6HRGBUfloat},
	}
	for _, tt := range tests {
		if got := LookupFormat(tt.format, tt.mode).Texture; got != tt.want {
			t.Errorf("LookupFormat(%v).Texture = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestFormatsSortedAndNamed(t *testing.T) {
	formats := Formats()
	if len(formats) != len(formatTable) {
		t.Fatalf("Formats() returned %d, want %d", len(formats), len(formatTable))
	}
	for i, f := range formats {
		if i > 0 && formats[i-1] >= f {
			t.Errorf("Formats() not ascending at %d: %v >= %v", i, formats[i-1], f)
		}
		if !LookupFormat(f, FormatModeAny).IsDefined() {
			t.Errorf("%v has no mapping", f)
		}
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatUnknown, "UNKNOWN"},
		{FormatR8G8B8A8Unorm, "R8G8B8A8_UNORM"},
		{FormatD24UnormS8Uint, "D24_UNORM_S8_UINT"},
		{Format(1000), "Format(1000)"},
	}
	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", uint32(tt.format), got, tt.want)
		}
	}
}

func TestFormatSupportTranslation(t *testing.T) {
	tests := []struct {
		name     string
		features backend.FormatFeatures
		want     FormatSupport
	}{
		{"none", 0, 0},
		{"sampled", backend.FormatFeatureSampled, FormatSupportTexture2D | FormatSupportShaderSample},
		{"depth", backend.FormatFeatureDepthStencil, FormatSupportTexture2D | FormatSupportDepthStencil},
		{"storage", backend.FormatFeatureStorage, FormatSupportTexture2D | FormatSupportTypedUAV},
		{"vertex", backend.FormatFeatureVertexBuffer, FormatSupportTexture2D | FormatSupportBuffer | FormatSupportVertexBuffer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatSupport(tt.features); got != tt.want {
				t.Errorf("formatSupport() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func BenchmarkLookupFormat(b *testing.B) {
	for b.Loop() {
		LookupFormat(FormatB8G8R8A8UnormSrgb, FormatModeColor)
	}
}

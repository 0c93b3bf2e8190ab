package dxgi

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"

	"github.com/gogpu/dxgi/backend"
)

// Format is a DXGI_FORMAT value.
type Format uint32

// Supported formats. Values match DXGI_FORMAT.
const (
	FormatUnknown            Format = 0
	FormatR32G32B32A32Float  Format = 2
	FormatR32G32B32A32Uint   Format = 3
	FormatR16G16B16A16Float  Format = 10
	FormatR16G16B16A16Unorm  Format = 11
	FormatR32G32Float        Format = 16
	FormatR32G8X24Typeless   Format = 19
	FormatD32FloatS8X24Uint  Format = 20
	FormatR10G10B10A2Unorm   Format = 24
	FormatR11G11B10Float     Format = 26
	FormatR8G8B8A8Typeless   Format = 27
	FormatR8G8B8A8Unorm      Format = 28
	FormatR8G8B8A8UnormSrgb  Format = 29
	FormatR8G8B8A8Uint       Format = 30
	FormatR16G16Float        Format = 34
	FormatR32Typeless        Format = 39
	FormatD32Float           Format = 40
	FormatR32Float           Format = 41
	FormatR32Uint            Format = 42
	FormatR24G8Typeless      Format = 44
	FormatD24UnormS8Uint     Format = 45
	FormatR24UnormX8Typeless Format = 46
	FormatR8G8Unorm          Format = 49
	FormatR16Float           Format = 54
	FormatD16Unorm           Format = 55
	FormatR16Unorm           Format = 56
	FormatR8Unorm            Format = 61
	FormatA8Unorm            Format = 65
	FormatBC1Unorm           Format = 71
	FormatBC1UnormSrgb       Format = 72
	FormatBC2Unorm           Format = 74
	FormatBC2UnormSrgb       Format = 75
	FormatBC3Unorm           Format = 77
	FormatBC3UnormSrgb       Format = 78
	FormatBC4Unorm           Format = 80
	FormatBC4Snorm           Format = 81
	FormatBC5Unorm           Format = 83
	FormatBC5Snorm           Format = 84
	FormatB8G8R8A8Unorm      Format = 87
	FormatB8G8R8X8Unorm      Format = 88
	FormatB8G8R8A8Typeless   Format = 90
	FormatB8G8R8A8UnormSrgb  Format = 91
	FormatBC6HUF16           Format = 95
	FormatBC6HSF16           Format = 96
	FormatBC7Unorm           Format = 98
	FormatBC7UnormSrgb       Format = 99
)

// FormatMode selects which view of a format LookupFormat returns.
type FormatMode uint32

const (
	// FormatModeAny returns the color view, or the depth view for formats
	// that only have one.
	FormatModeAny FormatMode = iota
	// FormatModeColor returns the view used for sampling and render targets.
	FormatModeColor
	// FormatModeDepth returns the depth-stencil view.
	FormatModeDepth
	// FormatModeRaw returns the storage format without component swizzles.
	FormatModeRaw
)

// FormatInfo is the backend description of a format.
//
// An unknown format maps to the zero FormatInfo, whose Format is
// vk.FormatUndefined. Callers treat that as unsupported.
type FormatInfo struct {
	Format  vk.Format
	Aspect  vk.ImageAspectFlags
	Swizzle vk.ComponentMapping
	Texture gputypes.TextureFormat
}

// IsDefined reports whether the lookup produced a mapping.
func (fi FormatInfo) IsDefined() bool { return fi.Format != vk.FormatUndefined }

type formatMapping struct {
	name  string
	color FormatInfo
	depth FormatInfo
}

var (
	swizzleIdentity = vk.ComponentMapping{}
	swizzleOpaque   = vk.ComponentMapping{A: vk.ComponentSwizzleOne}
	swizzleAlpha    = vk.ComponentMapping{
		R: vk.ComponentSwizzleZero,
		G: vk.ComponentSwizzleZero,
		B: vk.ComponentSwizzleZero,
		A: vk.ComponentSwizzleR,
	}
)

const (
	aspectColor        = vk.ImageAspectFlags(vk.ImageAspectColorBit)
	aspectDepth        = vk.ImageAspectFlags(vk.ImageAspectDepthBit)
	aspectDepthStencil = vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)
)

func colorView(f vk.Format, t gputypes.TextureFormat) FormatInfo {
	return FormatInfo{Format: f, Aspect: aspectColor, Texture: t}
}

func swizzledView(f vk.Format, t gputypes.TextureFormat, s vk.ComponentMapping) FormatInfo {
	return FormatInfo{Format: f, Aspect: aspectColor, Swizzle: s, Texture: t}
}

func depthView(f vk.Format, aspect vk.ImageAspectFlags, t gputypes.TextureFormat) FormatInfo {
	return FormatInfo{Format: f, Aspect: aspect, Texture: t}
}

var formatTable = map[Format]formatMapping{
	FormatR32G32B32A32Float: {name: "R32G32B32A32_FLOAT", color: colorView(vk.FormatR32g32b32a32Sfloat, gputypes.TextureFormatRGBA32Float)},
	FormatR32G32B32A32Uint:  {name: "R32G32B32A32_UINT", color: colorView(vk.FormatR32g32b32a32Uint, gputypes.TextureFormatRGBA32Uint)},
	FormatR16G16B16A16Float: {name: "R16G16B16A16_FLOAT", color: colorView(vk.FormatR16g16b16a16Sfloat, gputypes.TextureFormatRGBA16Float)},
	FormatR16G16B16A16Unorm: {name: "R16G16B16A16_UNORM", color: colorView(vk.FormatR16g16b16a16Unorm, gputypes.TextureFormatRGBA16Unorm)},
	FormatR32G32Float:       {name: "R32G32_FLOAT", color: colorView(vk.FormatR32g32Sfloat, gputypes.TextureFormatRG32Float)},
	FormatR32G8X24Typeless: {
		name:  "R32G8X24_TYPELESS",
		color: colorView(vk.FormatR32Sfloat, gputypes.TextureFormatR32Float),
		depth: depthView(vk.FormatD32SfloatS8Uint, aspectDepthStencil, gputypes.TextureFormatDepth32FloatStencil8),
	},
	FormatD32FloatS8X24Uint: {
		name:  "D32_FLOAT_S8X24_UINT",
		depth: depthView(vk.FormatD32SfloatS8Uint, aspectDepthStencil, gputypes.TextureFormatDepth32FloatStencil8),
	},
	FormatR10G10B10A2Unorm: {name: "R10G10B10A2_UNORM", color: colorView(vk.FormatA2b10g10r10UnormPack32, gputypes.TextureFormatRGB10A2Unorm)},
	FormatR11G11B10Float:   {name: "R11G11B10_FLOAT", color: colorView(vk.FormatB10g11r11UfloatPack32, gputypes.TextureFormatRG11B10Ufloat)},
	FormatR8G8B8A8Typeless: {name: "R8G8B8A8_TYPELESS", color: colorView(vk.FormatR8g8b8a8Unorm, gputypes.TextureFormatRGBA8Unorm)},
	FormatR8G8B8A8Unorm:    {name: "R8G8B8A8_UNORM", color: colorView(vk.FormatR8g8b8a8Unorm, gputypes.TextureFormatRGBA8Unorm)},
	FormatR8G8B8A8UnormSrgb: {name: "R8G8B8A8_UNORM_SRGB", color: colorView(vk.FormatR8g8b8a8Srgb, gputypes.TextureFormatRGBA8UnormSrgb)},
	FormatR8G8B8A8Uint:     {name: "R8G8B8A8_UINT", color: colorView(vk.FormatR8g8b8a8Uint, gputypes.TextureFormatRGBA8Uint)},
	FormatR16G16Float:      {name: "R16G16_FLOAT", color: colorView(vk.FormatR16g16Sfloat, gputypes.TextureFormatRG16Float)},
	FormatR32Typeless: {
		name:  "R32_TYPELESS",
		color: colorView(vk.FormatR32Sfloat, gputypes.TextureFormatR32Float),
		depth: depthView(vk.FormatD32Sfloat, aspectDepth, gputypes.TextureFormatDepth32Float),
	},
	FormatD32Float: {
		name:  "D32_FLOAT",
		depth: depthView(vk.FormatD32Sfloat, aspectDepth, gputypes.TextureFormatDepth32Float),
	},
	FormatR32Float: {name: "R32_FLOAT", color: colorView(vk.FormatR32Sfloat, gputypes.TextureFormatR32Float)},
	FormatR32Uint:  {name: "R32_UINT", color: colorView(vk.FormatR32Uint, gputypes.TextureFormatR32Uint)},
	FormatR24G8Typeless: {
		name:  "R24G8_TYPELESS",
		depth: depthView(vk.FormatD24UnormS8Uint, aspectDepthStencil, gputypes.TextureFormatDepth24PlusStencil8),
	},
	FormatD24UnormS8Uint: {
		name:  "D24_UNORM_S8_UINT",
		depth: depthView(vk.FormatD24UnormS8Uint, aspectDepthStencil, gputypes.TextureFormatDepth24PlusStencil8),
	},
	FormatR24UnormX8Typeless: {
		name:  "R24_UNORM_X8_TYPELESS",
		color: depthView(vk.FormatD24UnormS8Uint, aspectDepth, gputypes.TextureFormatDepth24PlusStencil8),
	},
	FormatR8G8Unorm: {name: "R8G8_UNORM", color: colorView(vk.FormatR8g8Unorm, gputypes.TextureFormatRG8Unorm)},
	FormatR16Float:  {name: "R16_FLOAT", color: colorView(vk.FormatR16Sfloat, gputypes.TextureFormatR16Float)},
	FormatD16Unorm: {
		name:  "D16_UNORM",
		depth: depthView(vk.FormatD16Unorm, aspectDepth, gputypes.TextureFormatDepth16Unorm),
	},
	FormatR16Unorm: {name: "R16_UNORM", color: colorView(vk.FormatR16Unorm, gputypes.TextureFormatR16Unorm)},
	FormatR8Unorm:  {name: "R8_UNORM", color: colorView(vk.FormatR8Unorm, gputypes.TextureFormatR8Unorm)},
	FormatA8Unorm:  {name: "A8_UNORM", color: swizzledView(vk.FormatR8Unorm, gputypes.TextureFormatR8Unorm, swizzleAlpha)},

	FormatBC1Unorm:     {name: "BC1_UNORM", color: colorView(vk.FormatBc1RgbaUnormBlock, gputypes.TextureFormatBC1RGBAUnorm)},
	FormatBC1UnormSrgb: {name: "BC1_UNORM_SRGB", color: colorView(vk.FormatBc1RgbaSrgbBlock, gputypes.TextureFormatBC1RGBAUnormSrgb)},
	FormatBC2Unorm:     {name: "BC2_UNORM", color: colorView(vk.FormatBc2UnormBlock, gputypes.TextureFormatBC2RGBAUnorm)},
	FormatBC2UnormSrgb: {name: "BC2_UNORM_SRGB", color: colorView(vk.FormatBc2SrgbBlock, gputypes.TextureFormatBC2RGBAUnormSrgb)},
	FormatBC3Unorm:     {name: "BC3_UNORM", color: colorView(vk.FormatBc3UnormBlock, gputypes.TextureFormatBC3RGBAUnorm)},
	FormatBC3UnormSrgb: {name: "BC3_UNORM_SRGB", color: colorView(vk.FormatBc3SrgbBlock, gputypes.TextureFormatBC3RGBAUnormSrgb)},
	FormatBC4Unorm:     {name: "BC4_UNORM", color: colorView(vk.FormatBc4UnormBlock, gputypes.TextureFormatBC4RUnorm)},
	FormatBC4Snorm:     {name: "BC4_SNORM", color: colorView(vk.FormatBc4SnormBlock, gputypes.TextureFormatBC4RSnorm)},
	FormatBC5Unorm:     {name: "BC5_UNORM", color: colorView(vk.FormatBc5UnormBlock, gputypes.TextureFormatBC5RGUnorm)},
	FormatBC5Snorm:     {name: "BC5_SNORM", color: colorView(vk.FormatBc5SnormBlock, gputypes.TextureFormatBC5RGSnorm)},
	FormatBC6HUF16:     {name: "BC6H_UF16", color: colorView(vk.FormatBc6hUfloatBlock, gputypes.TextureFormatBC6HRGBUfloat)},
	FormatBC6HSF16:     {name: "BC6H_SF16", color: colorView(vk.FormatBc6hSfloatBlock, gputypes.TextureFormatBC6HRGBFloat)},
	FormatBC7Unorm:     {name: "BC7_UNORM", color: colorView(vk.FormatBc7UnormBlock, gputypes.TextureFormatBC7RGBAUnorm)},
	FormatBC7UnormSrgb: {name: "BC7_UNORM_SRGB", color: colorView(vk.FormatBc7SrgbBlock, gputypes.TextureFormatBC7RGBAUnormSrgb)},

	FormatB8G8R8A8Unorm:     {name: "B8G8R8A8_UNORM", color: colorView(vk.FormatB8g8r8a8Unorm, gputypes.TextureFormatBGRA8Unorm)},
	FormatB8G8R8X8Unorm:     {name: "B8G8R8X8_UNORM", color: swizzledView(vk.FormatB8g8r8a8Unorm, gputypes.TextureFormatBGRA8Unorm, swizzleOpaque)},
	FormatB8G8R8A8Typeless:  {name: "B8G8R8A8_TYPELESS", color: colorView(vk.FormatB8g8r8a8Unorm, gputypes.TextureFormatBGRA8Unorm)},
	FormatB8G8R8A8UnormSrgb: {name: "B8G8R8A8_UNORM_SRGB", color: colorView(vk.FormatB8g8r8a8Srgb, gputypes.TextureFormatBGRA8UnormSrgb)},
}

// LookupFormat maps a DXGI format to its backend description for the given
// mode. It has no state and may be called from any goroutine. Formats
// without a mapping return the zero FormatInfo.
func LookupFormat(format Format, mode FormatMode) FormatInfo {
	m, ok := formatTable[format]
	if !ok {
		return FormatInfo{}
	}
	switch mode {
	case FormatModeColor:
		return m.color
	case FormatModeDepth:
		return m.depth
	case FormatModeRaw:
		info := m.color
		if !info.IsDefined() {
			info = m.depth
		}
		info.Swizzle = swizzleIdentity
		return info
	default:
		if m.color.IsDefined() {
			return m.color
		}
		return m.depth
	}
}

// Formats returns every format LookupFormat knows, in ascending order.
func Formats() []Format {
	out := make([]Format, 0, len(formatTable))
	for f := range formatTable {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// String returns the DXGI_FORMAT name without its prefix.
func (f Format) String() string {
	if f == FormatUnknown {
		return "UNKNOWN"
	}
	if m, ok := formatTable[f]; ok {
		return m.name
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// FormatSupport is a D3D11_FORMAT_SUPPORT bitmask.
type FormatSupport uint32

// Format support flags reported by CheckFormatSupport.
const (
	FormatSupportBuffer       FormatSupport = 0x00000001
	FormatSupportVertexBuffer FormatSupport = 0x00000002
	FormatSupportTexture2D    FormatSupport = 0x00000020
	FormatSupportShaderSample FormatSupport = 0x00000100
	FormatSupportRenderTarget FormatSupport = 0x00004000
	FormatSupportBlendable    FormatSupport = 0x00008000
	FormatSupportDepthStencil FormatSupport = 0x00010000
	FormatSupportTypedUAV     FormatSupport = 0x00400000
)

// formatSupport translates backend feature bits.
func formatSupport(f backend.FormatFeatures) FormatSupport {
	if f == 0 {
		return 0
	}
	s := FormatSupportTexture2D
	if f.Has(backend.FormatFeatureSampled) {
		s |= FormatSupportShaderSample
	}
	if f.Has(backend.FormatFeatureRenderTarget) {
		s |= FormatSupportRenderTarget
	}
	if f.Has(backend.FormatFeatureBlendable) {
		s |= FormatSupportBlendable
	}
	if f.Has(backend.FormatFeatureDepthStencil) {
		s |= FormatSupportDepthStencil
	}
	if f.Has(backend.FormatFeatureStorage) {
		s |= FormatSupportTypedUAV
	}
	if f.Has(backend.FormatFeatureVertexBuffer) {
		s |= FormatSupportBuffer | FormatSupportVertexBuffer
	}
	return s
}

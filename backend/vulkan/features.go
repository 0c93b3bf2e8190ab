package vulkan

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// featureBits maps WebGPU features onto Vulkan 1.0 core feature fields.
// Features absent from the table need extensions and are not requested
// through VkPhysicalDeviceFeatures.
var featureBits = []struct {
	feature gputypes.Feature
	field   func(*vk.PhysicalDeviceFeatures) *vk.Bool32
}{
	{gputypes.FeatureDepthClipControl, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DepthClamp }},
	{gputypes.FeatureTextureCompressionBC, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionBC }},
	{gputypes.FeatureTextureCompressionETC2, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionETC2 }},
	{gputypes.FeatureTextureCompressionASTC, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.TextureCompressionASTC_LDR }},
	{gputypes.FeatureIndirectFirstInstance, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DrawIndirectFirstInstance }},
	{gputypes.FeatureMultiDrawIndirect, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.MultiDrawIndirect }},
	{gputypes.FeaturePipelineStatisticsQuery, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.PipelineStatisticsQuery }},
	{gputypes.FeatureShaderFloat64, func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.ShaderFloat64 }},
}

// baselineFeatures are enabled whenever the driver supports them; Direct3D
// 11 class hardware always has them.
var baselineFeatures = []func(*vk.PhysicalDeviceFeatures) *vk.Bool32{
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.FullDrawIndexUint32 },
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.ImageCubeArray },
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.IndependentBlend },
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.DepthBiasClamp },
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.FillModeNonSolid },
	func(f *vk.PhysicalDeviceFeatures) *vk.Bool32 { return &f.SamplerAnisotropy },
}

// enableFeatures builds the feature struct passed to vkCreateDevice.
// missing holds the requested features the driver lacks.
func enableFeatures(requested gputypes.Features, supported *vk.PhysicalDeviceFeatures) (enabled vk.PhysicalDeviceFeatures, missing gputypes.Features) {
	sup := *supported
	for _, field := range baselineFeatures {
		*field(&enabled) = *field(&sup)
	}
	for _, fb := range featureBits {
		if !requested.Contains(fb.feature) {
			continue
		}
		if *fb.field(&sup) == 0 {
			missing.Insert(fb.feature)
			continue
		}
		*fb.field(&enabled) = 1
	}
	return enabled, missing
}

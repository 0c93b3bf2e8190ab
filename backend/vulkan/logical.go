package vulkan

import (
	"errors"
	"runtime"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/vkfn"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

type logicalDevice struct {
	fn   *vkfn.DeviceFn
	lost atomic.Bool
}

func newLogicalDevice(fn *vkfn.DeviceFn) *logicalDevice {
	return &logicalDevice{fn: fn}
}

// check records device loss and converts r to an error.
func (d *logicalDevice) check(op string, r vk.Result) error {
	if r == vk.Success || r == vk.Incomplete {
		return nil
	}
	err := resultError(op, r)
	if errors.Is(err, backend.ErrDeviceLost) {
		d.lost.Store(true)
	}
	return err
}

func (d *logicalDevice) CreatePipelineCache(initial []byte) (uint64, error) {
	info := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}
	if len(initial) > 0 {
		info.InitialDataSize = uintptr(len(initial))
		info.PInitialData = (*uintptr)(unsafe.Pointer(&initial[0]))
	}

	var cache vk.PipelineCache
	r := d.fn.CreatePipelineCache(&info, nil, &cache)
	runtime.KeepAlive(initial)
	if err := d.check("vkCreatePipelineCache", r); err != nil {
		return 0, err
	}
	return uint64(cache), nil
}

func (d *logicalDevice) PipelineCacheData(handle uint64) ([]byte, error) {
	if handle == 0 {
		return nil, backend.ErrInvalidHandle
	}
	blob, r := d.fn.PipelineCacheBlob(vk.PipelineCache(handle))
	if err := d.check("vkGetPipelineCacheData", r); err != nil {
		return nil, err
	}
	return blob, nil
}

func (d *logicalDevice) DestroyPipelineCache(handle uint64) {
	if handle == 0 {
		return
	}
	d.fn.DestroyPipelineCache(vk.PipelineCache(handle), nil)
}

func (d *logicalDevice) Status() error {
	if d.lost.Load() {
		return backend.ErrDeviceLost
	}
	return nil
}

func (d *logicalDevice) WaitIdle() error {
	return d.check("vkDeviceWaitIdle", d.fn.DeviceWaitIdle())
}

func (d *logicalDevice) Destroy() {
	if err := d.WaitIdle(); err != nil {
		backend.Logger().Warn("vulkan: wait idle before destroy", "err", err)
	}
	d.fn.DestroyDevice(nil)
}

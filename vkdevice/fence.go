package vkdevice

import (
	"time"

	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

// CreateFence creates a fence, already signaled if signaled is set.
func (d *Device) CreateFence(signaled bool) (vkswap.Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	if err := check(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence), "create fence"); err != nil {
		return nil, err
	}
	return &Fence{Device: d, VKFence: fence}, nil
}

// Wait blocks until the fence is signaled.
func (f *Fence) Wait() error {
	return f.wait(vk.MaxUint64)
}

// WaitTimeout blocks until the fence is signaled or ts has passed, a timeout
// is reported as an error.
func (f *Fence) WaitTimeout(ts time.Duration) error {
	return f.wait(uint64(ts.Nanoseconds()))
}

func (f *Fence) wait(timeout uint64) error {
	ret := vk.WaitForFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}, vk.True, timeout)
	return check(ret, "wait for fence")
}

// Signaled reports whether the fence is currently signaled, without blocking.
func (f *Fence) Signaled() bool {
	return vk.GetFenceStatus(f.Device.VKDevice, f.VKFence) == vk.Success
}

func (f *Fence) Reset() error {
	return check(vk.ResetFences(f.Device.VKDevice, 1, []vk.Fence{f.VKFence}), "reset fence")
}

func (f *Fence) Destroy() {
	if f.VKFence == vk.NullFence {
		return
	}
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
	f.VKFence = vk.NullFence
}

package vkdevice

import (
	"fmt"

	"github.com/celer/vkswap"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// SwapchainExtension is the device extension every presenting device needs.
const SwapchainExtension = "VK_KHR_swapchain"

// Device is a logical device with its graphics and present queues. It
// implements vkswap.Device.
type Device struct {
	Instance       *Instance
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device

	GraphicsQueue *Queue
	PresentQueue  *Queue

	PipelineCache *PipelineCache
}

var _ vkswap.Device = (*Device)(nil)

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s Graphics: %d Present: %d }", d.PhysicalDevice,
		d.GraphicsQueue.QueueFamily.Index, d.PresentQueue.QueueFamily.Index)
}

// GetQueue returns the first queue of family qf.
func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{Device: d, QueueFamily: qf, VKQueue: vkq}
}

func (d *Device) queueFamilyIndices() (graphics, present uint32) {
	return uint32(d.GraphicsQueue.QueueFamily.Index), uint32(d.PresentQueue.QueueFamily.Index)
}

func (d *Device) WaitIdle() error {
	return check(vk.DeviceWaitIdle(d.VKDevice), "wait for device idle")
}

func (d *Device) Submit(s *vkswap.Submission) error {
	return d.GraphicsQueue.Submit(s)
}

func (d *Device) Present(swapchain vkswap.Swapchain, index uint32, wait vkswap.Semaphore) (vkswap.Status, error) {
	return d.PresentQueue.Present(swapchain.(*Swapchain), index, wait.(*Semaphore))
}

// Destroy destroys the pipeline cache and the logical device. The instance is
// left alone.
func (d *Device) Destroy() {
	if d.VKDevice == nil {
		return
	}
	if d.PipelineCache != nil {
		d.PipelineCache.Destroy()
	}
	vk.DestroyDevice(d.VKDevice, nil)
	d.VKDevice = nil
}

func unsupported(kind string, v interface{}) error {
	return errors.Errorf("vkdevice: unsupported %s type %T", kind, v)
}

package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type CommandPool struct {
	Device        *Device
	QueueFamily   *QueueFamily
	VKCommandPool vk.CommandPool
}

// CreateCommandPool creates a command pool for the graphics queue family whose
// buffers can be reset individually.
func (d *Device) CreateCommandPool() (vkswap.CommandPool, error) {
	pool, err := d.CreateCommandPoolFor(d.GraphicsQueue.QueueFamily)
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func (d *Device) CreateCommandPoolFor(q *QueueFamily) (*CommandPool, error) {
	commandPoolCreateInfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: uint32(q.Index),
	}

	var commandPool vk.CommandPool
	if err := check(vk.CreateCommandPool(d.VKDevice, &commandPoolCreateInfo, nil, &commandPool), "create command pool"); err != nil {
		return nil, err
	}
	return &CommandPool{Device: d, QueueFamily: q, VKCommandPool: commandPool}, nil
}

// Allocate allocates count primary command buffers.
func (c *CommandPool) Allocate(count int) ([]vkswap.CommandBuffer, error) {
	commandBufferAllocateInfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        c.VKCommandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}

	cmdBuffers := make([]vk.CommandBuffer, count)
	if err := check(vk.AllocateCommandBuffers(c.Device.VKDevice, &commandBufferAllocateInfo, cmdBuffers), "allocate command buffers"); err != nil {
		return nil, err
	}

	ret := make([]vkswap.CommandBuffer, count)
	for i := range ret {
		ret[i] = &CommandBuffer{VKCommandBuffer: cmdBuffers[i]}
	}
	return ret, nil
}

func (c *CommandPool) Free(buffers []vkswap.CommandBuffer) {
	if len(buffers) == 0 {
		return
	}
	b := make([]vk.CommandBuffer, len(buffers))
	for i := range buffers {
		b[i] = buffers[i].(*CommandBuffer).VKCommandBuffer
	}
	vk.FreeCommandBuffers(c.Device.VKDevice, c.VKCommandPool, uint32(len(b)), b)
}

func (c *CommandPool) Destroy() {
	if c.VKCommandPool == vk.NullCommandPool {
		return
	}
	vk.DestroyCommandPool(c.Device.VKDevice, c.VKCommandPool, nil)
	c.VKCommandPool = vk.NullCommandPool
}

package vkdevice

import (
	"unsafe"

	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffers describe a sequence of commands that will be executed
// upon being sent to a device queue. Not all available vulkan commands
// are wrapped by this package, VK gives access to the native handle.
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

var _ vkswap.CommandBuffer = (*CommandBuffer)(nil)

// Reset this command buffer
func (c *CommandBuffer) Reset() error {
	return check(vk.ResetCommandBuffer(c.VKCommandBuffer, 0), "reset command buffer")
}

// VK is a utility function for accessing the native vulkan command buffer
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Begin capturing work for this command buffer
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return check(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo), "begin command buffer")
}

// End describing work for this command buffer
func (c *CommandBuffer) End() error {
	return check(vk.EndCommandBuffer(c.VKCommandBuffer), "end command buffer")
}

// BeginRenderPass begins the render pass of target on its framebuffer,
// clearing the color attachment to clear.
func (c *CommandBuffer) BeginRenderPass(target *vkswap.FrameTarget, clear [4]float32) {
	vk.CmdBeginRenderPass(c.VKCommandBuffer, &vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  target.RenderPass.(*RenderPass).VKRenderPass,
		Framebuffer: target.Framebuffer.(*Framebuffer).VKFramebuffer,
		RenderArea: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: target.Extent,
		},
		ClearValueCount: 1,
		PClearValues:    []vk.ClearValue{vk.NewClearValue(clear[:])},
	}, vk.SubpassContentsInline)
}

func (c *CommandBuffer) EndRenderPass() {
	vk.CmdEndRenderPass(c.VKCommandBuffer)
}

func (c *CommandBuffer) BindGraphicsPipeline(p vkswap.Pipeline) {
	vk.CmdBindPipeline(c.VKCommandBuffer, vk.PipelineBindPointGraphics, p.(*Pipeline).VKPipeline)
}

// PushConstants updates the push constants of layout at offset with values.
func (c *CommandBuffer) PushConstants(layout vkswap.PipelineLayout, stages vk.ShaderStageFlags, offset uint32, values []float32) {
	if len(values) == 0 {
		return
	}
	vk.CmdPushConstants(c.VKCommandBuffer, layout.(*PipelineLayout).VKPipelineLayout, stages,
		offset, uint32(len(values)*4), unsafe.Pointer(&values[0]))
}

func (c *CommandBuffer) Draw(vertexCount, instanceCount, firstVertex, firstInstance int) {
	vk.CmdDraw(c.VKCommandBuffer, uint32(vertexCount), uint32(instanceCount), uint32(firstVertex), uint32(firstInstance))
}

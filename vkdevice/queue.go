package vkdevice

import (
	"fmt"

	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type Queue struct {
	Device      *Device
	QueueFamily *QueueFamily
	VKQueue     vk.Queue
}

func (q *Queue) WaitIdle() error {
	return check(vk.QueueWaitIdle(q.VKQueue), "wait for queue idle")
}

// Submit submits a single command buffer, gated by the semaphores of s.
func (q *Queue) Submit(s *vkswap.Submission) error {
	submitInfo := vk.SubmitInfo{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: 1,
		PCommandBuffers:    []vk.CommandBuffer{s.CommandBuffer.(*CommandBuffer).VKCommandBuffer},
	}
	if s.Wait != nil {
		submitInfo.WaitSemaphoreCount = 1
		submitInfo.PWaitSemaphores = []vk.Semaphore{s.Wait.(*Semaphore).VKSemaphore}
		submitInfo.PWaitDstStageMask = []vk.PipelineStageFlags{s.WaitStage}
	}
	if s.Signal != nil {
		submitInfo.SignalSemaphoreCount = 1
		submitInfo.PSignalSemaphores = []vk.Semaphore{s.Signal.(*Semaphore).VKSemaphore}
	}

	fence := vk.NullFence
	if s.Fence != nil {
		fence = s.Fence.(*Fence).VKFence
	}
	return check(vk.QueueSubmit(q.VKQueue, 1, []vk.SubmitInfo{submitInfo}, fence), "queue submit")
}

// Present queues image index of swapchain for presentation once wait is
// signaled.
func (q *Queue) Present(swapchain *Swapchain, index uint32, wait *Semaphore) (vkswap.Status, error) {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{wait.VKSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{swapchain.VKSwapchain},
		PImageIndices:      []uint32{index},
	}
	return status(vk.QueuePresent(q.VKQueue, &presentInfo), "queue present")
}

func (q *Queue) String() string {
	return fmt.Sprintf("{Device: %s QueueFamily: %s}", q.Device.PhysicalDevice, q.QueueFamily)
}

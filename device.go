package vkswap

import (
	vk "github.com/vulkan-go/vulkan"
)

// Destroyer is implemented by every exclusively owned GPU object.
// Destroy releases the object; it must be safe to call on an object which
// has already been destroyed.
type Destroyer interface {
	Destroy()
}

// Status is the outcome of a successful acquire or present call.
type Status int

const (
	// StatusOK means the swapchain still matches the surface.
	StatusOK Status = iota
	// StatusSuboptimal means the operation succeeded but the swapchain no
	// longer matches the surface exactly and should be recreated.
	StatusSuboptimal
	// StatusOutOfDate means the swapchain can no longer be used with the
	// surface. On acquire no image was acquired.
	StatusOutOfDate
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSuboptimal:
		return "suboptimal"
	case StatusOutOfDate:
		return "out of date"
	}
	return "unknown"
}

// Window is the windowing collaborator.
type Window interface {
	// FramebufferSize returns the current framebuffer size in pixels.
	FramebufferSize() (width, height int)
}

// Surface is a presentation target bridging a window to the device.
type Surface interface {
	Destroyer

	// Capabilities queries the formats, present modes and limits the
	// device supports for this surface. It has no side effects.
	Capabilities() (*SurfaceCapabilities, error)
}

// Image is an opaque swapchain image handle. Swapchain images are owned by
// their swapchain and are never destroyed individually.
type Image interface{}

// Swapchain is a driver managed ring of presentable images.
type Swapchain interface {
	Destroyer

	// Images returns the swapchain's images. The count may exceed the
	// minimum image count the swapchain was created with.
	Images() ([]Image, error)

	// AcquireNextImage returns the index of the next writable image.
	// signal is signaled when the image may be written to. Blocks with no
	// timeout. The index is only valid if the status is not
	// StatusOutOfDate.
	AcquireNextImage(signal Semaphore) (uint32, Status, error)
}

type Semaphore interface {
	Destroyer
}

type Fence interface {
	Destroyer

	// Wait blocks until the fence is signaled. There is no timeout.
	Wait() error

	// Reset returns the fence to the unsignaled state.
	Reset() error
}

type ImageView interface {
	Destroyer
}

type RenderPass interface {
	Destroyer
}

type PipelineLayout interface {
	Destroyer
}

type Pipeline interface {
	Destroyer
}

type Framebuffer interface {
	Destroyer
}

// CommandBuffer is a primary command buffer. Recording is done by the
// application through whatever concrete type the Device returns.
type CommandBuffer interface {
	Reset() error
}

type CommandPool interface {
	Destroyer

	Allocate(count int) ([]CommandBuffer, error)
	Free(buffers []CommandBuffer)
}

// Submission describes one queue submission gated by semaphores.
type Submission struct {
	CommandBuffer CommandBuffer
	// Wait is waited on at WaitStage before the command buffer executes.
	Wait      Semaphore
	WaitStage vk.PipelineStageFlags
	// Signal is signaled once the command buffer completes.
	Signal Semaphore
	// Fence is signaled once the command buffer completes.
	Fence Fence
}

// Device is the logical device together with its graphics and present
// queues, as handed over by the device selection layer.
type Device interface {
	// CreateSwapchain creates a swapchain for surface. old, if not nil, is
	// passed as the retired swapchain so the driver may recycle its
	// resources; old stays valid and must still be destroyed by the caller.
	CreateSwapchain(surface Surface, config *SwapchainConfig, old Swapchain) (Swapchain, error)

	// CreateImageView creates a 2D color view of a swapchain image.
	CreateImageView(image Image, format vk.Format) (ImageView, error)

	CreateSemaphore() (Semaphore, error)
	CreateFence(signaled bool) (Fence, error)

	CreateRenderPass(info *vk.RenderPassCreateInfo) (RenderPass, error)
	CreatePipelineLayout(desc *PipelineLayoutDesc) (PipelineLayout, error)
	CreateGraphicsPipeline(pass RenderPass, layout PipelineLayout, state *PipelineState) (Pipeline, error)
	CreateFramebuffer(pass RenderPass, view ImageView, extent vk.Extent2D) (Framebuffer, error)

	// CreateCommandPool creates a resettable command pool for the graphics
	// queue family.
	CreateCommandPool() (CommandPool, error)

	// Submit submits work to the graphics queue.
	Submit(s *Submission) error

	// Present queues image index of swapchain for presentation once wait is
	// signaled.
	Present(swapchain Swapchain, index uint32, wait Semaphore) (Status, error)

	// WaitIdle blocks until all queued work has completed.
	WaitIdle() error
}

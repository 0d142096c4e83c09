/*
Package vkswap keeps a chain of presentable Vulkan images synchronized with the
display and the GPU queue across frames.

Presenting with Vulkan means juggling a handful of objects whose lifetimes
depend on each other: the swapchain and its images, one image view per image,
a render pass built for the swapchain format, a pipeline built for the render
pass and extent, one framebuffer per image view, and the semaphores and fences
which keep the host from racing the GPU. When the window is resized or the
compositor changes its mind about the surface all of these must be torn down
and rebuilt, in the right order, without destroying anything the GPU still
reads from.

This package splits that work into a few components:

	SurfaceCapabilities	what the device/surface pair supports, re-queried on every (re)creation
	SwapchainConfig		the format, present mode, image count and extent chosen from the capabilities
	SwapchainImageSet	the swapchain handle, its images and one view per image
	FrameSyncPool		N frame slots of (image available, render finished, in flight) primitives
				plus the table of fences which last used each swapchain image
	PresentationPipeline	render pass, pipeline layout, graphics pipeline and framebuffers
	FramePresenter		the per frame state machine: acquire, submit, present, advance, recreate

The components never call Vulkan directly. They consume the Device, Surface,
Swapchain, Fence, ... interfaces declared in device.go, which are implemented
over github.com/vulkan-go/vulkan by package vkdevice. Window sizes come from
the Window interface, implemented over GLFW by package glfwwindow.

A frame looks like this:

	1. wait for the in flight fence of the current frame slot
	2. acquire the next image, signaling the slot's image available semaphore
	3. wait for whatever slot last used that image, then claim it for this slot
	4. reset the slot's fence, record the image's command buffer and submit it
	5. present once the slot's render finished semaphore is signaled
	6. advance to the next frame slot

Out of date and suboptimal surfaces are not errors as far as callers are
concerned, they just cause the presenter to recreate the swapchain and
everything derived from it. Running out of memory, losing the device or the
surface, or handing the presenter a misconfigured surface are returned as
errors, see KindOf.

Basic usage:

	presenter, err := vkswap.NewFramePresenter(device, surface, window, &vkswap.Options{
		Pipeline: vkswap.PipelineOptions{Shaders: shaders},
		Record:   record,
	})
	if err != nil {
		return err
	}
	defer presenter.Cleanup()

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := presenter.DrawFrame(); err != nil {
			return err
		}
	}
*/
package vkswap

/*
Package vkdevice implements the device side of vkswap on top of Vulkan, using the
github.com/vulkan-go/vulkan bindings.

It covers what is needed to get from a window to presented frames: creating the
instance, picking a physical device and the queue families able to render to and
present on a surface, opening the logical device, and wrapping the objects a
swapchain and its presentation pipeline are built from.

Objects are thin wrappers which keep the native handle in a field prefixed with
'VK', so applications can always fall back to the native API for anything this
package does not wrap.

A typical setup is

	instance, err := app.CreateInstance()
	surface := vkdevice.NewSurface(instance, window.CreateSurface(instance.VKInstance))
	device, err := vkdevice.SelectDevice(instance, surface, nil)
	presenter, err := vkswap.NewFramePresenter(device, surface, window, options)

The presenter takes ownership of the surface. The device and the instance must be
destroyed by the application after the presenter has been cleaned up.

Native Vulkan terms
	Instance	the vulkan runtime instance
	PhysicalDevice	the physical hardware device
	Device		the logical device, the target of most of the vulkan apis
	Queue		a queue which work (command buffers) may be submitted to
	Surface		the platform window as seen by vulkan
	Swapchain	a grouping of images which are used to display graphical data
	RenderPass	a description of the attachments a set of draw calls renders to
	Framebuffer	the image views bound to the attachments of a render pass
*/
package vkdevice

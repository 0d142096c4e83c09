package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Device      *Device
	Config      vkswap.SwapchainConfig
	VKSwapchain vk.Swapchain
}

var _ vkswap.Swapchain = (*Swapchain)(nil)

// CreateSwapchain creates a swapchain for surface. If the graphics and present
// queues come from different families the images are shared concurrently
// between both.
func (d *Device) CreateSwapchain(surface vkswap.Surface, config *vkswap.SwapchainConfig, old vkswap.Swapchain) (vkswap.Swapchain, error) {
	s, ok := surface.(*Surface)
	if !ok {
		return nil, unsupported("surface", surface)
	}

	oldSwapchain := vk.NullSwapchain
	if old != nil {
		oldSwapchain = old.(*Swapchain).VKSwapchain
	}

	graphics, present := d.queueFamilyIndices()
	createInfo := swapchainCreateInfo(s.VKSurface, config, oldSwapchain, graphics, present)

	var swapchain vk.Swapchain
	if err := check(vk.CreateSwapchain(d.VKDevice, &createInfo, nil, &swapchain), "create swapchain"); err != nil {
		return nil, err
	}
	return &Swapchain{Device: d, Config: *config, VKSwapchain: swapchain}, nil
}

func swapchainCreateInfo(surface vk.Surface, config *vkswap.SwapchainConfig, old vk.Swapchain, graphics, present uint32) vk.SwapchainCreateInfo {
	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    config.MinImageCount,
		ImageFormat:      config.SurfaceFormat.Format,
		ImageColorSpace:  config.SurfaceFormat.ColorSpace,
		ImageExtent:      config.Extent,
		ImageArrayLayers: 1,
		ImageUsage:       config.ImageUsage,
		PreTransform:     config.PreTransform,
		CompositeAlpha:   config.CompositeAlpha,
		PresentMode:      config.PresentMode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}

	if graphics != present {
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{graphics, present}
	} else {
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}
	return createInfo
}

func (s *Swapchain) Images() ([]vkswap.Image, error) {
	var count uint32
	if err := check(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, nil), "get swapchain images"); err != nil {
		return nil, err
	}
	images := make([]vk.Image, count)
	if err := check(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &count, images), "get swapchain images"); err != nil {
		return nil, err
	}

	ret := make([]vkswap.Image, count)
	for i := range ret {
		ret[i] = images[i]
	}
	return ret, nil
}

func (s *Swapchain) AcquireNextImage(signal vkswap.Semaphore) (uint32, vkswap.Status, error) {
	var index uint32
	ret := vk.AcquireNextImage(s.Device.VKDevice, s.VKSwapchain, vk.MaxUint64,
		signal.(*Semaphore).VKSemaphore, vk.NullFence, &index)
	st, err := status(ret, "acquire next image")
	return index, st, err
}

func (s *Swapchain) Destroy() {
	if s.VKSwapchain == vk.NullSwapchain {
		return
	}
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
	s.VKSwapchain = vk.NullSwapchain
}

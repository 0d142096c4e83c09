package vkdevice

import (
	"testing"

	"github.com/celer/vkswap"
	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func testConfig() *vkswap.SwapchainConfig {
	return &vkswap.SwapchainConfig{
		SurfaceFormat:  vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		PresentMode:    vk.PresentModeMailbox,
		MinImageCount:  3,
		Extent:         vk.Extent2D{Width: 1280, Height: 720},
		CompositeAlpha: vk.CompositeAlphaOpaqueBit,
		PreTransform:   vk.SurfaceTransformIdentityBit,
		ImageUsage:     vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
	}
}

func TestSwapchainCreateInfo_Exclusive(t *testing.T) {
	assert := assert.New(t)

	info := swapchainCreateInfo(vk.NullSurface, testConfig(), vk.NullSwapchain, 0, 0)

	assert.Equal(vk.StructureTypeSwapchainCreateInfo, info.SType)
	assert.Equal(uint32(3), info.MinImageCount)
	assert.Equal(vk.FormatB8g8r8a8Srgb, info.ImageFormat)
	assert.Equal(vk.ColorSpaceSrgbNonlinear, info.ImageColorSpace)
	assert.Equal(uint32(1280), info.ImageExtent.Width)
	assert.Equal(uint32(720), info.ImageExtent.Height)
	assert.Equal(uint32(1), info.ImageArrayLayers)
	assert.Equal(vk.PresentModeMailbox, info.PresentMode)
	assert.Equal(vk.CompositeAlphaOpaqueBit, info.CompositeAlpha)
	assert.Equal(vk.SurfaceTransformIdentityBit, info.PreTransform)
	assert.Equal(vk.Bool32(vk.True), info.Clipped)
	assert.Equal(vk.NullSwapchain, info.OldSwapchain)

	assert.Equal(vk.SharingModeExclusive, info.ImageSharingMode)
	assert.Equal(uint32(0), info.QueueFamilyIndexCount)
	assert.Empty(info.PQueueFamilyIndices)
}

func TestSwapchainCreateInfo_Concurrent(t *testing.T) {
	assert := assert.New(t)

	info := swapchainCreateInfo(vk.NullSurface, testConfig(), vk.NullSwapchain, 0, 2)

	assert.Equal(vk.SharingModeConcurrent, info.ImageSharingMode)
	assert.Equal(uint32(2), info.QueueFamilyIndexCount)
	assert.Equal([]uint32{0, 2}, info.PQueueFamilyIndices)
}

func TestSwapchain_DestroyNull(t *testing.T) {
	s := &Swapchain{Device: &Device{}, VKSwapchain: vk.NullSwapchain}
	s.Destroy()
	assert.Equal(t, vk.NullSwapchain, s.VKSwapchain)
}

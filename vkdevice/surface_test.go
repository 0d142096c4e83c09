package vkdevice

import (
	"testing"

	"github.com/celer/vkswap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestConvertCapabilities(t *testing.T) {
	assert := assert.New(t)

	caps := &vk.SurfaceCapabilities{
		MinImageCount:           2,
		MaxImageCount:           0,
		CurrentExtent:           vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent:          vk.Extent2D{Width: 1, Height: 1},
		MaxImageExtent:          vk.Extent2D{Width: 8192, Height: 8192},
		SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
		CurrentTransform:        vk.SurfaceTransformIdentityBit,
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		SupportedUsageFlags:     vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
	}
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	modes := []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate}

	c := convertCapabilities(caps, formats, modes)
	assert.True(c.ExtentUndefined())
	assert.Equal(uint32(2), c.MinImageCount)
	assert.Equal(uint32(0), c.MaxImageCount)
	assert.Equal(uint32(8192), c.MaxExtent.Width)
	assert.True(c.SupportsTransform(vk.SurfaceTransformIdentityBit))
	assert.True(c.SupportsCompositeAlpha(vk.CompositeAlphaOpaqueBit))
	assert.True(c.SupportsFormat(vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}))
	assert.True(c.SupportsPresentMode(vk.PresentModeImmediate))
	assert.False(c.SupportsPresentMode(vk.PresentModeMailbox))

	// The result does not share memory with the query buffers.
	modes[0] = vk.PresentModeMailbox
	assert.Equal(vk.PresentModeFifo, c.PresentModes[0])

	config, err := vkswap.NewSwapchainConfig(c, 1024, 768, nil)
	require.NoError(t, err)
	assert.Equal(vk.Extent2D{Width: 1024, Height: 768}, config.Extent)
	assert.Equal(vk.FormatB8g8r8a8Srgb, config.SurfaceFormat.Format)
	assert.Equal(vk.PresentModeFifo, config.PresentMode)
	assert.Equal(uint32(3), config.MinImageCount)
}

func TestSurface_CapabilitiesWithoutDevice(t *testing.T) {
	s := NewSurface(&Instance{}, vk.NullSurface)
	_, err := s.Capabilities()
	assert.ErrorIs(t, err, vkswap.ErrNotCreated)

	// Destroying a null surface is a no-op.
	s.Destroy()
}

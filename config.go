package vkswap

import (
	"fmt"
	"log"

	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/exp/constraints"
)

// compositeAlphaOrder is the preference order for the composite alpha mode.
var compositeAlphaOrder = []vk.CompositeAlphaFlagBits{
	vk.CompositeAlphaOpaqueBit,
	vk.CompositeAlphaPreMultipliedBit,
	vk.CompositeAlphaPostMultipliedBit,
	vk.CompositeAlphaInheritBit,
}

// SwapchainConfig is the set of parameters a swapchain is created with.
// It is computed fresh for every (re)creation and never modified afterwards.
type SwapchainConfig struct {
	SurfaceFormat  vk.SurfaceFormat
	PresentMode    vk.PresentMode
	MinImageCount  uint32
	Extent         vk.Extent2D
	CompositeAlpha vk.CompositeAlphaFlagBits
	PreTransform   vk.SurfaceTransformFlagBits
	ImageUsage     vk.ImageUsageFlags
}

func (c *SwapchainConfig) String() string {
	return fmt.Sprintf("{ Format: %d ColorSpace: %d PresentMode: %d MinImageCount: %d Extent: %dx%d }",
		c.SurfaceFormat.Format, c.SurfaceFormat.ColorSpace, c.PresentMode, c.MinImageCount,
		c.Extent.Width, c.Extent.Height)
}

// NewSwapchainConfig chooses swapchain parameters from caps, the window's
// framebuffer size and opts. It returns ErrZeroExtent if the resolved extent
// has no area, which happens while a window is minimized.
func NewSwapchainConfig(caps *SurfaceCapabilities, width, height int, opts *Options) (*SwapchainConfig, error) {
	opts = opts.withDefaults()

	if len(caps.Formats) == 0 {
		return nil, ErrNoSurfaceFormats
	}

	extent := chooseExtent(caps, width, height)
	if extent.Width == 0 || extent.Height == 0 {
		return nil, ErrZeroExtent
	}

	alpha, ok := chooseCompositeAlpha(caps)
	if !ok {
		return nil, ErrNoCompositeAlpha
	}

	return &SwapchainConfig{
		SurfaceFormat:  chooseSurfaceFormat(caps, opts.PreferredFormats, opts.Logger),
		PresentMode:    choosePresentMode(caps, opts.PreferredPresentModes, opts.Logger),
		MinImageCount:  chooseImageCount(caps, opts.DesiredImageCount),
		Extent:         extent,
		CompositeAlpha: alpha,
		PreTransform:   choosePreTransform(caps),
		ImageUsage:     vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
	}, nil
}

func chooseSurfaceFormat(caps *SurfaceCapabilities, preferred []vk.SurfaceFormat, logger *log.Logger) vk.SurfaceFormat {
	if caps.AnyFormat() {
		return preferred[0]
	}
	for _, f := range preferred {
		if i := caps.formatIndex(f); i >= 0 {
			return caps.Formats[i]
		}
	}
	fallback := caps.Formats[0]
	logger.Printf("no preferred surface format supported, using format %d color space %d",
		fallback.Format, fallback.ColorSpace)
	return fallback
}

func choosePresentMode(caps *SurfaceCapabilities, preferred []vk.PresentMode, logger *log.Logger) vk.PresentMode {
	for _, m := range preferred {
		if caps.SupportsPresentMode(m) {
			return m
		}
	}
	logger.Printf("no preferred present mode supported, using FIFO")
	return vk.PresentModeFifo
}

func chooseImageCount(caps *SurfaceCapabilities, desired int) uint32 {
	max := int64(vk.MaxUint32)
	if caps.MaxImageCount != 0 {
		max = int64(caps.MaxImageCount)
	}
	count := int64(caps.MinImageCount) + 1
	if desired > 0 {
		count = int64(desired)
	}
	return uint32(clamp(count, int64(caps.MinImageCount), max))
}

func chooseExtent(caps *SurfaceCapabilities, width, height int) vk.Extent2D {
	if !caps.ExtentUndefined() {
		return vk.Extent2D{Width: caps.CurrentExtent.Width, Height: caps.CurrentExtent.Height}
	}
	if width <= 0 || height <= 0 {
		return vk.Extent2D{}
	}
	return vk.Extent2D{
		Width:  clamp(uint32(width), caps.MinExtent.Width, caps.MaxExtent.Width),
		Height: clamp(uint32(height), caps.MinExtent.Height, caps.MaxExtent.Height),
	}
}

func chooseCompositeAlpha(caps *SurfaceCapabilities) (vk.CompositeAlphaFlagBits, bool) {
	for _, a := range compositeAlphaOrder {
		if caps.SupportsCompositeAlpha(a) {
			return a, true
		}
	}
	return 0, false
}

func choosePreTransform(caps *SurfaceCapabilities) vk.SurfaceTransformFlagBits {
	if caps.SupportsTransform(vk.SurfaceTransformIdentityBit) {
		return vk.SurfaceTransformIdentityBit
	}
	return caps.CurrentTransform
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

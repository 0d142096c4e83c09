package vkswap

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/exp/slices"
)

// SurfaceCapabilities describes what a device/surface pair supports.
type SurfaceCapabilities struct {
	// CurrentExtent is the surface size. A width of vk.MaxUint32 means
	// the surface size is determined by the swapchain extent, see
	// ExtentUndefined.
	CurrentExtent vk.Extent2D
	MinExtent     vk.Extent2D
	MaxExtent     vk.Extent2D

	MinImageCount uint32
	// MaxImageCount of 0 means there is no upper bound.
	MaxImageCount uint32

	SupportedTransforms     vk.SurfaceTransformFlags
	CurrentTransform        vk.SurfaceTransformFlagBits
	SupportedCompositeAlpha vk.CompositeAlphaFlags
	SupportedUsage          vk.ImageUsageFlags

	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// QueryCapabilities queries and validates the capabilities of surface.
// A surface without formats or present modes is reported as an error rather
// than silently defaulted.
func QueryCapabilities(surface Surface) (*SurfaceCapabilities, error) {
	caps, err := surface.Capabilities()
	if err != nil {
		return nil, errors.Wrap(err, "query surface capabilities")
	}
	if len(caps.Formats) == 0 {
		return nil, ErrNoSurfaceFormats
	}
	if len(caps.PresentModes) == 0 {
		return nil, ErrNoPresentModes
	}
	return caps, nil
}

// ExtentUndefined reports whether the surface lets the swapchain pick its
// extent.
func (c *SurfaceCapabilities) ExtentUndefined() bool {
	return c.CurrentExtent.Width == vk.MaxUint32
}

// SupportsFormat reports whether the format and color space pair is supported.
func (c *SurfaceCapabilities) SupportsFormat(f vk.SurfaceFormat) bool {
	return c.formatIndex(f) >= 0
}

func (c *SurfaceCapabilities) formatIndex(f vk.SurfaceFormat) int {
	return slices.IndexFunc(c.Formats, func(s vk.SurfaceFormat) bool {
		return s.Format == f.Format && s.ColorSpace == f.ColorSpace
	})
}

// AnyFormat reports whether the surface places no restriction on the format,
// which drivers signal with a single undefined entry.
func (c *SurfaceCapabilities) AnyFormat() bool {
	return len(c.Formats) == 1 && c.Formats[0].Format == vk.FormatUndefined
}

func (c *SurfaceCapabilities) SupportsPresentMode(m vk.PresentMode) bool {
	return slices.Contains(c.PresentModes, m)
}

func (c *SurfaceCapabilities) SupportsTransform(t vk.SurfaceTransformFlagBits) bool {
	return c.SupportedTransforms&vk.SurfaceTransformFlags(t) != 0
}

func (c *SurfaceCapabilities) SupportsCompositeAlpha(a vk.CompositeAlphaFlagBits) bool {
	return c.SupportedCompositeAlpha&vk.CompositeAlphaFlags(a) != 0
}

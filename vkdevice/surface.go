package vkdevice

import (
	"github.com/celer/vkswap"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Surface is a window surface. It implements vkswap.Surface once a physical
// device has been selected for it.
type Surface struct {
	Instance       *Instance
	PhysicalDevice *PhysicalDevice
	VKSurface      vk.Surface
}

var _ vkswap.Surface = (*Surface)(nil)

// NewSurface wraps a surface created by the window system, e.g. with
// glfw's CreateWindowSurface.
func NewSurface(instance *Instance, surface vk.Surface) *Surface {
	return &Surface{Instance: instance, VKSurface: surface}
}

func (s *Surface) Capabilities() (*vkswap.SurfaceCapabilities, error) {
	if s.PhysicalDevice == nil {
		return nil, errors.Wrap(vkswap.ErrNotCreated, "surface has no physical device")
	}
	caps, err := s.PhysicalDevice.SurfaceCapabilities(s.VKSurface)
	if err != nil {
		return nil, err
	}
	formats, err := s.PhysicalDevice.SurfaceFormats(s.VKSurface)
	if err != nil {
		return nil, err
	}
	modes, err := s.PhysicalDevice.SurfacePresentModes(s.VKSurface)
	if err != nil {
		return nil, err
	}
	return convertCapabilities(caps, formats, modes), nil
}

func convertCapabilities(caps *vk.SurfaceCapabilities, formats []vk.SurfaceFormat, modes []vk.PresentMode) *vkswap.SurfaceCapabilities {
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	ret := &vkswap.SurfaceCapabilities{
		CurrentExtent:           caps.CurrentExtent,
		MinExtent:               caps.MinImageExtent,
		MaxExtent:               caps.MaxImageExtent,
		MinImageCount:           caps.MinImageCount,
		MaxImageCount:           caps.MaxImageCount,
		SupportedTransforms:     caps.SupportedTransforms,
		CurrentTransform:        caps.CurrentTransform,
		SupportedCompositeAlpha: caps.SupportedCompositeAlpha,
		SupportedUsage:          caps.SupportedUsageFlags,
		Formats:                 make([]vk.SurfaceFormat, len(formats)),
		PresentModes:            append([]vk.PresentMode(nil), modes...),
	}
	for i, f := range formats {
		f.Deref()
		ret.Formats[i] = vk.SurfaceFormat{Format: f.Format, ColorSpace: f.ColorSpace}
	}
	return ret
}

func (s *Surface) Destroy() {
	if s.VKSurface == vk.NullSurface {
		return
	}
	vk.DestroySurface(s.Instance.VKInstance, s.VKSurface, nil)
	s.VKSurface = vk.NullSurface
}

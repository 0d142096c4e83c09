package vkdevice

import (
	"log"

	"github.com/celer/vkswap"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Options controls device selection.
type Options struct {
	// DeviceName selects the physical device by name, the first suitable
	// discrete device is used otherwise.
	DeviceName string

	// EnabledExtensions are device extensions enabled next to the swapchain
	// extension.
	EnabledExtensions []string

	// EnabledLayers are device layers, only relevant for old loaders.
	EnabledLayers []string
}

// candidate is a physical device able to present to a surface.
type candidate struct {
	device   *PhysicalDevice
	graphics *QueueFamily
	present  *QueueFamily
}

// SelectDevice picks the physical device which will render to surface and
// opens a logical device on it with a graphics and a present queue. A device
// qualifies if it supports the swapchain extension and reports at least one
// format and present mode for the surface. Discrete devices are preferred.
//
// The physical device of surface is set to the selected device.
func SelectDevice(instance *Instance, surface *Surface, options *Options) (*Device, error) {
	if options == nil {
		options = &Options{}
	}

	devices, err := instance.PhysicalDevices()
	if err != nil {
		return nil, errors.Wrap(err, "get physical devices")
	}
	if len(devices) == 0 {
		return nil, errors.New("vkdevice: no vulkan devices found")
	}

	extensions := append([]string{SwapchainExtension}, options.EnabledExtensions...)

	var candidates []*candidate
	for _, pd := range devices {
		if options.DeviceName != "" && pd.DeviceName != options.DeviceName {
			continue
		}
		c, reason := qualify(pd, surface, extensions)
		if c == nil {
			log.Printf("skipping device %s: %s", pd, reason)
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil, errors.Wrapf(vkswap.ErrMissingQueueFamily, "select device among %d", len(devices))
	}

	best := candidates[0]
	if i := slices.IndexFunc(candidates, func(c *candidate) bool { return c.device.IsDiscrete() }); i >= 0 {
		best = candidates[i]
	}

	return openDevice(instance, surface, best, &CreateDeviceOptions{
		EnabledExtensions: extensions,
		EnabledLayers:     options.EnabledLayers,
	})
}

func qualify(pd *PhysicalDevice, surface *Surface, extensions []string) (*candidate, string) {
	if !pd.SupportsExtensions(extensions...) {
		return nil, "missing device extensions"
	}

	queues := pd.QueueFamilies()
	c := &candidate{device: pd}
	if both := queues.FilterGraphicsAndPresent(surface.VKSurface); len(both) > 0 {
		c.graphics, c.present = both[0], both[0]
	} else {
		graphics := queues.FilterGraphics()
		present := queues.FilterPresent(surface.VKSurface)
		if len(graphics) == 0 || len(present) == 0 {
			return nil, "no graphics and present queue families"
		}
		c.graphics, c.present = graphics[0], present[0]
	}

	formats, err := pd.SurfaceFormats(surface.VKSurface)
	if err != nil || len(formats) == 0 {
		return nil, "no surface formats"
	}
	modes, err := pd.SurfacePresentModes(surface.VKSurface)
	if err != nil || len(modes) == 0 {
		return nil, "no present modes"
	}
	return c, ""
}

func openDevice(instance *Instance, surface *Surface, c *candidate, options *CreateDeviceOptions) (*Device, error) {
	families := QueueFamilySlice{c.graphics}
	if c.present.Index != c.graphics.Index {
		families = append(families, c.present)
	}

	ldevice, err := c.device.CreateLogicalDevice(families, options)
	if err != nil {
		return nil, errors.Wrapf(err, "open device %s", c.device)
	}

	d := &Device{
		Instance:       instance,
		PhysicalDevice: c.device,
		VKDevice:       ldevice,
	}
	d.GraphicsQueue = d.GetQueue(c.graphics)
	d.PresentQueue = d.GetQueue(c.present)

	d.PipelineCache, err = d.CreatePipelineCache()
	if err != nil {
		d.Destroy()
		return nil, err
	}

	surface.PhysicalDevice = c.device
	log.Printf("using device %s", d)
	return d, nil
}

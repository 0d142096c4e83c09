// Command swapinfo prints what every Vulkan device supports for presenting to
// a window surface, and the swapchain configuration that would be chosen.
package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/celer/vkswap"
	"github.com/celer/vkswap/glfwwindow"
	"github.com/celer/vkswap/vkdevice"
	gu "github.com/docker/go-units"
	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/closer"
)

func init() {
	runtime.LockOSThread()
}

var (
	width  = flag.Int("width", 800, "window width used to resolve the extent")
	height = flag.Int("height", 600, "window height used to resolve the extent")
	images = flag.Int("images", 0, "desired swapchain image count")
	frames = flag.Int("frames", vkswap.MaxFramesInFlight, "frames in flight")
)

func orExit(err error) {
	if err != nil {
		log.Printf("swapinfo: %v", err)
		closer.Exit(1)
	}
}

func list(title string, data []string) {
	fmt.Printf("%s\n", title)
	fmt.Printf("-----------------------------\n")
	for _, d := range data {
		fmt.Printf("\t%s\n", d)
	}
	fmt.Printf("\n")
}

func showCapabilities(caps *vkswap.SurfaceCapabilities) {
	fmt.Printf("\n\tSurface\n")
	if caps.ExtentUndefined() {
		fmt.Printf("\t\tCurrentExtent\tdefined by swapchain\n")
	} else {
		fmt.Printf("\t\tCurrentExtent\t%dx%d\n", caps.CurrentExtent.Width, caps.CurrentExtent.Height)
	}
	fmt.Printf("\t\tMinExtent\t%dx%d\n", caps.MinExtent.Width, caps.MinExtent.Height)
	fmt.Printf("\t\tMaxExtent\t%dx%d\n", caps.MaxExtent.Width, caps.MaxExtent.Height)
	if caps.MaxImageCount == 0 {
		fmt.Printf("\t\tImageCount\t%d..unbounded\n", caps.MinImageCount)
	} else {
		fmt.Printf("\t\tImageCount\t%d..%d\n", caps.MinImageCount, caps.MaxImageCount)
	}
	fmt.Printf("\t\tTransforms\t%x (current %x)\n", caps.SupportedTransforms, caps.CurrentTransform)
	fmt.Printf("\t\tCompositeAlpha\t%x\n", caps.SupportedCompositeAlpha)

	fmt.Printf("\n\tFormats\n")
	fmt.Printf("\t\tFormat\tColorSpace\n")
	for _, f := range caps.Formats {
		fmt.Printf("\t\t%d\t%d\n", f.Format, f.ColorSpace)
	}

	fmt.Printf("\n\tPresent Modes\n")
	for _, m := range caps.PresentModes {
		fmt.Printf("\t\t%s\n", presentModeName(m))
	}
}

func presentModeName(m vk.PresentMode) string {
	switch m {
	case vk.PresentModeImmediate:
		return "immediate"
	case vk.PresentModeMailbox:
		return "mailbox"
	case vk.PresentModeFifo:
		return "fifo"
	case vk.PresentModeFifoRelaxed:
		return "fifo relaxed"
	}
	return fmt.Sprintf("unknown (%d)", m)
}

func showMemoryHeaps(pd *vkdevice.PhysicalDevice) {
	fmt.Printf("\n\tHeaps\n")
	for _, h := range pd.MemoryHeaps() {
		local := ""
		if h.DeviceLocal {
			local = "device local"
		}
		fmt.Printf("\t\t%s\t%s\n", gu.BytesSize(float64(h.Size)), local)
	}
}

func showDevice(pd *vkdevice.PhysicalDevice, surface *vkdevice.Surface, opts *vkswap.Options) {
	fmt.Printf("\n%s\n", pd.DeviceName)
	fmt.Printf("-----------------------------\n")

	fmt.Printf("\n\tQueue Families\n")
	for _, qf := range pd.QueueFamilies() {
		fmt.Printf("\t\t%s present: %v\n", qf, qf.SupportsPresent(surface.VKSurface))
	}
	fmt.Printf("\n\tSwapchain extension: %v\n", pd.SupportsExtensions(vkdevice.SwapchainExtension))
	showMemoryHeaps(pd)

	surface.PhysicalDevice = pd
	caps, err := vkswap.QueryCapabilities(surface)
	if err != nil {
		fmt.Printf("\n\tNot usable for presentation: %v (%s)\n", err, vkswap.KindOf(err))
		return
	}
	showCapabilities(caps)

	config, err := vkswap.NewSwapchainConfig(caps, *width, *height, opts)
	if err != nil {
		fmt.Printf("\n\tNo swapchain configuration: %v\n", err)
		return
	}
	fmt.Printf("\n\tChosen Configuration\n")
	fmt.Printf("\t\t%s\n", config)
	fmt.Printf("\t\tPresentMode\t%s\n", presentModeName(config.PresentMode))
	fmt.Printf("\t\tFramesInFlight\t%d\n", opts.FramesInFlight)
}

func main() {
	flag.Parse()
	defer closer.Close()

	orExit(glfwwindow.Init())
	closer.Bind(glfwwindow.Terminate)

	window, err := glfwwindow.New(&glfwwindow.Options{Width: *width, Height: *height, Title: "swapinfo", Fixed: true, Hidden: true})
	orExit(err)
	closer.Bind(window.Destroy)

	extensions, err := vkdevice.SupportedExtensions()
	orExit(err)
	list("Extensions", extensions)

	layers, err := vkdevice.SupportedLayers()
	orExit(err)
	list("Layers", layers)

	app := &vkdevice.App{Name: "swapinfo"}
	for _, ext := range window.RequiredExtensions() {
		_, err := app.EnableExtension(ext)
		orExit(err)
	}
	instance, err := app.CreateInstance()
	orExit(err)
	closer.Bind(instance.Destroy)

	vkSurface, err := window.CreateSurface(instance.VKInstance)
	orExit(err)
	surface := vkdevice.NewSurface(instance, vkSurface)
	closer.Bind(surface.Destroy)

	physicalDevices, err := instance.PhysicalDevices()
	orExit(err)

	opts := &vkswap.Options{DesiredImageCount: *images, FramesInFlight: *frames}
	for _, pd := range physicalDevices {
		showDevice(pd, surface, opts)
	}
}

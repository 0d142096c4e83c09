// Command triangle draws a spinning triangle, recreating the swapchain as the
// window is resized or minimized.
package main

//go:generate glslangValidator -V -o shaders/tri.vert.spv shaders/tri.vert
//go:generate glslangValidator -V -o shaders/tri.frag.spv shaders/tri.frag

import (
	"flag"
	"log"
	"runtime"
	"time"

	"github.com/celer/vkswap"
	"github.com/celer/vkswap/glfwwindow"
	"github.com/celer/vkswap/vkdevice"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/closer"
	lin "github.com/xlab/linmath"
)

func init() {
	runtime.LockOSThread()
}

var (
	width          = flag.Int("width", 800, "initial window width")
	height         = flag.Int("height", 600, "initial window height")
	vertShader     = flag.String("vert", "shaders/tri.vert.spv", "vertex shader SPIR-V")
	fragShader     = flag.String("frag", "shaders/tri.frag.spv", "fragment shader SPIR-V")
	presentMode    = flag.String("present", "mailbox", "preferred present mode: fifo, mailbox, immediate or relaxed")
	framesInFlight = flag.Int("frames", vkswap.MaxFramesInFlight, "frames in flight")
	images         = flag.Int("images", 0, "desired swapchain image count, 0 for the surface minimum plus one")
	debug          = flag.Bool("debug", false, "enable the validation layer")
)

var presentModes = map[string]vk.PresentMode{
	"fifo":      vk.PresentModeFifo,
	"mailbox":   vk.PresentModeMailbox,
	"immediate": vk.PresentModeImmediate,
	"relaxed":   vk.PresentModeFifoRelaxed,
}

var clearColor = [4]float32{0.1, 0.1, 0.12, 1}

func orExit(err error) {
	if err != nil {
		log.Printf("triangle: %v", err)
		closer.Exit(1)
	}
}

func main() {
	flag.Parse()
	defer closer.Close()

	mode, ok := presentModes[*presentMode]
	if !ok {
		log.Printf("unknown present mode %q", *presentMode)
		closer.Exit(2)
	}

	orExit(glfwwindow.Init())
	closer.Bind(glfwwindow.Terminate)

	window, err := glfwwindow.New(&glfwwindow.Options{Width: *width, Height: *height, Title: "triangle"})
	orExit(err)
	closer.Bind(window.Destroy)

	app := &vkdevice.App{
		Name:       "triangle",
		EngineName: "vkswap",
		Version:    vkdevice.Version{Major: 0, Minor: 1},
	}
	for _, ext := range window.RequiredExtensions() {
		_, err := app.EnableExtension(ext)
		orExit(err)
	}
	if *debug {
		orExit(app.EnableDebugging())
	}

	instance, err := app.CreateInstance()
	orExit(err)
	closer.Bind(instance.Destroy)

	vkSurface, err := window.CreateSurface(instance.VKInstance)
	orExit(err)
	surface := vkdevice.NewSurface(instance, vkSurface)

	device, err := vkdevice.SelectDevice(instance, surface, nil)
	if err != nil {
		surface.Destroy()
		orExit(err)
	}
	closer.Bind(device.Destroy)

	vert, err := vkdevice.LoadShader(*vertShader, vk.ShaderStageVertexBit)
	orExit(err)
	frag, err := vkdevice.LoadShader(*fragShader, vk.ShaderStageFragmentBit)
	orExit(err)

	start := time.Now()
	presenter, err := vkswap.NewFramePresenter(device, surface, window, &vkswap.Options{
		FramesInFlight:        *framesInFlight,
		DesiredImageCount:     *images,
		PreferredPresentModes: []vk.PresentMode{mode},
		Pipeline: vkswap.PipelineOptions{
			Shaders: []vkswap.ShaderStage{vert, frag},
			PushConstants: []vk.PushConstantRange{{
				StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
				Offset:     0,
				Size:       16 * 4,
			}},
			Configure: func(state *vkswap.PipelineState) {
				state.CullMode = vk.CullModeNone
			},
		},
		Record: func(cmd vkswap.CommandBuffer, target *vkswap.FrameTarget) error {
			return record(cmd.(*vkdevice.CommandBuffer), target, time.Since(start))
		},
	})
	orExit(err)
	closer.Bind(func() {
		if err := presenter.Cleanup(); err != nil {
			log.Printf("cleanup: %v", err)
		}
		log.Printf("stats: %+v", presenter.Stats())
	})

	window.Attach(presenter)
	presenter.OnRecreate(func(t *vkswap.FrameTargets) {
		log.Printf("swapchain recreated: %dx%d, %d images", t.Extent.Width, t.Extent.Height, t.ImageCount)
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		window.WaitWhileMinimized()
		if err := presenter.DrawFrame(); err != nil {
			log.Printf("draw frame failed (%s): %v", vkswap.KindOf(err), err)
			closer.Exit(1)
		}
	}
}

func record(cmd *vkdevice.CommandBuffer, target *vkswap.FrameTarget, elapsed time.Duration) error {
	if err := cmd.Begin(); err != nil {
		return err
	}
	cmd.BeginRenderPass(target, clearColor)
	cmd.BindGraphicsPipeline(target.Pipeline)
	cmd.PushConstants(target.PipelineLayout, vk.ShaderStageFlags(vk.ShaderStageVertexBit), 0,
		transform(target.Extent, elapsed))
	cmd.Draw(3, 1, 0, 0)
	cmd.EndRenderPass()
	return cmd.End()
}

// transform returns the column major matrix rotating the triangle, corrected
// for the aspect ratio of extent.
func transform(extent vk.Extent2D, elapsed time.Duration) []float32 {
	aspect := float32(extent.Width) / float32(extent.Height)

	var identity, model, proj, mvp lin.Mat4x4
	identity.Identity()
	model.Rotate(&identity, 0, 0, 1, lin.DegreesToRadians(float32(elapsed.Seconds()*90)))
	proj.Ortho(-aspect, aspect, -1, 1, -1, 1)
	mvp.Mult(&proj, &model)

	ret := make([]float32, 0, 16)
	for _, col := range mvp {
		ret = append(ret, col[:]...)
	}
	return ret
}

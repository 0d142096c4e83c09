package vkswap

import (
	"log"

	vk "github.com/vulkan-go/vulkan"
)

// MaxFramesInFlight is the default number of frame slots.
const MaxFramesInFlight = 2

// DefaultPreferredFormats is the surface format preference used when
// Options.PreferredFormats is empty.
var DefaultPreferredFormats = []vk.SurfaceFormat{
	{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
}

// DefaultPreferredPresentModes is the present mode preference used when
// Options.PreferredPresentModes is empty. FIFO is always available and is
// used when none of the preferred modes are.
var DefaultPreferredPresentModes = []vk.PresentMode{
	vk.PresentModeMailbox,
}

// RecordFunc records the commands for one frame into cmd. It is called after
// the target image is known to be idle, so cmd may be reset and rewritten.
type RecordFunc func(cmd CommandBuffer, target *FrameTarget) error

// Options configures a FramePresenter.
type Options struct {
	// FramesInFlight is the number of frame slots, defaults to
	// MaxFramesInFlight.
	FramesInFlight int

	// DesiredImageCount is the requested swapchain image count. It is
	// clamped into the surface's supported range. Zero requests one image
	// more than the surface minimum.
	DesiredImageCount int

	// PreferredFormats in order of preference. If none is supported the
	// first format the surface reports is used.
	PreferredFormats []vk.SurfaceFormat

	// PreferredPresentModes in order of preference, falling back to FIFO.
	PreferredPresentModes []vk.PresentMode

	Pipeline PipelineOptions

	// Record is called once per frame to record the frame's commands.
	Record RecordFunc

	// Logger receives diagnostics, defaults to the standard logger.
	Logger *log.Logger
}

// PipelineOptions configures the PresentationPipeline.
type PipelineOptions struct {
	Shaders []ShaderStage

	// SetLayouts and PushConstants are passed through to the pipeline
	// layout, which is empty if both are nil.
	SetLayouts    []vk.DescriptorSetLayout
	PushConstants []vk.PushConstantRange

	// Configure, if set, may adjust the fixed function state before the
	// pipeline is created.
	Configure func(state *PipelineState)
}

func (o *Options) withDefaults() *Options {
	var ret Options
	if o != nil {
		ret = *o
	}
	if ret.FramesInFlight <= 0 {
		ret.FramesInFlight = MaxFramesInFlight
	}
	if len(ret.PreferredFormats) == 0 {
		ret.PreferredFormats = DefaultPreferredFormats
	}
	if len(ret.PreferredPresentModes) == 0 {
		ret.PreferredPresentModes = DefaultPreferredPresentModes
	}
	if ret.Logger == nil {
		ret.Logger = log.Default()
	}
	return &ret
}

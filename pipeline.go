package vkswap

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// ShaderStage is one compiled SPIR-V shader of the graphics pipeline.
type ShaderStage struct {
	Stage vk.ShaderStageFlagBits
	// Code is the SPIR-V bytecode, its length must be a multiple of 4.
	Code []byte
	// EntryPoint defaults to "main".
	EntryPoint string
}

// PipelineLayoutDesc describes the resources a pipeline layout exposes.
type PipelineLayoutDesc struct {
	SetLayouts    []vk.DescriptorSetLayout
	PushConstants []vk.PushConstantRange
}

// PipelineState is the fixed function state of the graphics pipeline.
type PipelineState struct {
	Shaders []ShaderStage

	// Topology defaults to vk.PrimitiveTopologyTriangleList
	Topology vk.PrimitiveTopology

	// PolygonMode defaults to vk.PolygonModeFill
	PolygonMode vk.PolygonMode

	// CullMode defaults to vk.CullModeBackBit
	CullMode vk.CullModeFlagBits

	// FrontFace defaults to vk.FrontFaceClockwise
	FrontFace vk.FrontFace

	LineWidth float32

	// Viewport and Scissor cover the whole swapchain extent.
	Viewport vk.Viewport
	Scissor  vk.Rect2D

	Samples vk.SampleCountFlagBits

	// BlendAttachment is the state of the single color attachment, writing
	// all components with blending disabled by default.
	BlendAttachment vk.PipelineColorBlendAttachmentState

	DynamicStates []vk.DynamicState
}

// NewPipelineState returns the default fixed function state for extent.
func NewPipelineState(extent vk.Extent2D, shaders []ShaderStage) *PipelineState {
	return &PipelineState{
		Shaders:     shaders,
		Topology:    vk.PrimitiveTopologyTriangleList,
		PolygonMode: vk.PolygonModeFill,
		CullMode:    vk.CullModeBackBit,
		FrontFace:   vk.FrontFaceClockwise,
		LineWidth:   1.0,
		Viewport: vk.Viewport{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0.0,
			MaxDepth: 1.0,
		},
		Scissor: vk.Rect2D{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: vk.Extent2D{Width: extent.Width, Height: extent.Height},
		},
		Samples: vk.SampleCount1Bit,
		BlendAttachment: vk.PipelineColorBlendAttachmentState{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			BlendEnable:    vk.False,
		},
	}
}

// RenderPassCreateInfo returns a render pass with a single color attachment
// of format, cleared on load and transitioned for presentation, and one
// subpass. The external dependency makes the subpass wait for the color
// attachment output stage, where the image available semaphore is waited
// on, before writing to the image.
func RenderPassCreateInfo(format vk.Format) vk.RenderPassCreateInfo {
	attachments := []vk.AttachmentDescription{{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachments := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    colorAttachments,
	}}

	dependencies := []vk.SubpassDependency{{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: 0,
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
	}}

	return vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
		DependencyCount: uint32(len(dependencies)),
		PDependencies:   dependencies,
	}
}

// PresentationPipeline owns the render pass, pipeline layout, graphics
// pipeline and the framebuffers built on a SwapchainImageSet. It is always
// rebuilt as a whole.
type PresentationPipeline struct {
	device Device

	renderPass   RenderPass
	layout       PipelineLayout
	pipeline     Pipeline
	framebuffers []Framebuffer
	views        []ImageView
	extent       vk.Extent2D
	format       vk.Format
}

func NewPresentationPipeline(device Device) *PresentationPipeline {
	return &PresentationPipeline{device: device}
}

// Create builds the render pass for the image set's format, the pipeline
// layout and graphics pipeline for its extent, and one framebuffer per image
// view. On failure everything created so far is destroyed.
func (p *PresentationPipeline) Create(images *SwapchainImageSet, opts *PipelineOptions) error {
	if p.renderPass != nil {
		return ErrAlreadyCreated
	}
	if !images.Created() {
		return errors.Wrap(ErrNotCreated, "create presentation pipeline")
	}
	if opts == nil {
		opts = &PipelineOptions{}
	}

	err := p.create(images, opts)
	if err != nil {
		p.Destroy()
	}
	return err
}

func (p *PresentationPipeline) create(images *SwapchainImageSet, opts *PipelineOptions) error {
	var err error

	p.format = images.Format()
	p.extent = images.Extent()

	info := RenderPassCreateInfo(p.format)
	p.renderPass, err = p.device.CreateRenderPass(&info)
	if err != nil {
		return errors.Wrap(err, "create render pass")
	}

	p.layout, err = p.device.CreatePipelineLayout(&PipelineLayoutDesc{
		SetLayouts:    opts.SetLayouts,
		PushConstants: opts.PushConstants,
	})
	if err != nil {
		return errors.Wrap(err, "create pipeline layout")
	}

	state := NewPipelineState(p.extent, opts.Shaders)
	if opts.Configure != nil {
		opts.Configure(state)
	}
	p.pipeline, err = p.device.CreateGraphicsPipeline(p.renderPass, p.layout, state)
	if err != nil {
		return errors.Wrap(err, "create graphics pipeline")
	}

	views := images.Views()
	p.framebuffers = make([]Framebuffer, len(views))
	p.views = make([]ImageView, len(views))
	for i, view := range views {
		p.framebuffers[i], err = p.device.CreateFramebuffer(p.renderPass, view, p.extent)
		if err != nil {
			return errors.Wrapf(err, "create framebuffer %d", i)
		}
		p.views[i] = view
	}
	return nil
}

// Destroy destroys the framebuffers, the pipeline, the pipeline layout and
// the render pass, in that order. Calling it more than once is fine.
func (p *PresentationPipeline) Destroy() {
	for i, fb := range p.framebuffers {
		if fb != nil {
			fb.Destroy()
			p.framebuffers[i] = nil
		}
	}
	p.framebuffers = nil
	p.views = nil

	if p.pipeline != nil {
		p.pipeline.Destroy()
		p.pipeline = nil
	}
	if p.layout != nil {
		p.layout.Destroy()
		p.layout = nil
	}
	if p.renderPass != nil {
		p.renderPass.Destroy()
		p.renderPass = nil
	}
}

// Created reports whether the pipeline currently holds a render pass.
func (p *PresentationPipeline) Created() bool {
	return p.renderPass != nil
}

func (p *PresentationPipeline) RenderPass() RenderPass {
	return p.renderPass
}

func (p *PresentationPipeline) Layout() PipelineLayout {
	return p.layout
}

func (p *PresentationPipeline) Pipeline() Pipeline {
	return p.pipeline
}

// Framebuffers returns one framebuffer per swapchain image view.
func (p *PresentationPipeline) Framebuffers() []Framebuffer {
	return p.framebuffers
}

// Views returns the image views the framebuffers were built from.
func (p *PresentationPipeline) Views() []ImageView {
	return p.views
}

func (p *PresentationPipeline) Extent() vk.Extent2D {
	return p.extent
}

package vkswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestRenderPassCreateInfo(t *testing.T) {
	assert := assert.New(t)

	info := RenderPassCreateInfo(vk.FormatB8g8r8a8Srgb)

	require.Len(t, info.PAttachments, 1)
	a := info.PAttachments[0]
	assert.Equal(vk.FormatB8g8r8a8Srgb, a.Format)
	assert.Equal(vk.AttachmentLoadOpClear, a.LoadOp)
	assert.Equal(vk.AttachmentStoreOpStore, a.StoreOp)
	assert.Equal(vk.ImageLayoutUndefined, a.InitialLayout)
	assert.Equal(vk.ImageLayoutPresentSrc, a.FinalLayout)

	require.Len(t, info.PSubpasses, 1)
	assert.Equal(uint32(1), info.PSubpasses[0].ColorAttachmentCount)

	require.Len(t, info.PDependencies, 1)
	d := info.PDependencies[0]
	assert.Equal(uint32(vk.SubpassExternal), d.SrcSubpass)
	assert.Equal(vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit), d.SrcStageMask)
	assert.Equal(vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit), d.DstStageMask)
	assert.Equal(vk.AccessFlags(vk.AccessColorAttachmentWriteBit), d.DstAccessMask)
}

func TestNewPipelineState(t *testing.T) {
	assert := assert.New(t)

	state := NewPipelineState(vk.Extent2D{Width: 640, Height: 480}, nil)
	assert.Equal(vk.PrimitiveTopologyTriangleList, state.Topology)
	assert.Equal(vk.PolygonModeFill, state.PolygonMode)
	assert.Equal(vk.CullModeBackBit, state.CullMode)
	assert.Equal(float32(640), state.Viewport.Width)
	assert.Equal(float32(480), state.Viewport.Height)
	assert.Equal(uint32(640), state.Scissor.Extent.Width)
	assert.Equal(vk.SampleCount1Bit, state.Samples)
	assert.Equal(vk.Bool32(vk.False), state.BlendAttachment.BlendEnable)
}

func newTestPipeline(t *testing.T, dev *mockDevice) (*PresentationPipeline, *SwapchainImageSet) {
	set, config := newTestImageSet(t, dev)
	require.NoError(t, set.Create(config, nil))
	return NewPresentationPipeline(dev), set
}

func TestPipeline_CreateDestroy(t *testing.T) {
	assert := assert.New(t)

	dev := newMockDevice()
	p, set := newTestPipeline(t, dev)

	configured := false
	opts := &PipelineOptions{
		PushConstants: []vk.PushConstantRange{{
			StageFlags: vk.ShaderStageFlags(vk.ShaderStageVertexBit),
			Size:       64,
		}},
		Configure: func(state *PipelineState) {
			configured = true
			state.CullMode = vk.CullModeNone
		},
	}
	require.NoError(t, p.Create(set, opts))
	assert.True(configured)
	assert.True(p.Created())
	assert.Equal(vk.CullModeNone, p.Pipeline().(*mockPipeline).state.CullMode)
	assert.Len(p.Layout().(*mockPipelineLayout).desc.PushConstants, 1)
	assert.Equal(set.Extent(), p.Extent())

	require.Len(t, p.Framebuffers(), set.Len())
	for i, fb := range p.Framebuffers() {
		assert.Same(set.Views()[i], fb.(*mockFramebuffer).view)
		assert.Same(p.RenderPass(), fb.(*mockFramebuffer).pass)
	}

	assert.ErrorIs(p.Create(set, opts), ErrAlreadyCreated)

	dev.resetEvents()
	p.Destroy()
	p.Destroy()
	assert.Equal([]string{
		"destroy Framebuffer",
		"destroy Framebuffer",
		"destroy Framebuffer",
		"destroy Pipeline",
		"destroy PipelineLayout",
		"destroy RenderPass",
	}, dev.eventLog())
	assert.Equal(0, dev.doubleDestroys)
	assert.False(p.Created())

	set.Destroy()
}

func TestPipeline_RequiresImageSet(t *testing.T) {
	dev := newMockDevice()
	set, _ := newTestImageSet(t, dev)
	p := NewPresentationPipeline(dev)

	err := p.Create(set, nil)
	assert.ErrorIs(t, err, ErrNotCreated)
	assert.Equal(t, 0, dev.count("CreateRenderPass"))
}

func TestPipeline_FramebufferFailureCleansUp(t *testing.T) {
	dev := newMockDevice()
	p, set := newTestPipeline(t, dev)
	dev.failOn("CreateFramebuffer", 3, ErrOutOfMemory)

	err := p.Create(set, nil)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.False(t, p.Created())

	set.Destroy()
	assert.Equal(t, map[string]int{"Surface": 1}, dev.leaks())
}

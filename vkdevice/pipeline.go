package vkdevice

import (
	"github.com/celer/vkswap"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	pipelineCacheCreate := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var pipelineCache vk.PipelineCache
	if err := check(vk.CreatePipelineCache(d.VKDevice, &pipelineCacheCreate, nil, &pipelineCache), "create pipeline cache"); err != nil {
		return nil, err
	}
	return &PipelineCache{Device: d, VKPipelineCache: pipelineCache}, nil
}

func (p *PipelineCache) Destroy() {
	if p.VKPipelineCache == vk.PipelineCache(vk.NullHandle) {
		return
	}
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
	p.VKPipelineCache = vk.PipelineCache(vk.NullHandle)
}

type Pipeline struct {
	Device     *Device
	VKPipeline vk.Pipeline
}

// CreateGraphicsPipeline creates the graphics pipeline for subpass 0 of pass.
// Shader modules only live for the duration of the call.
func (d *Device) CreateGraphicsPipeline(pass vkswap.RenderPass, layout vkswap.PipelineLayout, state *vkswap.PipelineState) (vkswap.Pipeline, error) {
	stages := make([]vk.PipelineShaderStageCreateInfo, 0, len(state.Shaders))
	for _, shader := range state.Shaders {
		if len(shader.Code) == 0 || len(shader.Code)%4 != 0 {
			return nil, errors.Errorf("create graphics pipeline: invalid bytecode size %d for stage %d", len(shader.Code), shader.Stage)
		}
		module, err := d.CreateShaderModule(shader.Code)
		if err != nil {
			return nil, err
		}
		defer module.Destroy()
		stages = append(stages, module.VKPipelineShaderStageCreateInfo(shader.Stage, shader.EntryPoint))
	}

	info := graphicsPipelineCreateInfo(state, stages,
		pass.(*RenderPass).VKRenderPass, layout.(*PipelineLayout).VKPipelineLayout)

	cache := vk.PipelineCache(vk.NullHandle)
	if d.PipelineCache != nil {
		cache = d.PipelineCache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, 1)
	err := check(vk.CreateGraphicsPipelines(d.VKDevice, cache, 1, []vk.GraphicsPipelineCreateInfo{info}, nil, pipelines), "create graphics pipeline")
	if err != nil {
		return nil, err
	}
	return &Pipeline{Device: d, VKPipeline: pipelines[0]}, nil
}

// graphicsPipelineCreateInfo translates state into a create info without
// vertex input or depth testing.
func graphicsPipelineCreateInfo(state *vkswap.PipelineState, stages []vk.PipelineShaderStageCreateInfo,
	pass vk.RenderPass, layout vk.PipelineLayout) vk.GraphicsPipelineCreateInfo {

	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               state.Topology,
		PrimitiveRestartEnable: vk.False,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    []vk.Viewport{state.Viewport},
		ScissorCount:  1,
		PScissors:     []vk.Rect2D{state.Scissor},
	}

	rasterState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             state.PolygonMode,
		CullMode:                vk.CullModeFlags(state.CullMode),
		FrontFace:               state.FrontFace,
		DepthBiasEnable:         vk.False,
		LineWidth:               state.LineWidth,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: state.Samples,
	}

	blendAttachments := []vk.PipelineColorBlendAttachmentState{state.BlendAttachment}
	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		Layout:              layout,
		RenderPass:          pass,
		Subpass:             0,
	}

	if len(state.DynamicStates) > 0 {
		info.PDynamicState = &vk.PipelineDynamicStateCreateInfo{
			SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
			DynamicStateCount: uint32(len(state.DynamicStates)),
			PDynamicStates:    state.DynamicStates,
		}
	}
	return info
}

func (p *Pipeline) Destroy() {
	if p.VKPipeline == vk.NullPipeline {
		return
	}
	vk.DestroyPipeline(p.Device.VKDevice, p.VKPipeline, nil)
	p.VKPipeline = vk.NullPipeline
}

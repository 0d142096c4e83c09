package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type PipelineLayout struct {
	Device           *Device
	VKPipelineLayout vk.PipelineLayout
}

func (d *Device) CreatePipelineLayout(desc *vkswap.PipelineLayoutDesc) (vkswap.PipelineLayout, error) {
	createInfo := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(desc.SetLayouts)),
		PSetLayouts:            desc.SetLayouts,
		PushConstantRangeCount: uint32(len(desc.PushConstants)),
		PPushConstantRanges:    desc.PushConstants,
	}

	var pipelineLayout vk.PipelineLayout
	if err := check(vk.CreatePipelineLayout(d.VKDevice, &createInfo, nil, &pipelineLayout), "create pipeline layout"); err != nil {
		return nil, err
	}
	return &PipelineLayout{Device: d, VKPipelineLayout: pipelineLayout}, nil
}

func (p *PipelineLayout) Destroy() {
	if p.VKPipelineLayout == vk.NullPipelineLayout {
		return
	}
	vk.DestroyPipelineLayout(p.Device.VKDevice, p.VKPipelineLayout, nil)
	p.VKPipelineLayout = vk.NullPipelineLayout
}

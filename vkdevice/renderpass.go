package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type RenderPass struct {
	Device       *Device
	VKRenderPass vk.RenderPass
}

func (d *Device) CreateRenderPass(info *vk.RenderPassCreateInfo) (vkswap.RenderPass, error) {
	var renderPass vk.RenderPass
	if err := check(vk.CreateRenderPass(d.VKDevice, info, nil, &renderPass), "create render pass"); err != nil {
		return nil, err
	}
	return &RenderPass{Device: d, VKRenderPass: renderPass}, nil
}

func (r *RenderPass) Destroy() {
	if r.VKRenderPass == vk.NullRenderPass {
		return
	}
	vk.DestroyRenderPass(r.Device.VKDevice, r.VKRenderPass, nil)
	r.VKRenderPass = vk.NullRenderPass
}

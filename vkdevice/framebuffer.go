package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type Framebuffer struct {
	Device        *Device
	Extent        vk.Extent2D
	VKFramebuffer vk.Framebuffer
}

// CreateFramebuffer creates a framebuffer binding view to the single color
// attachment of pass.
func (d *Device) CreateFramebuffer(pass vkswap.RenderPass, view vkswap.ImageView, extent vk.Extent2D) (vkswap.Framebuffer, error) {
	attachments := []vk.ImageView{view.(*ImageView).VKImageView}
	createInfo := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      pass.(*RenderPass).VKRenderPass,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		Width:           extent.Width,
		Height:          extent.Height,
		Layers:          1,
	}

	var framebuffer vk.Framebuffer
	if err := check(vk.CreateFramebuffer(d.VKDevice, &createInfo, nil, &framebuffer), "create framebuffer"); err != nil {
		return nil, err
	}
	return &Framebuffer{Device: d, Extent: extent, VKFramebuffer: framebuffer}, nil
}

func (f *Framebuffer) Destroy() {
	if f.VKFramebuffer == vk.NullFramebuffer {
		return
	}
	vk.DestroyFramebuffer(f.Device.VKDevice, f.VKFramebuffer, nil)
	f.VKFramebuffer = vk.NullFramebuffer
}

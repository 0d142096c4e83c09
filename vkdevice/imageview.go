package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

// CreateImageView creates a 2D color view of a swapchain image.
func (d *Device) CreateImageView(image vkswap.Image, format vk.Format) (vkswap.ImageView, error) {
	img, ok := image.(vk.Image)
	if !ok {
		return nil, unsupported("image", image)
	}
	view, err := d.CreateImageViewWithAspectMask(img, format, vk.ImageAspectFlags(vk.ImageAspectColorBit))
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (d *Device) CreateImageViewWithAspectMask(image vk.Image, format vk.Format, mask vk.ImageAspectFlags) (*ImageView, error) {
	createInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    image,
		ViewType: vk.ImageViewType2d,
		Format:   format,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleIdentity,
			G: vk.ComponentSwizzleIdentity,
			B: vk.ComponentSwizzleIdentity,
			A: vk.ComponentSwizzleIdentity,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: mask,
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	if err := check(vk.CreateImageView(d.VKDevice, createInfo, nil, &view), "create image view"); err != nil {
		return nil, err
	}
	return &ImageView{Device: d, VKImageView: view}, nil
}

func (i *ImageView) Destroy() {
	if i.VKImageView == vk.NullImageView {
		return
	}
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
	i.VKImageView = vk.NullImageView
}

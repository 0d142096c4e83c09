package vkdevice

import (
	"github.com/celer/vkswap"
	vk "github.com/vulkan-go/vulkan"
)

type Semaphore struct {
	Device      *Device
	VKSemaphore vk.Semaphore
}

func (d *Device) CreateSemaphore() (vkswap.Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var sema vk.Semaphore
	if err := check(vk.CreateSemaphore(d.VKDevice, &semaphoreCreateInfo, nil, &sema), "create semaphore"); err != nil {
		return nil, err
	}
	return &Semaphore{Device: d, VKSemaphore: sema}, nil
}

func (s *Semaphore) Destroy() {
	if s.VKSemaphore == vk.NullSemaphore {
		return
	}
	vk.DestroySemaphore(s.Device.VKDevice, s.VKSemaphore, nil)
	s.VKSemaphore = vk.NullSemaphore
}

package vkswap

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// SwapchainImageSet owns a swapchain and one image view per swapchain image.
type SwapchainImageSet struct {
	device  Device
	surface Surface

	config    *SwapchainConfig
	swapchain Swapchain
	images    []Image
	views     []ImageView
}

// NewSwapchainImageSet returns an image set for surface which has not been
// created yet.
func NewSwapchainImageSet(device Device, surface Surface) *SwapchainImageSet {
	return &SwapchainImageSet{device: device, surface: surface}
}

// Create creates the swapchain and its image views. previous, if not nil, is
// chained as the retired swapchain; it is left untouched and must be
// destroyed by its owner once Create succeeds. If Create fails everything it
// created is destroyed and the set may be created again.
func (s *SwapchainImageSet) Create(config *SwapchainConfig, previous Swapchain) error {
	if s.swapchain != nil {
		return ErrAlreadyCreated
	}

	swapchain, err := s.device.CreateSwapchain(s.surface, config, previous)
	if err != nil {
		return errors.Wrap(err, "create swapchain")
	}
	s.swapchain = swapchain
	s.config = config

	images, err := swapchain.Images()
	if err != nil {
		s.Destroy()
		return errors.Wrap(err, "get swapchain images")
	}
	s.images = images

	s.views = make([]ImageView, len(images))
	for i, image := range images {
		view, err := s.device.CreateImageView(image, config.SurfaceFormat.Format)
		if err != nil {
			s.Destroy()
			return errors.Wrapf(err, "create view for swapchain image %d", i)
		}
		s.views[i] = view
	}
	return nil
}

// Destroy destroys the views, then the swapchain. Calling it on a set which
// was never created, was partially created or was already destroyed is fine.
func (s *SwapchainImageSet) Destroy() {
	for i, view := range s.views {
		if view != nil {
			view.Destroy()
			s.views[i] = nil
		}
	}
	s.views = nil
	s.images = nil

	if s.swapchain != nil {
		s.swapchain.Destroy()
		s.swapchain = nil
	}
	s.config = nil
}

// Created reports whether the set currently owns a swapchain.
func (s *SwapchainImageSet) Created() bool {
	return s.swapchain != nil
}

// Swapchain returns the swapchain, or nil if the set has not been created.
func (s *SwapchainImageSet) Swapchain() Swapchain {
	return s.swapchain
}

// Config returns the configuration the swapchain was created with.
func (s *SwapchainImageSet) Config() *SwapchainConfig {
	return s.config
}

// Len returns the actual number of swapchain images.
func (s *SwapchainImageSet) Len() int {
	return len(s.images)
}

func (s *SwapchainImageSet) Images() []Image {
	return s.images
}

// Views returns the image views, indexed like Images. The views become
// invalid as soon as Destroy is called.
func (s *SwapchainImageSet) Views() []ImageView {
	return s.views
}

func (s *SwapchainImageSet) Extent() vk.Extent2D {
	if s.config == nil {
		return vk.Extent2D{}
	}
	return s.config.Extent
}

func (s *SwapchainImageSet) Format() vk.Format {
	if s.config == nil {
		return vk.FormatUndefined
	}
	return s.config.SurfaceFormat.Format
}

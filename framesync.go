package vkswap

import (
	"github.com/pkg/errors"
)

// FrameSlot is one reusable set of per frame synchronization primitives.
type FrameSlot struct {
	// ImageAvailable is signaled by the presentation engine once the
	// acquired image may be written to.
	ImageAvailable Semaphore
	// RenderFinished is signaled by the queue once the frame's commands
	// completed; presentation waits for it.
	RenderFinished Semaphore
	// InFlight is signaled once the frame's submission retired. It is
	// created signaled so the first wait does not block.
	InFlight Fence
}

func (f *FrameSlot) destroy() {
	if f.ImageAvailable != nil {
		f.ImageAvailable.Destroy()
		f.ImageAvailable = nil
	}
	if f.RenderFinished != nil {
		f.RenderFinished.Destroy()
		f.RenderFinished = nil
	}
	if f.InFlight != nil {
		f.InFlight.Destroy()
		f.InFlight = nil
	}
}

// FrameSyncPool owns the frame slots and the table mapping each swapchain
// image to the in flight fence of the slot which last submitted work for it.
//
// The table matters when there are more swapchain images than frame slots:
// an image may be acquired again while the submission of a different slot
// still renders to it.
type FrameSyncPool struct {
	device  Device
	slots   []FrameSlot
	aliases []Fence
}

func NewFrameSyncPool(device Device) *FrameSyncPool {
	return &FrameSyncPool{device: device}
}

// Create allocates slotCount frame slots and an alias table for imageCount
// images with no entries. On failure everything created so far is destroyed.
func (p *FrameSyncPool) Create(slotCount, imageCount int) error {
	if p.slots != nil {
		return ErrAlreadyCreated
	}
	if slotCount <= 0 {
		return errors.Errorf("vkswap: invalid frame slot count %d", slotCount)
	}

	p.slots = make([]FrameSlot, slotCount)
	for i := range p.slots {
		if err := p.createSlot(&p.slots[i]); err != nil {
			p.Destroy()
			return errors.Wrapf(err, "create frame slot %d", i)
		}
	}
	p.aliases = make([]Fence, imageCount)
	return nil
}

func (p *FrameSyncPool) createSlot(slot *FrameSlot) error {
	var err error
	if slot.ImageAvailable, err = p.device.CreateSemaphore(); err != nil {
		return err
	}
	if slot.RenderFinished, err = p.device.CreateSemaphore(); err != nil {
		return err
	}
	if slot.InFlight, err = p.device.CreateFence(true); err != nil {
		return err
	}
	return nil
}

// Destroy destroys all semaphores and fences. Calling it more than once is
// fine.
func (p *FrameSyncPool) Destroy() {
	for i := range p.slots {
		p.slots[i].destroy()
	}
	p.slots = nil
	p.aliases = nil
}

// SlotCount returns the number of frame slots.
func (p *FrameSyncPool) SlotCount() int {
	return len(p.slots)
}

// Slot returns frame slot i.
func (p *FrameSyncPool) Slot(i int) *FrameSlot {
	return &p.slots[i]
}

// ImageCount returns the size of the alias table.
func (p *FrameSyncPool) ImageCount() int {
	return len(p.aliases)
}

// ResizeAliases resizes the alias table for a new swapchain image count. The
// table is only reset if the count changed.
func (p *FrameSyncPool) ResizeAliases(imageCount int) {
	if imageCount == len(p.aliases) {
		return
	}
	p.aliases = make([]Fence, imageCount)
}

// RecordImageUse records that the submission of slot will render to image.
func (p *FrameSyncPool) RecordImageUse(image, slot int) {
	p.aliases[image] = p.slots[slot].InFlight
}

// AliasOf returns the fence of the slot which last used image, or nil.
func (p *FrameSyncPool) AliasOf(image int) Fence {
	return p.aliases[image]
}

// WaitIfAliased blocks until the last submission which used image, if any,
// has completed. It must be called before the image's resources are reused.
func (p *FrameSyncPool) WaitIfAliased(image int) error {
	fence := p.aliases[image]
	if fence == nil {
		return nil
	}
	if err := fence.Wait(); err != nil {
		return errors.Wrapf(err, "wait for previous use of image %d", image)
	}
	return nil
}

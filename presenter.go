package vkswap

import (
	"log"
	"sync/atomic"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// State is the state of the FramePresenter state machine.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateSubmitting
	StatePresenting
	StateRecreating
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateSubmitting:
		return "submitting"
	case StatePresenting:
		return "presenting"
	case StateRecreating:
		return "recreating"
	}
	return "unknown"
}

// FrameTarget is what a RecordFunc renders to. The handles are only valid
// for the frame they are passed to.
type FrameTarget struct {
	ImageIndex     int
	FrameSlot      int
	Extent         vk.Extent2D
	RenderPass     RenderPass
	PipelineLayout PipelineLayout
	Pipeline       Pipeline
	Framebuffer    Framebuffer
}

// FrameTargets is a snapshot of the presentation resources of the current
// swapchain epoch. Consumers must fetch a new snapshot after every
// recreation instead of holding on to the handles.
type FrameTargets struct {
	Extent       vk.Extent2D
	Format       vk.Format
	ImageCount   int
	RenderPass   RenderPass
	Framebuffers []Framebuffer
}

// Stats counts notable presenter events.
type Stats struct {
	Frames      uint64
	Recreations uint64
	// Deferred counts recreations postponed because the surface had no
	// area, usually because the window was minimized.
	Deferred   uint64
	OutOfDate  uint64
	Suboptimal uint64
}

// FramePresenter drives the acquire, submit, present cycle and recreates the
// swapchain and everything derived from it whenever the surface changes.
//
// A FramePresenter must be driven from a single goroutine. RequestRecreate
// may be called from any goroutine.
type FramePresenter struct {
	device  Device
	surface Surface
	window  Window
	opts    *Options
	log     *log.Logger

	images   *SwapchainImageSet
	sync     *FrameSyncPool
	pipeline *PresentationPipeline
	pool     CommandPool
	commands []CommandBuffer

	currentFrame  int
	needsRecreate int32
	state         State
	stats         Stats
	closed        bool

	listeners []func(*FrameTargets)
}

// NewFramePresenter creates the frame slots and, unless the window currently
// has no area, the swapchain and presentation pipeline. The presenter takes
// ownership of surface, which is destroyed by Cleanup or when
// NewFramePresenter fails.
func NewFramePresenter(device Device, surface Surface, window Window, opts *Options) (*FramePresenter, error) {
	opts = opts.withDefaults()

	p := &FramePresenter{
		device:   device,
		surface:  surface,
		window:   window,
		opts:     opts,
		log:      opts.Logger,
		images:   NewSwapchainImageSet(device, surface),
		sync:     NewFrameSyncPool(device),
		pipeline: NewPresentationPipeline(device),
	}

	var err error
	p.pool, err = device.CreateCommandPool()
	if err != nil {
		p.release()
		return nil, errors.Wrap(err, "create command pool")
	}

	if err := p.sync.Create(opts.FramesInFlight, 0); err != nil {
		p.release()
		return nil, err
	}

	p.RequestRecreate()
	if _, err := p.recreate(); err != nil {
		p.release()
		return nil, err
	}
	return p, nil
}

// RequestRecreate marks the swapchain for recreation at the start of the
// next frame, for instance in response to a window resize.
func (p *FramePresenter) RequestRecreate() {
	atomic.StoreInt32(&p.needsRecreate, 1)
}

// NeedsRecreate reports whether a recreation is pending.
func (p *FramePresenter) NeedsRecreate() bool {
	return atomic.LoadInt32(&p.needsRecreate) != 0
}

// OnRecreate registers f to be called with the new presentation resources
// after every successful (re)creation.
func (p *FramePresenter) OnRecreate(f func(*FrameTargets)) {
	p.listeners = append(p.listeners, f)
}

// DrawFrame runs one acquire, submit, present cycle. It blocks until the
// frame slot being reused has retired its previous submission. Out of date
// and suboptimal surfaces are handled by recreating the swapchain; only
// fatal errors are returned.
func (p *FramePresenter) DrawFrame() error {
	if p.closed {
		return errors.Wrap(ErrNotCreated, "draw frame")
	}
	defer p.setState(StateIdle)

	p.setState(StateAcquiring)
	slot := p.sync.Slot(p.currentFrame)
	if err := slot.InFlight.Wait(); err != nil {
		return errors.Wrapf(err, "wait for frame slot %d", p.currentFrame)
	}

	if p.NeedsRecreate() || !p.images.Created() {
		ok, err := p.recreate()
		if err != nil || !ok {
			return err
		}
		p.setState(StateAcquiring)
	}

	index, status, err := p.images.Swapchain().AcquireNextImage(slot.ImageAvailable)
	if err != nil {
		return errors.Wrap(err, "acquire next image")
	}
	switch status {
	case StatusOutOfDate:
		p.stats.OutOfDate++
		p.log.Printf("swapchain out of date on acquire, recreating")
		p.RequestRecreate()
		_, err := p.recreate()
		return err
	case StatusSuboptimal:
		p.stats.Suboptimal++
		p.RequestRecreate()
	}

	p.setState(StateSubmitting)
	if err := p.submit(int(index), slot); err != nil {
		return err
	}

	p.setState(StatePresenting)
	status, err = p.device.Present(p.images.Swapchain(), index, slot.RenderFinished)
	if err != nil {
		return errors.Wrap(err, "present")
	}
	switch status {
	case StatusOutOfDate:
		p.stats.OutOfDate++
		p.log.Printf("swapchain out of date on present")
		p.RequestRecreate()
	case StatusSuboptimal:
		p.stats.Suboptimal++
		p.RequestRecreate()
	}

	p.stats.Frames++
	p.currentFrame = (p.currentFrame + 1) % p.sync.SlotCount()
	return nil
}

func (p *FramePresenter) submit(index int, slot *FrameSlot) error {
	if err := p.sync.WaitIfAliased(index); err != nil {
		return err
	}

	cmd := p.commands[index]
	if p.opts.Record != nil {
		if err := cmd.Reset(); err != nil {
			return errors.Wrapf(err, "reset command buffer %d", index)
		}
		if err := p.opts.Record(cmd, p.target(index)); err != nil {
			return errors.Wrapf(err, "record command buffer %d", index)
		}
	}

	// Only touch the fence once recording succeeded.
	p.sync.RecordImageUse(index, p.currentFrame)
	if err := slot.InFlight.Reset(); err != nil {
		return errors.Wrapf(err, "reset fence of frame slot %d", p.currentFrame)
	}

	err := p.device.Submit(&Submission{
		CommandBuffer: cmd,
		Wait:          slot.ImageAvailable,
		WaitStage:     vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		Signal:        slot.RenderFinished,
		Fence:         slot.InFlight,
	})
	return errors.Wrap(err, "submit")
}

func (p *FramePresenter) target(index int) *FrameTarget {
	return &FrameTarget{
		ImageIndex:     index,
		FrameSlot:      p.currentFrame,
		Extent:         p.pipeline.Extent(),
		RenderPass:     p.pipeline.RenderPass(),
		PipelineLayout: p.pipeline.Layout(),
		Pipeline:       p.pipeline.Pipeline(),
		Framebuffer:    p.pipeline.Framebuffers()[index],
	}
}

// recreate rebuilds the swapchain, its views, the presentation pipeline and
// the command buffers. It returns false without touching anything if the
// surface currently has no area.
//
// The old swapchain is chained into the new one and only destroyed once the
// new one exists, so a failed creation leaves the old image set intact.
//
// The recreate flag is cleared up front so that requests arriving while the
// rebuild runs are kept for the next frame. It is set again unless the
// rebuild completes.
func (p *FramePresenter) recreate() (ok bool, err error) {
	p.setState(StateRecreating)
	defer p.setState(StateIdle)

	atomic.SwapInt32(&p.needsRecreate, 0)
	defer func() {
		if !ok {
			p.RequestRecreate()
		}
	}()

	caps, err := QueryCapabilities(p.surface)
	if err != nil {
		return false, err
	}
	width, height := p.window.FramebufferSize()
	config, err := NewSwapchainConfig(caps, width, height, p.opts)
	if errors.Is(err, ErrZeroExtent) {
		p.stats.Deferred++
		p.log.Printf("surface has no area, deferring swapchain recreation")
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "choose swapchain configuration")
	}

	if err := p.device.WaitIdle(); err != nil {
		return false, errors.Wrap(err, "wait for device idle")
	}

	p.pipeline.Destroy()

	next := NewSwapchainImageSet(p.device, p.surface)
	if err := next.Create(config, p.images.Swapchain()); err != nil {
		return false, err
	}
	p.images.Destroy()
	p.images = next

	if err := p.pipeline.Create(p.images, &p.opts.Pipeline); err != nil {
		return false, err
	}
	if err := p.allocateCommands(p.images.Len()); err != nil {
		return false, err
	}
	p.sync.ResizeAliases(p.images.Len())

	p.stats.Recreations++

	targets := p.Targets()
	for _, f := range p.listeners {
		f(targets)
	}
	return true, nil
}

func (p *FramePresenter) allocateCommands(count int) error {
	if len(p.commands) == count {
		return nil
	}
	if p.commands != nil {
		p.pool.Free(p.commands)
		p.commands = nil
	}
	commands, err := p.pool.Allocate(count)
	if err != nil {
		return errors.Wrap(err, "allocate command buffers")
	}
	p.commands = commands
	return nil
}

// Targets returns the presentation resources of the current swapchain epoch.
func (p *FramePresenter) Targets() *FrameTargets {
	return &FrameTargets{
		Extent:       p.images.Extent(),
		Format:       p.images.Format(),
		ImageCount:   p.images.Len(),
		RenderPass:   p.pipeline.RenderPass(),
		Framebuffers: append([]Framebuffer(nil), p.pipeline.Framebuffers()...),
	}
}

// ImageSet returns the current image set. It is replaced on recreation.
func (p *FramePresenter) ImageSet() *SwapchainImageSet {
	return p.images
}

func (p *FramePresenter) Pipeline() *PresentationPipeline {
	return p.pipeline
}

// CurrentFrame returns the index of the frame slot the next DrawFrame uses.
func (p *FramePresenter) CurrentFrame() int {
	return p.currentFrame
}

func (p *FramePresenter) State() State {
	return p.state
}

func (p *FramePresenter) Stats() Stats {
	return p.stats
}

func (p *FramePresenter) setState(s State) {
	p.state = s
}

// Cleanup waits for the device to become idle, then destroys the frame
// slots, command buffers, presentation pipeline, swapchain and surface.
// Calling it more than once is fine.
func (p *FramePresenter) Cleanup() error {
	if p.closed {
		return nil
	}
	err := p.device.WaitIdle()
	p.release()
	return errors.Wrap(err, "wait for device idle")
}

func (p *FramePresenter) release() {
	p.closed = true
	p.sync.Destroy()
	if p.pool != nil {
		if p.commands != nil {
			p.pool.Free(p.commands)
			p.commands = nil
		}
		p.pool.Destroy()
	}
	p.pipeline.Destroy()
	p.images.Destroy()
	p.surface.Destroy()
}

package vkswap

import (
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// mockDevice is an in-memory Device. Submitted work completes on a separate
// goroutine after gpuDelay, signaling the submission's fence.
type mockDevice struct {
	mu       sync.Mutex
	nextID   int
	calls    map[string]int
	live     map[string]int
	events   []string
	failures map[string]mockFailure

	doubleDestroys int
	violations     []string

	// imageCount is the number of images every swapchain reports. Zero
	// means the requested minimum image count.
	imageCount int
	gpuDelay   time.Duration

	acquires    []mockResult
	presents    []mockResult
	acquired    []uint32
	presented   []uint32
	submissions []*mockSubmission
	swapchains  []*mockSwapchain

	gpu sync.WaitGroup
}

type mockFailure struct {
	at  int
	err error
}

type mockResult struct {
	index  uint32
	status Status
	err    error
}

type mockSubmission struct {
	cmd       *mockCommandBuffer
	fence     *mockFence
	wait      Semaphore
	waitStage vk.PipelineStageFlags
	signal    Semaphore
	completed int32
}

func (s *mockSubmission) done() bool {
	return atomic.LoadInt32(&s.completed) != 0
}

func newMockDevice() *mockDevice {
	return &mockDevice{
		calls:      make(map[string]int),
		live:       make(map[string]int),
		failures:   make(map[string]mockFailure),
		imageCount: 3,
	}
}

// failOn makes the at'th call of op return err.
func (d *mockDevice) failOn(op string, at int, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = mockFailure{at: at, err: err}
}

func (d *mockDevice) call(op string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls[op]++
	if f, ok := d.failures[op]; ok && f.at == d.calls[op] {
		return f.err
	}
	return nil
}

func (d *mockDevice) count(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

func (d *mockDevice) liveCount(kind string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live[kind]
}

// leaks returns every kind of object which has not been destroyed.
func (d *mockDevice) leaks() map[string]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	ret := make(map[string]int)
	for kind, n := range d.live {
		if n != 0 {
			ret[kind] = n
		}
	}
	return ret
}

func (d *mockDevice) eventLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.events...)
}

func (d *mockDevice) resetEvents() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

func (d *mockDevice) violate(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.violations = append(d.violations, fmt.Sprintf(format, args...))
}

func (d *mockDevice) violationLog() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.violations...)
}

func (d *mockDevice) scriptAcquire(results ...mockResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.acquires = append(d.acquires, results...)
}

func (d *mockDevice) scriptPresent(results ...mockResult) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.presents = append(d.presents, results...)
}

type mockObject struct {
	dev       *mockDevice
	kind      string
	id        int
	destroyed bool
}

func (d *mockDevice) newObject(kind string) *mockObject {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	d.live[kind]++
	d.events = append(d.events, "create "+kind)
	return &mockObject{dev: d, kind: kind, id: d.nextID}
}

func (o *mockObject) Destroy() {
	d := o.dev
	d.mu.Lock()
	defer d.mu.Unlock()
	if o.destroyed {
		d.doubleDestroys++
		return
	}
	o.destroyed = true
	d.live[o.kind]--
	d.events = append(d.events, "destroy "+o.kind)
}

func (o *mockObject) isDestroyed() bool {
	o.dev.mu.Lock()
	defer o.dev.mu.Unlock()
	return o.destroyed
}

type mockSurface struct {
	*mockObject
	caps *SurfaceCapabilities
}

func (d *mockDevice) newSurface(caps *SurfaceCapabilities) *mockSurface {
	return &mockSurface{mockObject: d.newObject("Surface"), caps: caps}
}

func (s *mockSurface) Capabilities() (*SurfaceCapabilities, error) {
	if err := s.dev.call("Capabilities"); err != nil {
		return nil, err
	}
	c := *s.caps
	return &c, nil
}

type mockWindow struct {
	width, height int
	// onSize runs once, on the next FramebufferSize call.
	onSize func()
}

func (w *mockWindow) FramebufferSize() (int, int) {
	if f := w.onSize; f != nil {
		w.onSize = nil
		f()
	}
	return w.width, w.height
}

type mockImage struct {
	swapchain int
	index     int
}

type mockSwapchain struct {
	*mockObject
	config *SwapchainConfig
	old    Swapchain
	images []Image
	next   int
}

func (d *mockDevice) CreateSwapchain(surface Surface, config *SwapchainConfig, old Swapchain) (Swapchain, error) {
	if err := d.call("CreateSwapchain"); err != nil {
		return nil, err
	}
	if old != nil && old.(*mockSwapchain).isDestroyed() {
		d.violate("swapchain chained to destroyed swapchain")
	}
	s := &mockSwapchain{mockObject: d.newObject("Swapchain"), config: config, old: old}
	count := d.imageCount
	if count == 0 {
		count = int(config.MinImageCount)
	}
	for i := 0; i < count; i++ {
		s.images = append(s.images, &mockImage{swapchain: s.id, index: i})
	}
	d.mu.Lock()
	d.swapchains = append(d.swapchains, s)
	d.mu.Unlock()
	return s, nil
}

func (s *mockSwapchain) Images() ([]Image, error) {
	if err := s.dev.call("Images"); err != nil {
		return nil, err
	}
	return append([]Image(nil), s.images...), nil
}

func (s *mockSwapchain) AcquireNextImage(signal Semaphore) (uint32, Status, error) {
	d := s.dev
	if err := d.call("AcquireNextImage"); err != nil {
		return 0, StatusOK, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.destroyed {
		d.violations = append(d.violations, "acquire on destroyed swapchain")
	}
	if len(d.acquires) > 0 {
		r := d.acquires[0]
		d.acquires = d.acquires[1:]
		if r.err == nil && r.status != StatusOutOfDate {
			d.acquired = append(d.acquired, r.index)
		}
		return r.index, r.status, r.err
	}
	i := uint32(s.next)
	s.next = (s.next + 1) % len(s.images)
	d.acquired = append(d.acquired, i)
	return i, StatusOK, nil
}

type mockImageView struct {
	*mockObject
	image Image
}

func (d *mockDevice) CreateImageView(image Image, format vk.Format) (ImageView, error) {
	if err := d.call("CreateImageView"); err != nil {
		return nil, err
	}
	return &mockImageView{mockObject: d.newObject("ImageView"), image: image}, nil
}

type mockSemaphore struct {
	*mockObject
}

func (d *mockDevice) CreateSemaphore() (Semaphore, error) {
	if err := d.call("CreateSemaphore"); err != nil {
		return nil, err
	}
	return &mockSemaphore{d.newObject("Semaphore")}, nil
}

type mockFence struct {
	*mockObject

	fmu  sync.Mutex
	done chan struct{}
	last *mockSubmission
}

func (d *mockDevice) CreateFence(signaled bool) (Fence, error) {
	if err := d.call("CreateFence"); err != nil {
		return nil, err
	}
	f := &mockFence{mockObject: d.newObject("Fence"), done: make(chan struct{})}
	if signaled {
		close(f.done)
	}
	return f, nil
}

func (f *mockFence) signaled() bool {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *mockFence) lastSubmission() *mockSubmission {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	return f.last
}

func (f *mockFence) Wait() error {
	if err := f.dev.call("WaitFence"); err != nil {
		return err
	}
	f.fmu.Lock()
	done := f.done
	f.fmu.Unlock()
	select {
	case <-done:
		return nil
	case <-time.After(5 * time.Second):
		return errors.New("mock: fence never signaled")
	}
}

func (f *mockFence) Reset() error {
	if err := f.dev.call("ResetFence"); err != nil {
		return err
	}
	f.fmu.Lock()
	defer f.fmu.Unlock()
	select {
	case <-f.done:
		f.done = make(chan struct{})
	default:
	}
	return nil
}

// submit attaches s to the fence and returns the channel to close once s
// completed.
func (f *mockFence) submit(s *mockSubmission) chan struct{} {
	f.fmu.Lock()
	defer f.fmu.Unlock()
	select {
	case <-f.done:
		f.dev.violate("fence %d submitted while signaled", f.id)
	default:
	}
	f.last = s
	return f.done
}

type mockRenderPass struct {
	*mockObject
	info *vk.RenderPassCreateInfo
}

func (d *mockDevice) CreateRenderPass(info *vk.RenderPassCreateInfo) (RenderPass, error) {
	if err := d.call("CreateRenderPass"); err != nil {
		return nil, err
	}
	return &mockRenderPass{mockObject: d.newObject("RenderPass"), info: info}, nil
}

type mockPipelineLayout struct {
	*mockObject
	desc *PipelineLayoutDesc
}

func (d *mockDevice) CreatePipelineLayout(desc *PipelineLayoutDesc) (PipelineLayout, error) {
	if err := d.call("CreatePipelineLayout"); err != nil {
		return nil, err
	}
	return &mockPipelineLayout{mockObject: d.newObject("PipelineLayout"), desc: desc}, nil
}

type mockPipeline struct {
	*mockObject
	state *PipelineState
}

func (d *mockDevice) CreateGraphicsPipeline(pass RenderPass, layout PipelineLayout, state *PipelineState) (Pipeline, error) {
	if err := d.call("CreateGraphicsPipeline"); err != nil {
		return nil, err
	}
	return &mockPipeline{mockObject: d.newObject("Pipeline"), state: state}, nil
}

type mockFramebuffer struct {
	*mockObject
	pass   RenderPass
	view   ImageView
	extent vk.Extent2D
}

func (d *mockDevice) CreateFramebuffer(pass RenderPass, view ImageView, extent vk.Extent2D) (Framebuffer, error) {
	if err := d.call("CreateFramebuffer"); err != nil {
		return nil, err
	}
	if view.(*mockImageView).isDestroyed() {
		d.violate("framebuffer created from destroyed view")
	}
	return &mockFramebuffer{mockObject: d.newObject("Framebuffer"), pass: pass, view: view, extent: extent}, nil
}

type mockCommandPool struct {
	*mockObject
}

func (d *mockDevice) CreateCommandPool() (CommandPool, error) {
	if err := d.call("CreateCommandPool"); err != nil {
		return nil, err
	}
	return &mockCommandPool{d.newObject("CommandPool")}, nil
}

func (p *mockCommandPool) Allocate(count int) ([]CommandBuffer, error) {
	if err := p.dev.call("AllocateCommandBuffers"); err != nil {
		return nil, err
	}
	ret := make([]CommandBuffer, count)
	for i := range ret {
		ret[i] = &mockCommandBuffer{mockObject: p.dev.newObject("CommandBuffer")}
	}
	return ret, nil
}

func (p *mockCommandPool) Free(buffers []CommandBuffer) {
	p.dev.call("FreeCommandBuffers")
	for _, b := range buffers {
		cmd := b.(*mockCommandBuffer)
		if atomic.LoadInt32(&cmd.inFlight) != 0 {
			p.dev.violate("command buffer %d freed while in flight", cmd.id)
		}
		cmd.Destroy()
	}
}

type mockCommandBuffer struct {
	*mockObject
	inFlight int32
	resets   int32
}

func (c *mockCommandBuffer) Reset() error {
	if err := c.dev.call("ResetCommandBuffer"); err != nil {
		return err
	}
	if atomic.LoadInt32(&c.inFlight) != 0 {
		c.dev.violate("command buffer %d reset while in flight", c.id)
	}
	atomic.AddInt32(&c.resets, 1)
	return nil
}

func (d *mockDevice) Submit(s *Submission) error {
	if err := d.call("Submit"); err != nil {
		return err
	}
	cmd := s.CommandBuffer.(*mockCommandBuffer)
	fence := s.Fence.(*mockFence)
	if !atomic.CompareAndSwapInt32(&cmd.inFlight, 0, 1) {
		d.violate("command buffer %d submitted while in flight", cmd.id)
	}

	sub := &mockSubmission{
		cmd:       cmd,
		fence:     fence,
		wait:      s.Wait,
		waitStage: s.WaitStage,
		signal:    s.Signal,
	}
	done := fence.submit(sub)

	d.mu.Lock()
	d.submissions = append(d.submissions, sub)
	delay := d.gpuDelay
	d.gpu.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.gpu.Done()
		time.Sleep(delay)
		atomic.StoreInt32(&cmd.inFlight, 0)
		atomic.StoreInt32(&sub.completed, 1)
		close(done)
	}()
	return nil
}

func (d *mockDevice) Present(swapchain Swapchain, index uint32, wait Semaphore) (Status, error) {
	if err := d.call("Present"); err != nil {
		return StatusOK, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.presented = append(d.presented, index)
	if len(d.presents) > 0 {
		r := d.presents[0]
		d.presents = d.presents[1:]
		return r.status, r.err
	}
	return StatusOK, nil
}

func (d *mockDevice) WaitIdle() error {
	if err := d.call("WaitIdle"); err != nil {
		return err
	}
	d.gpu.Wait()
	return nil
}

func testCaps() *SurfaceCapabilities {
	return &SurfaceCapabilities{
		CurrentExtent:           vk.Extent2D{Width: 800, Height: 600},
		MinExtent:               vk.Extent2D{Width: 1, Height: 1},
		MaxExtent:               vk.Extent2D{Width: 4096, Height: 4096},
		MinImageCount:           2,
		MaxImageCount:           8,
		SupportedTransforms:     vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit),
		CurrentTransform:        vk.SurfaceTransformIdentityBit,
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaOpaqueBit),
		SupportedUsage:          vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		Formats: []vk.SurfaceFormat{
			{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		},
		PresentModes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox},
	}
}

func testOptions() *Options {
	return &Options{Logger: log.New(io.Discard, "", 0)}
}

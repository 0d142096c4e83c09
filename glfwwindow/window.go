// Package glfwwindow provides the window a vkswap.FramePresenter presents to,
// backed by GLFW.
package glfwwindow

import (
	"github.com/pkg/errors"
	"github.com/vulkan-go/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Init initializes GLFW and loads Vulkan through it. It must be called from
// the main thread before any window is created.
func Init() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "init glfw")
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return errors.New("glfwwindow: vulkan is not supported")
	}
	vk.SetGetInstanceProcAddr(glfw.GetVulkanGetInstanceProcAddress())
	if err := vk.Init(); err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "init vulkan")
	}
	return nil
}

func Terminate() {
	glfw.Terminate()
}

// Recreator is notified when the framebuffer changes size.
// vkswap.FramePresenter implements it.
type Recreator interface {
	RequestRecreate()
}

type Options struct {
	Width, Height int
	Title         string
	// Fixed disables resizing by the user.
	Fixed bool
	// Hidden creates the window without showing it.
	Hidden bool
}

// Window is a GLFW window without a client API, ready for Vulkan.
type Window struct {
	*glfw.Window

	resizeListeners []func(width, height int)
}

// New creates a window, Init must have been called.
func New(options *Options) (*Window, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if options.Fixed {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	}
	if options.Hidden {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(options.Width, options.Height, options.Title, nil, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	w := &Window{Window: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resized(width, height)
	})
	return w, nil
}

// FramebufferSize returns the size of the framebuffer in pixels, which is
// zero while the window is minimized.
func (w *Window) FramebufferSize() (width, height int) {
	return w.GetFramebufferSize()
}

// RequiredExtensions returns the instance extensions needed to create a
// surface for the window.
func (w *Window) RequiredExtensions() []string {
	return w.GetRequiredInstanceExtensions()
}

// CreateSurface creates the Vulkan surface of the window.
func (w *Window) CreateSurface(instance vk.Instance) (vk.Surface, error) {
	ptr, err := w.CreateWindowSurface(instance, nil)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "create window surface")
	}
	return vk.SurfaceFromPointer(ptr), nil
}

// OnResize registers f to be called whenever the framebuffer changes size.
func (w *Window) OnResize(f func(width, height int)) {
	w.resizeListeners = append(w.resizeListeners, f)
}

// Attach requests a swapchain recreation from r on every resize.
func (w *Window) Attach(r Recreator) {
	w.OnResize(func(int, int) {
		r.RequestRecreate()
	})
}

func (w *Window) resized(width, height int) {
	for _, f := range w.resizeListeners {
		f(width, height)
	}
}

// WaitWhileMinimized blocks processing events until the framebuffer has an
// area again or the window should close.
func (w *Window) WaitWhileMinimized() {
	for {
		width, height := w.FramebufferSize()
		if (width > 0 && height > 0) || w.ShouldClose() {
			return
		}
		glfw.WaitEvents()
	}
}

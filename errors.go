package vkswap

import (
	"github.com/pkg/errors"
)

// Transient conditions. They are handled by recreating the swapchain and are
// never returned from DrawFrame.
var (
	ErrOutOfDate  = errors.New("vkswap: surface out of date")
	ErrSuboptimal = errors.New("vkswap: swapchain suboptimal for surface")
)

// ErrOutOfMemory is returned when host or device memory is exhausted.
var ErrOutOfMemory = errors.New("vkswap: out of memory")

// Precondition violations. They indicate a misconfigured device or surface.
var (
	ErrZeroExtent         = errors.New("vkswap: surface extent is zero")
	ErrNoSurfaceFormats   = errors.New("vkswap: surface reports no formats")
	ErrNoPresentModes     = errors.New("vkswap: surface reports no present modes")
	ErrNoCompositeAlpha   = errors.New("vkswap: surface reports no composite alpha mode")
	ErrMissingQueueFamily = errors.New("vkswap: no queue family supports graphics and present")
	ErrNotCreated         = errors.New("vkswap: resource has not been created")
	ErrAlreadyCreated     = errors.New("vkswap: resource has already been created")
)

// Device or surface loss. Recovering from these means recreating the device,
// which is outside what this package does.
var (
	ErrDeviceLost  = errors.New("vkswap: device lost")
	ErrSurfaceLost = errors.New("vkswap: surface lost")
)

// ErrorKind classifies an error returned by this package or a Device
// implementation.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindTransient
	KindResourceExhaustion
	KindPrecondition
	KindDeviceLost
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindResourceExhaustion:
		return "resource exhaustion"
	case KindPrecondition:
		return "precondition violation"
	case KindDeviceLost:
		return "device lost"
	}
	return "unknown"
}

// Fatal reports whether errors of this kind must abort the frame loop.
func (k ErrorKind) Fatal() bool {
	return k != KindTransient
}

// KindOf returns the kind of err, looking through any wrapping.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrOutOfDate), errors.Is(err, ErrSuboptimal):
		return KindTransient
	case errors.Is(err, ErrOutOfMemory):
		return KindResourceExhaustion
	case errors.Is(err, ErrDeviceLost), errors.Is(err, ErrSurfaceLost):
		return KindDeviceLost
	case errors.Is(err, ErrZeroExtent),
		errors.Is(err, ErrNoSurfaceFormats),
		errors.Is(err, ErrNoPresentModes),
		errors.Is(err, ErrNoCompositeAlpha),
		errors.Is(err, ErrMissingQueueFamily),
		errors.Is(err, ErrNotCreated),
		errors.Is(err, ErrAlreadyCreated):
		return KindPrecondition
	}
	return KindUnknown
}

package vkdevice

import (
	"github.com/celer/vkswap"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// check converts a Vulkan result into an error wrapping the matching vkswap
// sentinel, annotated with the operation which failed.
func check(ret vk.Result, op string) error {
	switch ret {
	case vk.Success, vk.Incomplete:
		return nil
	case vk.ErrorOutOfHostMemory, vk.ErrorOutOfDeviceMemory:
		return errors.Wrapf(vkswap.ErrOutOfMemory, "%s: %s", op, resultString(ret))
	case vk.ErrorDeviceLost:
		return errors.Wrapf(vkswap.ErrDeviceLost, "%s: %s", op, resultString(ret))
	case vk.ErrorSurfaceLost:
		return errors.Wrapf(vkswap.ErrSurfaceLost, "%s: %s", op, resultString(ret))
	case vk.ErrorOutOfDate:
		return errors.Wrapf(vkswap.ErrOutOfDate, "%s: %s", op, resultString(ret))
	case vk.Suboptimal:
		return errors.Wrapf(vkswap.ErrSuboptimal, "%s: %s", op, resultString(ret))
	}
	return errors.Wrap(errors.New(resultString(ret)), op)
}

// status splits the result of an acquire or present call into the outcomes
// the presenter recovers from and real errors.
func status(ret vk.Result, op string) (vkswap.Status, error) {
	switch ret {
	case vk.Success:
		return vkswap.StatusOK, nil
	case vk.Suboptimal:
		return vkswap.StatusSuboptimal, nil
	case vk.ErrorOutOfDate:
		return vkswap.StatusOutOfDate, nil
	}
	return vkswap.StatusOK, check(ret, op)
}

func resultString(ret vk.Result) string {
	if err := vk.Error(ret); err != nil {
		return err.Error()
	}
	return errors.Errorf("vulkan result %d", ret).Error()
}

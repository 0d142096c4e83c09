package vkdevice

import (
	"io/ioutil"
	"log"

	"github.com/celer/vkswap"
	gu "github.com/docker/go-units"
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// LoadShader reads SPIR-V bytecode from file for use as stage of the
// presentation pipeline.
func LoadShader(file string, stage vk.ShaderStageFlagBits) (vkswap.ShaderStage, error) {
	data, err := ioutil.ReadFile(file)
	if err != nil {
		return vkswap.ShaderStage{}, errors.Wrap(err, "load shader")
	}
	if len(data) == 0 || len(data)%4 != 0 {
		return vkswap.ShaderStage{}, errors.Errorf("load shader %s: size %d is not a multiple of 4", file, len(data))
	}
	log.Printf("loaded shader %s (%s)", file, gu.BytesSize(float64(len(data))))
	return vkswap.ShaderStage{Stage: stage, Code: data, EntryPoint: "main"}, nil
}

type ShaderModule struct {
	Device         *Device
	VKShaderModule vk.ShaderModule
}

func (d *Device) CreateShaderModule(code []byte) (*ShaderModule, error) {
	var module vk.ShaderModule
	err := check(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module), "create shader module")
	if err != nil {
		return nil, err
	}
	return &ShaderModule{Device: d, VKShaderModule: module}, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	if entryPoint == "" {
		entryPoint = "main"
	}
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	if s.VKShaderModule == vk.NullShaderModule {
		return
	}
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
	s.VKShaderModule = vk.NullShaderModule
}

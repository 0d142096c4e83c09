package vkdevice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestLoadShader(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "tri.vert.spv")
	require.NoError(t, os.WriteFile(file, []byte{0x03, 0x02, 0x23, 0x07, 0, 0, 1, 0}, 0o644))

	stage, err := LoadShader(file, vk.ShaderStageVertexBit)
	require.NoError(t, err)
	assert.Equal(vk.ShaderStageVertexBit, stage.Stage)
	assert.Equal("main", stage.EntryPoint)
	assert.Len(stage.Code, 8)

	odd := filepath.Join(dir, "odd.spv")
	require.NoError(t, os.WriteFile(odd, []byte{1, 2, 3}, 0o644))
	_, err = LoadShader(odd, vk.ShaderStageFragmentBit)
	assert.Error(err)

	empty := filepath.Join(dir, "empty.spv")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = LoadShader(empty, vk.ShaderStageFragmentBit)
	assert.Error(err)

	_, err = LoadShader(filepath.Join(dir, "missing.spv"), vk.ShaderStageFragmentBit)
	assert.True(os.IsNotExist(errors.Cause(err)))
}

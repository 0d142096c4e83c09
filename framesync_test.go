package vkswap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func TestFrameSync_Create(t *testing.T) {
	assert := assert.New(t)

	dev := newMockDevice()
	pool := NewFrameSyncPool(dev)
	require.NoError(t, pool.Create(2, 3))

	assert.Equal(2, pool.SlotCount())
	assert.Equal(3, pool.ImageCount())
	assert.Equal(4, dev.liveCount("Semaphore"))
	assert.Equal(2, dev.liveCount("Fence"))
	for i := 0; i < pool.SlotCount(); i++ {
		assert.True(pool.Slot(i).InFlight.(*mockFence).signaled(), "slot %d", i)
		assert.NotSame(pool.Slot(i).ImageAvailable, pool.Slot(i).RenderFinished)
	}
	for i := 0; i < pool.ImageCount(); i++ {
		assert.Nil(pool.AliasOf(i))
	}

	assert.ErrorIs(pool.Create(2, 3), ErrAlreadyCreated)
	pool.Destroy()
}

func TestFrameSync_InvalidSlotCount(t *testing.T) {
	pool := NewFrameSyncPool(newMockDevice())
	assert.Error(t, pool.Create(0, 3))
}

func TestFrameSync_DestroyTwice(t *testing.T) {
	dev := newMockDevice()
	pool := NewFrameSyncPool(dev)
	require.NoError(t, pool.Create(2, 3))

	pool.Destroy()
	pool.Destroy()

	assert.Equal(t, 0, dev.doubleDestroys)
	assert.Empty(t, dev.leaks())
	assert.Equal(t, 0, pool.SlotCount())
}

func TestFrameSync_CreateFailureCleansUp(t *testing.T) {
	dev := newMockDevice()
	pool := NewFrameSyncPool(dev)
	dev.failOn("CreateFence", 2, ErrOutOfMemory)

	err := pool.Create(2, 3)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Empty(t, dev.leaks())

	require.NoError(t, pool.Create(2, 3))
	pool.Destroy()
}

func TestFrameSync_RecordImageUse(t *testing.T) {
	dev := newMockDevice()
	pool := NewFrameSyncPool(dev)
	require.NoError(t, pool.Create(2, 3))
	defer pool.Destroy()

	pool.RecordImageUse(2, 1)
	assert.Same(t, pool.Slot(1).InFlight, pool.AliasOf(2))
	assert.Nil(t, pool.AliasOf(0))

	pool.RecordImageUse(2, 0)
	assert.Same(t, pool.Slot(0).InFlight, pool.AliasOf(2))

	// Unchanged image count keeps the table.
	pool.ResizeAliases(3)
	assert.Same(t, pool.Slot(0).InFlight, pool.AliasOf(2))

	pool.ResizeAliases(4)
	assert.Equal(t, 4, pool.ImageCount())
	assert.Nil(t, pool.AliasOf(2))
}

func TestFrameSync_WaitIfAliasedBlocks(t *testing.T) {
	assert := assert.New(t)

	dev := newMockDevice()
	dev.gpuDelay = 50 * time.Millisecond
	pool := NewFrameSyncPool(dev)
	require.NoError(t, pool.Create(2, 3))
	defer pool.Destroy()

	assert.NoError(pool.WaitIfAliased(1))

	cmdPool, err := dev.CreateCommandPool()
	require.NoError(t, err)
	cmds, err := cmdPool.Allocate(1)
	require.NoError(t, err)

	slot := pool.Slot(0)
	require.NoError(t, slot.InFlight.Reset())
	require.NoError(t, dev.Submit(&Submission{
		CommandBuffer: cmds[0],
		Wait:          slot.ImageAvailable,
		WaitStage:     vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		Signal:        slot.RenderFinished,
		Fence:         slot.InFlight,
	}))
	pool.RecordImageUse(1, 0)

	sub := slot.InFlight.(*mockFence).lastSubmission()
	require.NotNil(t, sub)
	assert.False(sub.done())

	start := time.Now()
	assert.NoError(pool.WaitIfAliased(1))
	assert.True(sub.done())
	assert.GreaterOrEqual(time.Since(start), 40*time.Millisecond)

	// Images used by no slot never wait.
	start = time.Now()
	assert.NoError(pool.WaitIfAliased(2))
	assert.Less(time.Since(start), 40*time.Millisecond)

	require.NoError(t, dev.WaitIdle())
	cmdPool.Free(cmds)
	cmdPool.Destroy()
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

// FixedMemoryPool hands out equal-sized memory blocks from a fixed arena.
//
// Blocks are aligned for any standard scalar (at least 8 bytes). Allocate
// and Deallocate never block; the AllocateMemory family can wait for a
// block to come free.
type FixedMemoryPool interface {
	// Allocate returns a free block, or nil when the pool is exhausted.
	Allocate() []byte
	// Deallocate returns a block obtained from this pool. nil is a no-op.
	Deallocate(p []byte)
	// BlockSize returns the usable bytes of one block.
	BlockSize() uintptr

	// AllocateMemory blocks until a block is free.
	AllocateMemory() ([]byte, error)
	// TryAllocateMemory is AllocateMemory bounded by Polling.
	TryAllocateMemory() ([]byte, error)
	// TimedAllocateMemory is AllocateMemory bounded by tmout.
	TimedAllocateMemory(tmout Timeout) ([]byte, error)

	// AvailableBlocks returns the number of free blocks.
	AvailableBlocks() int
	// MaxBlocks returns the total number of blocks.
	MaxBlocks() int
}

// NewFixedMemoryPool creates a fixed-block pool from the registered factory.
// poolSize bytes are carved into blockSize-byte blocks; a nil poolAddress
// lets the platform prepare the arena. Returns nil when the backend cannot
// create the pool (zero sizes, undersized arena).
func NewFixedMemoryPool(blockSize, poolSize uintptr, poolAddress []byte) FixedMemoryPool {
	if fixedPoolFactory == nil {
		panic("osw: FixedMemoryPoolFactory is not registered")
	}
	return fixedPoolFactory.Create(blockSize, poolSize, poolAddress)
}

// DestroyFixedMemoryPool returns a pool to its factory. Destroying nil is a
// no-op.
func DestroyFixedMemoryPool(p FixedMemoryPool) {
	if fixedPoolFactory == nil || p == nil {
		return
	}
	fixedPoolFactory.Destroy(p)
}

// FixedMemoryPoolRequiredSize returns the pool memory needed for numBlocks
// blocks of blockSize bytes on the registered platform. At least
// blockSize*numBlocks; bookkeeping may add to it.
func FixedMemoryPoolRequiredSize(blockSize, numBlocks uintptr) uintptr {
	if fixedPoolFactory == nil {
		panic("osw: FixedMemoryPoolFactory is not registered")
	}
	return fixedPoolFactory.RequiredMemorySize(blockSize, numBlocks)
}

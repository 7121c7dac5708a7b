// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package osw

// VariableMemoryPool hands out arbitrary-size regions from a fixed arena.
//
// A successful Allocate returns a region of at least the requested size,
// aligned for any standard scalar and exclusive until freed. No
// fragmentation-management policy is mandated.
type VariableMemoryPool interface {
	// Allocate returns a region of size bytes, or nil when the pool cannot
	// satisfy the request.
	Allocate(size uintptr) []byte
	// Deallocate returns a region obtained from this pool. nil is a no-op.
	Deallocate(p []byte)
}

// NewVariableMemoryPool creates a variable-size pool from the registered
// factory. A nil poolAddress lets the platform prepare the arena. Returns
// nil when the backend cannot create the pool.
func NewVariableMemoryPool(poolSize uintptr, poolAddress []byte) VariableMemoryPool {
	if variablePoolFactory == nil {
		panic("osw: VariableMemoryPoolFactory is not registered")
	}
	return variablePoolFactory.Create(poolSize, poolAddress)
}

// DestroyVariableMemoryPool returns a pool to its factory. Destroying nil
// is a no-op.
func DestroyVariableMemoryPool(p VariableMemoryPool) {
	if variablePoolFactory == nil || p == nil {
		return
	}
	variablePoolFactory.Destroy(p)
}

var messageQueuePool VariableMemoryPool

// RegisterMessageQueueMemoryPool installs the pool message queues draw
// their buffers from. Call once during platform initialization, after the
// pool factories are registered.
func RegisterMessageQueueMemoryPool(pool VariableMemoryPool) {
	if pool == nil {
		panic("osw: nil message queue memory pool")
	}
	messageQueuePool = pool
}

func getMessageQueueMemoryPool() VariableMemoryPool {
	return messageQueuePool
}

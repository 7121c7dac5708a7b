// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"time"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"

	"code.hybscloud.com/osw"
	"code.hybscloud.com/osw/internal"
)

// pad separates hot atomics onto their own cache lines.
type pad [internal.CacheLineSize]byte

// blockAlign is the alignment of every block a fixed pool hands out,
// suitable for any standard scalar.
const blockAlign = 8

type stdFixedMemoryPoolFactory struct{}

func (f *stdFixedMemoryPoolFactory) Create(blockSize, poolSize uintptr, poolAddress []byte) osw.FixedMemoryPool {
	if blockSize == 0 || poolSize == 0 {
		return nil
	}
	stride := alignUp(blockSize, blockAlign)
	arena := poolAddress
	if arena == nil {
		arena = make([]byte, poolSize)
	} else if uintptr(len(arena)) > poolSize {
		arena = arena[:poolSize]
	}
	// Burn leading bytes until the first block is aligned.
	if off := alignOffset(arena, blockAlign); off != 0 {
		if uintptr(len(arena)) <= off {
			return nil
		}
		arena = arena[off:]
	}
	numBlocks := uintptr(len(arena)) / stride
	if numBlocks == 0 {
		return nil
	}
	p := &stdFixedMemoryPool{
		blockSize: blockSize,
		stride:    stride,
		arena:     arena,
		next:      make([]atomix.Int32, numBlocks),
		max:       int(numBlocks),
	}
	for i := 0; i < p.max-1; i++ {
		p.next[i].Store(int32(i + 1))
	}
	p.next[p.max-1].Store(-1)
	p.head.Store(packHead(0, 1))
	p.avail.Store(int64(p.max))
	return p
}

func (f *stdFixedMemoryPoolFactory) Destroy(p osw.FixedMemoryPool) {}

func (f *stdFixedMemoryPoolFactory) RequiredMemorySize(blockSize, numBlocks uintptr) uintptr {
	// blockAlign-1 spare bytes cover the largest misalignment of a caller
	// buffer without adding a block when the buffer is already aligned.
	return alignUp(blockSize, blockAlign)*numBlocks + blockAlign - 1
}

func alignUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

func alignOffset(buf []byte, align uintptr) uintptr {
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	return alignUp(addr, align) - addr
}

// stdFixedMemoryPool carves an arena into equal aligned blocks linked into
// a lock-free freelist. The list head packs a 32-bit generation tag beside
// the block index, so a pop/push cycle cannot forge a stale head (ABA).
//
// Blocking allocation polls the freelist under adaptive backoff: block
// release is an external event on another thread's schedule, so the waiter
// yields the CPU between attempts rather than spinning hot.
type stdFixedMemoryPool struct {
	blockSize uintptr
	stride    uintptr
	arena     []byte
	next      []atomix.Int32
	max       int
	_         pad
	head      atomix.Uint64 // [tag:32][index+1:32]; a low half of 0 means empty
	_         pad
	avail     atomix.Int64
	_         pad
}

func packHead(tag uint32, idxPlusOne int32) uint64 {
	return uint64(tag)<<32 | uint64(uint32(idxPlusOne))
}

func headIndex(h uint64) int32 { return int32(uint32(h)) - 1 }
func headTag(h uint64) uint32  { return uint32(h >> 32) }

func (p *stdFixedMemoryPool) block(i int32) []byte {
	off := uintptr(i) * p.stride
	return p.arena[off : off+p.blockSize : off+p.stride]
}

func (p *stdFixedMemoryPool) Allocate() []byte {
	sw := spin.Wait{}
	for {
		h := p.head.Load()
		idx := headIndex(h)
		if idx < 0 {
			return nil
		}
		nxt := p.next[idx].Load()
		if p.head.CompareAndSwap(h, packHead(headTag(h)+1, nxt+1)) {
			p.avail.Add(-1)
			return p.block(idx)
		}
		sw.Once()
	}
}

func (p *stdFixedMemoryPool) Deallocate(b []byte) {
	if b == nil {
		return
	}
	idx := p.indexOf(b)
	sw := spin.Wait{}
	for {
		h := p.head.Load()
		p.next[idx].Store(headIndex(h))
		if p.head.CompareAndSwap(h, packHead(headTag(h)+1, idx+1)) {
			p.avail.Add(1)
			return
		}
		sw.Once()
	}
}

func (p *stdFixedMemoryPool) indexOf(b []byte) int32 {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.arena)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < base || addr >= base+uintptr(p.max)*p.stride {
		panic("stdosw: block is not from this pool")
	}
	off := addr - base
	if off%p.stride != 0 {
		panic("stdosw: block is not from this pool")
	}
	return int32(off / p.stride)
}

func (p *stdFixedMemoryPool) BlockSize() uintptr { return p.blockSize }

func (p *stdFixedMemoryPool) AllocateMemory() ([]byte, error) {
	return p.TimedAllocateMemory(osw.Forever)
}

func (p *stdFixedMemoryPool) TryAllocateMemory() ([]byte, error) {
	return p.TimedAllocateMemory(osw.Polling)
}

func (p *stdFixedMemoryPool) TimedAllocateMemory(tmout osw.Timeout) ([]byte, error) {
	if b := p.Allocate(); b != nil {
		return b, nil
	}
	if tmout.IsPolling() {
		return nil, osw.ErrTimedOut
	}
	if contexts.inNonBlocking() {
		return nil, osw.ErrCalledByNonThread
	}
	var deadline time.Time
	if !tmout.IsForever() {
		deadline = time.Now().Add(tmout.Duration())
	}
	var aw iox.Backoff
	for {
		if b := p.Allocate(); b != nil {
			return b, nil
		}
		if !tmout.IsForever() && !time.Now().Before(deadline) {
			return nil, osw.ErrTimedOut
		}
		aw.Wait()
	}
}

func (p *stdFixedMemoryPool) AvailableBlocks() int {
	return int(p.avail.Load())
}

func (p *stdFixedMemoryPool) MaxBlocks() int { return p.max }

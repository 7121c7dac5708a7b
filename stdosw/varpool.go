// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stdosw

import (
	"sync"
	"unsafe"

	"code.hybscloud.com/osw"
)

type stdVariableMemoryPoolFactory struct{}

func (f *stdVariableMemoryPoolFactory) Create(poolSize uintptr, poolAddress []byte) osw.VariableMemoryPool {
	if poolSize < varHeaderSize+varAlign {
		return nil
	}
	arena := poolAddress
	if arena == nil {
		arena = make([]byte, poolSize)
	} else if uintptr(len(arena)) > poolSize {
		arena = arena[:poolSize]
	}
	if off := alignOffset(arena, varAlign); off != 0 {
		if uintptr(len(arena)) <= off+varHeaderSize+varAlign {
			return nil
		}
		arena = arena[off:]
	}
	usable := uintptr(len(arena)) &^ (varAlign - 1)
	p := &stdVariableMemoryPool{arena: arena[:usable]}
	first := p.header(0)
	first.size = usable
	first.next = varNone
	p.freeHead = 0
	return p
}

func (f *stdVariableMemoryPoolFactory) Destroy(p osw.VariableMemoryPool) {}

const (
	// varAlign is the alignment of every returned region and of every
	// chunk boundary, suitable for any standard scalar.
	varAlign = 16
	// varHeaderSize precedes each chunk: the chunk size while allocated,
	// size and free-list link while free. Padded to varAlign so chunk
	// boundaries and returned regions keep the alignment on any word size.
	varHeaderSize = (unsafe.Sizeof(varHeader{}) + varAlign - 1) &^ (varAlign - 1)
	varNone       = ^uintptr(0)
)

// varHeader holds only integers, never pointers, so keeping it inside the
// byte arena hides nothing from the garbage collector.
type varHeader struct {
	size uintptr // whole chunk, header included
	next uintptr // arena offset of the next free chunk, varNone at the end
}

// stdVariableMemoryPool is a first-fit allocator over a fixed arena. Free
// chunks form an address-ordered list threaded through their headers;
// deallocation coalesces with both neighbors. A mutex serializes the
// walks, coalescing cannot be done piecewise under CAS.
type stdVariableMemoryPool struct {
	mu       sync.Mutex
	arena    []byte
	freeHead uintptr // offset of first free chunk, varNone if exhausted
}

func (p *stdVariableMemoryPool) header(off uintptr) *varHeader {
	return (*varHeader)(unsafe.Pointer(unsafe.SliceData(p.arena[off:])))
}

func (p *stdVariableMemoryPool) Allocate(size uintptr) []byte {
	if size == 0 {
		return nil
	}
	need := alignUp(size, varAlign) + varHeaderSize

	p.mu.Lock()
	defer p.mu.Unlock()

	prev := varNone
	for off := p.freeHead; off != varNone; {
		h := p.header(off)
		if h.size < need {
			prev, off = off, h.next
			continue
		}
		rest := h.size - need
		if rest >= varHeaderSize+varAlign {
			// Split: the tail stays free.
			h.size = need
			restOff := off + need
			restH := p.header(restOff)
			restH.size = rest
			restH.next = h.next
			p.unlink(prev, restOff)
		} else {
			p.unlink(prev, h.next)
		}
		start := off + varHeaderSize
		return p.arena[start : start+size : off+h.size]
	}
	return nil
}

func (p *stdVariableMemoryPool) unlink(prev, next uintptr) {
	if prev == varNone {
		p.freeHead = next
	} else {
		p.header(prev).next = next
	}
}

func (p *stdVariableMemoryPool) Deallocate(b []byte) {
	if b == nil {
		return
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(p.arena)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < base+varHeaderSize || addr >= base+uintptr(len(p.arena)) {
		panic("stdosw: region is not from this pool")
	}
	off := addr - base - varHeaderSize
	if off%varAlign != 0 {
		panic("stdosw: region is not from this pool")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	h := p.header(off)

	// Insert address-ordered, then coalesce with both neighbors.
	prev := varNone
	next := p.freeHead
	for next != varNone && next < off {
		prev, next = next, p.header(next).next
	}
	h.next = next
	if prev == varNone {
		p.freeHead = off
	} else {
		p.header(prev).next = off
	}
	if next != varNone && off+h.size == next {
		nh := p.header(next)
		h.size += nh.size
		h.next = nh.next
	}
	if prev != varNone {
		ph := p.header(prev)
		if prev+ph.size == off {
			ph.size += h.size
			ph.next = h.next
		}
	}
}

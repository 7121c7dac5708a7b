// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container_test

import (
	"fmt"

	"code.hybscloud.com/osw/container"
)

func ExampleDeque() {
	d := container.NewDeque[string](4)
	_ = d.PushBack("b")
	_ = d.PushBack("c")
	_ = d.PushFront("a")

	for _, s := range d.All() {
		fmt.Println(s)
	}
	// Output:
	// a
	// b
	// c
}

func ExampleDeque_fullBehavior() {
	d := container.NewDeque[int](2)
	_ = d.PushBack(1)
	_ = d.PushBack(2)

	err := d.PushBack(3)
	fmt.Println(container.IsCapacityExceeded(err))
	fmt.Println(d.Len(), d.Cap())
	// Output:
	// true
	// 2 2
}

func ExampleNewDequeBuffer() {
	// The container runs entirely inside a caller-owned buffer; one slot is
	// spare, so 10 slots back a capacity of 9.
	var arena [10 * 8]byte
	d := container.NewDequeBuffer[int64](arena[:])
	fmt.Println(d.Cap())
	// Output:
	// 9
}

func ExampleVector() {
	v := container.NewVector[int](8)
	_ = v.AssignSlice([]int{3, 1, 4, 1, 5})
	_ = v.Insert(2, 9)
	v.Erase(0)
	fmt.Println(v.Slice())
	// Output:
	// [1 9 4 1 5]
}

type job struct {
	container.Node[*job]
	name string
}

func ExampleList_splice() {
	ready := container.NewList[*job]()
	waiting := container.NewList[*job]()
	ready.PushBack(&job{name: "flush"})
	waiting.PushBack(&job{name: "rx"})
	waiting.PushBack(&job{name: "tx"})

	// Move every waiting job to the ready list in O(1).
	ready.Splice(ready.End(), waiting)

	for j := range ready.Values() {
		fmt.Println(j.name)
	}
	fmt.Println(waiting.Empty())
	// Output:
	// flush
	// rx
	// tx
	// true
}

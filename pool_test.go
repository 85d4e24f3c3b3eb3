package memlab

import (
	"errors"
	"testing"
)

func TestPoolAlloc(t *testing.T) {
	t.Run("Carves are served sequentially from one buffer", func(t *testing.T) {
		p, err := NewPool[int](8)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		first, err := p.Alloc(3)
		if err != nil {
			t.Fatal(err)
		}
		second, err := p.Alloc(3)
		if err != nil {
			t.Fatal(err)
		}

		if first != (Carve{Buffer: 0, Offset: 0, Len: 3}) {
			t.Errorf("expected first carve at buffer 0 offset 0, got %+v", first)
		}
		if second != (Carve{Buffer: 0, Offset: 3, Len: 3}) {
			t.Errorf("expected second carve at buffer 0 offset 3, got %+v", second)
		}
		if n := p.NumBuffers(); n != 1 {
			t.Errorf("expected 1 buffer, got %d", n)
		}
	})

	t.Run("Carve that does not fit forces a new buffer", func(t *testing.T) {
		// capacity=8, requests 3,3,3: the third request would end at offset 9,
		// so it must be served at offset 0 of a second buffer.
		p, err := NewPool[int](8)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		for iter := 0; iter < 2; iter++ {
			if _, err := p.Alloc(3); err != nil {
				t.Fatal(err)
			}
		}
		third, err := p.Alloc(3)
		if err != nil {
			t.Fatal(err)
		}
		if third != (Carve{Buffer: 1, Offset: 0, Len: 3}) {
			t.Errorf("expected third carve at buffer 1 offset 0, got %+v", third)
		}
		if n := p.NumBuffers(); n != 2 {
			t.Errorf("expected 2 buffers, got %d", n)
		}
	})

	t.Run("Buffer count is ceil of total carved over capacity", func(t *testing.T) {
		tests := []struct {
			name     string
			capacity int
			sizes    []int
			want     int
		}{
			{"no requests keeps the initial buffer", 4, nil, 1},
			{"exact fill", 4, []int{2, 2}, 1},
			{"one element spill", 4, []int{2, 2, 1}, 2},
			{"full-capacity carves", 4, []int{4, 4, 4}, 3},
			{"spill to a second buffer", 8, []int{3, 3, 3}, 2},
			{"tail waste counts against capacity", 8, []int{3, 3, 3, 3, 3}, 3},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p, err := NewPool[byte](tt.capacity)
				if err != nil {
					t.Fatal(err)
				}
				defer p.Release()

				for _, n := range tt.sizes {
					if _, err := p.Alloc(n); err != nil {
						t.Fatal(err)
					}
				}
				if got := p.NumBuffers(); got != tt.want {
					t.Errorf("expected %d buffers, got %d", tt.want, got)
				}
			})
		}
	})

	t.Run("Carves within a buffer are disjoint", func(t *testing.T) {
		p, err := NewPool[int](16)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		var carves []Carve
		for _, n := range []int{4, 4, 4, 4} {
			c, err := p.Alloc(n)
			if err != nil {
				t.Fatal(err)
			}
			carves = append(carves, c)
		}
		for i, a := range carves {
			for _, b := range carves[i+1:] {
				if a.Buffer != b.Buffer {
					continue
				}
				if a.Offset < b.Offset+b.Len && b.Offset < a.Offset+a.Len {
					t.Errorf("carves %+v and %+v overlap", a, b)
				}
			}
		}
	})

	t.Run("Oversized carve is rejected", func(t *testing.T) {
		p, err := NewPool[int](4)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		if _, err := p.Alloc(5); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("expected ErrCapacityExceeded, got %v", err)
		}
		// The failed request must not have consumed any space.
		c, err := p.Alloc(4)
		if err != nil {
			t.Fatal(err)
		}
		if c != (Carve{Buffer: 0, Offset: 0, Len: 4}) {
			t.Errorf("expected carve at buffer 0 offset 0 after rejected request, got %+v", c)
		}
	})

	t.Run("Non-positive carve size is rejected", func(t *testing.T) {
		p, err := NewPool[int](4)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		for _, n := range []int{0, -1} {
			if _, err := p.Alloc(n); !errors.Is(err, ErrInvalidCarveSize) {
				t.Errorf("Alloc(%d): expected ErrInvalidCarveSize, got %v", n, err)
			}
		}
	})
}

func TestPoolView(t *testing.T) {
	t.Run("Round-trip through a carve view", func(t *testing.T) {
		p, err := NewPool[int](8)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		c, err := p.Alloc(4)
		if err != nil {
			t.Fatal(err)
		}
		view := p.View(c)
		if len(view) != 4 {
			t.Fatalf("expected view of length 4, got %d", len(view))
		}
		for i := range view {
			view[i] = i * 10
		}
		for i, v := range p.View(c) {
			if v != i*10 {
				t.Errorf("expected element %d to be %d, got %d", i, i*10, v)
			}
		}
	})

	t.Run("Carves from older buffers survive growth", func(t *testing.T) {
		p, err := NewPool[int](4)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		old, err := p.Alloc(4)
		if err != nil {
			t.Fatal(err)
		}
		p.View(old)[0] = 42

		// Force several new buffers.
		for iter := 0; iter < 5; iter++ {
			if _, err := p.Alloc(4); err != nil {
				t.Fatal(err)
			}
		}
		if got := p.View(old)[0]; got != 42 {
			t.Errorf("expected old carve to still hold 42 after growth, got %d", got)
		}
	})
}

func TestPoolRelease(t *testing.T) {
	t.Run("Operations panic after Release", func(t *testing.T) {
		p, err := NewPool[int](4)
		if err != nil {
			t.Fatal(err)
		}
		p.Release()

		defer func() {
			if r := recover(); r == nil {
				t.Error("expected Alloc on a released pool to panic")
			}
		}()
		p.Alloc(1)
	})

	t.Run("Release is idempotent", func(t *testing.T) {
		p, err := NewPool[int](4)
		if err != nil {
			t.Fatal(err)
		}
		p.Release()
		p.Release() // Must not panic.
	})
}

func TestNewPool(t *testing.T) {
	for _, capacity := range []int{0, -4} {
		if _, err := NewPool[int](capacity); err == nil {
			t.Errorf("NewPool(%d): expected an error, got nil", capacity)
		}
	}
}

func TestOffHeapPool(t *testing.T) {
	t.Run("Round-trip through off-heap memory", func(t *testing.T) {
		p, err := NewOffHeapPool[int64](1024)
		if err != nil {
			t.Fatal(err)
		}
		defer p.Release()

		c, err := p.Alloc(16)
		if err != nil {
			t.Fatal(err)
		}
		view := p.View(c)
		for i := range view {
			view[i] = int64(i) * 7
		}
		for i, v := range p.View(c) {
			if v != int64(i)*7 {
				t.Errorf("expected element %d to be %d, got %d", i, int64(i)*7, v)
			}
		}
	})

	t.Run("Growth and release of off-heap buffers", func(t *testing.T) {
		p, err := NewOffHeapPool[int32](8)
		if err != nil {
			t.Fatal(err)
		}
		for iter := 0; iter < 5; iter++ {
			if _, err := p.Alloc(8); err != nil {
				t.Fatal(err)
			}
		}
		if n := p.NumBuffers(); n != 5 {
			t.Errorf("expected 5 buffers, got %d", n)
		}
		p.Release() // Unmaps every buffer; failures would log and surface in -race/asan runs.
	})
}

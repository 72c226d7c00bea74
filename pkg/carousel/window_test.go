package carousel

import (
	"math"
	"testing"
)

// TestWrapIndexRange 任意虚拟索引映射后都落在 [0, n)
func TestWrapIndexRange(t *testing.T) {
	for _, n := range []int{1, 2, 3, 6, 7} {
		for i := -50; i <= 50; i++ {
			got := WrapIndex(i, n)
			if got < 0 || got >= n {
				t.Fatalf("WrapIndex(%d, %d) = %d, out of range", i, n, got)
			}
		}
	}
}

func TestWrapIndexValues(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{0, 6, 0},
		{5, 6, 5},
		{6, 6, 0},
		{-1, 6, 5},
		{-6, 6, 0},
		{-7, 6, 5},
		{-13, 6, 5},
		{1000003, 6, 1},
		{-4, 1, 0},
	}
	for _, tt := range tests {
		if got := WrapIndex(tt.i, tt.n); got != tt.want {
			t.Errorf("WrapIndex(%d, %d): got %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

// TestComputeWindowLength 窗口长度与当前索引的符号和大小无关
func TestComputeWindowLength(t *testing.T) {
	items := testItems(6)
	tests := []struct {
		buffer  int
		perView float64
	}{
		{3, 2.5},
		{3, 3},
		{0, 1},
		{2, 0.5},
		{5, 4.2},
	}

	for _, tt := range tests {
		want := tt.buffer*2 + int(math.Ceil(tt.perView)) + 1
		if WindowLength(tt.buffer, tt.perView) != want {
			t.Errorf("WindowLength(%d, %v): got %d, want %d", tt.buffer, tt.perView, WindowLength(tt.buffer, tt.perView), want)
		}
		for _, current := range []int{-1000, -7, -1, 0, 1, 5, 999} {
			got := len(ComputeWindow(current, tt.buffer, tt.perView, items))
			if got != want {
				t.Errorf("buffer=%d perView=%v current=%d: len got %d, want %d", tt.buffer, tt.perView, current, got, want)
			}
		}
	}
}

// TestComputeWindowEntries 窗口内容按虚拟索引递增，条目按模映射
func TestComputeWindowEntries(t *testing.T) {
	items := testItems(4)
	entries := ComputeWindow(-1, 2, 2.5, items)

	// [-3, -1+2+3] = [-3, 4]
	if len(entries) != 8 {
		t.Fatalf("len: got %d, want 8", len(entries))
	}
	wantItems := []int{1, 2, 3, 0, 1, 2, 3, 0}
	for i, e := range entries {
		if e.VirtualIndex != -3+i {
			t.Errorf("entry %d: VirtualIndex got %d, want %d", i, e.VirtualIndex, -3+i)
		}
		if e.ItemIndex != wantItems[i] {
			t.Errorf("entry %d: ItemIndex got %d, want %d", i, e.ItemIndex, wantItems[i])
		}
		if e.Item.ID != items[wantItems[i]].ID {
			t.Errorf("entry %d: Item got %s, want %s", i, e.Item.ID, items[wantItems[i]].ID)
		}
	}
}

// TestComputeWindowSingleItem N=1 时所有位置映射到同一条目
func TestComputeWindowSingleItem(t *testing.T) {
	items := testItems(1)
	for _, e := range ComputeWindow(17, 3, 2.5, items) {
		if e.ItemIndex != 0 {
			t.Errorf("virtual %d: ItemIndex got %d, want 0", e.VirtualIndex, e.ItemIndex)
		}
	}
}

func TestComputeWindowEmpty(t *testing.T) {
	if got := ComputeWindow(0, 3, 2.5, nil); got != nil {
		t.Errorf("empty items: got %v, want nil", got)
	}
}

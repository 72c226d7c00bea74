package carousel

import "math"

// WindowEntry 可见窗口中的一项
type WindowEntry struct {
	VirtualIndex int  // 无界虚拟索引
	ItemIndex    int  // 映射到条目集合中的物理索引
	Item         Item // 对应条目
}

// WrapIndex 将虚拟索引映射到 [0, n)
// n 必须大于 0
func WrapIndex(i, n int) int {
	return ((i % n) + n) % n
}

// WindowLength 返回可见窗口的长度
// 公式：buffer*2 + ceil(itemsPerView) + 1
func WindowLength(buffer int, itemsPerView float64) int {
	return buffer*2 + int(math.Ceil(itemsPerView)) + 1
}

// ComputeWindow 计算需要渲染的 (虚拟索引, 条目) 序列
//
// 覆盖范围 [current-buffer, current+buffer+ceil(itemsPerView)]，
// buffer 保证快速拖拽时两侧仍有内容，实现无缝循环。
//
// 参数：
//   - current: 当前已吸附的虚拟索引（可为负）
//   - buffer: 两侧额外渲染张数
//   - itemsPerView: 每屏张数，可为小数
//   - items: 条目集合，为空时返回 nil
func ComputeWindow(current, buffer int, itemsPerView float64, items []Item) []WindowEntry {
	n := len(items)
	if n == 0 {
		return nil
	}

	start := current - buffer
	end := current + buffer + int(math.Ceil(itemsPerView))

	entries := make([]WindowEntry, 0, end-start+1)
	for i := start; i <= end; i++ {
		idx := WrapIndex(i, n)
		entries = append(entries, WindowEntry{
			VirtualIndex: i,
			ItemIndex:    idx,
			Item:         items[idx],
		})
	}
	return entries
}

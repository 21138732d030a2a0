package maputil

import (
	"cmp"
	"slices"
)

// Keys 返回 map 中所有 key 组成的切片。
// 返回顺序不保证固定（依赖 map 遍历顺序）。
func Keys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys 返回 map 中所有 key 升序排列组成的切片。
//
// 适用于需要确定性遍历顺序的场景，例如生成快照或对外列表。
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := Keys(m)
	slices.Sort(keys)
	return keys
}

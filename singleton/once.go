package singleton

import "sync"

// Once 是基于 sync.Once 的简化单例持有器。
//
// 适用于构建函数不会失败、也不需要配置参数的场景，
// 语义上等价于首次访问时完成初始化的静态持有器写法。
// 构建可能失败或需要失败策略时，请使用 Lazy。
//
// 零值不可用，必须通过 NewOnce 创建。
//
// 类型参数:
//   - T: 实例类型
type Once[T any] struct {
	once  sync.Once
	build func() T
	val   T
}

// NewOnce 创建一个基于 sync.Once 的单例持有器。
func NewOnce[T any](build func() T) *Once[T] {
	return &Once[T]{build: build}
}

// Get 获取实例，首次调用时构建。
//
// 并发首次调用时，build 恰好执行一次，所有调用方返回同一个实例。
func (o *Once[T]) Get() T {
	o.once.Do(func() {
		o.val = o.build()
		o.build = nil
	})
	return o.val
}

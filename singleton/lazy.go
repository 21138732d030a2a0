package singleton

import (
	"context"
	"sync"
	"sync/atomic"
)

// Builder 是实例构建器函数类型。
//
// Builder 定义了如何根据配置构建实例，在首次访问时被调用（惰性初始化）。
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
//
// 参数:
//   - ctx: 上下文，可用于超时控制和取消
//   - cfg: 实例配置，由 NewLazy 时传入
type Builder[C any, T any] func(ctx context.Context, cfg C) (T, error)

// Lazy 是惰性初始化的单例持有器。
//
// Lazy 持有一个实例槽（初始为空）和一把用于串行化首次构建的互斥锁。
// 槽的生命周期只有一次状态迁移：空 -> 已填充，之后保持到进程结束。
//
// 零值不可用，必须通过 NewLazy 创建。
// Lazy 不可复制（内含锁与原子槽）。
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
type Lazy[C any, T any] struct {
	slot atomic.Pointer[T] // slot 是实例槽，原子发布保证跨 goroutine 可见完整对象
	mu   sync.Mutex        // mu 串行化首次构建的临界区

	cfg   C
	build Builder[C, T]

	policy FailurePolicy
	err    error // err 是 FailureSticky 策略下记录的首次构建错误，由 mu 保护
}

// NewLazy 创建一个惰性单例持有器。
//
// 参数:
//   - cfg: 实例配置，首次构建时传给 build
//   - build: 实例构建器
//   - opts: 可选配置，见 WithFailurePolicy
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
func NewLazy[C any, T any](cfg C, build Builder[C, T], opts ...Option) *Lazy[C, T] {
	o := loadOptions(opts...)
	return &Lazy[C, T]{
		cfg:    cfg,
		build:  build,
		policy: o.policy,
	}
}

// Get 获取实例，支持惰性初始化。
//
// 实现采用双重检查锁定（Double-Checked Locking）模式：
//  1. 首先无锁原子读实例槽，已填充则直接返回（快速路径，首次构建后无同步开销）
//  2. 槽为空时获取互斥锁
//  3. 锁内二次检查（等锁期间其他 goroutine 可能已完成构建）
//  4. 仍为空则调用 Builder 构建，并通过原子写发布，
//     保证其他 goroutine 看到完整初始化后的对象
//
// 并发首次调用时，Builder 恰好执行一次，所有调用方返回同一个实例。
//
// 可能返回的错误:
//   - ErrBuildFailed: 构建失败，包装了 Builder 返回的原始错误。
//     后续调用方的行为由 FailurePolicy 决定，见包文档。
func (l *Lazy[C, T]) Get(ctx context.Context) (T, error) {
	// 快速路径：无锁原子读
	if p := l.slot.Load(); p != nil {
		return *p, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// 双重检查：等锁期间其他 goroutine 可能已完成构建
	if p := l.slot.Load(); p != nil {
		return *p, nil
	}

	var zero T

	if l.policy == FailureSticky && l.err != nil {
		return zero, l.err
	}

	val, err := l.build(ctx, l.cfg)
	if err != nil {
		err = NewErrBuildFailed(err)
		if l.policy == FailureSticky {
			l.err = err
		}
		return zero, err
	}

	// 发布：原子写之后，快速路径的原子读保证看到完整的 val
	l.slot.Store(&val)
	return val, nil
}

// MustGet 获取实例，如果获取失败则触发 panic。
//
// 此方法是 Get 的便捷封装，适用于确定构建一定成功的场景。
// 如果不确定，请使用 Get 方法并处理返回的错误。
func (l *Lazy[C, T]) MustGet(ctx context.Context) T {
	val, err := l.Get(ctx)
	if err != nil {
		panic(err)
	}
	return val
}

// Populated 返回实例槽是否已填充。
//
// 此方法只做无锁探测，不会触发构建。
func (l *Lazy[C, T]) Populated() bool {
	return l.slot.Load() != nil
}

// Seed 绕过 Builder 直接填充实例槽。
//
// 适用于测试注入或外部已持有实例的场景。
//
// 注意事项:
//   - 只允许对空槽调用一次
//   - 槽已填充时再次调用属于编程错误，会以 ErrAlreadyPopulated 触发 panic，
//     而不是静默产生第二个实例
func (l *Lazy[C, T]) Seed(val T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.slot.Load() != nil {
		panic(NewErrAlreadyPopulated())
	}
	l.slot.Store(&val)
}

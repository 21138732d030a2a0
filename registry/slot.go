package registry

import (
	"context"
	"sync"
	"sync/atomic"
)

// slotState 表示命名单例槽的状态。
//
// 正常生命周期为 slotEmpty -> slotConstructing -> slotPopulated（终态）。
// FailureSticky 策略下构建失败会进入 slotFailed（终态）。
// 槽不会从 slotPopulated 回到 slotEmpty。
type slotState uint32

const (
	slotEmpty slotState = iota
	slotConstructing
	slotPopulated
	slotFailed
)

// String 返回状态的可读名称，用于快照输出。
func (s slotState) String() string {
	switch s {
	case slotEmpty:
		return "empty"
	case slotConstructing:
		return "constructing"
	case slotPopulated:
		return "populated"
	case slotFailed:
		return "failed"
	}
	return "unknown"
}

// slot 表示一个命名单例槽的内部状态。
//
// 槽有自己的互斥锁串行化构建，一个槽的构建不会阻塞其他槽。
// 状态通过原子操作发布：val 在 state 置为 slotPopulated 之前写入，
// 此后只读，因此无锁快速路径读到 slotPopulated 即可安全返回 val。
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
type slot[C any, T any] struct {
	mu    sync.Mutex    // mu 串行化本槽的构建与注入
	state atomic.Uint32 // state 是槽状态，所有迁移都在持有 mu 时发生

	cfg C     // cfg 是创建实例所需的配置，注册后只读
	val T     // val 在进入 slotPopulated 前写入，此后只读
	err error // err 在进入 slotFailed 前写入，此后只读
}

func newSlot[C any, T any](cfg C) *slot[C, T] {
	return &slot[C, T]{cfg: cfg}
}

func (s *slot[C, T]) loadState() slotState {
	return slotState(s.state.Load())
}

// get 获取槽内实例，空槽时执行双重检查锁定的惰性构建。
//
//  1. 无锁原子读状态：已填充直接返回实例，已失败（sticky）直接返回记录的错误
//  2. 获取槽锁
//  3. 锁内二次检查（等锁期间其他 goroutine 可能已完成构建）
//  4. 仍为空则进入 constructing，调用 opener 构建，
//     先写 val 再原子写状态完成发布
func (s *slot[C, T]) get(ctx context.Context, opener Opener[C, T], policy FailurePolicy) (T, error) {
	var zero T

	// 快速路径：无锁原子读
	switch s.loadState() {
	case slotPopulated:
		return s.val, nil
	case slotFailed:
		return zero, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// 双重检查：等锁期间其他 goroutine 可能已完成构建
	switch s.loadState() {
	case slotPopulated:
		return s.val, nil
	case slotFailed:
		return zero, s.err
	}

	s.state.Store(uint32(slotConstructing))

	val, err := opener(ctx, s.cfg)
	if err != nil {
		if policy == FailureSticky {
			s.err = err
			s.state.Store(uint32(slotFailed))
		} else {
			s.state.Store(uint32(slotEmpty))
		}
		return zero, err
	}

	s.val = val
	s.state.Store(uint32(slotPopulated))
	return val, nil
}

// put 绕过 opener 直接填充槽。
// 只允许对空槽执行；槽已填充、构建中或已失败时触发 panic。
func (s *slot[C, T]) put(val T, groupName, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadState() != slotEmpty {
		panic(NewErrAlreadyPopulated(groupName, name))
	}
	s.val = val
	s.state.Store(uint32(slotPopulated))
}

// takePopulated 返回槽内已填充的实例。
// 会等待进行中的构建结束，用于注销/关闭路径。
func (s *slot[C, T]) takePopulated() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	if s.loadState() != slotPopulated {
		return zero, false
	}
	return s.val, true
}

/*
Package singleton 提供进程内单例持有器（Holder）的通用实现。

# 概述

singleton 包围绕一个核心问题展开：如何让一份共享资源在整个进程生命周期内
只被构建一次，并让任意多个并发调用方安全地拿到同一个实例。

包内提供两种持有器：
  - Lazy: 惰性初始化，首次访问时构建，采用双重检查锁定保证并发安全
  - Once: 基于 sync.Once 的简化持有器，构建函数不可失败

# 核心概念

## Lazy（双重检查锁定持有器）

Lazy 是本包的核心类型，实现经典的双重检查锁定（Double-Checked Locking）：

 1. 无锁快速路径：通过原子读检查实例槽，已填充则直接返回
 2. 槽为空时获取互斥锁
 3. 锁内二次检查（等锁期间其他 goroutine 可能已完成构建）
 4. 仍为空则调用 Builder 构建实例，并通过原子写发布
 5. 释放锁并返回实例

原子发布保证其他 goroutine 看到的一定是完整初始化后的对象，
不会观察到部分写入的状态。构建完成后，后续所有访问都走无锁快速路径。

## Builder（构建器）

Builder 是一个函数类型，定义了如何根据配置构建实例：

	type Builder[C any, T any] func(ctx context.Context, cfg C) (T, error)

## 构建失败策略

Builder 返回错误时，错误会返回给触发构建的调用方。对于后续调用方的行为，
由 FailurePolicy 决定：

  - FailureRetry（默认）: 槽回到空状态，后续调用方会重新尝试构建
  - FailureSticky: 记录首次构建错误，后续所有调用方收到同一个错误，
    不再重新构建

## Seed（直接注入）

Seed 绕过 Builder 直接填充实例槽，用于测试或外部已持有实例的场景。
对已填充的槽再次调用 Seed 属于编程错误，会以 ErrAlreadyPopulated
触发 panic，而不是静默产生第二个实例。

# 各种单例写法的取舍

饿汉式（包级变量在声明或 init 时构建）写法最简单且天然并发安全，
但没有惰性加载，未用到时浪费构建成本：

	var defaultPool = newPool()

常量式（编译期可构造的值）连初始化同步都不需要，接受饿汉语义时优先考虑：

	const defaultLimit = 1024

朴素懒汉式（无锁的 nil 判断）有惰性但并发下会重复构建，不要使用。
全程加锁的懒汉式安全但每次访问都有同步开销。

Lazy 同时拿到惰性与低开销：只有首次构建有同步成本。
构建函数不会失败时，Once 是更简单的选择。

需要按名称管理多个单例槽时，请使用本模块的 registry 包。

# 使用示例

	holder := singleton.NewLazy(poolConfig{Size: 8},
	    func(ctx context.Context, cfg poolConfig) (*Pool, error) {
	        return newPool(cfg)
	    },
	)

	// 任意 goroutine 中获取，全部返回同一个 *Pool
	pool, err := holder.Get(ctx)
	if err != nil {
	    log.Fatal(err)
	}

# 并发安全

所有公开方法都是并发安全的。N 个 goroutine 并发首次访问时，
Builder 恰好执行一次，所有调用方返回同一个实例。
*/
package singleton

/*
Package registry 提供了一个通用的命名单例注册与管理框架。

# 概述

registry 包实现了一个泛型的命名单例管理器，每个命名槽在进程生命周期内
至多持有一个实例，支持：
  - 资源分组管理：将资源按组进行分类管理
  - 惰性初始化：实例仅在首次访问时才会被构建，且恰好构建一次
  - 并发安全：所有操作都是线程安全的；不同资源的构建互不阻塞
  - 显式的构建失败策略：失败后重试或记录首错，行为可配置
  - 自定义打开/关闭：支持自定义资源的创建和销毁逻辑
  - JSON 声明式注册与状态快照

# 核心概念

## Manager（管理器）

Manager 是整个注册表的顶层管理接口，负责管理多个资源组。

主要功能：
  - AddGroup: 添加新的资源组
  - Group/MustGroup: 获取指定名称的资源组
  - ListGroupNames: 列出所有组名
  - Snapshot: 生成全部槽状态的 JSON 快照
  - Close: 关闭所有已构建的实例

## Group（资源组）

Group 是一组命名单例槽的容器，每个槽通过唯一名称标识。

主要功能：
  - Register: 注册资源配置（此时不会构建实例）
  - Get/MustGet: 获取实例（首次调用时触发惰性初始化）
  - Config/MustConfig: 读取注册时保存的配置
  - Put: 绕过 Opener 直接注入实例
  - Ping: 构建一次并立即关闭，验证资源可用性，不保存实例
  - Unregister: 注销槽并关闭已构建的实例
  - List: 按名称升序列出组内所有槽
  - Snapshot: 生成组内槽状态的 JSON 快照
  - Close: 关闭组内所有已构建的实例

## 槽状态

每个命名槽是一个小状态机：

	empty -> constructing -> populated（终态）

populated 之后槽内实例只读，所有访问走无锁快速路径。
FailureSticky 策略下构建失败会进入 failed（终态）。
槽不会从 populated 回到 empty；Unregister/Close 只用于进程收尾，
注销整个槽而不是重置它。

## Opener（打开器）

Opener 是一个函数类型，定义了如何根据配置创建实例：

	type Opener[C any, T any] func(ctx context.Context, cfg C) (T, error)

## Closer（关闭器）

Closer 是一个函数类型，定义了如何关闭/销毁实例：

	type Closer[T any] func(ctx context.Context, t T) error

## 构建失败策略

Opener 返回错误时，错误会返回给触发构建的调用方。
后续调用方的行为由创建管理器时的 FailurePolicy 决定：

  - FailureRetry（默认）: 槽回到 empty，后续调用方重新尝试构建
  - FailureSticky: 槽进入 failed 并记录首次错误，
    后续所有调用方收到同一个错误，不再重新构建

# 使用示例

## 基础用法

创建一个数据库连接管理器：

	// 定义配置结构
	type DBConfig struct {
	    DSN string
	}

	// 创建管理器
	mgr := registry.New[DBConfig, *sql.DB](
	    func(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	        return sql.Open("mysql", cfg.DSN)
	    },
	    func(ctx context.Context, db *sql.DB) error {
	        return db.Close()
	    },
	)

	// 添加资源组
	mgr.AddGroup("master")
	mgr.AddGroup("slave")

	// 获取组并注册资源
	masterGroup, _ := mgr.Group("master")
	masterGroup.Register(ctx, "db1", DBConfig{DSN: "user:pass@tcp(host1:3306)/db"})
	masterGroup.Register(ctx, "db2", DBConfig{DSN: "user:pass@tcp(host2:3306)/db"})

	// 获取实例（首次调用时会初始化连接）
	db1, err := masterGroup.Get(ctx, "db1")
	if err != nil {
	    log.Fatal(err)
	}

	// 使用 MustGet（失败时会 panic）
	db2 := masterGroup.MustGet(ctx, "db2")

## 惰性初始化与恰好一次

实例只有在首次通过 Get 或 MustGet 访问时才会被构建。
N 个 goroutine 并发首次访问同一个槽时，Opener 恰好执行一次，
所有调用方拿到同一个实例。不同槽的构建互不阻塞。

	group.Register(ctx, "redis", RedisConfig{Addr: "localhost:6379"})

	// 首次 Get 时才会调用 Opener 创建连接
	client, _ := group.Get(ctx, "redis")

	// 后续 Get 直接返回已创建的实例，无锁快速路径
	client, _ = group.Get(ctx, "redis")

## JSON 声明式注册

	doc := `{"resources": {
	    "db1": {"dsn": "user:pass@tcp(host1:3306)/db"},
	    "db2": {"dsn": "user:pass@tcp(host2:3306)/db"}
	}}`
	n, err := registry.RegisterJSON(ctx, group, doc)

## 状态快照

	report, _ := mgr.Snapshot()
	// {"groups":{"master":{"db1":"populated","db2":"empty"}}}

## 直接注入

Put 绕过 Opener 直接填充槽，用于测试或外部已持有实例的场景。
对已填充的槽再次 Put 属于编程错误，会以 ErrAlreadyPopulated 触发
panic，而不是静默产生第二个实例。

	group.Put(ctx, "db1", existingDB)

## 资源清理

关闭单个资源：

	err := group.Unregister(ctx, "db1")

关闭整个组的资源：

	errs := group.Close(ctx)

关闭管理器中所有资源：

	errs := mgr.Close(ctx)

# 错误处理

包中定义了以下错误类型：

  - ErrGroupNotFound: 指定的组不存在
  - ErrResourceNotFound: 指定的资源不存在
  - ErrCloseResourceFailed: 关闭实例时发生错误
  - ErrPingResourceFailed: Ping 构建验证失败
  - ErrAlreadyPopulated: 对已填充的槽再次注入
  - ErrInvalidDocument: JSON 注册文档非法

可以使用 errors.Is 进行错误类型判断。

# 并发安全

所有公开的方法都是并发安全的。管理器级读写锁只保护组与槽的映射表；
每个槽有自己的互斥锁串行化构建，构建期间不持有管理器锁，
因此一个槽的慢构建不会阻塞其他槽的访问。
槽内实例通过原子写发布，已填充槽的读取完全无锁。

注意：对同一资源并发执行 Unregister 与 Get 的结果取决于两者的先后，
调用方需要自行保证顺序。

# 适用场景

  - 数据库连接管理
  - 缓存客户端管理（Redis、Memcached 等）
  - 消息队列连接管理
  - 任何需要按名称管理、且每个名称至多一个实例的资源
*/
package registry

package registry

import "context"

// Group 是资源组接口，用于管理一组命名单例槽。
//
// 每个槽通过唯一的名称标识，实例采用惰性初始化策略，
// 即只有在首次通过 Get 或 MustGet 访问时才会构建，且至多构建一次。
//
// 类型参数:
//   - C: 配置类型，用于创建实例
//   - T: 实例类型，被管理的资源实例类型
type Group[C any, T any] interface {
	// Get 根据名称获取实例。
	//
	// 如果槽尚未填充，会调用 Opener 进行惰性初始化。
	// 后续调用将直接返回已构建的实例（无锁快速路径）。
	// 并发首次访问同一个槽时，Opener 恰好执行一次，
	// 所有调用方返回同一个实例。
	//
	// 可能返回的错误:
	//   - ErrGroupNotFound: 组不存在
	//   - ErrResourceNotFound: 资源未注册
	//   - Opener 返回的错误: 构建失败（后续行为由 FailurePolicy 决定）
	Get(ctx context.Context, name string) (T, error)

	// MustGet 根据名称获取实例。
	// 如果获取失败，会触发 panic。
	MustGet(ctx context.Context, name string) T

	// Config 返回注册时保存的资源配置。
	//
	// 可能返回的错误:
	//   - ErrGroupNotFound: 组不存在
	//   - ErrResourceNotFound: 资源未注册
	Config(ctx context.Context, name string) (C, error)

	// MustConfig 返回注册时保存的资源配置。
	// 如果获取失败，会触发 panic。
	MustConfig(ctx context.Context, name string) C

	// Register 向组中注册一个新的资源配置。
	//
	// 注意：此方法只保存配置，不会立即构建实例。
	// 实例将在首次通过 Get 访问时惰性初始化。
	//
	// 返回值:
	//   - isNew: true 表示新注册成功，false 表示资源名已存在（不会覆盖）
	//   - err: 目前始终为 nil，保留用于将来扩展
	Register(ctx context.Context, name string, cfg C) (isNew bool, err error)

	// Put 绕过 Opener 直接向槽注入实例。
	//
	// 适用于测试注入或外部已持有实例的场景。
	// 槽不存在时会自动注册（配置为 C 的零值）。
	//
	// 注意：对已填充或构建中的槽再次 Put 属于编程错误，
	// 会以 ErrAlreadyPopulated 触发 panic，而不是静默产生第二个实例。
	Put(ctx context.Context, name string, val T) error

	// Ping 对指定资源执行一次构建验证：调用 Opener 构建实例，
	// 成功后立即用 Closer 关闭并丢弃，不会将实例保存到槽中。
	// 槽已填充时视为可用，直接返回 nil。
	//
	// 可能返回的错误:
	//   - ErrGroupNotFound: 组不存在
	//   - ErrResourceNotFound: 资源未注册
	//   - ErrPingResourceFailed: 构建失败（包装了 Opener 的错误）
	Ping(ctx context.Context, name string) error

	// Unregister 从组中注销指定槽。
	//
	// 如果槽已填充，会先调用 Closer 关闭实例。
	// 关闭时的错误会被忽略，槽仍会被移除。
	// 如果槽不存在，返回 ErrResourceNotFound 错误。
	Unregister(ctx context.Context, name string) error

	// List 返回组内所有已注册的资源名称列表，按名称升序排列。
	List() []string

	// Snapshot 生成组内槽状态的 JSON 快照。
	// 格式: {"<资源名>":"<状态>"}，
	// 状态为 empty/constructing/populated/failed 之一。
	Snapshot() (string, error)

	// Close 关闭组内所有已构建的实例。
	// 返回关闭过程中遇到的所有错误。
	// 调用后，整个组将从管理器中移除。
	Close(ctx context.Context) []error
}

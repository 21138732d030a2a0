package registry

import "context"

// Manager 是命名单例管理器的顶层接口，负责管理多个资源组。
//
// 类型参数:
//   - C: 配置类型，用于创建实例
//   - T: 实例类型，被管理的资源实例类型
type Manager[C any, T any] interface {
	// Group 根据名称获取资源组。
	// 如果组不存在，返回 ErrGroupNotFound 错误。
	Group(name string) (Group[C, T], error)

	// MustGroup 根据名称获取资源组。
	// 如果组不存在，会触发 panic。
	MustGroup(name string) Group[C, T]

	// AddGroup 添加一个新的资源组。
	// 返回值表示组是否已经存在：
	//   - false: 组是新创建的
	//   - true: 组已经存在（不会重新创建）
	AddGroup(name string) bool

	// ListGroupNames 返回所有已注册的组名列表。
	// 返回的列表顺序不保证固定（依赖 map 遍历顺序）。
	ListGroupNames() []string

	// Snapshot 生成管理器内全部槽状态的 JSON 快照。
	// 格式: {"groups":{"<组名>":{"<资源名>":"<状态>"}}}，
	// 状态为 empty/constructing/populated/failed 之一。
	Snapshot() (string, error)

	// Close 关闭管理器中所有已构建的实例。
	// 返回关闭过程中遇到的所有错误。
	// 调用后，管理器将被重置为空状态。
	Close(ctx context.Context) []error
}

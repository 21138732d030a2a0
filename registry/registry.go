package registry

import (
	"context"
	"sync"

	"github.com/qq1060656096/singleutil/maputil"
)

// defaultGroupName 是使用 NewGroup 创建单组管理器时的默认组名。
const defaultGroupName = "defaultGroup"

// New 创建一个新的命名单例管理器。
//
// 参数:
//   - opener: 资源打开器，用于根据配置创建实例
//   - closer: 资源关闭器，用于关闭/销毁实例（可以为 nil）
//   - opts: 可选配置，见 WithFailurePolicy
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
func New[C any, T any](opener Opener[C, T], closer Closer[T], opts ...Option) Manager[C, T] {
	o := loadOptions(opts...)
	return &manager[C, T]{
		groups: make(map[string]map[string]*slot[C, T]),
		opener: opener,
		closer: closer,
		policy: o.policy,
	}
}

// manager 是 Manager 接口的具体实现，负责管理多个资源组。
//
// mu 只保护组与槽的映射表本身；每个槽的构建由槽自己的锁串行化，
// 构建期间不持有 mu，因此一个槽的慢构建不会阻塞其他槽的访问。
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
type manager[C any, T any] struct {
	mu     sync.RWMutex                      // mu 保护 groups 映射表
	groups map[string]map[string]*slot[C, T] // groups 存储所有资源组，外层 key 为组名，内层 key 为资源名

	opener Opener[C, T]  // opener 用于创建实例
	closer Closer[T]     // closer 用于关闭实例（可为 nil）
	policy FailurePolicy // policy 是构建失败策略，对所有槽生效
}

// Group 根据名称获取资源组。
//
// 如果指定名称的组不存在，返回 ErrGroupNotFound 错误。
// 返回的 Group 对象可用于在该组内注册和获取资源。
func (m *manager[C, T]) Group(name string) (Group[C, T], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.groups[name]; !ok {
		return nil, NewErrGroupNotFound(name)
	}

	return &group[C, T]{
		name: name,
		m:    m,
	}, nil
}

// MustGroup 根据名称获取资源组，如果组不存在则触发 panic。
//
// 此方法是 Group 的便捷封装，适用于确定组一定存在的场景。
// 如果不确定组是否存在，请使用 Group 方法并处理返回的错误。
func (m *manager[C, T]) MustGroup(name string) Group[C, T] {
	g, err := m.Group(name)
	if err != nil {
		panic(err)
	}
	return g
}

// AddGroup 添加一个新的资源组。
//
// 如果指定名称的组不存在，则创建一个新的空组。
// 如果组已存在，不会进行任何操作。
//
// 返回值:
//   - false: 组是新创建的
//   - true: 组已经存在（未做任何修改）
func (m *manager[C, T]) AddGroup(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.groups[name]
	if !ok {
		m.groups[name] = make(map[string]*slot[C, T])
		return false
	}
	return true
}

// ListGroupNames 返回所有已注册的组名列表。
//
// 返回的列表顺序不保证固定（依赖 map 遍历顺序）。
func (m *manager[C, T]) ListGroupNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maputil.Keys(m.groups)
}

// Close 关闭管理器中所有已构建的实例。
//
// 遍历所有组中的所有槽，对已填充的槽调用 closer 进行关闭；
// 进行中的构建会先等待其完成。
// 关闭完成后，管理器将被重置为空状态（所有组和槽都会被清除）。
//
// 返回值:
//   - []error: 关闭过程中遇到的所有错误，每个错误都包含组名和资源名信息
func (m *manager[C, T]) Close(ctx context.Context) []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error

	for groupName, groupMap := range m.groups {
		for name, s := range groupMap {
			val, ok := s.takePopulated()
			if !ok {
				continue
			}
			if m.closer == nil {
				continue
			}
			if err := m.closer(ctx, val); err != nil {
				errs = append(errs, NewErrCloseResourceFailed(groupName, name, err))
			}
		}
	}

	// 清空所有组
	m.groups = make(map[string]map[string]*slot[C, T])
	return errs
}

// group 是 Group 接口的具体实现，代表一个资源组。
//
// group 通过持有 manager 的引用来访问和操作槽，
// 映射表操作由 manager 的锁保护，构建由槽自己的锁串行化。
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
type group[C any, T any] struct {
	name string         // name 是该组的唯一标识名称
	m    *manager[C, T] // m 是所属的管理器
}

// lookup 在管理器读锁下定位指定名称的槽。
func (g *group[C, T]) lookup(name string) (*slot[C, T], error) {
	g.m.mu.RLock()
	defer g.m.mu.RUnlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		return nil, NewErrGroupNotFound(g.name)
	}

	s, ok := groupMap[name]
	if !ok {
		return nil, NewErrResourceNotFound(g.name, name)
	}
	return s, nil
}

// Get 根据名称获取实例，支持惰性初始化。
//
// 先在管理器读锁下定位槽，随后把双重检查锁定交给槽自己完成：
// 已填充的槽走无锁快速路径；空槽在槽锁内二次检查后调用 opener 构建，
// 构建期间不持有管理器锁，不会阻塞其他槽的访问。
//
// 可能返回的错误:
//   - ErrGroupNotFound: 组不存在（可能已被关闭）
//   - ErrResourceNotFound: 资源未注册
//   - opener 返回的错误: 构建失败（后续行为由 FailurePolicy 决定）
func (g *group[C, T]) Get(ctx context.Context, name string) (T, error) {
	s, err := g.lookup(name)
	if err != nil {
		var zero T
		return zero, err
	}
	return s.get(ctx, g.m.opener, g.m.policy)
}

// MustGet 根据名称获取实例，如果获取失败则触发 panic。
//
// 此方法是 Get 的便捷封装，适用于确定资源一定存在且能成功构建的场景。
// 如果不确定，请使用 Get 方法并处理返回的错误。
func (g *group[C, T]) MustGet(ctx context.Context, name string) T {
	val, err := g.Get(ctx, name)
	if err != nil {
		panic(err)
	}
	return val
}

// Config 返回注册时保存的资源配置。
//
// 可能返回的错误:
//   - ErrGroupNotFound: 组不存在
//   - ErrResourceNotFound: 资源未注册
func (g *group[C, T]) Config(ctx context.Context, name string) (C, error) {
	s, err := g.lookup(name)
	if err != nil {
		var zero C
		return zero, err
	}
	return s.cfg, nil
}

// MustConfig 返回注册时保存的资源配置，如果获取失败则触发 panic。
func (g *group[C, T]) MustConfig(ctx context.Context, name string) C {
	cfg, err := g.Config(ctx, name)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Register 向组中注册一个新的资源配置。
//
// 注意事项:
//   - 此方法只保存配置，不会立即构建实例
//   - 实例将在首次通过 Get 访问时惰性初始化
//   - 如果资源名已存在，不会覆盖原有配置
//   - 如果组不存在（已被关闭），会自动重新创建组
//
// 返回值:
//   - isNew: true 表示新注册成功，false 表示资源名已存在
//   - err: 目前始终为 nil，保留用于将来扩展
func (g *group[C, T]) Register(ctx context.Context, name string, cfg C) (bool, error) {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		groupMap = make(map[string]*slot[C, T])
		g.m.groups[g.name] = groupMap
	}

	if _, exists := groupMap[name]; exists {
		return false, nil
	}

	groupMap[name] = newSlot[C, T](cfg)
	return true, nil
}

// Put 绕过 opener 直接向槽注入实例。
//
// 槽不存在时会自动注册（配置为 C 的零值）。
// 对已填充或构建中的槽再次 Put 属于编程错误，
// 会以 ErrAlreadyPopulated 触发 panic，而不是静默产生第二个实例。
func (g *group[C, T]) Put(ctx context.Context, name string, val T) error {
	g.m.mu.Lock()
	groupMap, ok := g.m.groups[g.name]
	if !ok {
		groupMap = make(map[string]*slot[C, T])
		g.m.groups[g.name] = groupMap
	}
	s, ok := groupMap[name]
	if !ok {
		var zero C
		s = newSlot[C, T](zero)
		groupMap[name] = s
	}
	g.m.mu.Unlock()

	s.put(val, g.name, name)
	return nil
}

// Ping 对指定资源执行一次构建验证。
//
// 槽已填充时视为可用，直接返回 nil。
// 否则调用 opener 构建一个临时实例，成功后立即用 closer 关闭并丢弃，
// 不会改变槽的状态。
//
// 可能返回的错误:
//   - ErrGroupNotFound: 组不存在
//   - ErrResourceNotFound: 资源未注册
//   - ErrPingResourceFailed: 构建失败（包装了 opener 的错误）
func (g *group[C, T]) Ping(ctx context.Context, name string) error {
	s, err := g.lookup(name)
	if err != nil {
		return err
	}

	if s.loadState() == slotPopulated {
		return nil
	}

	val, err := g.m.opener(ctx, s.cfg)
	if err != nil {
		return NewErrPingResourceFailed(g.name, name, err)
	}
	if g.m.closer != nil {
		_ = g.m.closer(ctx, val)
	}
	return nil
}

// Unregister 从组中注销指定槽。
//
// 如果槽已填充，会先调用 closer 关闭实例；进行中的构建会先等待其完成。
// 关闭时的错误会被忽略，槽仍会被移除。
//
// 注意：与对同一资源的并发 Get 存在先后竞争，调用方需自行保证顺序。
//
// 返回值:
//   - ErrGroupNotFound: 组不存在
//   - ErrResourceNotFound: 槽不存在
//   - nil: 注销成功
func (g *group[C, T]) Unregister(ctx context.Context, name string) error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		return NewErrGroupNotFound(g.name)
	}

	s, ok := groupMap[name]
	if !ok {
		return NewErrResourceNotFound(g.name, name)
	}

	if val, populated := s.takePopulated(); populated && g.m.closer != nil {
		_ = g.m.closer(ctx, val)
	}

	delete(groupMap, name)
	return nil
}

// List 返回组内所有已注册的资源名称列表，按名称升序排列。
//
// 如果组不存在（已被关闭），返回空列表。
func (g *group[C, T]) List() []string {
	g.m.mu.RLock()
	defer g.m.mu.RUnlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		return nil
	}
	return maputil.SortedKeys(groupMap)
}

// Close 关闭组内所有已构建的实例，并从管理器中移除整个组。
//
// 遍历组内所有槽，对已填充的槽调用 closer 进行关闭；
// 进行中的构建会先等待其完成。
// 关闭完成后，整个组将从管理器中删除。
//
// 返回值:
//   - []error: 关闭过程中遇到的所有错误，每个错误都包含组名和资源名信息
//   - nil: 组不存在（可能已被关闭）
func (g *group[C, T]) Close(ctx context.Context) []error {
	g.m.mu.Lock()
	defer g.m.mu.Unlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		return nil
	}

	var errs []error
	for name, s := range groupMap {
		val, populated := s.takePopulated()
		if !populated {
			continue
		}
		if g.m.closer == nil {
			continue
		}
		if err := g.m.closer(ctx, val); err != nil {
			err = NewErrCloseResourceFailed(g.name, name, err)
			errs = append(errs, err)
		}
	}

	delete(g.m.groups, g.name)
	return errs
}

// NewGroup 创建一个独立的资源组（单组模式）。
//
// 此函数是 New 的简化版本，适用于不需要多组管理的场景。
// 它会创建一个内部 manager 并预创建一个默认组，直接返回该组的引用。
//
// 使用场景:
//   - 应用只需要管理一类资源，不需要分组
//   - 快速原型开发，简化 API 调用
//
// 参数:
//   - opener: 资源打开器，用于根据配置创建实例
//   - closer: 资源关闭器，用于关闭/销毁实例（可以为 nil）
//   - opts: 可选配置，见 WithFailurePolicy
//
// 类型参数:
//   - C: 配置类型
//   - T: 实例类型
//
// 示例:
//
//	group := NewGroup(dbOpener, dbCloser)
//	group.Register(ctx, "main", dbConfig)
//	db, err := group.Get(ctx, "main")
func NewGroup[C any, T any](
	opener Opener[C, T],
	closer Closer[T],
	opts ...Option,
) Group[C, T] {
	o := loadOptions(opts...)
	m := &manager[C, T]{
		groups: make(map[string]map[string]*slot[C, T]),
		opener: opener,
		closer: closer,
		policy: o.policy,
	}

	// 预创建默认 group，使用 defaultGroupName 作为组名
	m.groups[defaultGroupName] = make(map[string]*slot[C, T])
	return &group[C, T]{
		name: defaultGroupName,
		m:    m,
	}
}

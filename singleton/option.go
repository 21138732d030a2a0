package singleton

// FailurePolicy 定义构建失败后，后续调用方的行为。
type FailurePolicy uint8

const (
	// FailureRetry 表示构建失败后槽回到空状态，
	// 后续调用方会重新尝试构建。此为默认策略。
	FailureRetry FailurePolicy = iota

	// FailureSticky 表示记录首次构建错误，
	// 后续所有调用方收到同一个错误，不再重新构建。
	FailureSticky
)

// Option 是创建持有器时的可选配置函数。
type Option func(*options)

type options struct {
	policy FailurePolicy
}

// WithFailurePolicy 设置构建失败策略。
//
// 示例:
//
//	holder := singleton.NewLazy(cfg, build,
//	    singleton.WithFailurePolicy(singleton.FailureSticky))
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

func loadOptions(opts ...Option) *options {
	o := &options{policy: FailureRetry}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

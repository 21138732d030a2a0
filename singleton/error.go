package singleton

import (
	"errors"
	"fmt"
)

// 预定义的哨兵错误，可使用 errors.Is 进行判断。
var (
	// ErrAlreadyPopulated 表示实例槽已被填充。
	// 当对已填充的持有器再次调用 Seed 时，会以此错误触发 panic。
	ErrAlreadyPopulated = errors.New("singleutil.singleton: instance already populated")

	// ErrBuildFailed 表示构建实例失败。
	// FailureSticky 策略下记录的错误会包装此哨兵。
	ErrBuildFailed = errors.New("singleutil.singleton: build instance failed")
)

// NewErrAlreadyPopulated 创建一个实例槽已填充错误。
//
// 返回的错误可以通过 errors.Is(err, ErrAlreadyPopulated) 进行判断。
func NewErrAlreadyPopulated() error {
	return fmt.Errorf("seed rejected: %w", ErrAlreadyPopulated)
}

// NewErrBuildFailed 创建一个包含原始错误的构建失败错误。
//
// 返回的错误可以通过 errors.Is(err, ErrBuildFailed) 进行判断，
// 同时也可以通过 errors.Is 判断原始错误。
func NewErrBuildFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrBuildFailed, err)
}

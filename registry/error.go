package registry

import (
	"errors"
	"fmt"
)

// 预定义的哨兵错误，可使用 errors.Is 进行判断。
//
// 示例:
//
//	_, err := mgr.Group("nonexistent")
//	if errors.Is(err, registry.ErrGroupNotFound) {
//	    // 处理组不存在的情况
//	}
var (
	// ErrGroupNotFound 表示请求的资源组不存在。
	// 当调用 Manager.Group 或 Group.Get 时，如果指定的组未被添加，将返回此错误。
	ErrGroupNotFound = errors.New("singleutil.registry: group not found")

	// ErrResourceNotFound 表示请求的资源在组中不存在。
	// 当调用 Group.Get 或 Group.Unregister 时，如果指定的资源未被注册，将返回此错误。
	ErrResourceNotFound = errors.New("singleutil.registry: resource not found")

	// ErrCloseResourceFailed 表示关闭实例时发生错误。
	// 当 Closer 函数返回错误时，将返回此错误。
	ErrCloseResourceFailed = errors.New("singleutil.registry: close resource failed")

	// ErrPingResourceFailed 表示 Ping 构建验证失败。
	// 当 Ping 调用 Opener 失败时，将返回此错误。
	ErrPingResourceFailed = errors.New("singleutil.registry: ping resource failed")

	// ErrAlreadyPopulated 表示槽已持有实例。
	// 当对已填充的槽再次调用 Put 时，会以此错误触发 panic。
	ErrAlreadyPopulated = errors.New("singleutil.registry: slot already populated")

	// ErrInvalidDocument 表示 JSON 注册文档非法。
	// 当 RegisterJSON 收到无法解析的文档或缺少 resources 对象时，将返回此错误。
	ErrInvalidDocument = errors.New("singleutil.registry: invalid resource document")
)

// NewErrGroupNotFound 创建一个包含组名信息的组未找到错误。
//
// 返回的错误可以通过 errors.Is(err, ErrGroupNotFound) 进行判断。
func NewErrGroupNotFound(groupName string) error {
	return fmt.Errorf("group %q not found: %w", groupName, ErrGroupNotFound)
}

// NewErrResourceNotFound 创建一个包含组名和资源名信息的资源未找到错误。
//
// 返回的错误可以通过 errors.Is(err, ErrResourceNotFound) 进行判断。
func NewErrResourceNotFound(groupName, resourceName string) error {
	return fmt.Errorf("resource %q not found from group %q: %w", resourceName, groupName, ErrResourceNotFound)
}

// NewErrCloseResourceFailed 创建一个包含组名、资源名和原始错误的关闭失败错误。
//
// 返回的错误可以通过 errors.Is(err, ErrCloseResourceFailed) 进行判断，
// 同时也可以通过 errors.Is 判断原始错误。
func NewErrCloseResourceFailed(groupName, resourceName string, err error) error {
	return fmt.Errorf("close resource %q in group %q failed: %w: %w", resourceName, groupName, ErrCloseResourceFailed, err)
}

// NewErrPingResourceFailed 创建一个包含组名、资源名和原始错误的验证失败错误。
//
// 返回的错误可以通过 errors.Is(err, ErrPingResourceFailed) 进行判断，
// 同时也可以通过 errors.Is 判断原始错误。
func NewErrPingResourceFailed(groupName, resourceName string, err error) error {
	return fmt.Errorf("ping resource %q in group %q failed: %w: %w", resourceName, groupName, ErrPingResourceFailed, err)
}

// NewErrAlreadyPopulated 创建一个包含组名和资源名信息的槽已填充错误。
//
// 返回的错误可以通过 errors.Is(err, ErrAlreadyPopulated) 进行判断。
func NewErrAlreadyPopulated(groupName, resourceName string) error {
	return fmt.Errorf("put rejected: resource %q in group %q: %w", resourceName, groupName, ErrAlreadyPopulated)
}

// NewErrInvalidDocument 创建一个包含原因说明的文档非法错误。
//
// 返回的错误可以通过 errors.Is(err, ErrInvalidDocument) 进行判断。
func NewErrInvalidDocument(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, reason)
}

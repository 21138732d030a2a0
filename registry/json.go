package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/qq1060656096/singleutil/maputil"
)

// resourcesKey 是 JSON 注册文档中存放资源配置的顶层字段名。
const resourcesKey = "resources"

// RegisterJSON 从 JSON 文档批量注册资源配置。
//
// 文档格式:
//
//	{"resources": {"<资源名>": <配置对象>, ...}}
//
// 每个配置对象会被解码为 C 后调用 Group.Register 注册；
// 已存在的资源名会被跳过（与 Register 一致，不覆盖）。
//
// 参数:
//   - ctx: 上下文
//   - g: 目标资源组
//   - doc: JSON 文档
//
// 返回值:
//   - int: 本次新注册的资源数量
//   - error: 文档非法或某个配置解码/注册失败时的错误，
//     失败发生时已注册的资源保持注册状态
//
// 可能返回的错误:
//   - ErrInvalidDocument: 文档不是合法 JSON，或 resources 不是对象
//   - 配置解码错误: 某个配置对象无法解码为 C
//
// 示例:
//
//	doc := `{"resources": {
//	    "db1": {"dsn": "user:pass@tcp(host1:3306)/db"},
//	    "db2": {"dsn": "user:pass@tcp(host2:3306)/db"}
//	}}`
//	n, err := registry.RegisterJSON(ctx, group, doc)
func RegisterJSON[C any, T any](ctx context.Context, g Group[C, T], doc string) (int, error) {
	if !gjson.Valid(doc) {
		return 0, NewErrInvalidDocument("not valid JSON")
	}

	resources := gjson.Get(doc, resourcesKey)
	if !resources.Exists() || !resources.IsObject() {
		return 0, NewErrInvalidDocument(fmt.Sprintf("%q must be an object", resourcesKey))
	}

	var (
		count int
		err   error
	)
	resources.ForEach(func(key, value gjson.Result) bool {
		name := key.String()

		var cfg C
		if decodeErr := json.Unmarshal([]byte(value.Raw), &cfg); decodeErr != nil {
			err = fmt.Errorf("decode config of resource %q: %w", name, decodeErr)
			return false
		}

		isNew, registerErr := g.Register(ctx, name, cfg)
		if registerErr != nil {
			err = registerErr
			return false
		}
		if isNew {
			count++
		}
		return true
	})
	return count, err
}

// Snapshot 生成管理器内全部槽状态的 JSON 快照。
//
// 组名和资源名均按升序排列，输出是确定性的。
// 状态值为 empty/constructing/populated/failed 之一；
// 快照只读原子状态，不会阻塞进行中的构建。
func (m *manager[C, T]) Snapshot() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := `{"groups":{}}`
	var err error

	for _, groupName := range maputil.SortedKeys(m.groups) {
		groupPath := "groups." + escapePath(groupName)
		out, err = sjson.SetRaw(out, groupPath, "{}")
		if err != nil {
			return "", err
		}

		groupMap := m.groups[groupName]
		for _, name := range maputil.SortedKeys(groupMap) {
			out, err = sjson.Set(out, groupPath+"."+escapePath(name), groupMap[name].loadState().String())
			if err != nil {
				return "", err
			}
		}
	}
	return out, nil
}

// Snapshot 生成组内槽状态的 JSON 快照。
//
// 资源名按升序排列，输出是确定性的。
// 如果组不存在（已被关闭），返回 ErrGroupNotFound 错误。
func (g *group[C, T]) Snapshot() (string, error) {
	g.m.mu.RLock()
	defer g.m.mu.RUnlock()

	groupMap, ok := g.m.groups[g.name]
	if !ok {
		return "", NewErrGroupNotFound(g.name)
	}

	out := "{}"
	var err error
	for _, name := range maputil.SortedKeys(groupMap) {
		out, err = sjson.Set(out, escapePath(name), groupMap[name].loadState().String())
		if err != nil {
			return "", err
		}
	}
	return out, nil
}

// escapePath 转义名称中的 gjson/sjson 路径特殊字符，
// 使包含 "." 等字符的组名/资源名也能作为单层 key 写入。
func escapePath(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

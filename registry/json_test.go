package registry

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/tidwall/gjson"
)

// ============== RegisterJSON 测试 ==============

func TestRegisterJSON(t *testing.T) {
	ctx := context.Background()
	var openCount atomic.Int32
	g := NewGroup(newTestOpener(&openCount), newTestCloser())

	doc := `{"resources": {
		"db1": {"name": "db1", "value": 1},
		"db2": {"name": "db2", "value": 2}
	}}`
	n, err := RegisterJSON(ctx, g, doc)
	if err != nil {
		t.Fatalf("RegisterJSON failed: %v", err)
	}
	if n != 2 {
		t.Errorf("RegisterJSON should register 2 resources, got %d", n)
	}

	// 注册只保存配置，不触发构建
	if got := openCount.Load(); got != 0 {
		t.Errorf("RegisterJSON should not open resources, opened %d times", got)
	}

	cfg := g.MustConfig(ctx, "db1")
	if cfg.Name != "db1" || cfg.Value != 1 {
		t.Errorf("decoded config mismatch, got %+v", cfg)
	}

	r := g.MustGet(ctx, "db2")
	if r.Config.Name != "db2" || r.Config.Value != 2 {
		t.Errorf("instance config mismatch, got %+v", r.Config)
	}
}

func TestRegisterJSON_SkipExisting(t *testing.T) {
	ctx := context.Background()
	g := NewGroup(newTestOpener(nil), newTestCloser())
	g.Register(ctx, "db1", testConfig{Name: "original"})

	doc := `{"resources": {
		"db1": {"name": "overwrite"},
		"db2": {"name": "db2"}
	}}`
	n, err := RegisterJSON(ctx, g, doc)
	if err != nil {
		t.Fatalf("RegisterJSON failed: %v", err)
	}

	// 已存在的资源名被跳过，不计入注册数量，也不覆盖配置
	if n != 1 {
		t.Errorf("RegisterJSON should register 1 new resource, got %d", n)
	}
	if cfg := g.MustConfig(ctx, "db1"); cfg.Name != "original" {
		t.Errorf("existing config should not be overwritten, got %+v", cfg)
	}
}

func TestRegisterJSON_InvalidDocument(t *testing.T) {
	ctx := context.Background()
	g := NewGroup(newTestOpener(nil), newTestCloser())

	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{resources`},
		{"missing resources", `{"other": {}}`},
		{"resources not object", `{"resources": [1, 2]}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := RegisterJSON(ctx, g, c.doc)
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("RegisterJSON should return ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestRegisterJSON_DecodeError(t *testing.T) {
	ctx := context.Background()
	g := NewGroup(newTestOpener(nil), newTestCloser())

	// value 字段类型不匹配，解码应该失败
	doc := `{"resources": {"db1": {"name": "db1", "value": "not-a-number"}}}`
	_, err := RegisterJSON(ctx, g, doc)
	if err == nil {
		t.Fatal("RegisterJSON should fail on config decode error")
	}
}

// ============== Snapshot 测试 ==============

func TestManager_Snapshot(t *testing.T) {
	ctx := context.Background()
	m := New(newTestOpener(nil), newTestCloser())
	m.AddGroup("master")
	m.AddGroup("slave")

	g := m.MustGroup("master")
	g.Register(ctx, "db1", testConfig{Name: "db1"})
	g.Register(ctx, "db2", testConfig{Name: "db2"})
	g.MustGet(ctx, "db1")

	snapshot, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if got := gjson.Get(snapshot, "groups.master.db1").String(); got != "populated" {
		t.Errorf("db1 state should be populated, got %q", got)
	}
	if got := gjson.Get(snapshot, "groups.master.db2").String(); got != "empty" {
		t.Errorf("db2 state should be empty, got %q", got)
	}

	// 空组也应该出现在快照中
	if !gjson.Get(snapshot, "groups.slave").IsObject() {
		t.Errorf("empty group should appear as an object, snapshot: %s", snapshot)
	}
}

func TestManager_Snapshot_FailedState(t *testing.T) {
	ctx := context.Background()
	m := New(newFailingOpener(nil, "dial failed"), newTestCloser(),
		WithFailurePolicy(FailureSticky))
	m.AddGroup("master")

	g := m.MustGroup("master")
	g.Register(ctx, "db1", testConfig{Name: "db1"})
	g.Get(ctx, "db1")

	snapshot, err := m.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := gjson.Get(snapshot, "groups.master.db1").String(); got != "failed" {
		t.Errorf("db1 state should be failed under sticky policy, got %q", got)
	}
}

func TestGroup_Snapshot_Constructing(t *testing.T) {
	ctx := context.Background()

	// 构建阻塞在 channel 上，以便观察 constructing 状态
	started := make(chan struct{})
	release := make(chan struct{})
	opener := func(ctx context.Context, cfg testConfig) (*testResource, error) {
		close(started)
		<-release
		return &testResource{Config: cfg}, nil
	}
	g := NewGroup(opener, newTestCloser())
	g.Register(ctx, "db1", testConfig{Name: "db1"})

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := g.Get(ctx, "db1"); err != nil {
			t.Errorf("Get failed: %v", err)
		}
	}()

	<-started
	snapshot, err := g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := gjson.Get(snapshot, "db1").String(); got != "constructing" {
		t.Errorf("db1 state should be constructing, got %q", got)
	}

	close(release)
	<-done

	snapshot, err = g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := gjson.Get(snapshot, "db1").String(); got != "populated" {
		t.Errorf("db1 state should be populated, got %q", got)
	}
}

func TestSnapshot_EscapedName(t *testing.T) {
	ctx := context.Background()
	g := NewGroup(newTestOpener(nil), newTestCloser())
	g.Register(ctx, "db.primary", testConfig{Name: "db.primary"})

	snapshot, err := g.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	// 含 "." 的资源名必须作为单层 key 写入，而不是被拆成嵌套对象
	if got := gjson.Get(snapshot, `db\.primary`).String(); got != "empty" {
		t.Errorf("escaped key should hold the state, snapshot: %s", snapshot)
	}
}

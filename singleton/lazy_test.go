package singleton

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// 测试用的配置和实例类型
type poolConfig struct {
	Name string
	Size int
}

type pool struct {
	Config poolConfig
}

// 创建测试用的 builder，记录构建次数
func newCountingBuilder(count *atomic.Int32) Builder[poolConfig, *pool] {
	return func(ctx context.Context, cfg poolConfig) (*pool, error) {
		count.Add(1)
		return &pool{Config: cfg}, nil
	}
}

// 创建会失败的 builder
func newFailingBuilder(count *atomic.Int32, errMsg string) Builder[poolConfig, *pool] {
	return func(ctx context.Context, cfg poolConfig) (*pool, error) {
		count.Add(1)
		return nil, errors.New(errMsg)
	}
}

// ============== Lazy 测试 ==============

func TestLazy_Get(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db", Size: 8}, newCountingBuilder(&count))

	if holder.Populated() {
		t.Error("Populated should be false before first Get")
	}

	// 首次 Get 触发构建
	p1, err := holder.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p1.Config.Name != "db" || p1.Config.Size != 8 {
		t.Errorf("instance should be fully initialized, got %+v", p1.Config)
	}

	// 再次 Get 不会重复构建，且返回同一个实例
	p2, err := holder.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p1 != p2 {
		t.Error("Get should return the identical instance")
	}
	if got := count.Load(); got != 1 {
		t.Errorf("builder should run exactly once, ran %d times", got)
	}
	if !holder.Populated() {
		t.Error("Populated should be true after Get")
	}
}

func TestLazy_Get_Concurrent(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db", Size: 8}, newCountingBuilder(&count))

	// 100 个 goroutine 并发首次访问
	const goroutines = 100
	results := make([]*pool, goroutines)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			p, err := holder.Get(ctx)
			if err != nil {
				t.Errorf("Get failed: %v", err)
				return
			}
			// 任何调用方都不应观察到未完成初始化的对象
			if p.Config.Name == "" || p.Config.Size == 0 {
				t.Errorf("observed partially initialized instance: %+v", p.Config)
			}
			results[i] = p
		}(i)
	}
	start.Done()
	done.Wait()

	// 构建恰好一次
	if got := count.Load(); got != 1 {
		t.Errorf("builder should run exactly once, ran %d times", got)
	}

	// 所有调用方拿到同一个实例
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d got a different instance", i)
		}
	}
}

func TestLazy_Get_FailureRetry(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db"}, newFailingBuilder(&count, "dial failed"))

	// 默认策略：失败返回给触发构建的调用方
	_, err := holder.Get(ctx)
	if err == nil {
		t.Fatal("Get should fail")
	}
	if !errors.Is(err, ErrBuildFailed) {
		t.Errorf("error should wrap ErrBuildFailed, got %v", err)
	}

	// 槽回到空状态，后续调用方重新尝试构建
	_, err = holder.Get(ctx)
	if err == nil {
		t.Fatal("Get should fail again")
	}
	if got := count.Load(); got != 2 {
		t.Errorf("builder should run once per attempt, ran %d times", got)
	}
	if holder.Populated() {
		t.Error("Populated should be false after failed builds")
	}
}

func TestLazy_Get_FailureSticky(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db"}, newFailingBuilder(&count, "dial failed"),
		WithFailurePolicy(FailureSticky))

	_, err1 := holder.Get(ctx)
	if err1 == nil {
		t.Fatal("Get should fail")
	}

	// 后续调用方收到同一个错误，不再重新构建
	_, err2 := holder.Get(ctx)
	if !errors.Is(err2, ErrBuildFailed) {
		t.Errorf("error should wrap ErrBuildFailed, got %v", err2)
	}
	if err1.Error() != err2.Error() {
		t.Errorf("subsequent callers should receive the recorded error, got %v and %v", err1, err2)
	}
	if got := count.Load(); got != 1 {
		t.Errorf("builder should run exactly once under sticky policy, ran %d times", got)
	}
}

func TestLazy_MustGet(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db"}, newFailingBuilder(&count, "dial failed"))

	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic on build failure")
		}
	}()
	holder.MustGet(ctx)
}

func TestLazy_Seed(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{}, newCountingBuilder(&count))

	injected := &pool{Config: poolConfig{Name: "injected"}}
	holder.Seed(injected)

	// Seed 之后 Get 直接返回注入的实例，不触发构建
	p, err := holder.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if p != injected {
		t.Error("Get should return the seeded instance")
	}
	if got := count.Load(); got != 0 {
		t.Errorf("builder should not run after Seed, ran %d times", got)
	}
}

func TestLazy_Seed_AlreadyPopulated(t *testing.T) {
	ctx := context.Background()
	var count atomic.Int32
	holder := NewLazy(poolConfig{Name: "db", Size: 8}, newCountingBuilder(&count))

	if _, err := holder.Get(ctx); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// 对已填充的槽再次注入属于编程错误，必须 panic 而不是静默产生第二个实例
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Seed on a populated holder should panic")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrAlreadyPopulated) {
			t.Errorf("panic value should wrap ErrAlreadyPopulated, got %v", r)
		}
	}()
	holder.Seed(&pool{})
}

// ============== Once 测试 ==============

func TestOnce_Get(t *testing.T) {
	var count atomic.Int32
	holder := NewOnce(func() *pool {
		count.Add(1)
		return &pool{Config: poolConfig{Name: "static"}}
	})

	p1 := holder.Get()
	p2 := holder.Get()
	if p1 != p2 {
		t.Error("Get should return the identical instance")
	}
	if got := count.Load(); got != 1 {
		t.Errorf("build should run exactly once, ran %d times", got)
	}
}

func TestOnce_Get_Concurrent(t *testing.T) {
	var count atomic.Int32
	holder := NewOnce(func() *pool {
		count.Add(1)
		return &pool{Config: poolConfig{Name: "static", Size: 4}}
	})

	const goroutines = 100
	results := make([]*pool, goroutines)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i] = holder.Get()
		}(i)
	}
	start.Done()
	done.Wait()

	if got := count.Load(); got != 1 {
		t.Errorf("build should run exactly once, ran %d times", got)
	}
	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("goroutine %d got a different instance", i)
		}
	}
}

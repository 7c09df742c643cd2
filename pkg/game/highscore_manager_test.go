package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// newTestGdata 在临时目录中创建 gdata manager
func newTestGdata(t *testing.T) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: "test_ricochet"})
	if err != nil {
		t.Fatalf("failed to create gdata manager: %v", err)
	}
	return m
}

// TestHighScoreRoundTrip 测试最高分的保存与读取
func TestHighScoreRoundTrip(t *testing.T) {
	m := newTestGdata(t)
	hm := NewHighScoreManager(m)

	if got := hm.Load(); got != 0 {
		t.Errorf("missing record: got %d, want 0", got)
	}

	if err := hm.Save(1234); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	if got := hm.Load(); got != 1234 {
		t.Errorf("Load after Save: got %d, want 1234", got)
	}

	// 新的管理器实例读到同一份记录
	hm2 := NewHighScoreManager(m)
	if got := hm2.Load(); got != 1234 {
		t.Errorf("fresh manager Load: got %d, want 1234", got)
	}
}

// TestHighScoreCorruptRecord 测试损坏记录按 0 处理
func TestHighScoreCorruptRecord(t *testing.T) {
	m := newTestGdata(t)

	if err := m.SaveObjectProp(highScoreObject, highScoreProperty, []byte("not a number")); err != nil {
		t.Fatalf("failed to plant corrupt record: %v", err)
	}

	hm := NewHighScoreManager(m)
	if got := hm.Load(); got != 0 {
		t.Errorf("corrupt record: got %d, want 0", got)
	}
}

// TestHighScoreNegativeRecord 测试负数记录按 0 处理
func TestHighScoreNegativeRecord(t *testing.T) {
	m := newTestGdata(t)

	if err := m.SaveObjectProp(highScoreObject, highScoreProperty, []byte("-5")); err != nil {
		t.Fatalf("failed to plant record: %v", err)
	}

	hm := NewHighScoreManager(m)
	if got := hm.Load(); got != 0 {
		t.Errorf("negative record: got %d, want 0", got)
	}
}

// TestHighScoreNilManager 测试降级模式：无存储时不报错
func TestHighScoreNilManager(t *testing.T) {
	hm := NewHighScoreManager(nil)

	if got := hm.Load(); got != 0 {
		t.Errorf("nil manager Load: got %d, want 0", got)
	}
	if err := hm.Save(99); err != nil {
		t.Errorf("nil manager Save must be a no-op, got error: %v", err)
	}
}

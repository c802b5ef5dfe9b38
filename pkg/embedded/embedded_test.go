package embedded

import (
	"testing"
	"testing/fstest"
)

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时读取
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	if _, err := ReadFile("data/scene.yaml"); err == nil {
		t.Error("Expected error when not initialized")
	}
	if Exists("data/scene.yaml") {
		t.Error("Exists should be false when not initialized")
	}
}

// TestReadFile 测试路径标准化与前缀检查
func TestReadFile(t *testing.T) {
	Init(fstest.MapFS{
		"data/scene.yaml": &fstest.MapFile{Data: []byte("parts: []\n")},
	})
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"Plain", "data/scene.yaml", false},
		{"DotSlash", "./data/scene.yaml", false},
		{"WrongPrefix", "assets/glow.png", true},
		{"Missing", "data/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "parts: []\n" {
				t.Errorf("ReadFile(%q) = %q", tt.path, data)
			}
			if Exists(tt.path) == tt.wantErr {
				t.Errorf("Exists(%q) = %v", tt.path, !tt.wantErr)
			}
		})
	}
}

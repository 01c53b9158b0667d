package fonts

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadBuiltin(t *testing.T) {
	cases := []struct {
		path string
		want []byte
	}{
		{"", goregular.TTF},
		{"builtin:", goregular.TTF},
		{"builtin:go-regular", goregular.TTF},
		{"builtin:go-bold", gobold.TTF},
	}
	for _, tc := range cases {
		data, err := Load(tc.path)
		if err != nil {
			t.Fatalf("Load(%q): %v", tc.path, err)
		}
		if !bytes.Equal(data, tc.want) {
			t.Fatalf("Load(%q) 返回了错误的字体", tc.path)
		}
	}
}

func TestLoadUnknownBuiltin(t *testing.T) {
	if _, err := Load("builtin:comic-sans"); err == nil {
		t.Fatalf("未知内置字体应报错")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(path, []byte("ttf-bytes"), 0o644); err != nil {
		t.Fatalf("写测试文件失败: %v", err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q): %v", path, err)
	}
	if string(data) != "ttf-bytes" {
		t.Fatalf("文件内容不符: %q", data)
	}
	if _, err := Load(filepath.Join(dir, "missing.ttf")); err == nil {
		t.Fatalf("缺失文件应报错")
	}
}

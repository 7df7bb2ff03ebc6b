package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLoadExcludeFile 验证排除清单的解析：注释、空行、大小写和前导点。
func TestLoadExcludeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ex.txt")
	content := "# comment\n" +
		"md\n" +
		".log\n" +
		"\n" +
		"# mixed case\n" +
		"JPG\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	excludes, err := LoadExcludeFile(path)
	assert.NoError(t, err)
	assert.Len(t, excludes, 3)
	assert.True(t, excludes.Contains(".md"))
	assert.True(t, excludes.Contains(".log"))
	assert.True(t, excludes.Contains(".jpg"))
	assert.True(t, excludes.Contains(".JPG"))
	assert.False(t, excludes.Contains(".txt"))
}

// TestLoadExcludeFileMissing 验证缺失文件返回错误，由命令层决定是否致命。
func TestLoadExcludeFileMissing(t *testing.T) {
	_, err := LoadExcludeFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

// TestExcludeSetAddNormalizes 验证 Add 的归一化行为。
func TestExcludeSetAddNormalizes(t *testing.T) {
	excludes := make(ExcludeSet)
	excludes.Add("  MD ")
	excludes.Add(".Log")
	excludes.Add("")

	assert.Len(t, excludes, 2)
	assert.True(t, excludes.Contains(".md"))
	assert.True(t, excludes.Contains(".log"))
}

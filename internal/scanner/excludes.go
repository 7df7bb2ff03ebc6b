package scanner

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ExcludeSet 保存要排除的文件后缀集合。
// 后缀统一为小写并带前导点，匹配不区分大小写。
type ExcludeSet map[string]struct{}

// Add 归一化并加入一个后缀。空行为 no-op。
func (s ExcludeSet) Add(ext string) {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized == "" {
		return
	}
	if !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	s[normalized] = struct{}{}
}

// Contains 判断某个后缀是否被排除。
func (s ExcludeSet) Contains(ext string) bool {
	_, ok := s[strings.ToLower(ext)]
	return ok
}

// LoadExcludeFile 从文本文件加载排除后缀清单。
//
// 文件格式：
// - 每行一个后缀，前导点可有可无，不区分大小写
// - 空行忽略
// - 以 # 开头的行是注释
//
// 文件不存在或不可读时返回错误，由调用方决定是否致命：
// 默认路径缺失只提示，用户显式指定的路径缺失则终止运行。
func LoadExcludeFile(path string) (ExcludeSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exclude file: %w", err)
	}
	defer file.Close()

	excludes := make(ExcludeSet)
	fileScanner := bufio.NewScanner(file)
	for fileScanner.Scan() {
		line := strings.TrimSpace(fileScanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		excludes.Add(line)
	}

	if scanErr := fileScanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("read exclude file: %w", scanErr)
	}
	return excludes, nil
}

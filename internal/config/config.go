// Package config 提供可选的 YAML 默认值文件加载能力。
// 配置文件只负责给报告长度、排除清单等提供默认值，
// 命令行里显式给出的 flag 永远优先于配置文件。
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile 是默认的配置文件名，按需加载：
// 文件不存在不是错误，直接使用内置默认值。
const DefaultConfigFile = ".elocmetrix.yaml"

// DefaultExcludeFile 是默认的排除扩展名清单文件名。
const DefaultExcludeFile = "exclude_extensions.txt"

// ErrNonPositiveCount 表示某个排行长度配置不是正整数。
var ErrNonPositiveCount = errors.New("report counts must be greater than 0")

// Config 表示一次运行的可配置默认值。
type Config struct {
	// ExcludeFile 是排除扩展名清单的路径。
	ExcludeFile string `yaml:"exclude_file"`
	// TopFiles 是“Top N by eLOC”排行长度。
	TopFiles int `yaml:"top_files"`
	// LatestFiles 是“Latest Top M”排行长度。
	LatestFiles int `yaml:"latest_files"`
	// TopLanguages 是展开每语言排行的语言数。
	TopLanguages int `yaml:"top_languages"`
	// FilesPerLanguage 是每个展开语言显示的文件数。
	FilesPerLanguage int `yaml:"files_per_language"`
	// SkipDirs 在默认跳过目录之外追加目录名。
	SkipDirs []string `yaml:"skip_dirs"`
	// Workers 是并发 worker 数量。
	Workers int `yaml:"workers"`
}

// Default 返回内置默认配置。
func Default() *Config {
	return &Config{
		ExcludeFile:      DefaultExcludeFile,
		TopFiles:         30,
		LatestFiles:      10,
		TopLanguages:     5,
		FilesPerLanguage: 20,
		Workers:          runtime.NumCPU(),
	}
}

// Load 从指定路径加载配置。
// 未在文件中出现的字段保留内置默认值；加载结果会做校验。
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	loaded := Default()
	if err := yaml.Unmarshal(content, loaded); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := loaded.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return loaded, nil
}

// Validate 校验配置值。
func (c *Config) Validate() error {
	if c.TopFiles <= 0 || c.LatestFiles <= 0 || c.TopLanguages <= 0 || c.FilesPerLanguage <= 0 {
		return ErrNonPositiveCount
	}
	if c.Workers <= 0 {
		return errors.New("workers must be greater than 0")
	}
	return nil
}

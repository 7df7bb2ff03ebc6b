// Package cmd 提供 elocmetrix 的命令行入口与子命令编排。
package cmd

import (
	"elocmetrix/internal/languages"

	"github.com/spf13/cobra"
)

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	registry := languages.NewRegistry()
	rootCmd := newRootCmd(version, registry)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
func newRootCmd(version string, registry *languages.Registry) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "elocmetrix",
		Short: "目录树 eLOC/LOC 统计工具",
		Long: "elocmetrix 按后缀识别语言并启发式剥离注释，\n" +
			"统计每个文件的 LOC 与 eLOC，输出目录树、总计、排行榜和语言汇总。",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(registry))
	rootCmd.AddCommand(newScanCmd(registry))

	return rootCmd
}

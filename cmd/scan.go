package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"elocmetrix/internal/config"
	"elocmetrix/internal/languages"
	"elocmetrix/internal/report"
	"elocmetrix/internal/scanner"

	"github.com/spf13/cobra"
)

// scanOptions 存放 scan 命令的可配置参数。
type scanOptions struct {
	configFile       string
	excludeFile      string
	topFiles         int
	latestFiles      int
	topLanguages     int
	filesPerLanguage int
	workers          int
	format           string
	output           string
}

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	elocmetrix scan .
//	elocmetrix scan ./project --top 50 --latest 5
//	elocmetrix scan ./project --format json --output result.json
func newScanCmd(registry *languages.Registry) *cobra.Command {
	defaults := config.Default()
	options := scanOptions{
		excludeFile:      defaults.ExcludeFile,
		topFiles:         defaults.TopFiles,
		latestFiles:      defaults.LatestFiles,
		topLanguages:     defaults.TopLanguages,
		filesPerLanguage: defaults.FilesPerLanguage,
		workers:          defaults.Workers,
		format:           "text",
	}

	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录（或单文件）并输出 eLOC/LOC 报告",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}

			loaded, err := resolveConfig(cmd, &options)
			if err != nil {
				return err
			}

			format := strings.ToLower(strings.TrimSpace(options.format))
			if format != "text" && format != "json" {
				return errors.New("unsupported format, allowed values: text, json")
			}
			if options.topFiles <= 0 || options.latestFiles <= 0 ||
				options.topLanguages <= 0 || options.filesPerLanguage <= 0 {
				return errors.New("report counts must be greater than 0")
			}
			if options.workers <= 0 {
				return errors.New("workers must be greater than 0")
			}

			excludes, err := loadExcludes(cmd, &options)
			if err != nil {
				return err
			}

			service := scanner.NewService(registry, options.workers)
			result, err := service.ScanPath(target, scanner.Options{
				Excludes:      excludes,
				ExtraSkipDirs: loaded.SkipDirs,
			})
			if err != nil {
				return err
			}

			switch format {
			case "text":
				return report.Render(cmd.OutOrStdout(), result, report.Options{
					TopFiles:         options.topFiles,
					LatestFiles:      options.latestFiles,
					TopLanguages:     options.topLanguages,
					FilesPerLanguage: options.filesPerLanguage,
				})
			case "json":
				if err := report.PrintJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}

				outputPath := strings.TrimSpace(options.output)
				if outputPath != "" {
					if err := report.WriteJSONFile(outputPath, result); err != nil {
						return err
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nJSON exported to %s\n", outputPath)
				}
				return nil
			default:
				return errors.New("unsupported format")
			}
		},
	}

	scanCmd.Flags().StringVar(&options.configFile, "config", "", "YAML 配置文件路径，默认按需读取 "+config.DefaultConfigFile)
	scanCmd.Flags().StringVar(&options.excludeFile, "exclude-file", options.excludeFile, "排除扩展名清单路径")
	scanCmd.Flags().IntVar(&options.topFiles, "top", options.topFiles, "Top N by eLOC 排行长度")
	scanCmd.Flags().IntVar(&options.latestFiles, "latest", options.latestFiles, "Latest Top M 排行长度")
	scanCmd.Flags().IntVar(&options.topLanguages, "top-languages", options.topLanguages, "展开每语言排行的语言数")
	scanCmd.Flags().IntVar(&options.filesPerLanguage, "per-language", options.filesPerLanguage, "每个展开语言显示的文件数")
	scanCmd.Flags().IntVar(&options.workers, "workers", options.workers, "并发 worker 数量")
	scanCmd.Flags().StringVar(&options.format, "format", options.format, "输出格式: text 或 json")
	scanCmd.Flags().StringVar(&options.output, "output", options.output, "json 导出文件路径，留空则不导出")

	return scanCmd
}

// resolveConfig 加载配置文件并回填未被显式设置的 flag。
// 优先级：显式 flag > 配置文件 > 内置默认值。
func resolveConfig(cmd *cobra.Command, options *scanOptions) (*config.Config, error) {
	loaded := config.Default()

	configPath := strings.TrimSpace(options.configFile)
	if configPath != "" {
		// 用户显式指定的配置文件必须可读。
		fromFile, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		loaded = fromFile
	} else if _, statErr := os.Stat(config.DefaultConfigFile); statErr == nil {
		fromFile, err := config.Load(config.DefaultConfigFile)
		if err != nil {
			return nil, err
		}
		loaded = fromFile
	}

	flags := cmd.Flags()
	if !flags.Changed("exclude-file") {
		options.excludeFile = loaded.ExcludeFile
	}
	if !flags.Changed("top") {
		options.topFiles = loaded.TopFiles
	}
	if !flags.Changed("latest") {
		options.latestFiles = loaded.LatestFiles
	}
	if !flags.Changed("top-languages") {
		options.topLanguages = loaded.TopLanguages
	}
	if !flags.Changed("per-language") {
		options.filesPerLanguage = loaded.FilesPerLanguage
	}
	if !flags.Changed("workers") {
		options.workers = loaded.Workers
	}

	return loaded, nil
}

// loadExcludes 加载排除清单。
// 默认路径缺失只提示并继续；用户显式指定的路径缺失按致命错误处理。
func loadExcludes(cmd *cobra.Command, options *scanOptions) (scanner.ExcludeSet, error) {
	path := strings.TrimSpace(options.excludeFile)
	if path == "" {
		return make(scanner.ExcludeSet), nil
	}

	excludes, err := scanner.LoadExcludeFile(path)
	if err == nil {
		return excludes, nil
	}

	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("exclude-file") && path == config.DefaultExcludeFile {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Note: exclude file '%s' not found; counting all extensions.\n", path)
		return make(scanner.ExcludeSet), nil
	}

	return nil, err
}

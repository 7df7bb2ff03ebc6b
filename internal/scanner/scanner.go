// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、排除规则、任务分发、并发执行和结果汇总，
// 不负责注释剥离细节——那是 languages 包分类器的职责。
package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"elocmetrix/internal/languages"
	"elocmetrix/internal/model"
)

// defaultSkipDirs 是无论后缀规则如何都直接跳过的目录集合，
// 覆盖常见的版本库、依赖、构建和缓存目录。
var defaultSkipDirs = map[string]struct{}{
	".git":          {},
	".hg":           {},
	".svn":          {},
	".idea":         {},
	".vscode":       {},
	"__pycache__":   {},
	"node_modules":  {},
	"dist":          {},
	"build":         {},
	"out":           {},
	".tox":          {},
	".mypy_cache":   {},
	".pytest_cache": {},
	".venv":         {},
	"venv":          {},
}

// binaryProbeSize 是二进制探测读取的字节数。
const binaryProbeSize = 512

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	workers  int
}

// Options 控制一次扫描的排除规则。
type Options struct {
	// Excludes 是按后缀的排除集合，可以为 nil。
	Excludes ExcludeSet
	// ExtraSkipDirs 在默认跳过目录之外追加目录名。
	ExtraSkipDirs []string
}

// scanTask 表示一个待统计文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	language     string
	modTime      time.Time
}

// workerResult 表示 worker 或遍历协程的执行产物。
// dirPath 由遍历协程填写，用于在报告里重建完整目录树。
type workerResult struct {
	fileMetrics *model.FileMetrics
	scanNote    *model.ScanNote
	dirPath     string
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, workers int) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Service{
		registry: registry,
		workers:  workers,
	}
}

// ScanPath 扫描目录或单文件。
// 目录遍历在独立 goroutine 中进行，文件统计默认并发执行；
// 单文件的读取错误只产生 note，不会中断整次扫描。
func (s *Service) ScanPath(targetPath string, options Options) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	// 单文件扫描时以其父目录作为报告根，目录树渲染不需要特判。
	result.ScannedPath = absoluteTarget
	if !info.IsDir() {
		result.ScannedPath = filepath.Dir(absoluteTarget)
	}

	skipDirs := make(map[string]struct{}, len(defaultSkipDirs)+len(options.ExtraSkipDirs))
	for name := range defaultSkipDirs {
		skipDirs[name] = struct{}{}
	}
	for _, name := range options.ExtraSkipDirs {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			skipDirs[trimmed] = struct{}{}
		}
	}

	tasks := make(chan scanTask, s.workers*4)
	results := make(chan workerResult, s.workers*4)
	walkErrChan := make(chan error, 1)

	var workerGroup sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		workerGroup.Add(1)
		go func() {
			defer workerGroup.Done()
			s.runWorker(tasks, results)
		}()
	}

	go func() {
		defer close(tasks)
		if info.IsDir() {
			// 遍历协程也可以向 results 写入：results 只有在全部
			// worker 退出后才关闭，而 worker 退出又晚于 tasks 关闭。
			walkErrChan <- s.enqueueDirectoryTasks(absoluteTarget, options.Excludes, skipDirs, tasks, results)
			return
		}
		walkErrChan <- s.enqueueSingleFileTask(absoluteTarget, info, tasks)
	}()

	go func() {
		workerGroup.Wait()
		close(results)
	}()

	result.Files = make([]model.FileMetrics, 0)
	result.Dirs = make([]string, 0)
	result.Notes = make([]model.ScanNote, 0)

	for item := range results {
		if item.fileMetrics != nil {
			result.Files = append(result.Files, *item.fileMetrics)
		}
		if item.scanNote != nil {
			result.Notes = append(result.Notes, *item.scanNote)
		}
		if item.dirPath != "" {
			result.Dirs = append(result.Dirs, item.dirPath)
		}
	}

	if walkErr := <-walkErrChan; walkErr != nil {
		return result, walkErr
	}

	s.finalize(&result)
	return result, nil
}

// enqueueDirectoryTasks 遍历目录并把非排除文件推入任务队列。
// 未知后缀的文件同样参与统计，只是没有注释语法。
//
// 遍历过程中的单点错误（权限不足的子目录等）记录 note 后跳过，
// 不会中断整次扫描；只有根目录本身不可读才算致命。
func (s *Service) enqueueDirectoryTasks(root string, excludes ExcludeSet, skipDirs map[string]struct{}, tasks chan<- scanTask, results chan<- workerResult) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if entry == nil || path == root {
				return walkErr
			}
			results <- workerResult{
				scanNote: &model.ScanNote{
					Path:    displayPath(root, path),
					Message: walkErr.Error(),
				},
			}
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			// 跳过目录时不下探，避免扫进依赖和构建产物。
			if _, skip := skipDirs[entry.Name()]; skip {
				return filepath.SkipDir
			}
			results <- workerResult{dirPath: displayPath(root, path)}
			return nil
		}

		if excludes.Contains(filepath.Ext(path)) {
			return nil
		}

		// 元信息获取失败仍然入队（零值 mtime）：
		// 文件若真的不可读，worker 的打开失败路径会产出 note。
		var modTime time.Time
		if entryInfo, infoErr := entry.Info(); infoErr == nil {
			modTime = entryInfo.ModTime()
		}

		tasks <- scanTask{
			absolutePath: path,
			displayPath:  displayPath(root, path),
			language:     s.registry.LanguageForFile(path),
			modTime:      modTime,
		}
		return nil
	})
}

// displayPath 把绝对路径转为报告用的相对斜杠路径。
func displayPath(root string, path string) string {
	relativePath, relErr := filepath.Rel(root, path)
	if relErr != nil {
		relativePath = path
	}
	return filepath.ToSlash(relativePath)
}

// enqueueSingleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) enqueueSingleFileTask(filePath string, info fs.FileInfo, tasks chan<- scanTask) error {
	tasks <- scanTask{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		language:     s.registry.LanguageForFile(filePath),
		modTime:      info.ModTime(),
	}
	return nil
}

// runWorker 执行真实的文件读取和行级分类。
// 读取失败或内容为二进制时记录 note，保证总计数字可解释。
func (s *Service) runWorker(tasks <-chan scanTask, results chan<- workerResult) {
	for task := range tasks {
		file, openErr := os.Open(task.absolutePath)
		if openErr != nil {
			results <- workerResult{
				scanNote: &model.ScanNote{
					Path:    task.displayPath,
					Message: openErr.Error(),
				},
			}
			continue
		}

		count, countErr := s.countFile(task, file)
		closeErr := file.Close()

		if countErr != nil {
			results <- workerResult{
				scanNote: &model.ScanNote{
					Path:    task.displayPath,
					Message: countErr.Error(),
				},
			}
			continue
		}

		if closeErr != nil {
			results <- workerResult{
				scanNote: &model.ScanNote{
					Path:    task.displayPath,
					Message: closeErr.Error(),
				},
			}
			continue
		}

		// 空文件（或全部被探测拦截的文件）不进入报告，降低噪音。
		if count.LOC == 0 {
			continue
		}

		results <- workerResult{
			fileMetrics: &model.FileMetrics{
				Path:     task.displayPath,
				Language: task.language,
				Count:    count,
				ModTime:  task.modTime,
			},
		}
	}
}

// countFile 先做二进制探测，再交给语言分类器做流式统计。
func (s *Service) countFile(task scanTask, file *os.File) (model.LineCount, error) {
	probe := make([]byte, binaryProbeSize)
	probeLen, probeErr := io.ReadFull(file, probe)
	if probeErr != nil && !errors.Is(probeErr, io.EOF) && !errors.Is(probeErr, io.ErrUnexpectedEOF) {
		return model.LineCount{}, probeErr
	}
	probe = probe[:probeLen]

	if bytes.IndexByte(probe, 0) >= 0 {
		return model.LineCount{}, errors.New("binary content skipped")
	}

	classifier := s.registry.ClassifierFor(task.language)
	return classifier.Count(io.MultiReader(bytes.NewReader(probe), file))
}

// finalize 对结果做稳定排序并计算总计。
// worker 完成顺序不确定，这里的排序保证输出可复现。
func (s *Service) finalize(result *model.ScanResult) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})

	sort.Slice(result.Notes, func(i int, j int) bool {
		return result.Notes[i].Path < result.Notes[j].Path
	})

	sort.Strings(result.Dirs)

	result.Total = model.TotalMetrics{}
	for _, item := range result.Files {
		result.Total.AddFile(item.Count)
	}
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"elocmetrix/internal/model"
)

// timestampLayout 是 Latest 排行里修改时间的展示格式。
const timestampLayout = "2006-01-02 15:04:05"

// Options 控制文本报告的各项排行长度。
type Options struct {
	// TopFiles 是“Top N by eLOC”的条目数。
	TopFiles int
	// LatestFiles 是“Latest Top M”的条目数。
	LatestFiles int
	// TopLanguages 是展开每语言排行的语言数（不含 Unknown）。
	TopLanguages int
	// FilesPerLanguage 是每个展开语言显示的文件数。
	FilesPerLanguage int
}

// Document 是 JSON 输出的完整模型：
// 扫描结果加上按语言折叠的汇总。
type Document struct {
	model.ScanResult
	Languages []model.LanguageSummary `json:"languages"`
}

// BuildDocument 由扫描结果构造 JSON 输出模型。
func BuildDocument(result model.ScanResult) Document {
	return Document{
		ScanResult: result,
		Languages:  LanguageSummaries(result.Files),
	}
}

// Render 渲染完整文本报告。
//
// 输出顺序固定：目录树、Summary、Top N by eLOC、Latest Top M、
// Languages Summary、每个头部语言的 Top K。
// 渲染只做格式化，所有排序规则在聚合函数中实现。
func Render(writer io.Writer, result model.ScanResult, options Options) error {
	if err := renderTree(writer, result); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(
		writer,
		"\nSummary\n- Files counted: %d\n- Total eLOC:   %d\n- Total LOC:    %d\n",
		result.Total.Files,
		result.Total.ELOC,
		result.Total.LOC,
	); err != nil {
		return err
	}

	if len(result.Notes) > 0 {
		if _, err := fmt.Fprintf(writer, "\nNotes\n"); err != nil {
			return err
		}
		for _, note := range result.Notes {
			if _, err := fmt.Fprintf(writer, "- %s: %s\n", note.Path, note.Message); err != nil {
				return err
			}
		}
	}

	if len(result.Files) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(writer, "\nTop %d by eLOC\n", options.TopFiles); err != nil {
		return err
	}
	for position, file := range TopByELOC(result.Files, options.TopFiles) {
		if _, err := fmt.Fprintf(
			writer,
			"%2d. %s  eLOC: %d  LOC: %d\n",
			position+1,
			file.Path,
			file.Count.ELOC,
			file.Count.LOC,
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\nLatest Top %d\n", options.LatestFiles); err != nil {
		return err
	}
	for position, file := range LatestModified(result.Files, options.LatestFiles) {
		if _, err := fmt.Fprintf(
			writer,
			"%2d. %s  eLOC: %d  LOC: %d  Updated: %s\n",
			position+1,
			file.Path,
			file.Count.ELOC,
			file.Count.LOC,
			file.ModTime.Format(timestampLayout),
		); err != nil {
			return err
		}
	}

	summaries := LanguageSummaries(result.Files)

	if _, err := fmt.Fprintf(writer, "\nLanguages Summary\n"); err != nil {
		return err
	}
	for _, summary := range summaries {
		if _, err := fmt.Fprintf(
			writer,
			"- %s: files=%d  eLOC: %d  LOC: %d\n",
			summary.Language,
			summary.Files,
			summary.Count.ELOC,
			summary.Count.LOC,
		); err != nil {
			return err
		}
	}

	for _, summary := range TopLanguages(summaries, options.TopLanguages) {
		if _, err := fmt.Fprintf(writer, "\nTop %d in %s\n", options.FilesPerLanguage, summary.Language); err != nil {
			return err
		}
		for position, file := range TopInLanguage(result.Files, summary.Language, options.FilesPerLanguage) {
			if _, err := fmt.Fprintf(
				writer,
				"%2d. %s  eLOC: %d  LOC: %d\n",
				position+1,
				file.Path,
				file.Count.ELOC,
				file.Count.LOC,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderTree 重建缩进目录树。
// 树由扫描器记录的遍历目录加上文件明细的父目录合并而成，
// 因此没有计数文件的目录也会出现目录头，与遍历顺序一致。
// 每个目录内先列文件（按路径排序），再递归子目录（按名称排序）。
func renderTree(writer io.Writer, result model.ScanResult) error {
	if _, err := fmt.Fprintf(writer, "%s/\n", filepath.Base(result.ScannedPath)); err != nil {
		return err
	}

	root := newTreeNode()
	for _, dir := range result.Dirs {
		root.ensure(strings.Split(dir, "/"))
	}
	for _, file := range result.Files {
		parts := strings.Split(file.Path, "/")
		node := root.ensure(parts[:len(parts)-1])
		node.files = append(node.files, file)
	}

	return root.render(writer, 1)
}

// treeNode 是目录树渲染的中间结构。
type treeNode struct {
	children map[string]*treeNode
	files    []model.FileMetrics
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

// ensure 按路径分段找到（必要时创建）对应的目录节点。
func (n *treeNode) ensure(parts []string) *treeNode {
	node := n
	for _, part := range parts {
		child, ok := node.children[part]
		if !ok {
			child = newTreeNode()
			node.children[part] = child
		}
		node = child
	}
	return node
}

// render 输出当前节点的文件和子目录，depth 是缩进层级。
func (n *treeNode) render(writer io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)

	for _, file := range n.files {
		name := file.Path
		if slash := strings.LastIndex(name, "/"); slash >= 0 {
			name = name[slash+1:]
		}
		if _, err := fmt.Fprintf(
			writer,
			"%s%s  eLOC: %d  LOC: %d\n",
			indent,
			name,
			file.Count.ELOC,
			file.Count.LOC,
		); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(n.children))
	for name := range n.children {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(writer, "%s%s/\n", indent, name); err != nil {
			return err
		}
		if err := n.children[name].render(writer, depth+1); err != nil {
			return err
		}
	}

	return nil
}

// PrintJSON 把报告按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := json.MarshalIndent(BuildDocument(result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// WriteJSONFile 将 JSON 报告导出到指定路径。
// 如果目录不存在会自动创建。
func WriteJSONFile(path string, result model.ScanResult) error {
	content, err := json.MarshalIndent(BuildDocument(result), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

// Package model 定义 elocmetrix 的核心数据模型。
// 这些结构会被扫描器、聚合层和命令层共同使用。
package model

import "time"

// LineCount 表示单文件的行级统计值。
//
// 注意：
// - LOC 表示总行数（包括空行和注释行，每行计 1）
// - ELOC 表示有效代码行数（去掉注释和空行后仍有内容的行）
// - 任何文件都满足 ELOC <= LOC
type LineCount struct {
	LOC  int64 `json:"loc"`
	ELOC int64 `json:"eloc"`
}

// Add 将另一个统计结果叠加到当前对象。
func (c *LineCount) Add(other LineCount) {
	c.LOC += other.LOC
	c.ELOC += other.ELOC
}

// FileMetrics 表示单文件扫描结果。
// 由扫描器在一次运行中构造，构造后只读。
type FileMetrics struct {
	Path     string    `json:"path"`
	Language string    `json:"language"`
	Count    LineCount `json:"count"`
	ModTime  time.Time `json:"mod_time"`
}

// LanguageSummary 表示某个语言的聚合结果。
// 由 FileMetrics 按语言折叠得出，不独立维护状态。
type LanguageSummary struct {
	Language string    `json:"language"`
	Files    int64     `json:"files"`
	Count    LineCount `json:"count"`
}

// ScanNote 记录单文件扫描失败信息。
// 设计为“错误不阻断全量扫描”，便于大仓库分析时容错，
// 同时让总计数字保持可解释。
type ScanNote struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// TotalMetrics 表示项目级总计信息。
// 在 LineCount 基础上额外增加 Files 字段，
// 用于表达“本次扫描统计到了多少个有效文件”。
type TotalMetrics struct {
	Files int64 `json:"files"`
	LineCount
}

// AddFile 累加一个文件的统计值到项目总计中。
func (m *TotalMetrics) AddFile(count LineCount) {
	m.Files++
	m.LineCount.Add(count)
}

// ScanResult 是一次扫描的完整输出模型。
// 包含文件级明细、全局总计和非致命错误列表。
// 语言汇总与排行由 report 包按需折叠，不在此处预计算。
type ScanResult struct {
	ScannedPath string        `json:"scanned_path"`
	Files       []FileMetrics `json:"files"`
	// Dirs 是遍历到的目录相对路径（不含根、不含被跳过的目录），
	// 供报告层重建与原始遍历一致的完整目录树，包括空目录。
	Dirs  []string     `json:"dirs"`
	Total TotalMetrics `json:"total"`
	Notes []ScanNote   `json:"notes"`
}

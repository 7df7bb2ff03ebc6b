// Package report 提供 elocmetrix 的聚合与输出能力。
// 聚合层只消费扫描结果，纯数据进、文本出，不做任何度量计算。
package report

import (
	"sort"
	"strings"

	"elocmetrix/internal/languages"
	"elocmetrix/internal/model"
)

// TopByELOC 返回按 eLOC 降序的前 limit 个文件。
// 并列时依次比较 LOC 降序、路径（小写后字典序），保证输出可复现。
func TopByELOC(files []model.FileMetrics, limit int) []model.FileMetrics {
	ranked := append([]model.FileMetrics(nil), files...)
	sort.Slice(ranked, func(i int, j int) bool {
		if ranked[i].Count.ELOC != ranked[j].Count.ELOC {
			return ranked[i].Count.ELOC > ranked[j].Count.ELOC
		}
		if ranked[i].Count.LOC != ranked[j].Count.LOC {
			return ranked[i].Count.LOC > ranked[j].Count.LOC
		}
		return pathLess(ranked[i].Path, ranked[j].Path)
	})
	return clip(ranked, limit)
}

// LatestModified 返回按修改时间降序的前 limit 个文件。
// 时间相同的文件按路径字典序排列。
func LatestModified(files []model.FileMetrics, limit int) []model.FileMetrics {
	ranked := append([]model.FileMetrics(nil), files...)
	sort.Slice(ranked, func(i int, j int) bool {
		if !ranked[i].ModTime.Equal(ranked[j].ModTime) {
			return ranked[i].ModTime.After(ranked[j].ModTime)
		}
		return pathLess(ranked[i].Path, ranked[j].Path)
	})
	return clip(ranked, limit)
}

// LanguageSummaries 按语言折叠文件明细。
// 排序规则：总 eLOC 降序，语言名升序打破并列；
// Unknown 无论 eLOC 多大都固定排在最后。
func LanguageSummaries(files []model.FileMetrics) []model.LanguageSummary {
	byLanguage := make(map[string]*model.LanguageSummary)
	for _, file := range files {
		summary, ok := byLanguage[file.Language]
		if !ok {
			summary = &model.LanguageSummary{Language: file.Language}
			byLanguage[file.Language] = summary
		}
		summary.Files++
		summary.Count.Add(file.Count)
	}

	summaries := make([]model.LanguageSummary, 0, len(byLanguage))
	for _, summary := range byLanguage {
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i int, j int) bool {
		if (summaries[i].Language == languages.Unknown) != (summaries[j].Language == languages.Unknown) {
			return summaries[j].Language == languages.Unknown
		}
		if summaries[i].Count.ELOC != summaries[j].Count.ELOC {
			return summaries[i].Count.ELOC > summaries[j].Count.ELOC
		}
		return summaries[i].Language < summaries[j].Language
	})

	return summaries
}

// TopLanguages 返回 eLOC 最高的前 limit 个非 Unknown 语言。
// 输入必须是 LanguageSummaries 的输出，顺序在此基础上保持不变。
func TopLanguages(summaries []model.LanguageSummary, limit int) []model.LanguageSummary {
	top := make([]model.LanguageSummary, 0, limit)
	for _, summary := range summaries {
		if summary.Language == languages.Unknown {
			continue
		}
		top = append(top, summary)
		if len(top) == limit {
			break
		}
	}
	return top
}

// TopInLanguage 返回指定语言内按 eLOC 降序的前 limit 个文件。
func TopInLanguage(files []model.FileMetrics, language string, limit int) []model.FileMetrics {
	matched := make([]model.FileMetrics, 0)
	for _, file := range files {
		if file.Language == language {
			matched = append(matched, file)
		}
	}
	return TopByELOC(matched, limit)
}

// pathLess 是排名用的路径比较：先按小写字典序，再按原始串兜底。
func pathLess(left string, right string) bool {
	lowerLeft := strings.ToLower(left)
	lowerRight := strings.ToLower(right)
	if lowerLeft != lowerRight {
		return lowerLeft < lowerRight
	}
	return left < right
}

// clip 截取排名前 limit 项；limit <= 0 时返回空切片。
func clip(files []model.FileMetrics, limit int) []model.FileMetrics {
	if limit <= 0 {
		return []model.FileMetrics{}
	}
	if len(files) > limit {
		return files[:limit]
	}
	return files
}

package languages

import (
	"bufio"
	"errors"
	"io"
	"sort"
	"strings"

	"elocmetrix/internal/model"
)

// Classifier 按 CommentDescriptor 对文本行做启发式注释剥离，
// 输出 (LOC, eLOC) 统计。
//
// 判定规则：
//   - 每一行无条件计入 LOC
//   - 先按块注释开闭标记剥离本行中的注释区间，块注释状态跨行延续
//   - 剥离后剩余内容为空白的行不计入 eLOC
//   - 剩余内容的第一个非空白 token 命中行注释标记的行不计入 eLOC
//   - 其余行计入 eLOC（代码后跟随的行内注释不影响计数）
//
// 字符串字面量不做识别：字符串里的注释标记会被当成真实标记，
// 这是既定的启发式行为而非缺陷。
type Classifier struct {
	descriptor CommentDescriptor
	// lineMarkers 按长度降序排列，保证 "//" 一类的长标记优先于 "/"。
	lineMarkers []string
}

// classifyState 是单文件范围内的跨行状态。
// 每个文件从 false 开始，文件之间不保留任何状态。
type classifyState struct {
	insideBlock bool
	closeMarker string
}

// NewClassifier 基于描述符构造分类器。
// 分类器本身不可变，跨行状态在每次统计调用内部维护。
func NewClassifier(descriptor CommentDescriptor) *Classifier {
	lineMarkers := append([]string(nil), descriptor.LineMarkers...)
	sort.Slice(lineMarkers, func(i int, j int) bool {
		return len(lineMarkers[i]) > len(lineMarkers[j])
	})

	return &Classifier{
		descriptor:  descriptor,
		lineMarkers: lineMarkers,
	}
}

// Count 流式读取输入并统计 (LOC, eLOC)。
// 这里使用 ReadString('\n') 做“按行流式”读取：
// 1) 不会把整个文件一次性载入内存；
// 2) 便于和行级统计模型天然对齐。
func (c *Classifier) Count(reader io.Reader) (model.LineCount, error) {
	var count model.LineCount
	state := &classifyState{}

	bufferedReader := bufio.NewReader(reader)
	for {
		line, err := bufferedReader.ReadString('\n')
		// EOF 且没有任何剩余字符时，说明已经没有可处理行，直接退出。
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		// 非 EOF 错误需要立即返回，避免输出不完整统计结果。
		if err != nil && !errors.Is(err, io.EOF) {
			return count, err
		}

		count.LOC++
		if c.countsAsCode(state, normalizeLine(line)) {
			count.ELOC++
		}

		// EOF 但 line 非空代表“最后一行没有换行符”，这行已经处理完，随后退出。
		if errors.Is(err, io.EOF) {
			break
		}
	}

	// 文件在块注释中结束不算错误，剩余状态随 state 一起丢弃。
	return count, nil
}

// CountLines 对已经拆分好的行序列统计 (LOC, eLOC)。
// 纯函数：相同输入总是得到相同输出，永不失败。
func (c *Classifier) CountLines(lines []string) model.LineCount {
	var count model.LineCount
	state := &classifyState{}

	for _, line := range lines {
		count.LOC++
		if c.countsAsCode(state, line) {
			count.ELOC++
		}
	}

	return count
}

// countsAsCode 判定单行是否计入 eLOC，并推进跨行块注释状态。
func (c *Classifier) countsAsCode(state *classifyState, line string) bool {
	content := c.stripBlockComments(state, line)

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return false
	}

	for _, marker := range c.lineMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return false
		}
	}

	return true
}

// stripBlockComments 从本行中剥离所有块注释区间，返回剩余内容。
//
// 扫描从左到右进行：
//   - 处于块注释中时寻找当前闭合标记，找到后剩余部分继续按普通内容扫描，
//     因此一行里可以合法出现“代码、注释开、注释闭、代码”的组合
//   - 未处于块注释时取最早出现的开标记进入注释态；
//     行内没有闭合时状态延续到下一行
//   - 行首的开标记若始终等不到闭合标记，文件剩余部分会被整体当成注释吞掉，
//     这是既定的启发式行为
func (c *Classifier) stripBlockComments(state *classifyState, line string) string {
	if !state.insideBlock && len(c.descriptor.BlockPairs) == 0 {
		return line
	}

	var content strings.Builder
	idx := 0
	for idx < len(line) {
		if state.insideBlock {
			end := strings.Index(line[idx:], state.closeMarker)
			if end < 0 {
				// 本行剩余部分全部在块注释内。
				return content.String()
			}
			idx += end + len(state.closeMarker)
			state.insideBlock = false
			state.closeMarker = ""
			continue
		}

		openIdx := -1
		var openPair BlockPair
		for _, pair := range c.descriptor.BlockPairs {
			found := strings.Index(line[idx:], pair.Open)
			if found < 0 {
				continue
			}
			if openIdx < 0 || found < openIdx {
				openIdx = found
				openPair = pair
			}
		}

		if openIdx < 0 {
			content.WriteString(line[idx:])
			break
		}

		content.WriteString(line[idx : idx+openIdx])
		state.insideBlock = true
		state.closeMarker = openPair.Close
		idx += openIdx + len(openPair.Open)
	}

	return content.String()
}

// normalizeLine 用于去除每行末尾的换行符。
// 该函数适配 Windows 的 \r\n 与 Unix 的 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}

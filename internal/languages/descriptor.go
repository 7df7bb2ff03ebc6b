// Package languages 提供注释语法注册表与行级分类器。
// 注册表是静态配置数据，分类器是纯函数式的启发式状态机，
// 两者共同决定每一行是否计入有效代码行（eLOC）。
package languages

// BlockPair 表示一组块注释的开闭标记。
type BlockPair struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// CommentDescriptor 描述一种语言的注释语法。
//
// 约束说明：
// - 所有标记都按字面子串做大小写敏感匹配
// - LineMarkers 按优先级排列，只有出现在行首（允许前导空白）才使整行成为注释
// - BlockPairs 按优先级排列，扫描时取最早出现的开标记
// - LineMarkers 与 BlockPairs 同时为空表示“没有注释语法”，
//   此时所有非空行都计入有效代码行
type CommentDescriptor struct {
	LineMarkers []string    `json:"line_markers"`
	BlockPairs  []BlockPair `json:"block_pairs"`
}

// HasMarkers 返回该描述符是否定义了任何注释标记。
func (d CommentDescriptor) HasMarkers() bool {
	return len(d.LineMarkers) > 0 || len(d.BlockPairs) > 0
}

package languages

import (
	"strings"
	"testing"

	"elocmetrix/internal/model"
)

// countText 是测试辅助函数，用描述符对一段文本做流式统计。
func countText(t *testing.T, descriptor CommentDescriptor, content string) model.LineCount {
	t.Helper()

	count, err := NewClassifier(descriptor).Count(strings.NewReader(content))
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}

// TestCLikeInlineTrailingComment 验证“代码在前、行内注释在后”仍计入 eLOC。
func TestCLikeInlineTrailingComment(t *testing.T) {
	count := countText(t, cLikeSyntax, "x = 1  // note\n")

	if count.LOC != 1 || count.ELOC != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestCLikeWholeLineComment 验证行首（允许前导空白）的行注释不计 eLOC。
func TestCLikeWholeLineComment(t *testing.T) {
	count := countText(t, cLikeSyntax, "   // just a comment\n")

	if count.LOC != 1 || count.ELOC != 0 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestCLikeBlockCommentSpans 验证跨行块注释与行内多段块注释的组合。
func TestCLikeBlockCommentSpans(t *testing.T) {
	content := "/* header block\n" +
		"still comment */\n" +
		"\n" +
		"// line comment\n" +
		"const a = 1; // trailing ok\n" +
		"/* block start */ const b = 2; /* midline block end */\n" +
		"const c = 3; /* trailing block start\n" +
		"multi line\n" +
		"end */ const d = 4;"

	count := countText(t, cLikeSyntax, content)

	if count.LOC != 9 || count.ELOC != 4 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestLuaBlockCloseRemainder 验证块注释闭合标记之后的剩余内容计为代码。
func TestLuaBlockCloseRemainder(t *testing.T) {
	classifier := NewClassifier(luaSyntax)
	count := classifier.CountLines([]string{"a=1", "--[[ b=2", "]]-- c=3"})

	if count.LOC != 3 || count.ELOC != 2 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestLuaLineComment 验证 Lua 的 -- 行注释与行内注释。
func TestLuaLineComment(t *testing.T) {
	count := countText(t, luaSyntax, "-- note\nx = 1 -- note\n")

	if count.LOC != 2 || count.ELOC != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestHashStyleFile 验证 Python 风格文件的注释与空行统计。
func TestHashStyleFile(t *testing.T) {
	content := "# a comment line\n" +
		"\n" +
		"x = 1\n" +
		"x = 2  # inline comment\n" +
		"\n" +
		"# another comment"

	count := countText(t, hashSyntax, content)

	if count.LOC != 6 || count.ELOC != 2 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestMarkupBlockComment 验证 HTML 的 <!-- --> 块注释。
func TestMarkupBlockComment(t *testing.T) {
	count := countText(t, markupSyntax, "<!-- header comment -->\n<div>hi</div>")

	if count.LOC != 2 || count.ELOC != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestSQLLineAndBlockMarkers 验证 SQL 的 -- 行注释与 /* */ 块注释。
func TestSQLLineAndBlockMarkers(t *testing.T) {
	content := "SELECT 1; -- note\n" +
		"-- full line\n" +
		"/* x */ SELECT 2;\n"

	count := countText(t, sqlSyntax, content)

	if count.LOC != 3 || count.ELOC != 2 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestPHPMultipleLineMarkers 验证 PHP 同时支持 // 与 # 行注释。
func TestPHPMultipleLineMarkers(t *testing.T) {
	count := countText(t, phpSyntax, "# c\n// c\n$x = 1; # trailing\n")

	if count.LOC != 3 || count.ELOC != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestUnknownDescriptorCountsNonBlank 验证无注释语法时所有非空行计 eLOC。
func TestUnknownDescriptorCountsNonBlank(t *testing.T) {
	count := countText(t, CommentDescriptor{}, "a\n\n# not a comment here")

	if count.LOC != 3 || count.ELOC != 2 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestBlankFile 验证纯空行文件 eLOC 为 0。
func TestBlankFile(t *testing.T) {
	count := countText(t, cLikeSyntax, "\n\n\n")

	if count.LOC != 3 || count.ELOC != 0 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestUnterminatedBlockSwallowsRest 验证未闭合的块注释吞掉文件剩余部分。
// 这是既定的启发式行为，不做真实解析修正。
func TestUnterminatedBlockSwallowsRest(t *testing.T) {
	count := countText(t, cLikeSyntax, "code()\n/* open\nmore\nstill")

	if count.LOC != 4 || count.ELOC != 1 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestMarkerInsideStringCountsAsMarker 验证字符串内的标记按真实标记处理。
// 已文档化的启发式局限，刻意不识别字符串字面量。
func TestMarkerInsideStringCountsAsMarker(t *testing.T) {
	count := countText(t, cLikeSyntax, "s := \"/* not code\"\nx := 1\ny := \"*/ tail\"\n")

	// 第一行进入块注释并吞掉后续行，直到第三行字符串里的 */ 闭合。
	if count.LOC != 3 || count.ELOC != 2 {
		t.Fatalf("unexpected count: %+v", count)
	}
}

// TestCountLinesIdempotent 验证分类是纯函数：重复运行结果一致。
func TestCountLinesIdempotent(t *testing.T) {
	classifier := NewClassifier(cLikeSyntax)
	lines := []string{"x := 1 // c", "/* a", "b */", "", "y := 2"}

	first := classifier.CountLines(lines)
	second := classifier.CountLines(lines)

	if first != second {
		t.Fatalf("classification not idempotent: %+v vs %+v", first, second)
	}
}

// TestElocNeverExceedsLoc 验证任何输入都满足 eLOC <= LOC。
func TestElocNeverExceedsLoc(t *testing.T) {
	samples := []string{
		"",
		"x\ny\nz",
		"// a\n/* b */\ncode\n",
		"--[[ a ]]-- b\n-- c\n",
	}
	descriptors := []CommentDescriptor{cLikeSyntax, hashSyntax, luaSyntax, {}}

	for _, descriptor := range descriptors {
		classifier := NewClassifier(descriptor)
		for _, sample := range samples {
			count, err := classifier.Count(strings.NewReader(sample))
			if err != nil {
				t.Fatalf("count failed: %v", err)
			}
			if count.ELOC > count.LOC {
				t.Fatalf("eloc %d exceeds loc %d for %q", count.ELOC, count.LOC, sample)
			}
		}
	}
}

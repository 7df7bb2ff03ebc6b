package languages

import (
	"path/filepath"
	"sort"
	"strings"
)

// Unknown 是所有未映射后缀的回退语言标签。
// 该语言没有注释语法，任何非空行都计入有效代码行。
const Unknown = "Unknown"

// Language 描述一种已注册语言及其后缀与注释语法。
type Language struct {
	Name       string
	Extensions []string
	Descriptor CommentDescriptor
}

// 共享描述符。多个语言可以指向同一份注释语法，
// 新增语言只需要在 builtinLanguages 中追加一条数据。
var (
	cLikeSyntax = CommentDescriptor{
		LineMarkers: []string{"//"},
		BlockPairs:  []BlockPair{{Open: "/*", Close: "*/"}},
	}
	hashSyntax = CommentDescriptor{
		LineMarkers: []string{"#"},
	}
	phpSyntax = CommentDescriptor{
		LineMarkers: []string{"//", "#"},
		BlockPairs:  []BlockPair{{Open: "/*", Close: "*/"}},
	}
	sqlSyntax = CommentDescriptor{
		LineMarkers: []string{"--"},
		BlockPairs:  []BlockPair{{Open: "/*", Close: "*/"}},
	}
	markupSyntax = CommentDescriptor{
		BlockPairs: []BlockPair{{Open: "<!--", Close: "-->"}},
	}
	// Lua 的块注释闭合标记按字面 "]]--" 处理。
	luaSyntax = CommentDescriptor{
		LineMarkers: []string{"--"},
		BlockPairs:  []BlockPair{{Open: "--[[", Close: "]]--"}},
	}
)

// builtinLanguages 是静态语言表。
// 后缀分组与 C-like / Hash / PHP / SQL / Markup / Lua 六类描述符一一对应。
var builtinLanguages = []Language{
	{Name: "Go", Extensions: []string{".go"}, Descriptor: cLikeSyntax},
	{Name: "C/C++", Extensions: []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"}, Descriptor: cLikeSyntax},
	{Name: "Java", Extensions: []string{".java"}, Descriptor: cLikeSyntax},
	{Name: "JavaScript", Extensions: []string{".js", ".jsx"}, Descriptor: cLikeSyntax},
	{Name: "TypeScript", Extensions: []string{".ts", ".tsx"}, Descriptor: cLikeSyntax},
	{Name: "C#", Extensions: []string{".cs"}, Descriptor: cLikeSyntax},
	{Name: "Rust", Extensions: []string{".rs"}, Descriptor: cLikeSyntax},
	{Name: "Swift", Extensions: []string{".swift"}, Descriptor: cLikeSyntax},
	{Name: "Kotlin", Extensions: []string{".kt", ".kts"}, Descriptor: cLikeSyntax},
	{Name: "Scala", Extensions: []string{".scala"}, Descriptor: cLikeSyntax},
	{Name: "Dart", Extensions: []string{".dart"}, Descriptor: cLikeSyntax},
	{Name: "CSS", Extensions: []string{".css"}, Descriptor: cLikeSyntax},

	{Name: "Python", Extensions: []string{".py"}, Descriptor: hashSyntax},
	{Name: "Shell", Extensions: []string{".sh", ".bash", ".zsh"}, Descriptor: hashSyntax},
	{Name: "Ruby", Extensions: []string{".rb", ".rake"}, Descriptor: hashSyntax},
	{Name: "PowerShell", Extensions: []string{".ps1", ".psm1", ".psd1"}, Descriptor: hashSyntax},
	{Name: "YAML", Extensions: []string{".yml", ".yaml"}, Descriptor: hashSyntax},
	{Name: "TOML", Extensions: []string{".toml"}, Descriptor: hashSyntax},
	{Name: "INI", Extensions: []string{".ini", ".cfg", ".conf"}, Descriptor: hashSyntax},
	{Name: "Makefile", Extensions: []string{".mk", ".mak"}, Descriptor: hashSyntax},
	{Name: "Dotenv", Extensions: []string{".env"}, Descriptor: hashSyntax},

	{Name: "PHP", Extensions: []string{".php", ".phtml"}, Descriptor: phpSyntax},
	{Name: "SQL", Extensions: []string{".sql"}, Descriptor: sqlSyntax},
	{Name: "HTML", Extensions: []string{".html", ".htm", ".xhtml"}, Descriptor: markupSyntax},
	{Name: "XML", Extensions: []string{".xml"}, Descriptor: markupSyntax},
	{Name: "Lua", Extensions: []string{".lua"}, Descriptor: luaSyntax},
}

// Registry 管理语言表、后缀映射和每语言的分类器实例。
// 初始化完成后只读，可以在多个 goroutine 间共享。
type Registry struct {
	languages        []Language
	languageByExt    map[string]string
	descriptorByName map[string]CommentDescriptor
	classifierByName map[string]*Classifier
}

// NewRegistry 创建并注册所有内置语言。
func NewRegistry() *Registry {
	registry := &Registry{
		languages:        builtinLanguages,
		languageByExt:    make(map[string]string),
		descriptorByName: make(map[string]CommentDescriptor),
		classifierByName: make(map[string]*Classifier),
	}

	for _, language := range builtinLanguages {
		registry.descriptorByName[language.Name] = language.Descriptor
		registry.classifierByName[language.Name] = NewClassifier(language.Descriptor)
		for _, ext := range language.Extensions {
			registry.languageByExt[strings.ToLower(ext)] = language.Name
		}
	}

	// Unknown 使用空描述符，保证 Describe/ClassifierFor 是全函数。
	registry.descriptorByName[Unknown] = CommentDescriptor{}
	registry.classifierByName[Unknown] = NewClassifier(CommentDescriptor{})

	return registry
}

// LanguageForExtension 把文件后缀映射为语言标签。
// 匹配不区分大小写，前导点可有可无；未注册的后缀返回 Unknown。
func (r *Registry) LanguageForExtension(ext string) string {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized == "" {
		return Unknown
	}
	if !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}

	if name, ok := r.languageByExt[normalized]; ok {
		return name
	}
	return Unknown
}

// LanguageForFile 根据文件路径的后缀解析语言标签。
func (r *Registry) LanguageForFile(path string) string {
	return r.LanguageForExtension(filepath.Ext(path))
}

// Describe 返回语言对应的注释语法描述符。
// 对任何输入都有结果：未注册的语言等同于 Unknown（无注释语法）。
func (r *Registry) Describe(language string) CommentDescriptor {
	if descriptor, ok := r.descriptorByName[language]; ok {
		return descriptor
	}
	return CommentDescriptor{}
}

// ClassifierFor 返回语言对应的分类器。
// 分类器自身无状态，可以被多个 worker 并发复用。
func (r *Registry) ClassifierFor(language string) *Classifier {
	if classifier, ok := r.classifierByName[language]; ok {
		return classifier
	}
	return r.classifierByName[Unknown]
}

// Languages 返回已注册语言清单（按名称排序，不含 Unknown）。
func (r *Registry) Languages() []Language {
	result := make([]Language, 0, len(r.languages))
	for _, language := range r.languages {
		extensions := append([]string(nil), language.Extensions...)
		sort.Strings(extensions)
		result = append(result, Language{
			Name:       language.Name,
			Extensions: extensions,
			Descriptor: language.Descriptor,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

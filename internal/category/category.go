// Package category holds the fixed extension table used to decide which
// subfolder a file belongs in.
package category

import (
	"path/filepath"
	"strings"
)

// Others is the catch-all category for unknown or missing extensions
const Others = "Others"

// Category is a named bucket of extensions sharing a destination folder
type Category struct {
	Name       string
	Extensions []string
}

// table is the process-wide category table, in display order
var table = []Category{
	{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp"}},
	{Name: "Documents", Extensions: []string{".pdf", ".doc", ".docx", ".txt", ".xlsx", ".pptx", ".csv"}},
	{Name: "Videos", Extensions: []string{".mp4", ".mkv", ".flv", ".avi", ".mov", ".wmv"}},
	{Name: "Audios", Extensions: []string{".mp3", ".wav", ".aac", ".ogg", ".flac"}},
	{Name: "Archives", Extensions: []string{".zip", ".rar", ".tar", ".gz", ".7z"}},
	{Name: "Programs", Extensions: []string{".py", ".js", ".html", ".css", ".cpp", ".java", ".php"}},
	{Name: "Executables", Extensions: []string{".exe", ".msi", ".app", ".deb", ".rpm"}},
}

// byExtension is built once from table
var byExtension = buildIndex()

func buildIndex() map[string]string {
	index := make(map[string]string)
	for _, c := range table {
		for _, ext := range c.Extensions {
			if owner, ok := index[ext]; ok {
				panic("category: extension " + ext + " in both " + owner + " and " + c.Name)
			}
			index[ext] = c.Name
		}
	}
	return index
}

// Classify returns the category for an extension such as ".JPG".
// Unknown and empty extensions map to Others.
func Classify(ext string) string {
	if name, ok := byExtension[strings.ToLower(ext)]; ok {
		return name
	}
	return Others
}

// ClassifyName classifies a file name by its extension
func ClassifyName(name string) string {
	ext := Extension(name)
	if ext == "" {
		return Others
	}
	return Classify(ext)
}

// Names returns every category folder name, Others last
func Names() []string {
	names := make([]string, 0, len(table)+1)
	for _, c := range table {
		names = append(names, c.Name)
	}
	return append(names, Others)
}

// All returns a copy of the category table
func All() []Category {
	out := make([]Category, len(table))
	for i, c := range table {
		out[i] = Category{Name: c.Name, Extensions: append([]string(nil), c.Extensions...)}
	}
	return out
}

// IsCategoryFolder reports whether name is one of the folders Names returns
func IsCategoryFolder(name string) bool {
	if name == Others {
		return true
	}
	for _, c := range table {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Extension returns the suffix of name starting at its final dot.
// Names without a dot, ending in a dot, or whose only dot is the leading
// one (".bashrc") have no extension.
func Extension(name string) string {
	name = filepath.Base(name)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// Stem returns name with its extension removed
func Stem(name string) string {
	name = filepath.Base(name)
	return name[:len(name)-len(Extension(name))]
}

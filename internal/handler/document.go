package handler

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const frontMatterDelimiter = "+++"

var ErrFrontMatterMissing = errors.New("document has no +++ front matter")

// document 是内容目录中一个已解析的 Zola 文档。
type document struct {
	FrontMatter map[string]any
	Body        string
}

func (d document) Title() string {
	if title, ok := d.FrontMatter["title"].(string); ok && title != "" {
		return title
	}
	if extra, ok := d.FrontMatter["extra"].(map[string]any); ok {
		if name, ok := extra["display_name"].(string); ok {
			return name
		}
	}
	return ""
}

func (d document) Date() string {
	date, _ := d.FrontMatter["date"].(string)
	return date
}

func parseDocument(data string) (document, error) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	if !strings.HasPrefix(data, frontMatterDelimiter+"\n") {
		return document{}, ErrFrontMatterMissing
	}
	rest := strings.TrimPrefix(data, frontMatterDelimiter+"\n")

	raw := ""
	if strings.HasPrefix(rest, frontMatterDelimiter) {
		rest = rest[len(frontMatterDelimiter):]
	} else {
		end := strings.Index(rest, "\n"+frontMatterDelimiter)
		if end < 0 {
			return document{}, ErrFrontMatterMissing
		}
		raw = rest[:end+1]
		rest = rest[end+1+len(frontMatterDelimiter):]
	}
	body := strings.TrimLeft(rest, "\n")

	frontMatter := make(map[string]any)
	if err := toml.Unmarshal([]byte(raw), &frontMatter); err != nil {
		return document{}, err
	}
	return document{FrontMatter: frontMatter, Body: body}, nil
}

func loadDocument(path string) (document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return document{}, err
	}
	return parseDocument(string(data))
}

// pageLink 用于章节页中的文章列表。
type pageLink struct {
	URL   string
	Title string
	Date  string
}

// listSectionPages collects every non-index document below dir, newest first.
func listSectionPages(contentPath, dir string) ([]pageLink, error) {
	var pages []pageLink
	err := filepath.WalkDir(dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || filepath.Ext(path) != ".md" || entry.Name() == "_index.md" {
			return nil
		}

		doc, err := loadDocument(path)
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(contentPath, path)
		if err != nil {
			return err
		}
		pages = append(pages, pageLink{
			URL:   "/" + filepath.ToSlash(strings.TrimSuffix(rel, ".md")),
			Title: doc.Title(),
			Date:  doc.Date(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Date > pages[j].Date
	})
	return pages, nil
}

package service

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

const frontMatterDelimiter = "+++"

type postFrontMatter struct {
	Title      string         `toml:"title"`
	Date       string         `toml:"date"`
	Template   string         `toml:"template"`
	Taxonomies postTaxonomies `toml:"taxonomies"`
	Extra      postExtra      `toml:"extra"`
}

type postTaxonomies struct {
	Tags []string `toml:"tags"`
}

type postExtra struct {
	PreviewImage string `toml:"preview_image"`
}

type projectFrontMatter struct {
	SortBy     string       `toml:"sort_by"`
	Template   string       `toml:"template"`
	PaginateBy int          `toml:"paginate_by"`
	Extra      projectExtra `toml:"extra"`
}

type projectExtra struct {
	Handle      string `toml:"handle"`
	DisplayName string `toml:"display_name"`
	Dek         string `toml:"dek"`
	Description string `toml:"description"`
	HeaderURL   string `toml:"header_url"`
	AvatarURL   string `toml:"avatar_url"`
	Pronouns    string `toml:"pronouns"`
	URL         string `toml:"url"`
	URLShort    string `toml:"url_short"`
	AvatarShape string `toml:"avatar_shape"`
}

// postIndexFrontMatter 是每个项目固定的文章列表页前言。
type postIndexFrontMatter struct {
	SortBy       string `toml:"sort_by"`
	Transparent  bool   `toml:"transparent"`
	Template     string `toml:"template"`
	PageTemplate string `toml:"page_template"`
}

// writeFrontMatter writes a "+++"-delimited TOML block followed by a blank line.
func writeFrontMatter(buf *bytes.Buffer, v any) error {
	encoded, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString(frontMatterDelimiter + "\n")
	buf.Write(encoded)
	if len(encoded) > 0 && encoded[len(encoded)-1] != '\n' {
		buf.WriteString("\n")
	}
	buf.WriteString(frontMatterDelimiter + "\n\n")
	return nil
}

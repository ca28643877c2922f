package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestConverterEndToEndMinimalExport(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("someone", nil)
	f.addPost("someone", "1-hello", map[string]any{
		"blocks": []any{markdownBlock("hello world")},
	})

	if err := NewConverter(f.paths(), f.options()).Run(nil); err != nil {
		t.Fatalf("run converter: %v", err)
	}

	content := f.paths().ContentPath
	home := f.readFile(filepath.Join(content, "someone", "_index.md"))
	if !strings.Contains(home, "project-home.html") {
		t.Fatalf("unexpected project home %q", home)
	}
	postIndex := f.readFile(filepath.Join(content, "someone", "post", "_index.md"))
	if !strings.Contains(postIndex, "blog-page.html") {
		t.Fatalf("unexpected post index %q", postIndex)
	}
	post := f.readFile(filepath.Join(content, "someone", "post", "1-a-headline.md"))
	if !strings.Contains(post, "\nhello world\n\n") {
		t.Fatalf("expected prose surrounded by blank lines, got %q", post)
	}

	if entries, err := os.ReadDir(f.paths().StaticPath); err == nil && len(entries) > 0 {
		t.Fatalf("expected no static files, found %d entries", len(entries))
	}
}

func TestConverterWritesProjectHome(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("someone", map[string]any{
		"displayName": "Some One",
		"url":         "https://someone.example.org/about",
		"avatarURL":   "https://staging.example.com/rc/avatar/12/me%20now.png",
		"headerURL":   "https://staging.example.com/rc/header/12/banner.jpg",
	})
	f.writeFile(filepath.Join(f.projectDir("someone"), "me%20now.png"), []byte("avatar"))
	f.writeFile(filepath.Join(f.projectDir("someone"), "banner.jpg"), []byte("header"))

	if err := NewConverter(f.paths(), f.options()).Run([]string{"someone"}); err != nil {
		t.Fatalf("run converter: %v", err)
	}

	frontMatter, _ := splitDocument(t, f.readFile(filepath.Join(f.paths().ContentPath, "someone", "_index.md")))
	var parsed struct {
		SortBy     string `toml:"sort_by"`
		Template   string `toml:"template"`
		PaginateBy int    `toml:"paginate_by"`
		Extra      struct {
			Handle      string `toml:"handle"`
			DisplayName string `toml:"display_name"`
			AvatarURL   string `toml:"avatar_url"`
			HeaderURL   string `toml:"header_url"`
			URL         string `toml:"url"`
			URLShort    string `toml:"url_short"`
			AvatarShape string `toml:"avatar_shape"`
			Pronouns    string `toml:"pronouns"`
		} `toml:"extra"`
	}
	if err := toml.Unmarshal([]byte(frontMatter), &parsed); err != nil {
		t.Fatalf("parse project front matter: %v", err)
	}

	if parsed.SortBy != "date" || parsed.PaginateBy != 20 || parsed.Template != "project-home.html" {
		t.Fatalf("unexpected section settings %+v", parsed)
	}
	if parsed.Extra.Handle != "someone" || parsed.Extra.DisplayName != "Some One" {
		t.Fatalf("unexpected identity %+v", parsed.Extra)
	}
	if parsed.Extra.AvatarURL != "/rc/avatar/12/me%20now.png" || parsed.Extra.HeaderURL != "/rc/header/12/banner.jpg" {
		t.Fatalf("unexpected media paths %+v", parsed.Extra)
	}
	if parsed.Extra.URLShort != "someone.example.org/about" {
		t.Fatalf("unexpected short url %q", parsed.Extra.URLShort)
	}
	if parsed.Extra.Pronouns != "they/them" || parsed.Extra.AvatarShape != "circle" {
		t.Fatalf("unexpected presentation fields %+v", parsed.Extra)
	}

	if _, err := os.Stat(filepath.Join(f.paths().StaticPath, "rc", "avatar", "12", "me now.png")); err != nil {
		t.Fatalf("expected avatar to be copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.paths().StaticPath, "rc", "header", "12", "banner.jpg")); err != nil {
		t.Fatalf("expected header to be copied: %v", err)
	}
}

func TestConverterSelectionFiltersProjects(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("alpha", nil)
	f.addProject("beta", nil)
	f.addProject("gamma", nil)
	f.writeFile(filepath.Join(f.root, "project", "stray.txt"), []byte("not a project"))

	converter := NewConverter(f.paths(), f.options())
	all, err := converter.Projects(nil)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if strings.Join(all, ",") != "alpha,beta,gamma" {
		t.Fatalf("unexpected projects %v", all)
	}

	selected, err := converter.Projects(ParseSelection("gamma, alpha,,unknown"))
	if err != nil {
		t.Fatalf("list selected projects: %v", err)
	}
	if strings.Join(selected, ",") != "alpha,gamma" {
		t.Fatalf("unexpected selection %v", selected)
	}

	if err := converter.Run([]string{"beta"}); err != nil {
		t.Fatalf("run converter: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.paths().ContentPath, "alpha")); !os.IsNotExist(err) {
		t.Fatalf("expected alpha to be skipped, stat err: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.paths().ContentPath, "beta", "_index.md")); err != nil {
		t.Fatalf("expected beta to be converted: %v", err)
	}
}

func TestConverterRequiresExportMarker(t *testing.T) {
	f := newExportFixture(t)
	if err := os.Remove(filepath.Join(f.root, "user.json")); err != nil {
		t.Fatalf("remove marker: %v", err)
	}

	err := NewConverter(f.paths(), f.options()).Run(nil)
	if !errors.Is(err, ErrNotAnExport) {
		t.Fatalf("expected ErrNotAnExport, got %v", err)
	}
}

func TestConverterAbortsProjectOnBrokenPost(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("someone", nil)
	f.addPost("someone", "9-broken", map[string]any{
		"blocks": []any{attachmentBlock("image", "https://example.com/rc/attachment/z/missing.png", nil)},
	})

	err := NewConverter(f.paths(), f.options()).Run(nil)
	if err == nil {
		t.Fatalf("expected broken post to abort the project")
	}
	if !strings.HasPrefix(err.Error(), `processing project "someone": `) {
		t.Fatalf("expected project context, got %v", err)
	}
	if !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected missing path in error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(f.paths().ContentPath, "someone", "post", "_index.md")); !os.IsNotExist(statErr) {
		t.Fatalf("expected post index to be skipped after failure, stat err: %v", statErr)
	}
}

func TestConverterFailsOnInvalidProjectMetadata(t *testing.T) {
	f := newExportFixture(t)
	f.writeFile(filepath.Join(f.projectDir("someone"), "someone.json"), []byte(`{"handle": 5}`))

	err := NewConverter(f.paths(), f.options()).Run(nil)
	if err == nil || !strings.Contains(err.Error(), "someone.json") {
		t.Fatalf("expected metadata error naming the document, got %v", err)
	}
}

func TestConverterSkipsStrayFilesInPublishedPosts(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("someone", nil)
	f.addPost("someone", "1-hello", map[string]any{
		"blocks": []any{markdownBlock("hello")},
	})
	published := filepath.Join(f.projectDir("someone"), "posts", "published")
	f.writeFile(filepath.Join(published, "notes.txt"), []byte("not a post"))
	f.writeFile(filepath.Join(published, "post.json"), []byte("{not json"))

	if err := NewConverter(f.paths(), f.options()).Run(nil); err != nil {
		t.Fatalf("stray files should be ignored: %v", err)
	}

	postDir := filepath.Join(f.paths().ContentPath, "someone", "post")
	entries, err := os.ReadDir(postDir)
	if err != nil {
		t.Fatalf("read %s: %v", postDir, err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	if strings.Join(names, ",") != "1-a-headline.md,_index.md" {
		t.Fatalf("expected one post document plus index, got %v", names)
	}
}

func TestParseSelection(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantNil bool
		want    []string
	}{
		{name: "blank selects all", value: "", wantNil: true},
		{name: "whitespace selects all", value: "  ", wantNil: true},
		{name: "only commas selects none", value: ",", want: []string{}},
		{name: "trimmed handles", value: " a, b ,,c", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSelection(tt.value)
			if tt.wantNil {
				if got != nil {
					t.Fatalf("expected nil selection, got %#v", got)
				}
				return
			}
			if got == nil || strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("ParseSelection(%q) = %#v, want %#v", tt.value, got, tt.want)
			}
		})
	}
}

func TestConverterEmptySelectionConvertsNothing(t *testing.T) {
	f := newExportFixture(t)
	f.addProject("alpha", nil)

	converter := NewConverter(f.paths(), f.options())
	if err := converter.Run(ParseSelection(",")); err != nil {
		t.Fatalf("run converter: %v", err)
	}
	if _, err := os.Stat(f.paths().ContentPath); !os.IsNotExist(err) {
		t.Fatalf("expected no output for an empty selection, stat err: %v", err)
	}
}

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	ErrMissingPublishedAt = errors.New("post is missing publishedAt")
	ErrMissingPostURL     = errors.New("post is missing singlePostPageUrl")
)

// LoadProject 读取并解析项目元数据文档。
func LoadProject(path string) (*Project, error) {
	var project Project
	if err := decodeFile(path, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// LoadPost 读取并解析单篇帖子的 post.json。
func LoadPost(path string) (*Post, error) {
	var post Post
	if err := decodeFile(path, &post); err != nil {
		return nil, err
	}
	if post.PublishedAt.IsZero() {
		return nil, fmt.Errorf("parsing '%s': %w", path, ErrMissingPublishedAt)
	}
	if post.SinglePostPageURL.Scheme == "" {
		return nil, fmt.Errorf("parsing '%s': %w", path, ErrMissingPostURL)
	}
	return &post, nil
}

func decodeFile(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening '%s': %w", path, err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		return fmt.Errorf("parsing '%s': %w", path, err)
	}
	return nil
}

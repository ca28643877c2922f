package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// BlockType 标识帖子内容块的种类。
type BlockType string

const (
	BlockMarkdown      BlockType = "markdown"
	BlockAttachment    BlockType = "attachment"
	BlockAttachmentRow BlockType = "attachment-row"
)

var (
	ErrUnknownBlockType = errors.New("unknown block type")
	ErrBlockPayload     = errors.New("block payload does not match its type")
	ErrRelativeURL      = errors.New("url is not absolute")
)

// URL 是导出数据里出现的绝对地址。
type URL struct {
	url.URL
}

// UnmarshalText 解析并校验绝对 URL。
func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := url.Parse(string(text))
	if err != nil {
		return err
	}
	if !parsed.IsAbs() {
		return fmt.Errorf("%w: %q", ErrRelativeURL, string(text))
	}
	u.URL = *parsed
	return nil
}

// MarshalText keeps URL round-trippable for fixtures.
func (u URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// AskSettings mirrors the project's ask box configuration.
type AskSettings struct {
	Enabled             bool `json:"enabled"`
	AllowAnon           bool `json:"allowAnon"`
	RequireLoggedInAnon bool `json:"requireLoggedInAnon"`
}

// Project 是单个项目（账号）的元数据文档。
type Project struct {
	Handle                  string      `json:"handle"`
	DisplayName             string      `json:"displayName"`
	Dek                     string      `json:"dek"`
	Description             string      `json:"description"`
	AvatarURL               *URL        `json:"avatarURL"`
	AvatarPreviewURL        *URL        `json:"avatarPreviewURL"`
	HeaderURL               *URL        `json:"headerURL"`
	HeaderPreviewURL        *URL        `json:"headerPreviewURL"`
	ProjectID               uint64      `json:"projectId"`
	Privacy                 string      `json:"privacy"`
	Pronouns                string      `json:"pronouns"`
	URL                     string      `json:"url"`
	Flags                   []string    `json:"flags"`
	AvatarShape             string      `json:"avatarShape"`
	LoggedOutPostVisibility string      `json:"loggedOutPostVisibility"`
	AskSettings             AskSettings `json:"askSettings"`
	FrequentlyUsedTags      []string    `json:"frequentlyUsedTags"`
	ContactCard             []string    `json:"contactCard"`
	DeleteAfter             *string     `json:"deleteAfter"`
	IsSelfProject           bool        `json:"isSelfProject"`
}

// Post 是单篇已发布帖子的导出文档。
type Post struct {
	PostID            uint64    `json:"postId"`
	Headline          string    `json:"headline"`
	PublishedAt       time.Time `json:"publishedAt"`
	State             uint32    `json:"state"`
	CWs               []string  `json:"cws"`
	Tags              []string  `json:"tags"`
	Blocks            []Block   `json:"blocks"`
	Pinned            bool      `json:"pinned"`
	CommentsLocked    bool      `json:"commentsLocked"`
	SharesLocked      bool      `json:"sharesLocked"`
	SinglePostPageURL URL       `json:"singlePostPageUrl"`
}

// MarkdownBlock holds raw markdown, which may be a bare URL.
type MarkdownBlock struct {
	Content string `json:"content"`
}

// AttachmentBlock 描述单个媒体附件。
type AttachmentBlock struct {
	Kind         string  `json:"kind"`
	FileURL      URL     `json:"fileURL"`
	PreviewURL   URL     `json:"previewURL"`
	AttachmentID string  `json:"attachmentId"`
	AltText      *string `json:"altText"`
	Width        *int    `json:"width"`
	Height       *int    `json:"height"`
}

// CanonicalID 返回规范化的附件 UUID；无法解析时原样返回导出中的标识。
func (a *AttachmentBlock) CanonicalID() string {
	if id, err := uuid.Parse(a.AttachmentID); err == nil {
		return id.String()
	}
	return a.AttachmentID
}

// Alt returns the alt text, or an empty string when none was given.
func (a *AttachmentBlock) Alt() string {
	if a.AltText == nil {
		return ""
	}
	return *a.AltText
}

// Block 是帖子内容块的带标签联合体，每个实例只有与 Type 对应的一个载荷。
type Block struct {
	Type        BlockType
	Markdown    *MarkdownBlock
	Attachment  *AttachmentBlock
	Attachments []Block
}

type rawBlock struct {
	Type        BlockType        `json:"type"`
	Markdown    *MarkdownBlock   `json:"markdown,omitempty"`
	Attachment  *AttachmentBlock `json:"attachment,omitempty"`
	Attachments []Block          `json:"attachments"`
}

// UnmarshalJSON decodes the "type"-tagged block and rejects mismatched payloads.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw rawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch raw.Type {
	case BlockMarkdown:
		if raw.Markdown == nil || raw.Attachment != nil || raw.Attachments != nil {
			return fmt.Errorf("%w: %s", ErrBlockPayload, raw.Type)
		}
	case BlockAttachment:
		if raw.Attachment == nil || raw.Markdown != nil || raw.Attachments != nil {
			return fmt.Errorf("%w: %s", ErrBlockPayload, raw.Type)
		}
	case BlockAttachmentRow:
		if raw.Attachments == nil || raw.Markdown != nil || raw.Attachment != nil {
			return fmt.Errorf("%w: %s", ErrBlockPayload, raw.Type)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlockType, raw.Type)
	}

	*b = Block{
		Type:        raw.Type,
		Markdown:    raw.Markdown,
		Attachment:  raw.Attachment,
		Attachments: raw.Attachments,
	}
	return nil
}

// MarshalJSON writes the block back in the export's tagged form.
func (b Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawBlock{
		Type:        b.Type,
		Markdown:    b.Markdown,
		Attachment:  b.Attachment,
		Attachments: b.Attachments,
	})
}

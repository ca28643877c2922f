package db

import (
	"time"

	"gorm.io/gorm"
)

// ProjectRecord 记录一次项目转换。
type ProjectRecord struct {
	gorm.Model
	Handle       string `gorm:"uniqueIndex;not null"`
	DisplayName  string
	DocumentPath string
	PostCount    int
}

// PostRecord 记录写出的帖子文档。
type PostRecord struct {
	gorm.Model
	PostID        uint64 `gorm:"uniqueIndex;not null"`
	ProjectHandle string `gorm:"index"`
	Headline      string
	PublishedAt   time.Time
	DocumentPath  string
	PreviewImage  string
	BlockCount    int
}

// AssetRecord 记录复制到静态目录的媒体文件，按本地路径去重。
type AssetRecord struct {
	gorm.Model
	LocalPath     string `gorm:"uniqueIndex;not null"`
	URL           string
	ProjectHandle string `gorm:"index"`
	Kind          string
	AttachmentID  string `gorm:"index"`
	SourcePath    string
	DestPath      string
	Size          int64
	Checksum      string
	Width         int
	Height        int
}

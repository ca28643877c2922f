package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppConfig 汇总转换器与预览服务所需的基础配置。
type AppConfig struct {
	ExportPath   string
	OutputPath   string
	Projects     string
	ManifestPath string
	ListenAddr   string
	Port         string
	GinMode      string
	LogFile      string
}

// Load 从环境变量读取应用配置，并为缺失项提供默认值。
func Load() AppConfig {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8082"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	outputPath := strings.TrimSpace(os.Getenv("OUTPUT_PATH"))
	if outputPath == "" {
		outputPath = "zola"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	return AppConfig{
		ExportPath:   strings.TrimSpace(os.Getenv("EXPORT_PATH")),
		OutputPath:   outputPath,
		Projects:     strings.TrimSpace(os.Getenv("PROJECTS")),
		ManifestPath: strings.TrimSpace(os.Getenv("MANIFEST_PATH")),
		ListenAddr:   listenAddr,
		Port:         port,
		GinMode:      ginMode,
		LogFile:      strings.TrimSpace(os.Getenv("LOG_FILE")),
	}
}

// ContentPath is where rendered documents are written.
func (c AppConfig) ContentPath() string {
	return filepath.Join(c.OutputPath, "content")
}

// StaticPath is where copied media lands.
func (c AppConfig) StaticPath() string {
	return filepath.Join(c.OutputPath, "static")
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/zolaexport/internal/config"
	"github.com/zolaexport/internal/db"
	"github.com/zolaexport/internal/service"
)

func main() {
	// .env 不存在时忽略
	_ = godotenv.Load()
	cfg := config.Load()

	flag.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "output directory (receives content/ and static/)")
	flag.StringVar(&cfg.Projects, "p", cfg.Projects, "comma-separated project handles to convert (default: all)")
	flag.StringVar(&cfg.ManifestPath, "manifest", cfg.ManifestPath, "sqlite manifest path (empty disables the manifest)")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "also append diagnostics to this file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <export-path>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 0 {
		cfg.ExportPath = flag.Arg(0)
	}
	if cfg.ExportPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer closeLog()

	opts := service.Options{Logger: logger}
	if cfg.ManifestPath != "" {
		if err := db.Init(cfg.ManifestPath); err != nil {
			log.Fatalf("failed to initialize manifest: %v", err)
		}
		defer db.Close()
		opts.Recorder = service.NewManifestService(db.DB)
	}

	paths := service.NewPaths(cfg.ExportPath, cfg.OutputPath)
	converter := service.NewConverter(paths, opts)
	if err := converter.Run(service.ParseSelection(cfg.Projects)); err != nil {
		logger.Printf("Error: %v", err)
		closeLog()
		db.Close()
		os.Exit(1)
	}
}

// newLogger 返回写到 stderr 的日志器；指定文件时同时追加写入该文件。
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(os.Stderr, "", 0), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return log.New(io.MultiWriter(os.Stderr, f), "", log.LstdFlags), func() { f.Close() }, nil
}

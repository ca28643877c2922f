package main

import (
	"flag"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/zolaexport/internal/config"
	"github.com/zolaexport/internal/router"
)

// 本地预览转换输出
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	flag.StringVar(&cfg.OutputPath, "o", cfg.OutputPath, "output directory produced by zolaexport")
	flag.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "listen address")
	flag.Parse()

	gin.SetMode(cfg.GinMode)
	r := router.SetupRouter(cfg.ContentPath(), cfg.StaticPath())

	log.Printf("previewing '%s' on %s", cfg.OutputPath, cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

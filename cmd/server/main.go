package main

import (
	"log"

	"github.com/beacon/internal/config"
	"github.com/beacon/internal/db"
	"github.com/beacon/internal/handler"
	"github.com/beacon/internal/router"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// 确保存在一个后台管理员账号
	if err := db.EnsureUser(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin user: %v", err)
	}

	api := handler.NewAPI(db.DB, cfg.UploadDir, cfg.UploadURLPath)

	// 启动时装载轮播画面，轮播为空时大屏接口返回 404
	if err := api.Display().Reload(); err != nil {
		log.Printf("display reload skipped: %v", err)
	}
	defer api.Display().Stop()

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

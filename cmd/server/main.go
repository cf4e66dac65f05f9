package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"orchard_back_end/internal/config"
	"orchard_back_end/internal/database"
	"orchard_back_end/internal/i18n"
	"orchard_back_end/internal/routes"
)

func main() {
	config.Load()
	database.ConnectDatabases()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		database.Close(ctx)
	}()

	bundle := i18n.MustLoad()

	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	routes.RegisterRoutes(r, bundle)

	port := config.Get("PORT", "8080")
	log.Println("🚀 Orchard API listening on port", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := config.Get("CORS_ORIGINS", "")
	if origins == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", "Accept-Language")
	cfg.AllowCredentials = origins != ""
	return cfg
}

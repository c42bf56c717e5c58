package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raytracer/pkg/config"
	"github.com/df07/go-raytracer/pkg/output"
	"github.com/df07/go-raytracer/web/server"
)

func main() {
	envFile := flag.String("env", ".env", "Path to a .env file with RAYTRACER_* and S3_* settings")
	addr := flag.String("addr", "", "Address to serve on (default from RAYTRACER_ADDR or :8080)")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	var uploader *output.S3Uploader
	if cfg.S3.Enabled() {
		uploader, err = output.NewS3Uploader(cfg.S3, nil)
		if err != nil {
			log.Printf("Error configuring S3 uploads: %v", err)
			os.Exit(1)
		}
		log.Printf("Uploads enabled to bucket %s", cfg.S3.Bucket)
	}

	webServer := server.NewServer(cfg, uploader)

	log.Printf("Raytracer Web Server")
	log.Printf("Try http://localhost%s/api/render?scene=default&width=200&samples=10", cfg.Addr)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}

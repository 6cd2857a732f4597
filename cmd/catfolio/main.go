package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/guitarbeat/my-cat-folio-sub002/internal/app"
	"github.com/guitarbeat/my-cat-folio-sub002/internal/logger"
)

var (
	version = "dev"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "catfolio.db", "SQLite database path")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	baseURL := flag.String("baseurl", "", "Externally visible base URL for resume links (auto-detected if not set)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `CatFolio - Cat Name Tournament Server

Usage:
  catfolio [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "catfolio.db")
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -baseurl str   Externally visible base URL for resume links
  -version       Show version and exit
  -help          Show this help message

Examples:
  catfolio                           # Run on port 8080 with catfolio.db
  catfolio -port 9000                # Run on port 9000
  catfolio -db /data/names.db        # Use custom database path
  catfolio -baseurl https://cats.example.com

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("catfolio %s\n", version)
		os.Exit(0)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	addr := fmt.Sprintf(":%d", *port)
	a, err := app.New(appLog, *dbPath, addr, *baseURL)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}

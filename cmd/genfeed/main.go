// Command genfeed rebuilds the podcast feed from the episode files on disk.
// It exists for repairing the feed by hand; the pipeline regenerates the feed
// itself after each digest.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/daigo823/ai-news-collector/internal/podcast"
)

func main() {
	_ = godotenv.Load()

	dir := os.Getenv("DOCS_DIR")
	if dir == "" {
		dir = "docs"
	}
	baseURL := os.Getenv("PODCAST_BASE_URL")
	if baseURL == "" {
		baseURL = "https://daigo823.github.io/ai-news-collector"
	}

	if err := podcast.RegenerateFeed(dir, baseURL); err != nil {
		log.Fatalf("feed regeneration failed: %v", err)
	}
	log.Printf("feed.xml regenerated in %s", dir)
}

// Package podcast stores daily digest episodes and regenerates the public
// podcast RSS feed from whatever episode files exist on disk.
package podcast

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/feeds"
)

const (
	feedTitle       = "AI News Daily"
	feedDescription = "Daily audio digest of enterprise AI news."
	feedAuthor      = "AI News Collector"
)

var episodeDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)

// EpisodeFilename returns the canonical file name for a date, e.g.
// podcast_2026-08-28.mp3. Dates are zero-padded so lexicographic order is
// chronological order.
func EpisodeFilename(date string) string {
	return "podcast_" + date + ".mp3"
}

// SaveEpisode writes the audio for one day into dir and returns the episode
// file name. A rerun on the same day overwrites that day's episode.
func SaveEpisode(dir, date string, audio []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create episode dir: %w", err)
	}
	name := EpisodeFilename(date)
	if err := os.WriteFile(filepath.Join(dir, name), audio, 0o644); err != nil {
		return "", fmt.Errorf("failed to write episode: %w", err)
	}
	return name, nil
}

// RegenerateFeed rebuilds dir/feed.xml from every podcast_*.mp3 in dir,
// newest episode first. The feed is derived entirely from the files present,
// so deleting an episode file and regenerating removes it from the feed.
func RegenerateFeed(dir, baseURL string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "podcast_*.mp3"))
	if err != nil {
		return fmt.Errorf("failed to list episodes: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))

	baseURL = strings.TrimSuffix(baseURL, "/")

	feed := &feeds.Feed{
		Title:       feedTitle,
		Link:        &feeds.Link{Href: baseURL + "/feed.xml"},
		Description: feedDescription,
		Author:      &feeds.Author{Name: feedAuthor},
		Created:     time.Now(),
	}

	for _, path := range paths {
		name := filepath.Base(path)
		m := episodeDateRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		date := m[1]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat episode %s: %w", name, err)
		}

		created := time.Now()
		if t, err := time.Parse("2006-01-02", date); err == nil {
			created = t
		}

		episodeURL := baseURL + "/" + name
		feed.Items = append(feed.Items, &feeds.Item{
			Title:       date + " AI News",
			Link:        &feeds.Link{Href: episodeURL},
			Id:          episodeURL,
			Description: "AI news digest for " + date,
			Created:     created,
			Enclosure: &feeds.Enclosure{
				Url:    episodeURL,
				Length: strconv.FormatInt(info.Size(), 10),
				Type:   "audio/mpeg",
			},
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return fmt.Errorf("failed to render feed: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "feed.xml"), []byte(rss), 0o644); err != nil {
		return fmt.Errorf("failed to write feed.xml: %w", err)
	}
	return nil
}

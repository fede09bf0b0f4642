package source

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/cratedl/internal/utils"
)

// feedMarker tags feed-reader url lines whose uploads should be fetched.
const feedMarker = "yt_dl"

type atomFeed struct {
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	ID        string `xml:"id"`
	Published string `xml:"published"`
}

// ReadFeedList returns the feed URLs from a feed-reader urls file whose
// line carries the yt_dl marker anywhere after the URL.
func ReadFeedList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening feed list: %v", err)
	}
	defer file.Close()

	var feeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, feedMarker) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			feeds = append(feeds, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading feed list: %v", err)
	}
	return feeds, nil
}

// FeedUploads fetches each marked feed and returns watch URLs for entries
// published within the last maxAge days. Unparsable feeds are skipped.
func FeedUploads(client utils.HTTPDoer, urlsFile string, maxAge int) ([]string, error) {
	feeds, err := ReadFeedList(urlsFile)
	if err != nil {
		return nil, err
	}
	cutoff := time.Now().AddDate(0, 0, -maxAge)

	seen := make(map[string]struct{})
	var urls []string
	for _, feedURL := range feeds {
		body, err := fetch(client, feedURL)
		if err != nil {
			log.Warn().Str("op", "source/feed").Err(err).Msgf("Skipping feed %s", feedURL)
			continue
		}
		var feed atomFeed
		if err := xml.Unmarshal(body, &feed); err != nil {
			log.Warn().Str("op", "source/feed").Err(err).Msgf("Unparsable feed %s", feedURL)
			continue
		}
		for _, entry := range feed.Entries {
			published, err := time.Parse(time.RFC3339, entry.Published)
			if err != nil || published.Before(cutoff) {
				continue
			}
			// entry ids are of the form yt:video:<VIDEOID>
			parts := strings.Split(entry.ID, ":")
			videoID := parts[len(parts)-1]
			if videoID == "" {
				continue
			}
			url := "https://www.youtube.com/watch?v=" + videoID
			if _, ok := seen[url]; ok {
				continue
			}
			seen[url] = struct{}{}
			urls = append(urls, url)
		}
	}
	return urls, nil
}

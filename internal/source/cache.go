package source

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// FromCache queries the feed reader's sqlite cache and extracts every
// distinct URL matching pattern from the item contents. A row may yield
// zero or many matches; exact duplicates collapse. The returned order
// follows map iteration and is not stable across runs.
func FromCache(path string, pattern *regexp.Regexp) ([]string, error) {
	// mode=ro keeps the driver from creating the file: the cache belongs
	// to the feed reader and must never be written here
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("error opening cache db: %v", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT content FROM rss_item")
	if err != nil {
		return nil, fmt.Errorf("error querying cache db: %v", err)
	}
	defer rows.Close()

	seen := make(map[string]struct{})
	scanned := 0
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("error scanning cache row: %v", err)
		}
		scanned++
		for _, match := range pattern.FindAllString(content, -1) {
			seen[match] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cache rows: %v", err)
	}

	urls := make([]string, 0, len(seen))
	for url := range seen {
		urls = append(urls, url)
	}
	log.Debug().Str("op", "source/cache").Msgf("Extracted %d distinct URLs from %d rows", len(urls), scanned)
	return urls, nil
}

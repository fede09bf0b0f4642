package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/cratedl/internal/utils"
)

// Label pages embed album links as hrefs inside the music grid; external
// releases carry an absolute URL instead. A single alternation keeps the
// matches in page order, which the newest-first cutoff scan relies on.
var (
	albumLinkRegex   = regexp.MustCompile(`href="(https://[^.]+\.bandcamp\.com/album/[-\w]+|/album/[-\w]+)"`)
	releaseDateRegex = regexp.MustCompile(`release[ds]\s+(\w+ \d{1,2}, \d{4})`)
	fanIDRegex       = regexp.MustCompile(`id="follow-unfollow_(\d+)"`)
)

type followingResponse struct {
	// yes, 'followeers' is the actual field name in the API
	Followeers []struct {
		URLHints struct {
			Subdomain string `json:"subdomain"`
		} `json:"url_hints"`
	} `json:"followeers"`
}

// AlbumAge fetches an album page and returns the days elapsed since its
// release date. Unpublished releases yield a negative value.
func AlbumAge(client utils.HTTPDoer, albumURL string) (int, error) {
	body, err := fetch(client, albumURL)
	if err != nil {
		return 0, err
	}
	m := releaseDateRegex.FindSubmatch(body)
	if m == nil {
		return 0, fmt.Errorf("no release date on %s", albumURL)
	}
	released, err := time.Parse("January 2, 2006", string(m[1]))
	if err != nil {
		return 0, fmt.Errorf("error parsing release date %q: %v", m[1], err)
	}
	return int(time.Since(released).Hours() / 24), nil
}

// LabelAlbums returns albums on the first page of a label's releases
// published within the last maxAge days. Listings are newest-first, so
// scanning stops at the first release older than the cutoff.
func LabelAlbums(client utils.HTTPDoer, label string, maxAge int) ([]string, error) {
	labelURL := fmt.Sprintf("https://%s.bandcamp.com/music", label)
	body, err := fetch(client, labelURL)
	if err != nil {
		log.Warn().Str("op", "source/bandcamp").Msgf("Timeout or fetch error for %s", labelURL)
		return nil, nil
	}

	base := strings.TrimSuffix(labelURL, "/music")
	var candidates []string
	for _, m := range albumLinkRegex.FindAllSubmatch(body, -1) {
		href := string(m[1])
		if strings.HasPrefix(href, "/") {
			href = base + href
		}
		candidates = append(candidates, href)
	}

	var albums []string
	for _, url := range candidates {
		age, err := AlbumAge(client, url)
		if err != nil {
			log.Debug().Str("op", "source/bandcamp").Err(err).Msgf("Skipping %s", url)
			continue
		}
		if age > 0 && age <= maxAge {
			albums = append(albums, url)
		} else {
			break
		}
	}
	return albums, nil
}

// UserSubscriptions returns the label subdomains a fan follows, sorted,
// resolved through the fan-collection API with a single POST.
func UserSubscriptions(client utils.HTTPDoer, username string) ([]string, error) {
	body, err := fetch(client, fmt.Sprintf("https://bandcamp.com/%s", username))
	if err != nil {
		return nil, err
	}
	m := fanIDRegex.FindSubmatch(body)
	if m == nil {
		return nil, fmt.Errorf("could not locate fan id for %s", username)
	}

	payload, _ := json.Marshal(map[string]any{
		"fan_id": string(m[1]),
		// absurdly large values page through the whole collection at once
		"older_than_token": "9999999999:9999999999",
		"count":            9999,
	})
	req, err := http.NewRequest("POST", "https://bandcamp.com/api/fancollection/1/following_bands", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching subscriptions: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("subscription request failed with status code %d", resp.StatusCode)
	}

	var following followingResponse
	if err := json.NewDecoder(resp.Body).Decode(&following); err != nil {
		return nil, fmt.Errorf("error parsing subscription response: %v", err)
	}
	var labels []string
	for _, f := range following.Followeers {
		if sub := strings.TrimSpace(f.URLHints.Subdomain); sub != "" {
			labels = append(labels, sub)
		}
	}
	sort.Strings(labels)
	return labels, nil
}

// AlbumsOfWeek collects recent releases across every label a fan follows.
func AlbumsOfWeek(client utils.HTTPDoer, username string, maxAge int) ([]string, error) {
	labels, err := UserSubscriptions(client, username)
	if err != nil {
		return nil, err
	}
	var albums []string
	for _, label := range labels {
		found, err := LabelAlbums(client, label, maxAge)
		if err != nil {
			continue
		}
		albums = append(albums, found...)
	}
	return albums, nil
}

func fetch(client utils.HTTPDoer, url string) ([]byte, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s failed with status code %d", url, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

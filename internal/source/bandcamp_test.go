package source

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// mockDoer serves canned bodies keyed by URL.
type mockDoer struct {
	responses map[string]string
	requests  []string
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	url := req.URL.String()
	m.requests = append(m.requests, url)
	body, ok := m.responses[url]
	if !ok {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(strings.NewReader("")),
		}, nil
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}, nil
}

func albumPage(released time.Time) string {
	return fmt.Sprintf(`<div class="tralbum-credits">released %s</div>`,
		released.Format("January 2, 2006"))
}

func TestAlbumAge(t *testing.T) {
	url := "https://artist.bandcamp.com/album/fresh"
	client := &mockDoer{responses: map[string]string{
		url: albumPage(time.Now().AddDate(0, 0, -3)),
	}}

	age, err := AlbumAge(client, url)
	if err != nil {
		t.Fatalf("AlbumAge failed: %v", err)
	}
	if age < 2 || age > 4 {
		t.Errorf("got age %d, want about 3 days", age)
	}
}

func TestAlbumAgeNoDate(t *testing.T) {
	url := "https://artist.bandcamp.com/album/mystery"
	client := &mockDoer{responses: map[string]string{url: "<html>no credits</html>"}}
	if _, err := AlbumAge(client, url); err == nil {
		t.Error("expected error when page has no release date")
	}
}

func TestLabelAlbumsKeepsRecentStopsAtOld(t *testing.T) {
	base := "https://goodlabel.bandcamp.com"
	grid := `<li class="music-grid-item square">
		<a href="/album/new-one"><img></a></li>
		<li class="music-grid-item square"><a href="/album/old-one"><img></a></li>
		<li class="music-grid-item square"><a href="/album/ancient"><img></a></li>`
	client := &mockDoer{responses: map[string]string{
		base + "/music":         grid,
		base + "/album/new-one": albumPage(time.Now().AddDate(0, 0, -2)),
		base + "/album/old-one": albumPage(time.Now().AddDate(0, 0, -30)),
		// never fetched: scan stops at the first stale release
		base + "/album/ancient": albumPage(time.Now().AddDate(-1, 0, 0)),
	}}

	albums, err := LabelAlbums(client, "goodlabel", 7)
	if err != nil {
		t.Fatalf("LabelAlbums failed: %v", err)
	}
	if len(albums) != 1 || albums[0] != base+"/album/new-one" {
		t.Errorf("got %v, want only the recent album", albums)
	}
	for _, url := range client.requests {
		if url == base+"/album/ancient" {
			t.Error("scan did not stop at the first stale release")
		}
	}
}

func TestLabelAlbumsInterleavedExternalRelease(t *testing.T) {
	base := "https://mixedlabel.bandcamp.com"
	ext := "https://ext.bandcamp.com/album/old-ext"
	// a recent in-house album listed before an older externally hosted
	// release; the cutoff scan must walk the grid in page order
	grid := `<li class="music-grid-item square">
		<a href="/album/recent-rel"><img></a></li>
		<li class="music-grid-item square"><a href="` + ext + `"><img></a></li>`
	client := &mockDoer{responses: map[string]string{
		base + "/music":            grid,
		base + "/album/recent-rel": albumPage(time.Now().AddDate(0, 0, -2)),
		ext:                        albumPage(time.Now().AddDate(0, 0, -60)),
	}}

	albums, err := LabelAlbums(client, "mixedlabel", 7)
	if err != nil {
		t.Fatalf("LabelAlbums failed: %v", err)
	}
	if len(albums) != 1 || albums[0] != base+"/album/recent-rel" {
		t.Errorf("got %v, want only the recent album", albums)
	}
}

func TestUserSubscriptions(t *testing.T) {
	client := &mockDoer{responses: map[string]string{
		"https://bandcamp.com/somefan": `<button id="follow-unfollow_4216836" type="button">Follow</button>`,
		"https://bandcamp.com/api/fancollection/1/following_bands": `{
			"followeers": [
				{"url_hints": {"subdomain": " spacey "}},
				{"url_hints": {"subdomain": "goodlabel"}},
				{"url_hints": {"subdomain": ""}}
			]
		}`,
	}}

	labels, err := UserSubscriptions(client, "somefan")
	if err != nil {
		t.Fatalf("UserSubscriptions failed: %v", err)
	}
	if len(labels) != 2 {
		t.Fatalf("got %d labels %v, want 2", len(labels), labels)
	}
	// API order has spacey first; output is sorted
	if labels[0] != "goodlabel" || labels[1] != "spacey" {
		t.Errorf("got %v, want [goodlabel spacey]", labels)
	}
}

func TestUserSubscriptionsNoFanID(t *testing.T) {
	client := &mockDoer{responses: map[string]string{
		"https://bandcamp.com/ghost": `<html>not a fan page</html>`,
	}}
	if _, err := UserSubscriptions(client, "ghost"); err == nil {
		t.Error("expected error when fan id cannot be located")
	}
}

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeFeedList(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFeedListFiltersMarker(t *testing.T) {
	path := writeFeedList(t, `https://example.com/feed.xml "news"
https://www.youtube.com/feeds/videos.xml?channel_id=UC111 "~label" yt_dl
https://www.youtube.com/feeds/videos.xml?channel_id=UC222 yt_dl
`)

	feeds, err := ReadFeedList(path)
	if err != nil {
		t.Fatalf("ReadFeedList failed: %v", err)
	}
	want := []string{
		"https://www.youtube.com/feeds/videos.xml?channel_id=UC111",
		"https://www.youtube.com/feeds/videos.xml?channel_id=UC222",
	}
	if !reflect.DeepEqual(feeds, want) {
		t.Errorf("got %v, want %v", feeds, want)
	}
}

func atomFeedBody(entries ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">` + fmt.Sprint(joinEntries(entries)) + `</feed>`
}

func joinEntries(entries []string) string {
	out := ""
	for _, e := range entries {
		out += e
	}
	return out
}

func atomEntryBody(videoID string, published time.Time) string {
	return fmt.Sprintf(`<entry><id>yt:video:%s</id><published>%s</published></entry>`,
		videoID, published.Format(time.RFC3339))
}

func TestFeedUploadsKeepsRecentEntries(t *testing.T) {
	feedURL := "https://www.youtube.com/feeds/videos.xml?channel_id=UC111"
	path := writeFeedList(t, feedURL+" yt_dl\n")
	client := &mockDoer{responses: map[string]string{
		feedURL: atomFeedBody(
			atomEntryBody("fresh01", time.Now().AddDate(0, 0, -1)),
			atomEntryBody("stale01", time.Now().AddDate(0, 0, -30)),
			atomEntryBody("fresh01", time.Now().AddDate(0, 0, -1)), // duplicate
		),
	}}

	urls, err := FeedUploads(client, path, 7)
	if err != nil {
		t.Fatalf("FeedUploads failed: %v", err)
	}
	want := []string{"https://www.youtube.com/watch?v=fresh01"}
	if !reflect.DeepEqual(urls, want) {
		t.Errorf("got %v, want %v", urls, want)
	}
}

func TestFeedUploadsSkipsBrokenFeed(t *testing.T) {
	goodURL := "https://www.youtube.com/feeds/videos.xml?channel_id=UCgood"
	badURL := "https://www.youtube.com/feeds/videos.xml?channel_id=UCbad"
	path := writeFeedList(t, badURL+" yt_dl\n"+goodURL+" yt_dl\n")
	client := &mockDoer{responses: map[string]string{
		badURL:  `<<< not xml at all`,
		goodURL: atomFeedBody(atomEntryBody("vid42", time.Now())),
	}}

	urls, err := FeedUploads(client, path, 7)
	if err != nil {
		t.Fatalf("FeedUploads failed: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://www.youtube.com/watch?v=vid42" {
		t.Errorf("got %v, want the single good upload", urls)
	}
}

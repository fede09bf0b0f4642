package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/tanq16/cratedl/internal/utils"
	"github.com/wader/goutubedl"
)

// YtdlpResolver resolves and downloads media through yt-dlp via goutubedl.
type YtdlpResolver struct{}

func NewYtdlpResolver() (*YtdlpResolver, error) {
	path, err := EnsureYtdlp()
	if err != nil {
		return nil, fmt.Errorf("error ensuring yt-dlp: %v", err)
	}
	goutubedl.Path = path
	logger := utils.GetLogger("extract")
	logger.Debug().Msgf("Using yt-dlp at %s", path)
	return &YtdlpResolver{}, nil
}

func (r *YtdlpResolver) Resolve(ctx context.Context, url string) (Resolved, error) {
	gdl, err := goutubedl.New(ctx, url, goutubedl.Options{})
	if err != nil {
		return nil, fmt.Errorf("error resolving %s: %v", url, err)
	}
	log.Debug().Str("op", "extract/resolve").Msgf("Resolved %s", url)
	return &ytdlpResolved{result: gdl}, nil
}

type ytdlpResolved struct {
	result goutubedl.Result
}

func (r *ytdlpResolved) Download(ctx context.Context, index int) (io.ReadCloser, error) {
	dl, err := r.result.DownloadWithOptions(ctx, goutubedl.DownloadOptions{
		PlaylistIndex: index, // 1-indexed
	})
	if err != nil {
		return nil, fmt.Errorf("error downloading item %d: %v", index, err)
	}
	return dl, nil
}

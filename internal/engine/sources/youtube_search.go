package sources

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_ytresearch/internal/engine"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoSearchClient searches YouTube and returns video metadata with statistics.
type VideoSearchClient struct {
	service *youtube.Service
}

// NewVideoSearchClient builds a Data API v3 client authenticated with a static
// API key. Extra options (endpoint, HTTP client) are appended after the key.
func NewVideoSearchClient(ctx context.Context, cfg engine.Config, extra ...option.ClientOption) (*VideoSearchClient, error) {
	if err := cfg.RequireYouTube(); err != nil {
		return nil, err
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.YouTubeAPIKey)}
	if cfg.YouTubeEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.YouTubeEndpoint))
	}
	opts = append(opts, extra...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &VideoSearchClient{service: service}, nil
}

// Search finds up to maxResults videos for query and returns their metadata.
// A non-positive maxResults means the default of 3; other values go to the API
// as given, which rejects anything above 50. A search with no hits returns an
// empty, non-nil slice and skips the detail lookup. Any transport or API
// failure is logged and returned as (nil, err); there is no retry at this layer.
func (c *VideoSearchClient) Search(ctx context.Context, query string, maxResults int) ([]engine.VideoRecord, error) {
	engine.IncrYouTubeSearch()
	if maxResults <= 0 {
		maxResults = engine.DefaultMaxResults
	}

	videos, err := c.search(ctx, query, maxResults)
	if err != nil {
		engine.IncrYouTubeSearchErr()
		logSearchError(query, err)
		return nil, err
	}
	return videos, nil
}

func (c *VideoSearchClient) search(ctx context.Context, query string, maxResults int) ([]engine.VideoRecord, error) {
	searchResp, err := c.service.Search.List([]string{"id", "snippet"}).
		Q(query).
		MaxResults(int64(maxResults)).
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	ids := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	if len(ids) == 0 {
		slog.Info("no videos found for the query", slog.String("query", query))
		return []engine.VideoRecord{}, nil
	}

	videoResp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(strings.Join(ids, ",")).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	videos := make([]engine.VideoRecord, 0, len(videoResp.Items))
	for _, item := range videoResp.Items {
		videos = append(videos, toVideoRecord(item))
	}
	return videos, nil
}

// toVideoRecord maps a videos.list item. The API omits disabled counters, so
// missing statistics stay zero.
func toVideoRecord(item *youtube.Video) engine.VideoRecord {
	v := engine.VideoRecord{
		VideoID:  item.Id,
		VideoURL: WatchURL(item.Id),
	}
	if s := item.Snippet; s != nil {
		v.Title = s.Title
		v.Description = s.Description
		v.ChannelTitle = s.ChannelTitle
		v.PublishedAt = s.PublishedAt
	}
	if st := item.Statistics; st != nil {
		v.ViewCount = st.ViewCount
		v.LikeCount = st.LikeCount
		v.CommentCount = st.CommentCount
	}
	return v
}

func logSearchError(query string, err error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		slog.Error("youtube API HTTP error",
			slog.String("query", query),
			slog.Int("status", apiErr.Code),
			slog.String("message", apiErr.Message))
		return
	}
	slog.Error("youtube search failed", slog.String("query", query), slog.Any("error", err))
}

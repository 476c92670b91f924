package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrArticleNotFound is returned when no active article has the slug
var ErrArticleNotFound = errors.New("article not found")

// MaxNewsLimit caps the limit query parameter
const MaxNewsLimit = 100

// ContentService serves the published news and destination collections
type ContentService struct {
	store  database.Store
	cache  Cache
	logger *logrus.Logger
}

// NewContentService creates a new content service. A nil cache disables caching.
func NewContentService(store database.Store, cache Cache, logger *logrus.Logger) *ContentService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &ContentService{store: store, cache: cache, logger: logger}
}

// ListNews returns active articles ordered by sort_order, newest first within
// the same sort_order
func (s *ContentService) ListNews(ctx context.Context, filter models.NewsFilter) ([]models.News, error) {
	if filter.Limit < 0 {
		filter.Limit = 0
	}
	if filter.Limit > MaxNewsLimit {
		filter.Limit = MaxNewsLimit
	}

	key := fmt.Sprintf("news:list:%t:%s:%d", filter.FeaturedOnly, filter.Category, filter.Limit)
	var news []models.News
	if s.cached(ctx, key, &news) {
		return news, nil
	}

	q := database.Query{
		Table:   "news",
		Filters: []database.Filter{database.Eq("is_active", true)},
		OrderBy: []database.Order{database.Asc("sort_order"), database.Desc("published_at")},
		Limit:   filter.Limit,
	}
	if filter.FeaturedOnly {
		q.Filters = append(q.Filters, database.Eq("is_featured", true))
	}
	if filter.Category != "" {
		q.Filters = append(q.Filters, database.Eq("category", filter.Category))
	}

	news = []models.News{}
	if err := s.store.Select(ctx, &news, q); err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}

	s.remember(ctx, key, news)
	return news, nil
}

// GetNewsBySlug returns one active article. The slug is normalised first so
// "/news/Group-Travel-Tips " and "group-travel-tips" resolve alike.
func (s *ContentService) GetNewsBySlug(ctx context.Context, raw string) (*models.News, error) {
	normalized := NormalizeSlug(raw)
	if normalized == "" {
		return nil, ErrArticleNotFound
	}

	key := "news:slug:" + normalized
	var article models.News
	if s.cached(ctx, key, &article) {
		return &article, nil
	}

	err := s.store.SelectOne(ctx, &article, database.Query{
		Table: "news",
		Filters: []database.Filter{
			database.Eq("is_active", true),
			database.Eq("slug", normalized),
		},
	})
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get news %s: %w", normalized, err)
	}

	s.remember(ctx, key, article)
	return &article, nil
}

// ListDestinations returns the active destination cards by sort_order
func (s *ContentService) ListDestinations(ctx context.Context) ([]models.Destination, error) {
	const key = "destinations"
	var destinations []models.Destination
	if s.cached(ctx, key, &destinations) {
		return destinations, nil
	}

	destinations = []models.Destination{}
	err := s.store.Select(ctx, &destinations, database.Query{
		Table:   "destinations",
		Filters: []database.Filter{database.Eq("is_active", true)},
		OrderBy: []database.Order{database.Asc("sort_order")},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	s.remember(ctx, key, destinations)
	return destinations, nil
}

// NormalizeSlug lower-cases and hyphenates a user supplied slug
func NormalizeSlug(raw string) string {
	return slug.Make(strings.TrimSpace(raw))
}

// cached and remember treat the cache as best effort
func (s *ContentService) cached(ctx context.Context, key string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache read failed")
		return false
	}
	return hit
}

func (s *ContentService) remember(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}

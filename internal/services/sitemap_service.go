package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pfjetdev/pfgrouptravel/internal/database"
	"github.com/pfjetdev/pfgrouptravel/internal/models"
	"github.com/sirupsen/logrus"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type staticPage struct {
	path     string
	freq     models.ChangeFrequency
	priority string
}

var staticPages = []staticPage{
	{"", models.ChangeWeekly, "1.0"},
	{"/contact", models.ChangeMonthly, "0.8"},
	{"/practical-information", models.ChangeMonthly, "0.8"},
	{"/multi-city", models.ChangeMonthly, "0.9"},
	{"/news", models.ChangeWeekly, "0.8"},
	{"/b2b", models.ChangeMonthly, "0.8"},
}

type articleStamp struct {
	Slug      string    `db:"slug"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SitemapService renders sitemap.xml from the static pages and active articles
type SitemapService struct {
	store   database.Store
	siteURL string
	logger  *logrus.Logger
	now     func() time.Time

	mu      sync.RWMutex
	doc     []byte
	builtAt time.Time
}

// NewSitemapService creates a new sitemap service for siteURL (no trailing slash)
func NewSitemapService(store database.Store, siteURL string, logger *logrus.Logger) *SitemapService {
	return &SitemapService{
		store:   store,
		siteURL: strings.TrimRight(siteURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// Rebuild queries the articles and replaces the cached document
func (s *SitemapService) Rebuild(ctx context.Context) error {
	var articles []articleStamp
	err := s.store.Select(ctx, &articles, database.Query{
		Table:   "news",
		Columns: []string{"slug", "updated_at"},
		Filters: []database.Filter{database.Eq("is_active", true)},
		OrderBy: []database.Order{database.Asc("sort_order"), database.Desc("published_at")},
	})
	if err != nil {
		return fmt.Errorf("failed to load articles for sitemap: %w", err)
	}

	today := s.now().UTC().Format("2006-01-02")
	set := models.URLSet{Xmlns: sitemapNamespace}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, models.SitemapURL{
			Loc:        s.siteURL + p.path,
			LastMod:    today,
			ChangeFreq: p.freq,
			Priority:   p.priority,
		})
	}
	for _, a := range articles {
		set.URLs = append(set.URLs, models.SitemapURL{
			Loc:        s.siteURL + "/news/" + a.Slug,
			LastMod:    a.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: models.ChangeWeekly,
			Priority:   "0.7",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sitemap: %w", err)
	}
	doc := append([]byte(xml.Header), body...)

	s.mu.Lock()
	s.doc = doc
	s.builtAt = s.now()
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"urls":     len(set.URLs),
		"articles": len(articles),
	}).Info("Sitemap rebuilt")
	return nil
}

// Document returns the last built sitemap, building it on first use
func (s *SitemapService) Document(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	if doc != nil {
		return doc, nil
	}

	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc, nil
}

// BuiltAt reports when the document was last rebuilt
func (s *SitemapService) BuiltAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builtAt
}

// Robots renders robots.txt pointing crawlers at the sitemap
func (s *SitemapService) Robots() string {
	return "User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /admin/\n\nSitemap: " + s.siteURL + "/sitemap.xml\n"
}

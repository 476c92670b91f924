package models

import (
	"encoding/xml"
	"time"
)

// News is a published article
type News struct {
	ID           string    `json:"id" db:"id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
	Title        string    `json:"title" db:"title"`
	Slug         string    `json:"slug" db:"slug"`
	Excerpt      string    `json:"excerpt" db:"excerpt"`
	Content      string    `json:"content" db:"content"`
	ImageURL     string    `json:"image_url" db:"image_url"`
	Category     string    `json:"category" db:"category"`
	ReadTime     string    `json:"read_time" db:"read_time"`
	AuthorName   string    `json:"author_name" db:"author_name"`
	AuthorRole   string    `json:"author_role" db:"author_role"`
	AuthorAvatar *string   `json:"author_avatar" db:"author_avatar"`
	PublishedAt  time.Time `json:"published_at" db:"published_at"`
	IsFeatured   bool      `json:"is_featured" db:"is_featured"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	SortOrder    int       `json:"sort_order" db:"sort_order"`
}

// NewsFilter narrows a news listing
type NewsFilter struct {
	FeaturedOnly bool
	Category     string
	Limit        int
}

// Destination is a promoted destination card
type Destination struct {
	ID        string    `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	City      string    `json:"city" db:"city"`
	Country   string    `json:"country" db:"country"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	Price     int       `json:"price" db:"price"`
	SortOrder int       `json:"sort_order" db:"sort_order"`
	IsActive  bool      `json:"is_active" db:"is_active"`
}

// ChangeFrequency values used in the sitemap
type ChangeFrequency string

const (
	ChangeDaily   ChangeFrequency = "daily"
	ChangeWeekly  ChangeFrequency = "weekly"
	ChangeMonthly ChangeFrequency = "monthly"
)

// SitemapURL is one <url> entry
type SitemapURL struct {
	Loc        string          `xml:"loc"`
	LastMod    string          `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFrequency `xml:"changefreq,omitempty"`
	Priority   string          `xml:"priority,omitempty"`
}

// URLSet is the sitemap document root
type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

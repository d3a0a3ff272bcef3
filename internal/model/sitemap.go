package model

import (
	"encoding/xml"
	"time"
)

// SitemapIndex mirrors the <urlset> document served at post-sitemap1.xml.
type SitemapIndex struct {
	XMLName xml.Name     `xml:"urlset"`
	URLs    []SitemapURL `xml:"url"`
}

type SitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

// SitemapEntry is a parsed sitemap row.
type SitemapEntry struct {
	URL          string
	LastModified time.Time
}

// Package site publishes the static showcase: an index page listing
// every generated script, an RSS feed with video enclosures, and a
// sitemap for crawlers.
package site

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eduncan911/podcast"

	"shortform-pipeline/config"
	"shortform-pipeline/types"
)

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; background: #0d1117; color: #f0f6fc; }
a { color: #58a6ff; }
.card { border: 1px solid #30363d; border-radius: 8px; padding: 1rem; margin: 1rem 0; }
.meta { color: #7d8590; font-size: 0.85rem; }
.tag { background: #21262d; border-radius: 4px; padding: 2px 8px; margin-right: 4px; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{len .Entries}} scripts · updated {{.Updated}}</p>
{{range .Entries}}
<div class="card">
<h2>{{.Hook}}</h2>
<p>{{.Caption}}</p>
<p class="meta"><span class="tag">{{.Format}}</span> {{.DurationSec}}s · {{.CreatedAt}}</p>
{{if .VideoHref}}<p><a href="{{.VideoHref}}">watch</a></p>{{end}}
</div>
{{end}}
{{if .Posts}}
<h2>Articles</h2>
{{range .Posts}}
<div class="card"><a href="{{.Href}}">{{.Title}}</a></div>
{{end}}
{{end}}
</body>
</html>
`

type indexEntry struct {
	Hook        string
	Caption     string
	Format      string
	DurationSec int
	CreatedAt   string
	VideoHref   string
	Slug        string
}

type postEntry struct {
	Title string
	Href  string
}

type indexData struct {
	Title   string
	Updated string
	Entries []indexEntry
	Posts   []postEntry
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type sitemapSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Publisher rebuilds the static site from the scripts and videos on
// disk.
type Publisher struct {
	cfg      config.SiteConfig
	scripts  string
	videos   string
	siteDir  string
	template *template.Template
	now      func() time.Time
}

func NewPublisher(cfg config.SiteConfig, scriptsDir, videosDir, siteDir string) *Publisher {
	return &Publisher{
		cfg:      cfg,
		scripts:  scriptsDir,
		videos:   videosDir,
		siteDir:  siteDir,
		template: template.Must(template.New("index").Parse(indexTemplate)),
		now:      time.Now,
	}
}

// Rebuild regenerates index.html, feed.xml and sitemap.xml from
// whatever scripts currently exist. Safe to call on every run.
func (p *Publisher) Rebuild() error {
	if err := os.MkdirAll(p.siteDir, 0755); err != nil {
		return fmt.Errorf("site dir: %w", err)
	}

	scripts := p.loadScripts()
	posts := p.loadPosts()
	if err := p.writeIndex(scripts, posts); err != nil {
		return err
	}
	if err := p.writeFeed(scripts); err != nil {
		return err
	}
	if err := p.writeSitemap(scripts, posts); err != nil {
		return err
	}
	log.Printf("[site] rebuilt with %d scripts, %d articles", len(scripts), len(posts))
	return nil
}

// loadPosts lists published long-form articles from the posts
// directory. The title comes from the first level-one heading.
func (p *Publisher) loadPosts() []postEntry {
	matches, err := filepath.Glob(filepath.Join(p.siteDir, "posts", "*.md"))
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	var posts []postEntry
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		title := strings.TrimSuffix(filepath.Base(path), ".md")
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, "# ") {
				title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
				break
			}
		}
		posts = append(posts, postEntry{Title: title, Href: "posts/" + filepath.Base(path)})
	}
	return posts
}

// loadScripts reads every script JSON, newest first. Unreadable files
// are skipped so one bad artifact can't block publishing.
func (p *Publisher) loadScripts() []*types.Script {
	matches, err := filepath.Glob(filepath.Join(p.scripts, "*.json"))
	if err != nil {
		return nil
	}
	var scripts []*types.Script
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var s types.Script
		if err := json.Unmarshal(data, &s); err != nil {
			log.Printf("[site] skipping unreadable script %s: %v", filepath.Base(path), err)
			continue
		}
		scripts = append(scripts, &s)
	}
	sort.Slice(scripts, func(i, j int) bool {
		return scripts[i].CreatedAt > scripts[j].CreatedAt
	})
	return scripts
}

func (p *Publisher) videoFor(s *types.Script) string {
	name := fmt.Sprintf("%s-%s.mp4", types.Slugify(s.Topic), s.FormatKey)
	if _, err := os.Stat(filepath.Join(p.videos, name)); err != nil {
		return ""
	}
	return name
}

func (p *Publisher) writeIndex(scripts []*types.Script, posts []postEntry) error {
	data := indexData{
		Title:   p.cfg.Title,
		Updated: p.now().UTC().Format("2006-01-02"),
		Posts:   posts,
	}
	for _, s := range scripts {
		entry := indexEntry{
			Hook:        s.Hook,
			Caption:     s.Caption,
			Format:      s.FormatKey,
			DurationSec: s.DurationSec,
			CreatedAt:   s.CreatedAt,
			Slug:        types.Slugify(s.Topic),
		}
		if name := p.videoFor(s); name != "" {
			entry.VideoHref = "videos/" + name
		}
		data.Entries = append(data.Entries, entry)
	}

	out, err := os.Create(filepath.Join(p.siteDir, "index.html"))
	if err != nil {
		return fmt.Errorf("index.html: %w", err)
	}
	defer out.Close()
	if err := p.template.Execute(out, data); err != nil {
		return fmt.Errorf("render index: %w", err)
	}
	return nil
}

// writeFeed emits an RSS feed; scripts with a finished video get an MP4
// enclosure so feed readers can play them inline.
func (p *Publisher) writeFeed(scripts []*types.Script) error {
	now := p.now().UTC()
	feed := podcast.New(p.cfg.Title, p.cfg.BaseURL, "Generated short-form video scripts", &now, &now)

	for _, s := range scripts {
		created, err := time.Parse(time.RFC3339, s.CreatedAt)
		if err != nil {
			created = now
		}
		item := podcast.Item{
			Title:       s.Hook,
			Description: s.Caption + " " + strings.Join(s.Hashtags, " "),
			Link:        p.cfg.BaseURL + "/#" + types.Slugify(s.Topic),
			PubDate:     &created,
		}
		if name := p.videoFor(s); name != "" {
			size := int64(0)
			if info, err := os.Stat(filepath.Join(p.videos, name)); err == nil {
				size = info.Size()
			}
			item.AddEnclosure(p.cfg.BaseURL+"/videos/"+name, podcast.MP4, size)
		}
		if _, err := feed.AddItem(item); err != nil {
			log.Printf("[site] feed item %s: %v", s.ID, err)
		}
	}

	out, err := os.Create(filepath.Join(p.siteDir, "feed.xml"))
	if err != nil {
		return fmt.Errorf("feed.xml: %w", err)
	}
	defer out.Close()
	if err := feed.Encode(out); err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	return nil
}

func (p *Publisher) writeSitemap(scripts []*types.Script, posts []postEntry) error {
	set := sitemapSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{
			{Loc: p.cfg.BaseURL + "/", LastMod: p.now().UTC().Format("2006-01-02")},
		},
	}
	for _, s := range scripts {
		lastMod := s.CreatedAt
		if t, err := time.Parse(time.RFC3339, s.CreatedAt); err == nil {
			lastMod = t.Format("2006-01-02")
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     p.cfg.BaseURL + "/#" + types.Slugify(s.Topic),
			LastMod: lastMod,
		})
	}
	for _, post := range posts {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     p.cfg.BaseURL + "/" + post.Href,
			LastMod: p.now().UTC().Format("2006-01-02"),
		})
	}

	data, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sitemap: %w", err)
	}
	payload := []byte(xml.Header + string(data) + "\n")
	if err := os.WriteFile(filepath.Join(p.siteDir, "sitemap.xml"), payload, 0644); err != nil {
		return fmt.Errorf("sitemap.xml: %w", err)
	}
	return nil
}

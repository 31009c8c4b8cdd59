package main

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"time"

	"linkhub/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// views maps the names handlers render to files under views/.
var views = []string{
	"auth/login.html",
	"auth/register.html",
	"story/list.html",
	"story/detail.html",
	"story/create.html",
	"subreddit/list.html",
	"user/public.html",
	"error.html",
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files: layouts first so the page is rendered through base.html
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := templateFuncs(time.Now)
	for _, name := range views {
		r.AddFromFilesFuncs(name, funcMap, assemble(filepath.Join(templatesDir, "views", name))...)
	}
	return r
}

func templateFuncs(now func() time.Time) template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t time.Time) string {
			return timeAgo(t, now())
		},
		"markdown": utils.RenderMarkdown,
		"host": func(raw string) string {
			u, err := url.Parse(raw)
			if err != nil {
				return ""
			}
			return u.Hostname()
		},
		"hotness": func(h float64) string {
			return fmt.Sprintf("%.2f", h)
		},
	}
}

func timeAgo(t, now time.Time) string {
	seconds := int(now.Sub(t).Seconds())
	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("1 %s ago", unit)
		}
		return fmt.Sprintf("%d %ss ago", n, unit)
	}

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return plural(seconds/60, "minute")
	case seconds < 86400:
		return plural(seconds/3600, "hour")
	case seconds < 2592000:
		return plural(seconds/86400, "day")
	case seconds < 31536000:
		return plural(seconds/2592000, "month")
	}
	return plural(seconds/31536000, "year")
}

// Package urlcanon produces stable URL keys so the same posting seen
// twice (with different tracking junk) dedupes to one row.
package urlcanon

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// dropParams are tracking params ignored for key stability.
var dropParams = map[string]bool{
	// LinkedIn
	"trk":               true,
	"trackingId":        true,
	"refId":             true,
	"eBP":               true,
	"alternateChannel":  true,
	"lipi":              true,
	"originalSubdomain": true,
	// Generic marketing
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"gclid":        true,
	"fbclid":       true,
}

// Tanitjobs short URLs (/job/<id>/) redirect to long slug URLs
// (/job/<id>/<slug>/); both canonicalize to /job/<id>.
var tanitJobPath = regexp.MustCompile(`^/job/(\d+)(?:/.*)?$`)

// Canonicalize returns a stable form of a posting URL: lowercase
// scheme/host, no fragment, tracking params dropped, remaining query
// params sorted, trailing slash stripped unless root.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	if strings.Contains(u.Host, "tanitjobs.com") {
		if m := tanitJobPath.FindStringSubmatch(u.Path); m != nil {
			u.Path = "/job/" + m[1]
		}
	}
	if u.Path != "/" {
		u.Path = strings.TrimRight(u.Path, "/")
	}

	kept := url.Values{}
	for k, vs := range u.Query() {
		if dropParams[k] {
			continue
		}
		for _, v := range vs {
			kept.Add(k, v)
		}
	}
	u.RawQuery = encodeSorted(kept)

	return u.String()
}

func encodeSorted(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		vs := v[k]
		sort.Strings(vs)
		for _, val := range vs {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}

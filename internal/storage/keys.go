package storage

import (
	"net/url"
	"strings"
)

// KeyFromURL maps a public asset URL back to an object key in the given
// bucket. It accepts any path shape that contains the bucket as a segment
// ("/event-assets/posters/x.png", "/storage/v1/object/public/event-assets/x.png")
// and takes everything after it. URLs that never mention the bucket —
// stock placeholders, foreign hosts — yield ok=false. The looseness is
// deliberate: a broken-but-plausible reference still counts as a reference,
// so cleanup errs toward keeping objects.
func KeyFromURL(bucket, rawURL string) (string, bool) {
	if bucket == "" || rawURL == "" {
		return "", false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != bucket || i == len(segments)-1 {
			continue
		}
		key := strings.Join(segments[i+1:], "/")
		if key != "" {
			return key, true
		}
	}

	return "", false
}

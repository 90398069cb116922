package activity

import (
	"strings"
	"sync"
)

// DefaultDenylist holds the distraction keywords matched against incoming
// samples. The policy is deliberately permissive: anything not listed here
// counts as work, since over-capturing and pruning later beats losing data.
var DefaultDenylist = []string{
	"youtube",
	"netflix",
	"twitch",
	"tiktok",
	"instagram",
	"facebook",
	"twitter",
	"reddit",
	"9gag",
	"snapchat",
	"whatsapp",
	"telegram",
	"messenger",
	"discord",
	"hulu",
	"disney+",
	"prime video",
	"crunchyroll",
	"steam",
	"epic games",
	"minecraft",
	"fortnite",
	"league of legends",
}

// Classifier decides whether a sample is work activity or a distraction.
// The denylist can be swapped at runtime (config hot-reload), so access is
// guarded.
type Classifier struct {
	mu       sync.RWMutex
	denylist []string
}

// NewClassifier returns a Classifier using the given denylist.
// A nil denylist selects DefaultDenylist.
func NewClassifier(denylist []string) *Classifier {
	if denylist == nil {
		denylist = DefaultDenylist
	}
	c := &Classifier{}
	c.SetDenylist(denylist)
	return c
}

// SetDenylist replaces the denylist. Terms are lower-cased once here so
// Relevant only lowers the sample text.
func (c *Classifier) SetDenylist(terms []string) {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	c.mu.Lock()
	c.denylist = lowered
	c.mu.Unlock()
}

// Relevant reports whether the app/title pair looks like work activity.
// Matching is a case-insensitive substring check against the denylist;
// unknown applications are treated as relevant.
func (c *Classifier) Relevant(app, title string) bool {
	haystack := strings.ToLower(app + " " + title)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, term := range c.denylist {
		if strings.Contains(haystack, term) {
			return false
		}
	}
	return true
}

package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/andrebq/hackademy/catalog"
	"github.com/cespare/xxhash/v2"
)

type (
	// CachedSource keeps recently fetched question sets in memory so the
	// quiz page does not hit the catalog on every render. Lookups by id go
	// straight to the backing source, grading always sees live data.
	CachedSource struct {
		source QuestionSource
		sets   *bigcache.BigCache
	}
)

// NewCachedSource wraps source with a question-set cache holding entries
// for the given lifetime.
func NewCachedSource(source QuestionSource, lifetime time.Duration) *CachedSource {
	sets, _ := bigcache.NewBigCache(bigcache.DefaultConfig(lifetime))
	return &CachedSource{source: source, sets: sets}
}

func (c *CachedSource) QuestionByID(ctx context.Context, id string) (catalog.Question, error) {
	return c.source.QuestionByID(ctx, id)
}

func (c *CachedSource) QuestionsByFilter(ctx context.Context, categoryID, subcategoryID string) ([]catalog.Question, error) {
	key := filterKey(categoryID, subcategoryID)
	if buf, err := c.sets.Get(key); err == nil {
		var out []catalog.Question
		if json.Unmarshal(buf, &out) == nil {
			return out, nil
		}
		// an undecodable entry is treated as a miss and overwritten below
	}
	out, err := c.source.QuestionsByFilter(ctx, categoryID, subcategoryID)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("unable to encode question set for cache, cause %w", err)
	}
	c.sets.Set(key, buf)
	return out, nil
}

func filterKey(categoryID, subcategoryID string) string {
	h := xxhash.New()
	h.WriteString(categoryID)
	h.Write([]byte{0})
	h.WriteString(subcategoryID)
	return strconv.FormatUint(h.Sum64(), 16)
}

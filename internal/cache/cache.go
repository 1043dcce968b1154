// Package cache memoizes conversions in a fixed-size LRU. Servers see the
// same short strings over and over, and a Katakana conversion is several
// passes over the text.
package cache

import (
	"fmt"

	"github.com/ainutools/ainconv/internal/metrics"
	"github.com/ainutools/ainconv/internal/transliteration"
	lru "github.com/hashicorp/golang-lru/v2"
)

type key struct {
	text     string
	from, to transliteration.Script
}

type result struct {
	text string
	from transliteration.Script
}

// Converter is safe for concurrent use.
type Converter struct {
	entries *lru.Cache[key, result]
}

func New(size int) (*Converter, error) {
	entries, err := lru.New[key, result](size)
	if err != nil {
		return nil, fmt.Errorf("creating conversion cache: %w", err)
	}
	return &Converter{entries: entries}, nil
}

// Convert converts text from one script to another. A from of Unknown
// means detect it. The returned script is the source the conversion used.
func (c *Converter) Convert(text string, from, to transliteration.Script) (string, transliteration.Script) {
	k := key{text: text, from: from, to: to}
	if r, ok := c.entries.Get(k); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		metrics.ConversionsTotal.WithLabelValues(r.from.String(), to.String()).Inc()
		return r.text, r.from
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	var r result
	if from == transliteration.Unknown {
		r.text, r.from = transliteration.Convert(text, to)
	} else {
		r.text, r.from = transliteration.ConvertFrom(text, from, to), from
	}
	c.entries.Add(k, r)
	metrics.ConversionsTotal.WithLabelValues(r.from.String(), to.String()).Inc()
	return r.text, r.from
}

func (c *Converter) Detect(text string) transliteration.Script {
	return transliteration.Detect(text)
}

// Syllabify decodes Cyrillic and Katakana text to Latin before dividing it
// into syllables.
func (c *Converter) Syllabify(text string) [][]string {
	switch from := transliteration.Detect(text); from {
	case transliteration.Cyrl, transliteration.Kana:
		text, _ = c.Convert(text, from, transliteration.Latn)
	}
	return transliteration.Syllabify(text)
}

// Len reports how many conversions are cached.
func (c *Converter) Len() int {
	return c.entries.Len()
}

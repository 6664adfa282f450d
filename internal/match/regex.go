// Package match wraps coregex for column selection and literal validation.
package match

import (
	"sync"

	"github.com/coregx/coregex"
)

// Regex is a compiled pattern.
type Regex struct {
	re *coregex.Regexp
}

// Compile creates a new Regex with leftmost-first semantics.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{re: re}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// Cache provides thread-safe compiled regex caching with FIFO eviction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*Regex
	order   []string // FIFO order for eviction
	maxSize int
}

// NewCache creates a cache holding at most maxSize patterns.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 32
	}
	return &Cache{
		entries: make(map[string]*Regex, maxSize),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns a compiled regex, compiling and caching if needed.
func (c *Cache) Get(pattern string) (*Regex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.entries[pattern]; ok {
		return re, nil
	}

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.entries[pattern] = re
	c.order = append(c.order, pattern)
	for len(c.order) > c.maxSize {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	return re, nil
}

// Len returns the number of cached regexes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package rule

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"

	"github.com/hakastein/masktext/mask"
	"github.com/hakastein/masktext/pattern"
)

const (
	DefaultMaskChar  = "*"
	DefaultCacheSize = 1024
)

type options struct {
	maskChar  string
	cacheSize int
	patterns  *pattern.Cache
}

// Option configures a Set.
type Option func(*options)

// WithMaskChar sets the mask string for rules that do not set their own.
func WithMaskChar(maskChar string) Option {
	return func(o *options) {
		o.maskChar = maskChar
	}
}

// WithCacheSize sets how many field lookups are remembered.
func WithCacheSize(size int) Option {
	return func(o *options) {
		o.cacheSize = size
	}
}

// WithPatternCache shares compiled patterns between sets.
func WithPatternCache(c *pattern.Cache) Option {
	return func(o *options) {
		o.patterns = c
	}
}

// Set matches field names against rules, first match wins.
// It is safe for concurrent use.
type Set struct {
	rules []compiled
	cache *lru.Cache
	mu    sync.RWMutex
}

// New validates rules and compiles their patterns.
func New(rules []Rule, opts ...Option) (*Set, error) {
	o := options{
		maskChar:  DefaultMaskChar,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	cache, err := lru.New(o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create field cache: %w", err)
	}

	if o.patterns == nil {
		o.patterns, err = pattern.NewCache(max(len(rules), 1))
		if err != nil {
			return nil, err
		}
	}

	set := &Set{
		rules: make([]compiled, 0, len(rules)),
		cache: cache,
	}

	for _, r := range rules {
		if r.Name == "" {
			r.Name = r.Fields
		}
		if err := r.validate(); err != nil {
			return nil, err
		}
		if r.MaskChar == "" {
			r.MaskChar = o.maskChar
		}

		c := compiled{Rule: r}
		if r.Method == MethodRegex {
			dialect, err := pattern.ParseDialect(r.Dialect)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrInvalidRule, r.Name, err)
			}
			c.pattern, err = o.patterns.Get(r.Pattern, dialect)
			if err != nil {
				return nil, fmt.Errorf("%w %s: %w", ErrInvalidRule, r.Name, err)
			}
		}

		set.rules = append(set.rules, c)
	}

	log.Debug().
		Int("rules", len(set.rules)).
		Int("cache_size", o.cacheSize).
		Msg("mask rule set created")

	return set, nil
}

// hasWildcard checks if the pattern contains any wildcard characters.
func hasWildcard(fields string) bool {
	return strings.ContainsAny(fields, "*?[{")
}

func validPattern(fields string) bool {
	return doublestar.ValidatePattern(fields)
}

// matches checks if field is selected by the fields pattern. Plain patterns
// also match as the last dot-separated segment, so "email" selects
// "user.email".
func matches(field, fields string) bool {
	if hasWildcard(fields) {
		match, err := doublestar.Match(fields, field)
		return err == nil && match
	}
	return field == fields || strings.HasSuffix(field, "."+fields)
}

// index returns the position of the first rule matching field, or -1.
func (s *Set) index(field string) int {
	if len(s.rules) == 0 {
		return -1
	}

	s.mu.RLock()
	if cached, found := s.cache.Get(field); found {
		s.mu.RUnlock()
		return cached.(int)
	}
	s.mu.RUnlock()

	idx := -1
	for i, r := range s.rules {
		if matches(field, r.Fields) {
			idx = i
			break
		}
	}

	s.mu.Lock()
	s.cache.Add(field, idx)
	s.mu.Unlock()

	return idx
}

// Match returns the first rule selecting field.
func (s *Set) Match(field string) (Rule, bool) {
	idx := s.index(field)
	if idx < 0 {
		return Rule{}, false
	}
	return s.rules[idx].Rule, true
}

// Kind builds the masking request for value under the rule selecting field.
func (s *Set) Kind(field, value string) (mask.Kind, bool) {
	idx := s.index(field)
	if idx < 0 {
		return nil, false
	}
	return s.rules[idx].kind(value), true
}

// Mask masks value with the rule selecting field. Values of fields no rule
// selects are returned unchanged.
func (s *Set) Mask(field, value string) string {
	k, ok := s.Kind(field, value)
	if !ok {
		log.Trace().Str("field", field).Msg("no mask rule for field")
		return value
	}
	return mask.Apply(k)
}

// Len returns the number of rules in the set.
func (s *Set) Len() int {
	return len(s.rules)
}

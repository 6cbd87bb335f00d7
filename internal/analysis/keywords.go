package analysis

import (
	"math"
	"strings"
	"sync"
)

const keywordTrendPlaceholder = "Crescimento Estável"

// highValueNiches carry materially higher CPCs in the Brazilian ads market.
var highValueNiches = []string{"finanças", "financas", "investimento", "marketing", "saúde", "saude", "educação", "educacao"}

// KeywordCache memoizes per-niche keyword estimates. It is safe for
// concurrent use and bounded: once full, the oldest niche entry is evicted.
type KeywordCache struct {
	mu    sync.Mutex
	max   int
	order []string
	data  map[string]map[string]KeywordRecord
}

func NewKeywordCache(max int) *KeywordCache {
	if max <= 0 {
		max = 100
	}
	return &KeywordCache{max: max, data: map[string]map[string]KeywordRecord{}}
}

func (c *KeywordCache) get(key string) (map[string]KeywordRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *KeywordCache) put(key string, v map[string]KeywordRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		c.data[key] = v
		return
	}
	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.order = append(c.order, key)
	c.data[key] = v
}

func (c *KeywordCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

// KeywordEstimator scores candidate keywords with deterministic heuristics.
// It never fails: any input resolves to numeric defaults.
type KeywordEstimator struct {
	cache *KeywordCache
}

func NewKeywordEstimator(cache *KeywordCache) *KeywordEstimator {
	if cache == nil {
		cache = NewKeywordCache(100)
	}
	return &KeywordEstimator{cache: cache}
}

// Estimate returns one record per keyword. Pure and deterministic, so
// identical input always yields identical output.
func (e *KeywordEstimator) Estimate(keywords []string) map[string]KeywordRecord {
	out := make(map[string]KeywordRecord, len(keywords))
	for _, kw := range keywords {
		out[kw] = estimateKeyword(kw)
	}
	return out
}

// EstimateNiche derives the candidate keyword list for a niche and scores it,
// memoized by (niche, region).
func (e *KeywordEstimator) EstimateNiche(niche, region string) map[string]KeywordRecord {
	key := strings.ToLower(strings.TrimSpace(niche)) + "|" + region
	if cached, ok := e.cache.get(key); ok {
		return cached
	}
	res := e.Estimate(KeywordsForNiche(niche))
	e.cache.put(key, res)
	return res
}

// KeywordsForNiche is the fixed candidate list: the niche itself plus seven
// prefix/suffix variants.
func KeywordsForNiche(niche string) []string {
	return []string{
		niche,
		"como " + niche,
		niche + " curso",
		niche + " online",
		"aprender " + niche,
		niche + " para iniciantes",
		niche + " avançado",
		niche + " passo a passo",
	}
}

func estimateKeyword(keyword string) KeywordRecord {
	words := len(strings.Fields(keyword))
	return KeywordRecord{
		Volume:     estimateVolume(words),
		Difficulty: estimateDifficulty(words),
		CPC:        estimateCPC(keyword, words),
		Trend:      keywordTrendPlaceholder,
	}
}

func estimateVolume(words int) int {
	v := words * 10000
	if v > 50000 {
		return 50000
	}
	return v
}

func estimateDifficulty(words int) KeywordDifficulty {
	switch {
	case words <= 2:
		return DifficultyHigh
	case words == 3:
		return DifficultyMedium
	default:
		return DifficultyLow
	}
}

func estimateCPC(keyword string, words int) float64 {
	lower := strings.ToLower(keyword)
	base, perWord := 1.20, 0.30
	for _, niche := range highValueNiches {
		if strings.Contains(lower, niche) {
			base, perWord = 2.50, 0.50
			break
		}
	}
	return math.Round((base+float64(words)*perWord)*100) / 100
}

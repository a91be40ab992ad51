package calculation

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rgehrsitz/firbgo/internal/domain"
)

// Calculator is anything that can produce a fee breakdown
type Calculator interface {
	CalculateAllFees(d domain.PropertyDescriptor) (domain.FeeBreakdown, error)
	FinancialYear() string
}

// CachedEngine memoises breakdowns by descriptor key. Results are pure
// functions of the descriptor, so entries only expire to bound memory.
type CachedEngine struct {
	engine *FeeEngine
	cache  *cache.Cache
}

// NewCachedEngine wraps engine with a TTL cache. A non-positive ttl never expires.
func NewCachedEngine(engine *FeeEngine, ttl time.Duration) *CachedEngine {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &CachedEngine{
		engine: engine,
		cache:  cache.New(ttl, 2*ttlOrDefault(ttl)),
	}
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == cache.NoExpiration {
		return 10 * time.Minute
	}
	return ttl
}

// CalculateAllFees returns a cached breakdown or computes and stores one.
// Validation errors are never cached.
func (ce *CachedEngine) CalculateAllFees(d domain.PropertyDescriptor) (domain.FeeBreakdown, error) {
	key := ce.engine.FinancialYear() + "|" + d.Key()
	if v, ok := ce.cache.Get(key); ok {
		return v.(domain.FeeBreakdown), nil
	}
	b, err := ce.engine.CalculateAllFees(d)
	if err != nil {
		return domain.FeeBreakdown{}, err
	}
	ce.cache.SetDefault(key, b)
	return b, nil
}

// FinancialYear returns the wrapped engine's financial year
func (ce *CachedEngine) FinancialYear() string {
	return ce.engine.FinancialYear()
}

// Engine returns the wrapped engine
func (ce *CachedEngine) Engine() *FeeEngine {
	return ce.engine
}

// Len reports how many breakdowns are cached
func (ce *CachedEngine) Len() int {
	return ce.cache.ItemCount()
}

var (
	_ Calculator = (*FeeEngine)(nil)
	_ Calculator = (*CachedEngine)(nil)
)

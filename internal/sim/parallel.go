package sim

import (
	"context"
	"sync"

	"github.com/san-kum/greyspace/internal/metrics"
	"github.com/san-kum/greyspace/internal/space"
)

// Variant is one member of a comparison: a name and a way to build its space.
type Variant struct {
	Name  string
	Build func() (*space.Space, error)
}

// Ensemble runs the same script against several variants concurrently. Each
// variant owns its space, so no state is shared between goroutines.
type Ensemble struct {
	variants []Variant
}

func NewEnsemble(variants ...Variant) *Ensemble {
	return &Ensemble{variants: variants}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config, script Script) ([]*Result, error) {
	results := make([]*Result, len(e.variants))
	errs := make([]error, len(e.variants))

	var wg sync.WaitGroup
	for i, v := range e.variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			sp, err := v.Build()
			if err != nil {
				errs[idx] = err
				return
			}
			sim := New(sp)
			for _, m := range metrics.Default() {
				sim.AddMetric(m)
			}
			results[idx], errs[idx] = sim.Run(ctx, cfg, script)
		}(i, v)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

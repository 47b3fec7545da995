package dataset

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrLoad is wrapped by every dataset load failure.
var ErrLoad = errors.New("failed to load the college database")

// LoadError describes a failed load and how the user can fix it.
type LoadError struct {
	Source SourceType
	Hint   string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v (%s source): %v", ErrLoad, e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

func hintFor(t SourceType) string {
	switch t {
	case SourceHTTP:
		return "serve the data directory over http(s) and check the base URL, or pass local file paths"
	case SourceSQLite:
		return "run `collegeadvisor import` first to build the database snapshot"
	default:
		return "check the --profiles and --closing-ranks paths, or serve the data over http(s)"
	}
}

// Loader fetches and joins a dataset once per session. Successful loads are
// cached for the lifetime of the Loader; failures are not.
type Loader struct {
	source Source
	log    *zap.Logger

	group singleflight.Group
	mu    sync.RWMutex
	ds    *Dataset
}

// NewLoader creates a loader for the given source.
func NewLoader(src Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: src, log: log}
}

// Load returns the joined dataset, fetching it on first use. Concurrent
// callers share a single fetch. The shared fetch is detached from any one
// caller's cancellation; a caller whose ctx ends stops waiting and gets
// ctx.Err() while the fetch continues for the others.
func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	if ds := l.cached(); ds != nil {
		return ds, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("dataset", func() (any, error) {
		if ds := l.cached(); ds != nil {
			return ds, nil
		}

		docs, err := l.source.Fetch(fetchCtx)
		if err != nil {
			l.log.Error("dataset load failed",
				zap.String("source", string(l.source.Name())), zap.Error(err))
			return nil, &LoadError{Source: l.source.Name(), Hint: hintFor(l.source.Name()), Err: err}
		}
		if docs.Skipped > 0 {
			l.log.Warn("malformed records skipped",
				zap.String("source", string(l.source.Name())), zap.Int("skipped", docs.Skipped))
		}

		ds := Join(docs)
		st := ds.Stats()
		l.log.Info("dataset loaded",
			zap.String("source", string(l.source.Name())),
			zap.Int("profile_colleges", st.ProfileColleges),
			zap.Int("closing_rank_colleges", st.ClosingRankColleges),
			zap.Int("joined_colleges", st.JoinedColleges),
			zap.Int("closing_rows", st.ClosingRows),
		)

		l.mu.Lock()
		l.ds = ds
		l.mu.Unlock()
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Dataset), nil
	}
}

func (l *Loader) cached() *Dataset {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ds
}

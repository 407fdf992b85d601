package aspect_test

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"

	gointercept "github.com/CherkashinEvgeny/gointercept"
)

var (
	errMissing  = errors.New("missing key")
	errFlaky    = errors.New("temporarily unavailable")
	errDenied   = errors.New("access denied")
	syncContext = context.Background()
)

type Store interface {
	Get(key string) (string, error)
	Fetch(ctx context.Context, key string) gointercept.Future[string]
}

// flakyStore fails the first failures calls of each method with errFlaky.
type flakyStore struct {
	failures int32
	gets     atomic.Int32
	fetches  atomic.Int32
	values   map[string]string
}

func (s *flakyStore) lookup(calls *atomic.Int32, key string) (string, error) {
	if calls.Add(1) <= s.failures {
		return "", errFlaky
	}
	v, ok := s.values[key]
	if !ok {
		return "", errMissing
	}
	return v, nil
}

func (s *flakyStore) Get(key string) (string, error) {
	return s.lookup(&s.gets, key)
}

func (s *flakyStore) Fetch(ctx context.Context, key string) gointercept.Future[string] {
	return gointercept.Go(ctx, func(context.Context) (string, error) {
		return s.lookup(&s.fetches, key)
	})
}

type StoreProxy struct {
	Interceptor gointercept.Interceptor
}

func NewStoreProxy(interceptor gointercept.Interceptor) Store {
	return StoreProxy{Interceptor: interceptor}
}

func init() {
	gointercept.Register[Store](NewStoreProxy)
}

func (p StoreProxy) Get(key string) (string, error) {
	out, err := p.Interceptor.InterceptDirect("Get", key)
	r0, _ := out.(string)
	return r0, err
}

func (p StoreProxy) Fetch(ctx context.Context, key string) gointercept.Future[string] {
	promise := gointercept.NewPromise[string]()
	p.Interceptor.InterceptSuspending("Fetch", promise, ctx, key)
	return promise.Future()
}

type lines struct {
	ch chan string
}

func newLines() *lines {
	return &lines{ch: make(chan string, 64)}
}

func (l *lines) write(line string) {
	l.ch <- line
}

func (l *lines) drain() []string {
	var out []string
	for {
		select {
		case line := <-l.ch:
			out = append(out, line)
		default:
			return out
		}
	}
}

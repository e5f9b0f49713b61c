package health_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/referral-pipeline/internal/platform/health"
	"github.com/jsamuelsen11/referral-pipeline/mocks"
)

func checker(t *testing.T, name string, err error) *mocks.MockHealthChecker {
	t.Helper()
	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return(name)
	c.EXPECT().HealthCheck(mock.Anything).Return(err)
	return c
}

func TestCheckAll_Empty(t *testing.T) {
	t.Parallel()

	results := health.New().CheckAll(context.Background())
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestCheckAll_ReportsEachChecker(t *testing.T) {
	t.Parallel()

	refused := errors.New("connection refused")
	r := health.New()
	r.Register(checker(t, "storage", nil))
	r.Register(checker(t, "pipeline-api", refused))

	results := r.CheckAll(context.Background())

	require.Len(t, results, 2)
	assert.NoError(t, results["storage"])
	assert.ErrorIs(t, results["pipeline-api"], refused)
}

func TestCheckAll_ContextPropagated(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := mocks.NewMockHealthChecker(t)
	c.EXPECT().Name().Return("storage")
	c.EXPECT().HealthCheck(mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() != nil
	})).Return(context.Canceled).Maybe()

	r := health.New()
	r.Register(c)

	assert.ErrorIs(t, r.CheckAll(ctx)["storage"], context.Canceled)
}

func TestCheckAll_SameNameReplaces(t *testing.T) {
	t.Parallel()

	first := mocks.NewMockHealthChecker(t)
	first.EXPECT().Name().Return("storage")

	secondErr := errors.New("database is locked")
	second := checker(t, "storage", secondErr)

	r := health.New()
	r.Register(first)
	r.Register(second)

	results := r.CheckAll(context.Background())
	require.Len(t, results, 1)
	assert.ErrorIs(t, results["storage"], secondErr)
}

type hangingChecker struct{ release chan struct{} }

func (hangingChecker) Name() string { return "pipeline-api" }

func (h hangingChecker) HealthCheck(context.Context) error {
	<-h.release
	return nil
}

func TestCheckAll_SlowCheckTimesOut(t *testing.T) {
	t.Parallel()

	hang := hangingChecker{release: make(chan struct{})}
	defer close(hang.release)

	r := health.New(health.WithCheckTimeout(20 * time.Millisecond))
	r.Register(hang)
	r.Register(checker(t, "storage", nil))

	start := time.Now()
	results := r.CheckAll(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, results["pipeline-api"], context.DeadlineExceeded)
	assert.NoError(t, results["storage"])
}

func TestCheckAll_ConcurrentSafety(t *testing.T) {
	t.Parallel()

	r := health.New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				c := mocks.NewMockHealthChecker(t)
				c.EXPECT().Name().Return("storage").Maybe()
				c.EXPECT().HealthCheck(mock.Anything).Return(nil).Maybe()
				r.Register(c)
				return
			}
			r.CheckAll(context.Background())
		}()
	}
	wg.Wait()
}

package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/scan"
)

func TestRecheckBrokenLinks_SkipsWhileScanRunning(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().IsScanRunning(ctx).Return(true, nil)

	n, err := h.orch.RecheckBrokenLinks(ctx)

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRecheckBrokenLinks_RefreshesSelectedLinks(t *testing.T) {
	h := newHarness(t, scan.WithRecheck(50, 6*time.Hour, 0))
	ctx := context.Background()
	h.cache.stats = &domain.LinkStats{Broken: 2}
	links := []*domain.Link{
		{ID: 1, URL: "https://a.example", IsBroken: true},
		{ID: 2, URL: "https://b.example", IsWarning: true},
	}

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.links.EXPECT().GetLinksForRecheck(ctx, testNow.Add(-6*time.Hour), 50).Return(links, nil)
	gomock.InOrder(
		h.checker.EXPECT().Check(ctx, "https://a.example").Return(domain.CheckResult{StatusCode: 200}),
		h.links.EXPECT().UpdateLinkResult(ctx, int64(1), domain.CheckResult{StatusCode: 200}, testNow).Return(nil),
		h.checker.EXPECT().Check(ctx, "https://b.example").Return(domain.CheckResult{StatusCode: 500, IsBroken: true}),
		h.links.EXPECT().UpdateLinkResult(ctx, int64(2), gomock.Any(), testNow).Return(errors.New("conn reset")),
	)

	n, err := h.orch.RecheckBrokenLinks(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Nil(t, h.cache.stats)
}

func TestRecheckBrokenLinks_SpacesRequests(t *testing.T) {
	const delay = 40 * time.Millisecond
	h := newHarness(t, scan.WithRecheck(10, time.Hour, delay))
	ctx := context.Background()
	links := []*domain.Link{{ID: 1, URL: "https://a.example"}, {ID: 2, URL: "https://b.example"}, {ID: 3, URL: "https://c.example"}}

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.links.EXPECT().GetLinksForRecheck(ctx, testNow.Add(-time.Hour), 10).Return(links, nil)
	h.checker.EXPECT().Check(ctx, gomock.Any()).Return(domain.CheckResult{StatusCode: 200}).Times(3)
	h.links.EXPECT().UpdateLinkResult(ctx, gomock.Any(), gomock.Any(), testNow).Return(nil).Times(3)

	start := time.Now()
	n, err := h.orch.RecheckBrokenLinks(ctx)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.GreaterOrEqual(t, elapsed, 2*delay-5*time.Millisecond)
}

func TestRecheckBrokenLinks_DelayFollowsSlowCheck(t *testing.T) {
	const (
		delay     = 60 * time.Millisecond
		checkTime = 90 * time.Millisecond
	)
	h := newHarness(t, scan.WithRecheck(10, time.Hour, delay))
	ctx := context.Background()
	links := []*domain.Link{{ID: 1, URL: "https://a.example"}, {ID: 2, URL: "https://b.example"}, {ID: 3, URL: "https://c.example"}}

	var starts, ends []time.Time
	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.links.EXPECT().GetLinksForRecheck(ctx, testNow.Add(-time.Hour), 10).Return(links, nil)
	h.checker.EXPECT().Check(ctx, gomock.Any()).DoAndReturn(func(context.Context, string) domain.CheckResult {
		starts = append(starts, time.Now())
		time.Sleep(checkTime)
		ends = append(ends, time.Now())
		return domain.CheckResult{StatusCode: 200}
	}).Times(3)
	h.links.EXPECT().UpdateLinkResult(ctx, gomock.Any(), gomock.Any(), testNow).Return(nil).Times(3)

	n, err := h.orch.RecheckBrokenLinks(ctx)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Len(t, starts, 3)
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(ends[i-1])
		assert.GreaterOrEqual(t, gap, delay-5*time.Millisecond, "gap before request %d", i+1)
	}
}

func TestRecheckBrokenLinks_StopsOnCancel(t *testing.T) {
	h := newHarness(t, scan.WithRecheck(10, time.Hour, time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	links := []*domain.Link{{ID: 1, URL: "https://a.example"}, {ID: 2, URL: "https://b.example"}}

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.links.EXPECT().GetLinksForRecheck(ctx, gomock.Any(), 10).Return(links, nil)
	h.checker.EXPECT().Check(ctx, "https://a.example").DoAndReturn(func(context.Context, string) domain.CheckResult {
		cancel()
		return domain.CheckResult{StatusCode: 200}
	})
	h.links.EXPECT().UpdateLinkResult(ctx, int64(1), gomock.Any(), testNow).Return(nil)

	n, err := h.orch.RecheckBrokenLinks(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
}

package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/jonesrussell/north-cloud/link-checker/internal/database"
	"github.com/jonesrussell/north-cloud/link-checker/internal/discovery"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
	"github.com/jonesrussell/north-cloud/link-checker/internal/metrics"
	"github.com/jonesrussell/north-cloud/link-checker/internal/scan"
	"github.com/jonesrussell/north-cloud/link-checker/internal/scan/mocks"
)

var testNow = time.Date(2026, 5, 1, 3, 0, 0, 0, time.UTC)

// memoryCache records cache traffic for assertions.
type memoryCache struct {
	progress        *domain.Progress
	stats           *domain.LinkStats
	progressCleared int
	statsCleared    int
}

func (c *memoryCache) GetProgress(context.Context) *domain.Progress { return c.progress }
func (c *memoryCache) SetProgress(_ context.Context, p domain.Progress) {
	c.progress = &p
}
func (c *memoryCache) ClearProgress(context.Context) {
	c.progress = nil
	c.progressCleared++
}
func (c *memoryCache) GetStats(context.Context) *domain.LinkStats { return c.stats }
func (c *memoryCache) SetStats(_ context.Context, s domain.LinkStats) {
	c.stats = &s
}
func (c *memoryCache) ClearStats(context.Context) {
	c.stats = nil
	c.statsCleared++
}

type harness struct {
	links      *mocks.MockLinkStore
	scans      *mocks.MockScanStore
	checker    *mocks.MockLinkChecker
	discoverer *mocks.MockDiscoverer
	scheduler  *mocks.MockScheduler
	notifier   *mocks.MockNotifier
	cache      *memoryCache
	metrics    *metrics.Metrics
	orch       *scan.Orchestrator
}

func newHarness(t *testing.T, opts ...scan.Option) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)
	h := &harness{
		links:      mocks.NewMockLinkStore(ctrl),
		scans:      mocks.NewMockScanStore(ctrl),
		checker:    mocks.NewMockLinkChecker(ctrl),
		discoverer: mocks.NewMockDiscoverer(ctrl),
		scheduler:  mocks.NewMockScheduler(ctrl),
		notifier:   mocks.NewMockNotifier(ctrl),
		cache:      &memoryCache{},
		metrics:    metrics.New(nil),
	}

	base := []scan.Option{
		scan.WithClock(func() time.Time { return testNow }),
		scan.WithCache(h.cache),
		scan.WithNotifier(h.notifier),
		scan.WithRecorder(h.metrics),
	}
	h.orch = scan.NewOrchestrator(h.links, h.scans, h.checker, h.discoverer, h.scheduler, append(base, opts...)...)
	return h
}

func runningScan(id int64, total, checked, broken, warnings int) *domain.Scan {
	lease := testNow.Add(30 * time.Minute)
	return &domain.Scan{
		ID: id, Type: domain.ScanTypeFull, Status: domain.ScanStatusRunning,
		TotalLinks: total, CheckedLinks: checked, BrokenLinks: broken, WarningLinks: warnings,
		StartedAt: testNow.Add(-5 * time.Minute), LeaseExpiresAt: &lease,
	}
}

func dueBefore(s *domain.Scan) time.Time {
	return s.StartedAt.Add(-24 * time.Hour)
}

func TestStart_CreatesScanAndSchedulesFirstBatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	gomock.InOrder(
		h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil),
		h.scans.EXPECT().CreateScan(ctx, domain.ScanTypeFull, testNow).
			Return(&domain.Scan{ID: 9, Type: domain.ScanTypeFull, Status: domain.ScanStatusPending, StartedAt: testNow}, nil),
		h.scans.EXPECT().MarkRunning(ctx, int64(9), testNow.Add(time.Hour)).Return(nil),
		h.discoverer.EXPECT().Discover(ctx).Return(&discovery.Result{Units: 4, Found: 120, Created: 20}, nil),
		h.links.EXPECT().CountLinksToCheck(ctx, testNow.Add(-24*time.Hour)).Return(100, nil),
		h.scans.EXPECT().SetTotal(ctx, int64(9), 100).Return(nil),
		h.scheduler.EXPECT().ScheduleSingle(ctx, testNow.Add(time.Second), scan.TaskProcessQueue).Return(nil),
	)

	s, err := h.orch.Start(ctx, domain.ScanTypeFull)

	require.NoError(t, err)
	assert.Equal(t, domain.ScanStatusRunning, s.Status)
	assert.Equal(t, 100, s.TotalLinks)
	require.NotNil(t, h.cache.progress)
	assert.Equal(t, "running", h.cache.progress.Status)
	assert.Equal(t, 100, h.cache.progress.Total)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.ScansStarted.WithLabelValues(domain.ScanTypeFull)), 0)
}

func TestStart_WhileRunningCreatesNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().IsScanRunning(ctx).Return(true, nil)

	s, err := h.orch.Start(ctx, domain.ScanTypeFull)

	require.ErrorIs(t, err, scan.ErrScanAlreadyRunning)
	assert.Nil(t, s)
}

func TestStart_LosesCreateRace(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.scans.EXPECT().CreateScan(ctx, domain.ScanTypeFull, testNow).Return(nil, database.ErrActiveScanExists)

	_, err := h.orch.Start(ctx, domain.ScanTypeFull)

	require.ErrorIs(t, err, scan.ErrScanAlreadyRunning)
}

func TestStart_CreateFailure(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.scans.EXPECT().CreateScan(ctx, domain.ScanTypeFull, testNow).Return(nil, boom)

	_, err := h.orch.Start(ctx, domain.ScanTypeFull)

	require.ErrorIs(t, err, scan.ErrScanCreateFailed)
	require.ErrorIs(t, err, boom)
}

func TestStart_DiscoveryFailureFailsScan(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	boom := errors.New("content table missing")

	h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
	h.scans.EXPECT().CreateScan(ctx, domain.ScanTypeFull, testNow).
		Return(&domain.Scan{ID: 3, Status: domain.ScanStatusPending, StartedAt: testNow}, nil)
	h.scans.EXPECT().MarkRunning(ctx, int64(3), gomock.Any()).Return(nil)
	h.discoverer.EXPECT().Discover(ctx).Return(nil, boom)
	h.scans.EXPECT().FailScan(gomock.Any(), int64(3), "Link discovery failed: content table missing", testNow).Return(nil)

	_, err := h.orch.Start(ctx, domain.ScanTypeFull)

	require.ErrorIs(t, err, boom)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.ScansFinished.WithLabelValues("failed")), 0)
}

func TestProcessQueue_NoActiveScanIsNoOp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(nil, nil)

	require.NoError(t, h.orch.ProcessQueue(ctx))
}

func TestProcessQueue_ChecksBatchAndReschedules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	active := runningScan(4, 10, 2, 0, 0)
	links := []*domain.Link{
		{ID: 1, URL: "https://example.com/ok"},
		{ID: 2, URL: "https://example.com/gone"},
		{ID: 3, URL: "https://example.com/moved"},
	}
	verdicts := map[string]domain.CheckResult{
		links[0].URL: {StatusCode: 200, StatusText: "OK"},
		links[1].URL: {StatusCode: 404, StatusText: "Not Found", IsBroken: true},
		links[2].URL: {StatusCode: 301, StatusText: "Moved Permanently", IsWarning: true, RedirectCount: 1},
	}

	h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(active, nil)
	h.links.EXPECT().GetLinksToCheck(ctx, 3, dueBefore(active)).Return(links, nil)
	for _, link := range links {
		h.checker.EXPECT().Check(ctx, link.URL).Return(verdicts[link.URL])
		h.links.EXPECT().UpdateLinkResult(ctx, link.ID, verdicts[link.URL], testNow).Return(nil)
	}
	h.scans.EXPECT().AddCounters(ctx, int64(4), domain.ScanCounters{Checked: 3, Broken: 1, Warnings: 1}, testNow.Add(time.Hour)).
		Return(runningScan(4, 10, 5, 1, 1), nil)
	h.links.EXPECT().CountLinksToCheck(ctx, dueBefore(active)).Return(5, nil)
	h.scheduler.EXPECT().ScheduleSingle(ctx, testNow.Add(2*time.Second), scan.TaskProcessQueue).Return(nil)

	require.NoError(t, h.orch.ProcessQueue(ctx))

	require.NotNil(t, h.cache.progress)
	assert.Equal(t, 5, h.cache.progress.Checked)
	assert.Equal(t, 50, h.cache.progress.Percent)
	assert.InDelta(t, 5, testutil.ToFloat64(h.metrics.LinksPending), 0)
}

func TestProcessQueue_UnsavedResultIsNotCounted(t *testing.T) {
	h := newHarness(t, scan.WithBatchSize(2))
	ctx := context.Background()
	active := runningScan(4, 10, 0, 0, 0)
	links := []*domain.Link{{ID: 1, URL: "https://a.example"}, {ID: 2, URL: "https://b.example"}}

	h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(active, nil)
	h.links.EXPECT().GetLinksToCheck(ctx, 2, dueBefore(active)).Return(links, nil)
	h.checker.EXPECT().Check(ctx, gomock.Any()).Return(domain.CheckResult{StatusCode: 200}).Times(2)
	h.links.EXPECT().UpdateLinkResult(ctx, int64(1), gomock.Any(), testNow).Return(errors.New("deadlock detected"))
	h.links.EXPECT().UpdateLinkResult(ctx, int64(2), gomock.Any(), testNow).Return(nil)
	h.scans.EXPECT().AddCounters(ctx, int64(4), domain.ScanCounters{Checked: 1}, gomock.Any()).
		Return(runningScan(4, 10, 1, 0, 0), nil)
	h.links.EXPECT().CountLinksToCheck(ctx, dueBefore(active)).Return(9, nil)
	h.scheduler.EXPECT().ScheduleSingle(ctx, gomock.Any(), scan.TaskProcessQueue).Return(nil)

	require.NoError(t, h.orch.ProcessQueue(ctx))
}

func TestProcessQueue_DrainedQueueCompletesOnce(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	active := runningScan(4, 100, 100, 0, 3)
	completedAt := testNow
	completed := *active
	completed.Status = domain.ScanStatusCompleted
	completed.CompletedAt = &completedAt
	completed.LeaseExpiresAt = nil
	h.cache.progress = &domain.Progress{Status: "running"}

	gomock.InOrder(
		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(active, nil),
		h.links.EXPECT().GetLinksToCheck(ctx, 3, dueBefore(active)).Return(nil, nil),
		h.scans.EXPECT().CompleteScan(ctx, int64(4), testNow).Return(&completed, nil).Times(1),
		// The lease is gone, so the second call finds no active scan.
		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(nil, nil),
	)

	require.NoError(t, h.orch.ProcessQueue(ctx))
	require.NoError(t, h.orch.ProcessQueue(ctx))

	assert.Nil(t, h.cache.progress)
	assert.Equal(t, 1, h.cache.progressCleared)
	assert.InDelta(t, 1, testutil.ToFloat64(h.metrics.ScansFinished.WithLabelValues("completed")), 0)
}

func TestProcessQueue_LastBatchCompletesAndNotifies(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	active := runningScan(4, 3, 2, 1, 0)
	final := runningScan(4, 3, 3, 2, 0)
	final.Status = domain.ScanStatusCompleted

	h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(active, nil)
	h.links.EXPECT().GetLinksToCheck(ctx, 3, dueBefore(active)).Return([]*domain.Link{{ID: 7, URL: "https://x.example"}}, nil)
	h.checker.EXPECT().Check(ctx, "https://x.example").Return(domain.CheckResult{IsBroken: true, StatusText: "DNS Error"})
	h.links.EXPECT().UpdateLinkResult(ctx, int64(7), gomock.Any(), testNow).Return(nil)
	h.scans.EXPECT().AddCounters(ctx, int64(4), domain.ScanCounters{Checked: 1, Broken: 1}, gomock.Any()).
		Return(runningScan(4, 3, 3, 2, 0), nil)
	h.links.EXPECT().CountLinksToCheck(ctx, dueBefore(active)).Return(0, nil)
	h.scans.EXPECT().CompleteScan(ctx, int64(4), testNow).Return(final, nil)
	h.notifier.EXPECT().PublishScanCompleted(ctx, final).Return(nil)

	require.NoError(t, h.orch.ProcessQueue(ctx))
}

func TestProcessQueue_StoppedMidBatch(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	active := runningScan(4, 10, 0, 0, 0)

	h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(active, nil)
	h.links.EXPECT().GetLinksToCheck(ctx, 3, dueBefore(active)).Return([]*domain.Link{{ID: 1, URL: "https://a.example"}}, nil)
	h.checker.EXPECT().Check(ctx, "https://a.example").Return(domain.CheckResult{StatusCode: 200})
	h.links.EXPECT().UpdateLinkResult(ctx, int64(1), gomock.Any(), testNow).Return(nil)
	h.scans.EXPECT().AddCounters(ctx, int64(4), gomock.Any(), gomock.Any()).Return(nil, database.ErrScanNotActive)

	require.NoError(t, h.orch.ProcessQueue(ctx))
}

func TestCompleteScan_AlreadyFinalizedIsNoOp(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().CompleteScan(ctx, int64(4), testNow).Return(nil, database.ErrScanNotActive)

	require.NoError(t, h.orch.CompleteScan(ctx, 4))
	assert.Zero(t, h.cache.progressCleared)
}

func TestCompleteScan_NotifyFailureIsAbsorbed(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	final := runningScan(4, 3, 3, 1, 0)
	final.Status = domain.ScanStatusCompleted

	h.scans.EXPECT().CompleteScan(ctx, int64(4), testNow).Return(final, nil)
	h.notifier.EXPECT().PublishScanCompleted(ctx, final).Return(errors.New("redis down"))

	require.NoError(t, h.orch.CompleteScan(ctx, 4))
}

func TestStopScan(t *testing.T) {
	t.Run("falls back to the running scan", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()
		h.cache.progress = &domain.Progress{Status: "running"}

		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(nil, nil)
		h.scans.EXPECT().GetRunningScan(ctx).Return(runningScan(6, 10, 4, 0, 0), nil)
		h.scans.EXPECT().CancelScan(ctx, int64(6), testNow).Return(nil)
		h.scheduler.EXPECT().Cancel(ctx, scan.TaskProcessQueue).Return(nil)

		stopped, err := h.orch.StopScan(ctx)

		require.NoError(t, err)
		assert.True(t, stopped)
		assert.Nil(t, h.cache.progress)
	})

	t.Run("nothing to stop", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()

		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(nil, nil)
		h.scans.EXPECT().GetRunningScan(ctx).Return(nil, nil)

		stopped, err := h.orch.StopScan(ctx)

		require.NoError(t, err)
		assert.False(t, stopped)
	})

	t.Run("terminal scan is left alone", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()
		done := runningScan(6, 10, 10, 0, 0)
		done.Status = domain.ScanStatusCompleted

		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(done, nil)

		stopped, err := h.orch.StopScan(ctx)

		require.NoError(t, err)
		assert.False(t, stopped)
	})

	t.Run("finished concurrently", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()

		h.scans.EXPECT().GetActiveScan(ctx, testNow).Return(runningScan(6, 10, 4, 0, 0), nil)
		h.scans.EXPECT().CancelScan(ctx, int64(6), testNow).Return(database.ErrScanNotActive)

		stopped, err := h.orch.StopScan(ctx)

		require.NoError(t, err)
		assert.False(t, stopped)
	})
}

func TestForceStopScan(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.cache.progress = &domain.Progress{Status: "running"}
	h.cache.stats = &domain.LinkStats{Total: 1}

	h.scans.EXPECT().CancelAllActive(ctx, testNow).Return(2, nil)
	h.scheduler.EXPECT().CancelGroup(ctx, scan.TaskGroup).Return(nil)

	n, err := h.orch.ForceStopScan(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Nil(t, h.cache.progress)
	assert.Nil(t, h.cache.stats)
	assert.InDelta(t, 2, testutil.ToFloat64(h.metrics.ScansFinished.WithLabelValues("cancelled")), 0)
}

func TestCleanupStaleScans(t *testing.T) {
	t.Run("reclaims scans past the threshold", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()

		h.scans.EXPECT().FailStaleScans(ctx, testNow.Add(-30*time.Minute), scan.StaleScanReason, testNow).Return(1, nil)
		h.scheduler.EXPECT().Cancel(ctx, scan.TaskProcessQueue).Return(nil)

		n, err := h.orch.CleanupStaleScans(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, h.cache.progressCleared)
	})

	t.Run("nothing stale", func(t *testing.T) {
		h := newHarness(t)
		ctx := context.Background()

		h.scans.EXPECT().FailStaleScans(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		n, err := h.orch.CleanupStaleScans(ctx)

		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Zero(t, h.cache.progressCleared)
	})
}

func TestGetProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("cached snapshot", func(t *testing.T) {
		h := newHarness(t)
		h.cache.progress = &domain.Progress{Status: "running", Checked: 3}

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, 3, p.Checked)
	})

	t.Run("never scanned", func(t *testing.T) {
		h := newHarness(t)
		h.scans.EXPECT().GetLatestScan(ctx).Return(nil, nil)

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.IdleProgress(), p)
	})

	t.Run("running scan is cached", func(t *testing.T) {
		h := newHarness(t)
		h.scans.EXPECT().GetLatestScan(ctx).Return(runningScan(2, 8, 2, 1, 0), nil)

		p, err := h.orch.GetProgress(ctx)

		started := testNow.Add(-5 * time.Minute)
		require.NoError(t, err)
		assert.Equal(t, domain.Progress{
			ScanID: 2, Status: "running", Total: 8, Checked: 2, Broken: 1, Percent: 25, StartedAt: &started,
		}, p)
		assert.Equal(t, &p, h.cache.progress)
	})

	t.Run("stale scan is reclaimed on read", func(t *testing.T) {
		h := newHarness(t)
		stale := runningScan(2, 8, 2, 0, 0)
		stale.StartedAt = testNow.Add(-31 * time.Minute)

		h.scans.EXPECT().GetLatestScan(ctx).Return(stale, nil)
		h.scans.EXPECT().FailStaleScans(ctx, testNow.Add(-30*time.Minute), scan.StaleScanReason, testNow).Return(1, nil)
		h.scheduler.EXPECT().Cancel(ctx, scan.TaskProcessQueue).Return(nil)

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.ProgressStatusIdle, p.Status)
	})

	t.Run("cached snapshot of a stale scan is not served", func(t *testing.T) {
		h := newHarness(t)
		started := testNow.Add(-31 * time.Minute)
		h.cache.progress = &domain.Progress{ScanID: 2, Status: "running", Checked: 2, StartedAt: &started}
		stale := runningScan(2, 8, 2, 0, 0)
		stale.StartedAt = started

		h.scans.EXPECT().GetLatestScan(ctx).Return(stale, nil)
		h.scans.EXPECT().FailStaleScans(ctx, testNow.Add(-30*time.Minute), scan.StaleScanReason, testNow).Return(1, nil)
		h.scheduler.EXPECT().Cancel(ctx, scan.TaskProcessQueue).Return(nil)

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.ProgressStatusIdle, p.Status)
		assert.Nil(t, h.cache.progress)
	})

	t.Run("cached snapshot inside the stale window is served", func(t *testing.T) {
		h := newHarness(t)
		started := testNow.Add(-29 * time.Minute)
		h.cache.progress = &domain.Progress{ScanID: 2, Status: "running", Checked: 6, StartedAt: &started}

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, 6, p.Checked)
	})

	t.Run("scan reclaimed earlier reads as idle", func(t *testing.T) {
		h := newHarness(t)
		reason := scan.StaleScanReason
		failed := runningScan(2, 8, 2, 0, 0)
		failed.Status = domain.ScanStatusFailed
		failed.ErrorMessage = &reason

		h.scans.EXPECT().GetLatestScan(ctx).Return(failed, nil)

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, domain.ProgressStatusIdle, p.Status)
	})

	t.Run("completed scan keeps its totals", func(t *testing.T) {
		h := newHarness(t)
		done := runningScan(2, 8, 8, 1, 2)
		done.Status = domain.ScanStatusCompleted

		h.scans.EXPECT().GetLatestScan(ctx).Return(done, nil)

		p, err := h.orch.GetProgress(ctx)

		require.NoError(t, err)
		assert.Equal(t, "completed", p.Status)
		assert.Equal(t, 100, p.Percent)
		assert.Nil(t, h.cache.progress)
	})
}

func TestRunScheduledScan(t *testing.T) {
	ctx := context.Background()

	t.Run("manual only", func(t *testing.T) {
		h := newHarness(t, scan.WithManualOnly(true))

		require.NoError(t, h.orch.RunScheduledScan(ctx))
	})

	t.Run("already running", func(t *testing.T) {
		h := newHarness(t)
		h.scans.EXPECT().IsScanRunning(ctx).Return(true, nil)

		require.NoError(t, h.orch.RunScheduledScan(ctx))
	})

	t.Run("starts a scheduled scan", func(t *testing.T) {
		h := newHarness(t)
		h.scans.EXPECT().IsScanRunning(ctx).Return(false, nil)
		h.scans.EXPECT().CreateScan(ctx, domain.ScanTypeScheduled, testNow).
			Return(&domain.Scan{ID: 1, Type: domain.ScanTypeScheduled, Status: domain.ScanStatusPending, StartedAt: testNow}, nil)
		h.scans.EXPECT().MarkRunning(ctx, int64(1), gomock.Any()).Return(nil)
		h.discoverer.EXPECT().Discover(ctx).Return(&discovery.Result{}, nil)
		h.links.EXPECT().CountLinksToCheck(ctx, gomock.Any()).Return(0, nil)
		h.scans.EXPECT().SetTotal(ctx, int64(1), 0).Return(nil)
		h.scheduler.EXPECT().ScheduleSingle(ctx, gomock.Any(), scan.TaskProcessQueue).Return(nil)

		require.NoError(t, h.orch.RunScheduledScan(ctx))
	})
}

func TestStats_CachedAfterFirstRead(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.links.EXPECT().GetStats(ctx).Return(&domain.LinkStats{Total: 10, Broken: 2}, nil).Times(1)

	first, err := h.orch.Stats(ctx)
	require.NoError(t, err)
	second, err := h.orch.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHistory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	h.scans.EXPECT().List(ctx, 5, 10).Return([]*domain.Scan{runningScan(1, 0, 0, 0, 0)}, nil)

	scans, err := h.orch.History(ctx, 5, 10)

	require.NoError(t, err)
	assert.Len(t, scans, 1)
}

package sweep

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/flight-search/offer-sweeper/internal/adapter/filecache"
	"github.com/flight-search/offer-sweeper/internal/domain"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/logger"
	"github.com/flight-search/offer-sweeper/internal/infrastructure/timeutil"
)

// testConfig sweeps KIX -> HKG on one first date and two last dates.
func testConfig() Config {
	return Config{
		Params: domain.SweepParameters{
			Origins:      []string{"KIX"},
			FirstDates:   []string{"2026-04-07"},
			Destinations: []string{"HKG"},
			LastDates:    []string{"2026-09-23", "2026-09-24"},
		},
		Itinerary: domain.Itinerary{
			Hub:       "TPE",
			SecondLeg: domain.Leg{Origin: "TPE", Destination: "FCO", Date: "2026-07-18"},
			ThirdLeg:  domain.Leg{Origin: "MXP", Destination: "TPE", Date: "2026-07-31"},
		},
		Options: domain.DefaultSearchOptions(),
		Mode:    "test",
		Clock:   timeutil.NewMockClockFromDate("2026-03-01"),
	}
}

func okResult(body string) *domain.SearchResult {
	return &domain.SearchResult{Payload: json.RawMessage(body), StatusCode: 200}
}

func tupleA() domain.Tuple {
	return domain.Tuple{Origin: "KIX", FirstDate: "2026-04-07", Destination: "HKG", LastDate: "2026-09-23"}
}

func tupleB() domain.Tuple {
	return domain.Tuple{Origin: "KIX", FirstDate: "2026-04-07", Destination: "HKG", LastDate: "2026-09-24"}
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestDriver_Run_SavesEveryTuple(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	dir := filepath.Join(t.TempDir(), "test")
	store := filecache.New(dir)

	var requested []domain.SearchRequest
	searcher.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
			requested = append(requested, req)
			return okResult(`{"data":[{"id":"1"}]}`), nil
		},
	).Times(2)

	report, err := NewDriver(searcher, store, testConfig(), nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Saved)
	assert.Zero(t, report.Skipped)
	assert.Zero(t, report.Failed)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "test", report.Mode)

	assert.ElementsMatch(t, []string{
		"KIX_2026-04-07_HKG_2026-09-23_raw.json",
		"KIX_2026-04-07_HKG_2026-09-24_raw.json",
	}, listFiles(t, dir))

	require.Len(t, requested, 2)
	for i, want := range []domain.Tuple{tupleA(), tupleB()} {
		got, ok := requested[i].Tuple()
		require.True(t, ok)
		assert.Equal(t, want, got)
		assert.Equal(t, "TPE", requested[i].OriginDestinations[1].OriginLocationCode)
		assert.Equal(t, "FCO", requested[i].OriginDestinations[1].DestinationLocationCode)
	}

	data, err := os.ReadFile(store.Path(tupleA()))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"data\": [\n        {\n            \"id\": \"1\"\n        }\n    ]\n}", string(data))
}

func TestDriver_Run_SkipsCachedTuple(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	dir := t.TempDir()
	store := filecache.New(dir)

	seeded := []byte("not even json")
	require.NoError(t, os.WriteFile(store.Path(tupleA()), seeded, 0o644))

	searcher.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error) {
			got, _ := req.Tuple()
			assert.Equal(t, tupleB(), got, "a cached tuple must not reach the API")
			return okResult(`{"data":[]}`), nil
		},
	).Times(1)

	report, err := NewDriver(searcher, store, testConfig(), nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Saved)

	data, err := os.ReadFile(store.Path(tupleA()))
	require.NoError(t, err)
	assert.Equal(t, seeded, data, "cached file must be left byte-identical")
}

func TestDriver_Run_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	store := filecache.New(t.TempDir())

	searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(okResult(`{"data":[]}`), nil).Times(2)

	driver := NewDriver(searcher, store, testConfig(), nil)

	first, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, first.Saved)

	second, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Skipped)
	assert.Zero(t, second.Saved)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestDriver_Run_FailureIsolation(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.SearchResult
		err    error
	}{
		{name: "upstream status", err: domain.NewUpstreamError(429, `{"errors":[]}`)},
		{name: "transport", err: domain.NewTransportError(errors.New("connection reset"))},
		{name: "nil result", result: nil},
		{name: "empty payload", result: &domain.SearchResult{StatusCode: 200}},
		{name: "invalid payload", result: okResult(`{"data":`)},
		{name: "null payload", result: okResult(`null`)},
		{name: "empty object", result: okResult(`{}`)},
		{name: "empty array", result: okResult(" [ ]\n")},
		{name: "untyped error", err: errors.New("searcher bug")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			searcher := domain.NewMockOfferSearcher(ctrl)
			dir := t.TempDir()
			store := filecache.New(dir)

			gomock.InOrder(
				searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(tt.result, tt.err),
				searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(okResult(`{"data":[]}`), nil),
			)

			report, err := NewDriver(searcher, store, testConfig(), nil).Run(context.Background())
			require.NoError(t, err, "a failed search must not abort the sweep")

			assert.Equal(t, 1, report.Failed)
			assert.Equal(t, 1, report.Saved)
			assert.Equal(t, []string{"KIX_2026-04-07_HKG_2026-09-24_raw.json"}, listFiles(t, dir))
		})
	}
}

func TestDriver_Run_FailedTupleRetriedNextRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	store := filecache.New(t.TempDir())

	gomock.InOrder(
		searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, domain.NewUpstreamError(500, "")),
		searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(okResult(`{"data":[]}`), nil),
		searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(okResult(`{"data":[]}`), nil),
	)

	driver := NewDriver(searcher, store, testConfig(), nil)

	_, err := driver.Run(context.Background())
	require.NoError(t, err)

	second, err := driver.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Saved)
	assert.Equal(t, 1, second.Skipped)
}

func TestDriver_Run_DryRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	dir := t.TempDir()
	store := filecache.New(dir)
	require.NoError(t, os.WriteFile(store.Path(tupleB()), []byte(`{}`), 0o644))

	cfg := testConfig()
	cfg.DryRun = true

	report, err := NewDriver(searcher, store, cfg, nil).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Planned)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"KIX_2026-04-07_HKG_2026-09-24_raw.json"}, listFiles(t, dir))
}

func TestDriver_Run_FilesystemErrorHalts(t *testing.T) {
	diskErr := errors.New("disk full")

	tests := []struct {
		name  string
		setup func(store *domain.MockResultStore)
	}{
		{
			name: "mkdir",
			setup: func(store *domain.MockResultStore) {
				store.EXPECT().EnsureDir().Return(diskErr)
			},
		},
		{
			name: "stat",
			setup: func(store *domain.MockResultStore) {
				store.EXPECT().EnsureDir().Return(nil)
				store.EXPECT().Path(gomock.Any()).Return("out/x_raw.json")
				store.EXPECT().Exists(gomock.Any()).Return(false, diskErr)
			},
		},
		{
			name: "write",
			setup: func(store *domain.MockResultStore) {
				store.EXPECT().EnsureDir().Return(nil)
				store.EXPECT().Path(gomock.Any()).Return("out/x_raw.json")
				store.EXPECT().Exists(gomock.Any()).Return(false, nil)
				store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(diskErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			searcher := domain.NewMockOfferSearcher(ctrl)
			store := domain.NewMockResultStore(ctrl)
			tt.setup(store)
			searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(okResult(`{"data":[]}`), nil).MaxTimes(1)

			report, err := NewDriver(searcher, store, testConfig(), nil).Run(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, diskErr)
			assert.Contains(t, err.Error(), tupleA().Key())
			require.NotNil(t, report)
			assert.Zero(t, report.Processed(), "the second tuple must never be visited")
		})
	}
}

func TestDriver_Run_ContextCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	store := filecache.New(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	searcher.EXPECT().Search(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, domain.SearchRequest) (*domain.SearchResult, error) {
			cancel()
			return okResult(`{"data":[]}`), nil
		},
	).Times(1)

	report, err := NewDriver(searcher, store, testConfig(), nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Saved)
	assert.Equal(t, 1, report.Processed())
}

func TestDriver_Run_Logging(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	store := filecache.New(t.TempDir())
	require.NoError(t, os.WriteFile(store.Path(tupleA()), []byte(`{}`), 0o644))

	searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, domain.NewUpstreamError(401, ""))

	cfg := testConfig()
	cfg.Clock = timeutil.NewMockClockFromDate("2026-09-24")

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)

	report, err := NewDriver(searcher, store, cfg, log).Run(context.Background())
	require.NoError(t, err)

	var messages []string
	var pastDates []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, report.RunID, entry[logger.FieldRunID], "every line carries the run id")
		messages = append(messages, entry["message"].(string))
		if entry["message"] == "Sweep date is in the past" {
			pastDates = append(pastDates, entry["date"].(string))
		}
	}

	assert.Contains(t, messages, "Skip because cached")
	assert.Contains(t, messages, "No result")
	assert.Contains(t, messages, "Sweep finished")
	assert.ElementsMatch(t, []string{"2026-04-07", "2026-09-23"}, pastDates)
}

func TestDriver_Run_NoResultLogLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)
	store := filecache.New(t.TempDir())

	gomock.InOrder(
		searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, errors.New("searcher bug")),
		searcher.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, domain.NewUpstreamError(503, "")),
	)

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)

	_, err := NewDriver(searcher, store, testConfig(), log).Run(context.Background())
	require.NoError(t, err)

	levels := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "No result" {
			levels[entry[logger.FieldTuple].(string)] = entry["level"].(string)
		}
	}

	assert.Equal(t, map[string]string{
		tupleA().Key(): "error",
		tupleB().Key(): "warn",
	}, levels)
}

func TestDriver_Run_PastDateWarnedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	searcher := domain.NewMockOfferSearcher(ctrl)

	cfg := testConfig()
	cfg.Params.FirstDates = []string{"2026-04-07", "2026-09-23"}
	cfg.Params.LastDates = []string{"2026-09-23", "2026-04-07"}
	cfg.DryRun = true
	cfg.Clock = timeutil.NewMockClockFromDate("2026-10-01")

	var buf bytes.Buffer
	log := logger.NewWithOutput(logger.Config{Level: "info", Format: "json"}, &buf)

	_, err := NewDriver(searcher, filecache.New(t.TempDir()), cfg, log).Run(context.Background())
	require.NoError(t, err)

	var pastDates []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry["message"] == "Sweep date is in the past" {
			pastDates = append(pastDates, entry["date"].(string))
		}
	}
	assert.Equal(t, []string{"2026-04-07", "2026-09-23"}, pastDates)
}

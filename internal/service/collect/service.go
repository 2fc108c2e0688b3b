package collect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/config"
	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/metrics"
	"github.com/KasumiMercury/traffic-count-collector/internal/observability/tracing"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/alert"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/dedup"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/prediction"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/sheet"
	"github.com/KasumiMercury/traffic-count-collector/internal/service/window"
)

const (
	windowRecent       = "recent"
	windowTodayElapsed = "today_elapsed"
)

type Service struct {
	calculator *window.Calculator
	guard      *dedup.Guard
	source     domain.CountSource
	engine     *prediction.Engine
	manager    *sheet.Manager
	dispatcher *alert.Dispatcher
	recorder   domain.MeasurementRecorder
	metrics    *metrics.CollectorMetrics

	cfg        *config.CollectorConfig
	alertTable config.LaneTable
	hasAlert   bool
}

func NewService(
	cfg *config.CollectorConfig,
	calculator *window.Calculator,
	guard *dedup.Guard,
	source domain.CountSource,
	engine *prediction.Engine,
	manager *sheet.Manager,
	dispatcher *alert.Dispatcher,
	recorder domain.MeasurementRecorder,
	collectorMetrics *metrics.CollectorMetrics,
) *Service {
	alertTable, hasAlert := cfg.AlertTable()
	return &Service{
		calculator: calculator,
		guard:      guard,
		source:     source,
		engine:     engine,
		manager:    manager,
		dispatcher: dispatcher,
		recorder:   recorder,
		metrics:    collectorMetrics,
		cfg:        cfg,
		alertTable: alertTable,
		hasAlert:   hasAlert,
	}
}

// Run performs one invocation. Outside operating hours and duplicate
// triggers return a result with the matching outcome and a nil error.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	started := time.Now()

	ctx, span := tracing.StartInvocationSpan(ctx, req.Now, req.WriteEnabled, req.AlertEnabled)
	defer span.End()

	result, err := s.run(ctx, req)

	outcome := "failed"
	stationCount, writeCount, alerted := 0, 0, false
	if result != nil {
		if err == nil {
			outcome = result.Outcome.String()
		}
		stationCount = len(result.Observations)
		writeCount = result.AppliedWrites()
		alerted = result.AlertDispatched
	}

	tracing.RecordInvocationResult(span, outcome, stationCount, writeCount, alerted, err)
	if s.metrics != nil {
		s.metrics.RecordInvocation(ctx, outcome, time.Since(started))
	}

	return result, err
}

func (s *Service) run(ctx context.Context, req Request) (*Result, error) {
	windows := s.calculator.Calculate(req.Now)
	result := &Result{
		RunID:   req.RunID,
		Windows: windows,
	}

	if !windows.InOperatingHours {
		slog.InfoContext(ctx, "outside data collection range",
			slog.Time("now", windows.Now),
			slog.Int("hour", windows.LocalHour),
		)
		result.Outcome = domain.OutcomeOutsideOperatingHours
		return result, nil
	}

	marker, duplicate := s.guard.Check(ctx, windows.Now)
	result.Marker = marker.Key()
	if duplicate {
		result.Outcome = domain.OutcomeSkippedDuplicate
		return result, nil
	}

	slog.InfoContext(ctx, "collecting counts",
		slog.Time("now", windows.Now),
		slog.Int64("start_epoch_utc", windows.Recent.StartEpochUTC),
		slog.Int64("duration_seconds", windows.Recent.DurationSeconds),
		slog.Bool("write_enabled", req.WriteEnabled),
		slog.Bool("alert_enabled", req.AlertEnabled),
	)

	var badData []string
	for _, station := range s.cfg.Stations {
		obs := domain.NewStationObservation(station.Group, station.ID)

		counts, err := s.fetch(ctx, station, windows.Recent, windowRecent)
		if err != nil {
			obs.FetchError = err.Error()
			if errors.Is(err, domain.ErrDataUnavailable) {
				badData = append(badData, fmt.Sprintf("%s (%s): %s", station.Group, station.ID, err.Error()))
			}
		} else {
			obs.LaneCounts = counts
		}

		result.Observations = append(result.Observations, obs)
	}

	if len(badData) > 0 {
		n, err := s.dispatcher.ReportBadData(ctx, strings.Join(badData, "\n"), windows.Now, windows.InOperatingHours, req.AlertEnabled)
		if err != nil {
			slog.WarnContext(ctx, "failed to report bad count data",
				slog.String("error", err.Error()),
			)
		}
		result.OperationalAlert = n
	}

	if hourMarker, ok := s.engine.Checkpoint(windows.LocalHour, windows.LocalMinute, windows.LocalWeekday); ok && s.hasAlert {
		result.HourMarker = hourMarker
		if forecast, ok := s.forecast(ctx, hourMarker, windows); ok {
			result.Forecast = &forecast
			if obs := findObservation(result.Observations, s.alertTable.Group); obs != nil {
				obs.Forecast = &forecast
			}
		}
	} else {
		slog.DebugContext(ctx, "skipping prediction",
			slog.Int("hour", windows.LocalHour),
			slog.Int("minute", windows.LocalMinute),
			slog.Int("weekday", windows.LocalWeekday),
		)
	}

	if err := s.upsert(ctx, result, req.WriteEnabled); err != nil {
		return result, err
	}

	if result.Forecast != nil {
		if event, ok := alert.Evaluate(s.alertTable.Lane, *result.Forecast, windows.Now); ok {
			n := alert.TrafficNotification(event)
			result.Alert = &n

			dispatched, err := s.dispatcher.Dispatch(ctx, n, req.AlertEnabled)
			if err != nil {
				return result, err
			}
			result.AlertDispatched = dispatched
		}
	}

	if req.WriteEnabled {
		s.recordMeasurements(ctx, req.RunID, result)
	}

	result.MarkerRecorded = s.guard.Record(ctx, marker, req.WriteEnabled)
	result.Outcome = domain.OutcomeCompleted

	slog.InfoContext(ctx, "collection completed",
		slog.Int("station_count", len(result.Observations)),
		slog.Int("write_count", len(result.Writes)),
		slog.Int("applied_write_count", result.AppliedWrites()),
		slog.Bool("alerted", result.Alert != nil),
	)

	return result, nil
}

// fetch isolates a station failure: the caller degrades it to no data.
func (s *Service) fetch(ctx context.Context, station config.Station, w domain.MeasurementWindow, windowName string) (domain.LaneCounts, error) {
	ctx, span := tracing.StartFetchSpan(ctx, station.Group.String(), station.ID, w.Start(), w.DurationSeconds)
	defer span.End()

	started := time.Now()
	counts, err := s.source.FetchCounts(ctx, station.ID, w)

	outcome := "success"
	switch {
	case err != nil:
		outcome = "error"
		slog.WarnContext(ctx, "failed to fetch counts",
			slog.String("station_group", station.Group.String()),
			slog.String("station_id", station.ID),
			slog.String("window", windowName),
			slog.String("error", err.Error()),
		)
	case counts.IsEmpty():
		outcome = "empty"
		slog.InfoContext(ctx, "no counts for station",
			slog.String("station_group", station.Group.String()),
			slog.String("station_id", station.ID),
			slog.String("window", windowName),
		)
	default:
		slog.DebugContext(ctx, "fetched counts",
			slog.String("station_group", station.Group.String()),
			slog.String("station_id", station.ID),
			slog.String("window", windowName),
			slog.Any("counts", counts),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordStationFetch(ctx, station.Group.String(), windowName, outcome, time.Since(started))
	}
	tracing.RecordResult(span, err)

	if err != nil {
		return domain.LaneCounts{}, err
	}
	if counts == nil {
		counts = domain.LaneCounts{}
	}
	return counts, nil
}

// forecast reports false when no forecast should be kept for hourMarker.
func (s *Service) forecast(ctx context.Context, hourMarker domain.HourMarker, windows window.Windows) (domain.Forecast, bool) {
	station, ok := s.cfg.StationFor(s.alertTable.Group)
	if !ok {
		slog.WarnContext(ctx, "no station configured for alert group",
			slog.String("group", s.alertTable.Group.String()),
		)
		return domain.Forecast{}, false
	}

	obs := prediction.Unavailable()
	counts, err := s.fetch(ctx, station, windows.TodayElapsed, windowTodayElapsed)
	if err == nil {
		if v, ok := counts[s.alertTable.Lane]; ok {
			obs = prediction.Observed(v)
		} else {
			slog.InfoContext(ctx, "no elapsed-day data for alert lane",
				slog.String("lane", s.alertTable.Lane),
			)
		}
	}

	fallback := func(ctx context.Context) (int, error) {
		record, err := s.manager.TodayRecord(ctx, s.alertTable.Name, windows.Now)
		if err != nil {
			return 0, err
		}
		return prediction.RecoverTotal(record, s.manager.Layout().ElapsedSlots(windows.LocalHour, windows.LocalMinute))
	}

	forecast, err := s.engine.Forecast(ctx, hourMarker, windows.LocalHour, windows.LocalWeekday, obs, fallback)

	outcome := "predicted"
	keep := true
	switch {
	case errors.Is(err, domain.ErrRecoveryExhausted):
		outcome = "recovery_exhausted"
		keep = false
		slog.InfoContext(ctx, "elapsed-day total unavailable, prediction suppressed",
			slog.String("marker", hourMarker.String()),
		)
	case errors.Is(err, domain.ErrPredictionNotApplicable):
		outcome = "not_applicable"
		slog.InfoContext(ctx, "no prediction available",
			slog.String("marker", hourMarker.String()),
			slog.Int("actual", forecast.Actual),
		)
	case err != nil:
		outcome = "error"
		keep = false
		slog.WarnContext(ctx, "prediction failed",
			slog.String("marker", hourMarker.String()),
			slog.String("error", err.Error()),
		)
	case !forecast.HasPrediction():
		outcome = "actual_only"
	case forecast.IsSignalOnly():
		outcome = "over_threshold"
		slog.InfoContext(ctx, "elapsed-day total over midday threshold",
			slog.String("marker", hourMarker.String()),
			slog.Int("actual", forecast.Actual),
		)
	default:
		predicted, _ := forecast.PredictedValue()
		slog.InfoContext(ctx, "prediction computed",
			slog.String("marker", hourMarker.String()),
			slog.Int("actual", forecast.Actual),
			slog.Int("predicted", predicted),
		)
	}

	if s.metrics != nil {
		s.metrics.RecordPrediction(ctx, hourMarker.String(), outcome)
	}

	return forecast, keep
}

func (s *Service) upsert(ctx context.Context, result *Result, writeEnabled bool) error {
	for _, table := range s.cfg.LaneTables {
		obs := findObservation(result.Observations, table.Group)
		if obs == nil {
			continue
		}

		value, ok := obs.LaneCounts.Volume(table.Lane)
		if !ok {
			slog.WarnContext(ctx, "no count for lane, table left unchanged",
				slog.String("table", table.Name),
				slog.String("lane", table.Lane),
			)
			continue
		}

		writes, err := s.manager.UpsertSlot(ctx, table.Name, result.Windows.Now, value, writeEnabled)
		result.Writes = append(result.Writes, writes...)
		if err != nil {
			return fmt.Errorf("failed to upsert %s: %w", table.Name, err)
		}
	}

	if result.Forecast == nil {
		return nil
	}

	writes, err := s.manager.UpsertPrediction(ctx, result.Windows.Now, result.HourMarker, *result.Forecast, writeEnabled)
	result.Writes = append(result.Writes, writes...)
	if err != nil {
		return fmt.Errorf("failed to upsert prediction: %w", err)
	}

	return nil
}

func (s *Service) recordMeasurements(ctx context.Context, runID string, result *Result) {
	if s.recorder == nil {
		return
	}

	var records []domain.MeasurementRecord
	for _, obs := range result.Observations {
		for lane, volume := range obs.LaneCounts {
			records = append(records, domain.MeasurementRecord{
				RunID:           runID,
				WindowStart:     result.Windows.Recent.Start(),
				DurationSeconds: result.Windows.Recent.DurationSeconds,
				StationGroup:    obs.StationGroup.String(),
				StationID:       obs.StationID,
				Lane:            lane,
				Volume:          max(0, volume),
			})
		}
	}

	if len(records) > 0 {
		if err := s.recorder.RecordMeasurements(ctx, records); err != nil {
			slog.WarnContext(ctx, "failed to record measurements",
				slog.String("error", err.Error()),
			)
		}
	}

	if result.Forecast != nil {
		predicted, ok := result.Forecast.PredictedValue()
		record := domain.ForecastRecord{
			RunID:      runID,
			At:         result.Windows.Now,
			Key:        s.alertTable.Lane,
			HourMarker: result.HourMarker.String(),
			Actual:     result.Forecast.Actual,
			Predicted:  predicted,
			HasPredict: ok,
		}
		if err := s.recorder.RecordForecast(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record forecast",
				slog.String("error", err.Error()),
			)
		}
	}
}

func findObservation(observations []*domain.StationObservation, group domain.StationGroup) *domain.StationObservation {
	for _, obs := range observations {
		if obs.StationGroup == group {
			return obs
		}
	}
	return nil
}

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"storeops/internal/platform/config"
	"storeops/internal/platform/metrics"
)

const JobReconcileSweep = "reconcile_sweep"

// Service runs background jobs through a single worker and records each run
// in job_runs. The only scheduled job is the till reconciliation sweep,
// which flags store-days whose recorded sales drifted from the counted
// cash.
type Service struct {
	DB      *pgxpool.Pool
	Cfg     config.Config
	Metrics *metrics.Collector
	queue   chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, cfg config.Config, collector *metrics.Collector) *Service {
	return &Service{
		DB:      db,
		Cfg:     cfg,
		Metrics: collector,
		queue:   make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.ReconcileInterval > 0 {
		go s.scheduleReconcileSweep(ctx, s.Cfg.ReconcileInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleReconcileSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobReconcileSweep, func(ctx context.Context) (any, error) {
				return s.reconcileSweep(ctx, interval)
			})
		}
	}
}

type driftedDay struct {
	StoreID    string `json:"storeId"`
	SaleDate   string `json:"saleDate"`
	Currency   string `json:"currency"`
	Difference int64  `json:"difference"`
}

// reconcileSweep finds sale rows from the last window whose difference is
// nonzero and surfaces them for the back office to chase.
func (s *Service) reconcileSweep(ctx context.Context, window time.Duration) (any, error) {
	since := time.Now().Add(-window)
	rows, err := s.DB.Query(ctx, `
    SELECT store_id, sale_date, currency, difference
    FROM sales
    WHERE difference <> 0 AND updated_at >= $1
    ORDER BY sale_date
  `, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var drifted []driftedDay
	for rows.Next() {
		var day driftedDay
		var saleDate time.Time
		if err := rows.Scan(&day.StoreID, &saleDate, &day.Currency, &day.Difference); err != nil {
			return nil, err
		}
		day.SaleDate = saleDate.Format("2006-01-02")
		drifted = append(drifted, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.RecordDriftedDays(len(drifted))
	}
	for _, day := range drifted {
		slog.Warn("till did not reconcile",
			"storeId", day.StoreID,
			"saleDate", day.SaleDate,
			"currency", day.Currency,
			"difference", day.Difference,
		)
	}

	return map[string]any{
		"driftedDays": len(drifted),
		"details":     drifted,
	}, nil
}

package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/scorefeed/scorefeed/internal/usecase"
)

// Internal job endpoints run one sync pass synchronously and return its
// report. They exist for operators and the external dispatcher; the
// in-process scheduler runs the same passes on its own cadence.

func (h *Handler) RunSyncLeaguesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLeaguesJob")
	defer span.End()

	report, err := h.referenceSync.SyncLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync leagues job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunSyncTeamsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncTeamsJob")
	defer span.End()

	var req syncTeamsRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report, err := h.referenceSync.SyncTeams(ctx, req.LeagueAPIID, req.SeasonYear)
	if err != nil {
		h.logger.WarnContext(ctx, "sync teams job failed", "league_api_id", req.LeagueAPIID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunSyncDateJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncDateJob")
	defer span.End()

	var req syncDateRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput))
			return
		}
		date = parsed
	}

	report, err := h.fixtureSync.SyncMatchesForDate(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "sync date job failed", "date", date.Format("2006-01-02"), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunSyncLiveJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunSyncLiveJob")
	defer span.End()

	report, err := h.liveSync.RefreshLiveMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "sync live job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunCleanupStaleJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunCleanupStaleJob")
	defer span.End()

	report, err := h.liveSync.CleanupStaleLive(ctx, h.staleThreshold)
	if err != nil {
		h.logger.WarnContext(ctx, "cleanup stale job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) RunBackfillJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunBackfillJob")
	defer span.End()

	var req backfillRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: from must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput))
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: to must be formatted as YYYY-MM-DD", usecase.ErrInvalidInput))
		return
	}

	result, err := h.backfillService.BackfillRange(ctx, usecase.BackfillInput{
		From:       from,
		To:         to,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "backfill job failed", "from", req.From, "to", req.To, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeJobRequest tolerates an empty body so jobs without parameters
// can be triggered with a bare POST.
func decodeJobRequest(r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type syncTeamsRequest struct {
	LeagueAPIID int64 `json:"league_api_id" validate:"required,gt=0"`
	SeasonYear  int   `json:"season_year" validate:"omitempty,gte=2000"`
}

type syncDateRequest struct {
	Date string `json:"date"`
}

type backfillRequest struct {
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gte=1,lte=8"`
}

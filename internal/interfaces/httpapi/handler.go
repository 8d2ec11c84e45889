package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/calebmartin/scorestream/internal/domain/catalog"
	"github.com/calebmartin/scorestream/internal/domain/game"
	"github.com/calebmartin/scorestream/internal/domain/selection"
	"github.com/calebmartin/scorestream/internal/usecase"
)

type Handler struct {
	refreshService   *usecase.RefreshService
	selectionService *usecase.SelectionService
	logger           *slog.Logger
	validator        *validator.Validate
}

func NewHandler(
	refreshService *usecase.RefreshService,
	selectionService *usecase.SelectionService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		refreshService:   refreshService,
		selectionService: selectionService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready once at least one refresh pass has produced a
// snapshot.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	snapshot := h.refreshService.Snapshot()
	if snapshot.UpdatedAt.IsZero() {
		writeError(ctx, w, fmt.Errorf("%w: no scoreboard snapshot yet", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{
		"status":     "ready",
		"updated_at": snapshot.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

// GetScoreboard serves the current snapshot filtered by the selection state.
func (h *Handler) GetScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboard")
	defer span.End()

	snapshot, games := h.filteredSnapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, games))
}

func (h *Handler) GetLiveScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveScoreboard")
	defer span.End()

	snapshot, games := h.filteredSnapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, selection.Live(games)))
}

func (h *Handler) GetUpcomingScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUpcomingScoreboard")
	defer span.End()

	snapshot, games := h.filteredSnapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, selection.Upcoming(games)))
}

func (h *Handler) GetCompletedScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCompletedScoreboard")
	defer span.End()

	snapshot, games := h.filteredSnapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, selection.Completed(games)))
}

func (h *Handler) GetTodayScoreboard(w http.ResponseWriter, r *http.Request) {
	h.dayScoreboard(w, r, 0, "httpapi.Handler.GetTodayScoreboard")
}

func (h *Handler) GetTomorrowScoreboard(w http.ResponseWriter, r *http.Request) {
	h.dayScoreboard(w, r, 1, "httpapi.Handler.GetTomorrowScoreboard")
}

func (h *Handler) dayScoreboard(w http.ResponseWriter, r *http.Request, dayOffset int, spanName string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	loc, err := resolveTimezone(r.URL.Query().Get("tz"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	day := time.Now().In(loc).AddDate(0, 0, dayOffset)
	snapshot, games := h.filteredSnapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, selection.StartsOn(games, day, loc)))
}

// GetScoreboardByLeague buckets the filtered snapshot per league.
func (h *Handler) GetScoreboardByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboardByLeague")
	defer span.End()

	_, games := h.filteredSnapshot()
	grouped := selection.GroupByLeague(games)

	out := make([]leagueGroupDTO, 0, len(grouped))
	for _, league := range catalog.Leagues() {
		bucket, ok := grouped[league]
		if !ok {
			continue
		}
		out = append(out, leagueGroupDTO{
			League: league.ID(),
			Name:   league.DisplayName(),
			Sport:  league.Sport().ID(),
			Games:  gamesToDTO(bucket),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// GetScoreboardBySport buckets the filtered snapshot per sport.
func (h *Handler) GetScoreboardBySport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetScoreboardBySport")
	defer span.End()

	_, games := h.filteredSnapshot()
	grouped := selection.GroupBySport(games)

	out := make([]sportGroupDTO, 0, len(grouped))
	for _, sport := range catalog.Sports() {
		bucket, ok := grouped[sport]
		if !ok {
			continue
		}
		out = append(out, sportGroupDTO{
			Sport: sport.ID(),
			Name:  sport.DisplayName(),
			Icon:  sport.Icon(),
			Games: gamesToDTO(bucket),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

// ListLeagues serves the full catalog grouped by sport with the current
// enablement flags.
func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(h.selectionService.State()))
}

// Refresh triggers one merged fetch immediately. An in-flight pass yields
// 409 rather than stacking.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Refresh")
	defer span.End()

	if err := h.refreshService.RefreshOnce(ctx); err != nil {
		h.logger.WarnContext(ctx, "manual refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	snapshot := h.refreshService.Snapshot()
	writeSuccess(ctx, w, http.StatusOK, h.scoreboardResponse(snapshot, snapshot.Games))
}

func (h *Handler) ToggleSport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleSport")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("sportID"))
	state, err := h.selectionService.ToggleSport(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle sport failed", "sport_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(state))
}

func (h *Handler) ToggleLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleLeague")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("leagueID"))
	state, err := h.selectionService.ToggleLeague(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "toggle league failed", "league_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(state))
}

func (h *Handler) PutFilters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutFilters")
	defer span.End()

	var req putFiltersRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state := h.selectionService.SetFilters(ctx, req.LiveOnly, strings.TrimSpace(req.Query))
	writeSuccess(ctx, w, http.StatusOK, selectionToDTO(state))
}

func (h *Handler) PutRefreshInterval(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutRefreshInterval")
	defer span.End()

	var req putRefreshIntervalRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.refreshService.SetInterval(ctx, req.Seconds); err != nil {
		h.logger.WarnContext(ctx, "set refresh interval failed", "seconds", req.Seconds, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"refresh_interval_seconds": req.Seconds})
}

func (h *Handler) filteredSnapshot() (usecase.Snapshot, []game.Game) {
	snapshot := h.refreshService.Snapshot()
	state := h.selectionService.State()
	return snapshot, selection.Filter(snapshot.Games, state)
}

// scoreboardResponse decorates the snapshot with the refresh loop's live
// status so a failed pass stays visible next to the stale data it kept.
func (h *Handler) scoreboardResponse(snapshot usecase.Snapshot, games []game.Game) scoreboardDTO {
	return scoreboardToDTO(snapshot, games, h.refreshService.IsRefreshing(), h.refreshService.LastError())
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func resolveTimezone(raw string) (*time.Location, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", usecase.ErrInvalidInput, name)
	}
	return loc, nil
}

type putFiltersRequest struct {
	LiveOnly bool   `json:"live_only"`
	Query    string `json:"query" validate:"max=100"`
}

type putRefreshIntervalRequest struct {
	Seconds int `json:"seconds" validate:"required,oneof=15 30 60 300"`
}

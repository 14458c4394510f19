package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/decision"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
	"go.opentelemetry.io/otel/attribute"
)

const maxRequestBody = 4 << 20

type Handler struct {
	ingestionService *usecase.IngestionService
	statsService     *usecase.StatsService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	ingestionService *usecase.IngestionService,
	statsService *usecase.StatsService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		ingestionService: ingestionService,
		statsService:     statsService,
		logger:           logger.Named("httpapi"),
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.statsService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}
	writeSuccess(w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	raw := r.PathValue("number")
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		writeError(w, fmt.Errorf("%w: player number %q is not an integer", usecase.ErrInvalidInput, raw))
		return
	}

	p, err := h.statsService.GetPlayerByNumber(ctx, number)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "number", number, "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) ListSheet(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSheet", attribute.String("stats.sheet", r.PathValue("sheet")))
	defer span.End()

	sheet, items, err := h.statsService.ListSheet(ctx, r.PathValue("sheet"))
	if err != nil {
		h.logger.WarnContext(ctx, "list sheet failed", "sheet", r.PathValue("sheet"), "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, sheetDTO{Sheet: sheet.String(), Players: statsToDTO(items)})
}

func (h *Handler) GetPlayerStat(w http.ResponseWriter, r *http.Request) {
	sheet, name := r.PathValue("sheet"), r.PathValue("name")
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStat",
		attribute.String("stats.sheet", sheet),
		attribute.String("stats.player", name),
	)
	defer span.End()

	item, err := h.statsService.GetPlayerStat(ctx, sheet, name)
	if err != nil {
		h.logger.WarnContext(ctx, "get player stat failed", "sheet", sheet, "player", name, "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, statToDTO(item))
}

func (h *Handler) IngestMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestMatch")
	defer span.End()

	var req ingestMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	report, err := h.ingestionService.ProcessMatch(ctx, usecase.MatchInput{
		MatchKey:       strings.TrimSpace(req.MatchKey),
		Week:           req.Week,
		SourceURL:      strings.TrimSpace(req.SourceURL),
		Tables:         tablesFromDTO(req.Tables),
		ManualFielding: fieldingFromDTO(req.Fielding),
		Decisions:      req.Decisions.script(),
		DryRun:         req.DryRun,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest match failed", "match_key", req.MatchKey, "week", req.Week, "error", err)
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if !report.DryRun {
		status = http.StatusCreated
	}
	writeSuccess(w, status, matchReportToDTO(report))
}

func (h *Handler) IngestWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestWeek", attribute.String("match.week", r.PathValue("week")))
	defer span.End()

	week, err := strconv.Atoi(strings.TrimSpace(r.PathValue("week")))
	if err != nil {
		writeError(w, fmt.Errorf("%w: week %q is not an integer", usecase.ErrInvalidInput, r.PathValue("week")))
		return
	}

	var req ingestWeekRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	input := usecase.WeekInput{
		Week:      week,
		Decisions: req.Decisions.script(),
		DryRun:    req.DryRun,
		Matches:   make([]usecase.MatchInput, 0, len(req.Matches)),
	}
	for _, m := range req.Matches {
		var provider decision.Provider
		if m.Decisions != nil {
			provider = m.Decisions.script()
		}
		input.Matches = append(input.Matches, usecase.MatchInput{
			MatchKey:       strings.TrimSpace(m.MatchKey),
			SourceURL:      strings.TrimSpace(m.SourceURL),
			Tables:         tablesFromDTO(m.Tables),
			ManualFielding: fieldingFromDTO(m.Fielding),
			Decisions:      provider,
		})
	}

	report, err := h.ingestionService.ProcessWeek(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "ingest week failed", "week", week, "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, weekReportToDTO(report))
}

// RefreshRoster drops the cached roster so the next read reloads it.
func (h *Handler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshRoster")
	defer span.End()

	h.statsService.InvalidateRoster(ctx)
	players, err := h.statsService.ListPlayers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reload roster failed", "error", err)
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]int{"players": len(players)})
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(body, maxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, out); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

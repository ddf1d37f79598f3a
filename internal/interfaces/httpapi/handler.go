package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type Handler struct {
	catalogService     *usecase.CatalogService
	rosterService      *usecase.RosterService
	scoringService     *usecase.ScoringService
	leaderboardService *usecase.LeaderboardService
	ingestionService   *usecase.IngestionService
	recalcService      *usecase.RecalcService
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	rosterService *usecase.RosterService,
	scoringService *usecase.ScoringService,
	leaderboardService *usecase.LeaderboardService,
	ingestionService *usecase.IngestionService,
	recalcService *usecase.RecalcService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:     catalogService,
		rosterService:      rosterService,
		scoringService:     scoringService,
		leaderboardService: leaderboardService,
		ingestionService:   ingestionService,
		recalcService:      recalcService,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

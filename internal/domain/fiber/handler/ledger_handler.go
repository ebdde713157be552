package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terminaltitans/skillchain/internal/usecase"
	"github.com/terminaltitans/skillchain/internal/util"
)

// LedgerHandler serves the employer-facing lookup. No auth: anyone holding
// an NFT id or DID may check it.
type LedgerHandler struct {
	uc *usecase.LedgerUsecase
}

func NewLedgerHandler(uc *usecase.LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

func (h *LedgerHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ledger/verify", h.Verify)
	app.Get("/ledger/search", h.SemanticSearch)
	app.Post("/ledger/embeddings", h.CreateEmbeddings)
}

func (h *LedgerHandler) Verify(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "id query parameter is required",
		})
	}

	record, err := h.uc.Verify(c.Context(), id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "ledger lookup failed",
		}, err)
	}
	if record == nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: fmt.Sprintf("No verified record found for ID: %s", id),
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Verified record found",
		Data:    record,
	})
}

func (h *LedgerHandler) SemanticSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "q query parameter is required",
		})
	}

	records, err := h.uc.SemanticSearch(c.Context(), query, c.QueryInt("limit", 5))
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "semantic search failed",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Semantic search results",
		Data:    records,
	})
}

func (h *LedgerHandler) CreateEmbeddings(c *fiber.Ctx) error {
	if err := h.uc.CreateRecordEmbeddings(c.Context()); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create record embeddings",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success create record embeddings",
	})
}

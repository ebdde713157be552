package handler

import (
	"errors"
	"io"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terminaltitans/skillchain/internal/dto"
	"github.com/terminaltitans/skillchain/internal/middleware"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/terminaltitans/skillchain/internal/response"
	"github.com/terminaltitans/skillchain/internal/usecase"
	"github.com/terminaltitans/skillchain/internal/util"
)

type VerifyHandler struct {
	uc       *usecase.VerificationUsecase
	validate *validator.Validate
}

func NewVerifyHandler(uc *usecase.VerificationUsecase) *VerifyHandler {
	return &VerifyHandler{uc: uc, validate: validator.New()}
}

func (h *VerifyHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	verify := app.Group("/verify", auth)
	verify.Post("/document", h.UploadDocument)
	verify.Delete("/document", h.ClearDocument)
	verify.Post("/submit", middleware.RateLimiter(1, 4*time.Second), h.Submit)
	verify.Get("/session", h.Session)
	verify.Delete("/session", h.ClearSession)
	verify.Post("/mint", h.Mint)

	wallet := app.Group("/wallet", auth)
	wallet.Get("/", h.Wallet)
	wallet.Get("/search", h.SearchWallet)
}

// UploadDocument validates and stores the uploaded credential file. File
// validation failures are reported before any attempt state changes.
func (h *VerifyHandler) UploadDocument(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "document file is required",
		}, err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return verifyErrorResponse(c, model.NewVerifyError(model.ErrFileReadFailure,
			"Failed to read the file. It might be corrupted or unreadable."))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return verifyErrorResponse(c, model.NewVerifyError(model.ErrFileReadFailure,
			"Failed to read the file. It might be corrupted or unreadable."))
	}

	doc := &model.Document{
		FileName:  fileHeader.Filename,
		MediaType: fileHeader.Header.Get(fiber.HeaderContentType),
		Size:      fileHeader.Size,
		Data:      data,
	}
	if doc.MediaType == "application/pdf" {
		preview, err := util.ExtractPDFText(data)
		if err != nil {
			// scanned PDFs have no text layer; the gateway still gets the bytes
			log.Printf("PDF text extraction skipped for %s: %v", doc.FileName, err)
		} else {
			doc.TextPreview = preview
		}
	}

	if err := h.uc.SelectDocument(user, doc); err != nil {
		var verr *model.VerifyError
		if errors.As(err, &verr) {
			return verifyErrorResponse(c, verr)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to select document",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Document selected",
		Data:    dto.DocumentView{FileName: doc.FileName, MediaType: doc.MediaType, Size: doc.Size},
	})
}

func (h *VerifyHandler) ClearDocument(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	h.uc.ClearDocument(user)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Document cleared",
	})
}

func (h *VerifyHandler) Submit(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "validation failed",
		}, err)
	}

	result, err := h.uc.Submit(c.Context(), user, usecase.SubmitInput{
		Text:        req.Text,
		GithubURL:   req.GithubURL,
		LinkedinURL: req.LinkedinURL,
		PrivacyMode: req.PrivacyMode,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAnalysisInProgress):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: "An analysis is already in progress",
			}, err)
		case errors.Is(err, usecase.ErrNothingToAnalyze):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Please provide resume text or upload a document first",
			}, err)
		}
		var verr *model.VerifyError
		if errors.As(err, &verr) {
			return verifyErrorResponse(c, verr)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "verification failed",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Analysis complete",
		Data:    result,
	})
}

func (h *VerifyHandler) Session(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Current verification session",
		Data:    dto.NewSessionView(h.uc.Session(user)),
	})
}

func (h *VerifyHandler) ClearSession(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	h.uc.ClearSession(user)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Session cleared",
	})
}

func (h *VerifyHandler) Mint(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	minted, err := h.uc.Mint(user)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCannotMint):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusBadRequest,
				Message: "Cannot mint fake or rejected documents.",
			}, err)
		case errors.Is(err, usecase.ErrAlreadyMinted):
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusConflict,
				Message: "Credential already in your wallet.",
			}, err)
		}
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "mint failed",
		}, err)
	}

	nftIDs := make([]string, 0, len(minted))
	for _, cred := range minted {
		nftIDs = append(nftIDs, cred.NFTID)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Credential successfully minted as an NFT",
		Data:    dto.MintResponse{NFTIDs: nftIDs, Credentials: minted},
	})
}

func (h *VerifyHandler) Wallet(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	pageSize := c.QueryInt("page_size", 20)
	if pageSize > 100 {
		pageSize = 20
	}

	all := h.uc.Wallet(user).All()
	from, to, pagination := response.Paginate(c.QueryInt("page", 1), pageSize, len(all))

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Verified credentials wallet",
		Data:       all[from:to],
		Pagination: pagination,
	})
}

func (h *VerifyHandler) SearchWallet(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	results := h.uc.Wallet(user).Search(c.Query("q"))
	if results == nil {
		results = []model.MintedCredential{}
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Wallet search results",
		Data:    results,
	})
}

// verifyErrorResponse renders a categorized verification failure with the
// HTTP status that fits its category.
func verifyErrorResponse(c *fiber.Ctx, verr *model.VerifyError) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    statusForCategory(verr.Category),
		Message: verr.Message,
		Details: fiber.Map{"category": verr.Category},
	})
}

func statusForCategory(category model.ErrorCategory) int {
	switch category {
	case model.ErrUnsupportedFileType:
		return fiber.StatusUnsupportedMediaType
	case model.ErrFileTooLarge:
		return fiber.StatusRequestEntityTooLarge
	case model.ErrFileReadFailure:
		return fiber.StatusBadRequest
	case model.ErrRequestTimeout:
		return fiber.StatusGatewayTimeout
	case model.ErrMalformedDocument, model.ErrContentSafetyRejected:
		return fiber.StatusUnprocessableEntity
	case model.ErrGatewayAuthFailure, model.ErrNetworkFailure:
		return fiber.StatusBadGateway
	case model.ErrGatewayOverloaded:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

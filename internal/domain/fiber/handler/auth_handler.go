package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/terminaltitans/skillchain/internal/dto"
	"github.com/terminaltitans/skillchain/internal/middleware"
	"github.com/terminaltitans/skillchain/internal/model"
	"github.com/terminaltitans/skillchain/internal/service"
	"github.com/terminaltitans/skillchain/internal/usecase"
	"github.com/terminaltitans/skillchain/internal/util"
)

// AuthHandler issues demo session tokens. Any credentials are accepted;
// there is no account store. Logout clears the wallet, nothing else.
type AuthHandler struct {
	jwt      *service.JWTService
	uc       *usecase.VerificationUsecase
	validate *validator.Validate
}

func NewAuthHandler(jwt *service.JWTService, uc *usecase.VerificationUsecase) *AuthHandler {
	return &AuthHandler{jwt: jwt, uc: uc, validate: validator.New()}
}

func (h *AuthHandler) RegisterRoutes(app *fiber.App, auth fiber.Handler) {
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	app.Post("/auth/logout", auth, h.Logout)
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
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
	return h.issueToken(c, req.Name, req.Email, req.Role)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
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
	return h.issueToken(c, "", req.Email, "")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, ok := middleware.UserFromCtx(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	h.uc.Logout(user)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Logged out, wallet cleared",
	})
}

func (h *AuthHandler) issueToken(c *fiber.Ctx, name, email, role string) error {
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	userRole := model.RoleCandidate
	if role == string(model.RoleEmployer) {
		userRole = model.RoleEmployer
	}
	user := model.User{Name: name, Email: email, Role: userRole}

	token, err := h.jwt.GenerateToken(user)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to create session",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Signed in",
		Data:    dto.AuthResponse{Token: token, User: user},
	})
}

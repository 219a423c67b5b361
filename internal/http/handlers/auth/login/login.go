// Package login реализует HTTP-обработчик входа пользователя.
//
// Обработчик декодирует email и пароль, проверяет их валидатором и делегирует
// вход сервису аутентификации. При успехе возвращается токен сессии.
package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/deuxal/insurance-portal/internal/http/response"
	"github.com/deuxal/insurance-portal/internal/lib/jwt"
	"github.com/deuxal/insurance-portal/internal/lib/sl"
	services "github.com/deuxal/insurance-portal/internal/services/auth"
)

// Request - учетные данные пользователя.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, email, password string) (string, *jwt.Claims, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Connexion
// @Description Vérifie l'email et le mot de passe et renvoie un jeton de session.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Identifiants"
// @Success 200 {object} response.Response "Jeton de session"
// @Failure 400 {object} response.ErrorResponse "JSON invalide"
// @Failure 401 {object} response.ErrorResponse "Email ou mot de passe incorrect"
// @Failure 422 {object} response.ErrorResponse "Erreur de validation"
// @Failure 500 {object} response.ErrorResponse "Erreur interne"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, claims, err := h.service.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn("invalid credentials", slog.String("email", req.Email))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	log.Info("login success", sl.UserID(claims.UserID()))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token":      token,
		"user_id":    claims.UserID(),
		"email":      claims.Email,
		"expires_at": claims.ExpiresAt.Time,
	}))
}

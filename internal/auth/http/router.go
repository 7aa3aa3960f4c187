package http

import (
	"context"
	"net/http"
	"time"

	"github.com/techchallenge/vehicle-api/internal/auth/service"
	"github.com/techchallenge/vehicle-api/internal/common/constants"
	commonhttp "github.com/techchallenge/vehicle-api/internal/common/http"
	"github.com/techchallenge/vehicle-api/internal/common/logger"
	userdomain "github.com/techchallenge/vehicle-api/internal/user/domain"
)

type AuthService interface {
	Register(ctx context.Context, input service.RegisterInput) (userdomain.User, error)
	Login(ctx context.Context, input service.LoginInput) (service.LoginResult, error)
}

type Config struct {
	RequestTimeout time.Duration
	ServiceName    string
}

type Handler struct {
	auth   AuthService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(auth AuthService, authenticator Authenticator, cfg Config, log *logger.Logger) http.Handler {
	if cfg.ServiceName == "" {
		cfg.ServiceName = constants.ServiceName
	}

	h := &Handler{
		auth:   auth,
		errors: commonhttp.NewErrorHandler(log),
		log:    log,
	}
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)
	requireUser := RequireUser(authenticator, h.errors)

	mux := http.NewServeMux()
	mux.HandleFunc(constants.RouteHealth, commonhttp.HealthHandler(cfg.ServiceName))
	mux.HandleFunc(constants.RouteRegister, commonhttp.RequireMethod(http.MethodPost)(timeout(h.register)))
	mux.HandleFunc(constants.RouteLogin, commonhttp.RequireMethod(http.MethodPost)(timeout(h.login)))
	mux.Handle(constants.RouteMe, commonhttp.RequireMethod(http.MethodGet)(timeout(requireUser(http.HandlerFunc(h.me)).ServeHTTP)))
	mux.HandleFunc("/", h.notFound)
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "register_invalid_request",
		}).Warnf("register failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeAndValidate(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "login_invalid_request",
		}).Warnf("login failed: %v", err)
		h.errors.HandleError(w, r, err)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.errors.HandleError(w, r, service.ErrNotAuthenticated)
		return
	}
	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "not found", nil, commonhttp.TraceIDFromContext(r.Context()))
}

package http

import (
	"net/http"

	"github.com/AlibekovAA/account-service/internal/account/domain"
	"github.com/AlibekovAA/account-service/internal/account/service"
	"github.com/AlibekovAA/account-service/internal/common/config"
	commonerrors "github.com/AlibekovAA/account-service/internal/common/errors"
	commonhttp "github.com/AlibekovAA/account-service/internal/common/http"
	"github.com/AlibekovAA/account-service/internal/common/jwtverify"
	"github.com/AlibekovAA/account-service/internal/common/logger"
)

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type profileUserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type profileResponse struct {
	User profileUserResponse `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	accounts service.Service
	verifier jwtverify.TokenVerifier
	cfg      config.AccountConfig
	log      *logger.Logger
}

func NewHandler(accounts service.Service, verifier jwtverify.TokenVerifier, cfg config.AccountConfig, log *logger.Logger) http.Handler {
	h := &Handler{accounts: accounts, verifier: verifier, cfg: cfg, log: log}
	timeout := commonhttp.WithTimeout(cfg.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.HandleFunc("/signup", commonhttp.RequireMethod(http.MethodPost)(timeout(h.signup)))
	mux.HandleFunc("/login", commonhttp.RequireMethod(http.MethodPost)(timeout(h.login)))
	mux.Handle("/profile", h.protected(http.MethodGet, timeout(h.profile)))
	mux.Handle("/logout", h.protected(http.MethodPost, h.logout))
	mux.HandleFunc("/", h.notFound)
	return mux
}

// protected checks the method before the bearer token so a wrong method is
// always 405 regardless of credentials.
func (h *Handler) protected(method string, next http.HandlerFunc) http.Handler {
	authenticated := jwtverify.Middleware(h.verifier, h.log)(next)
	return commonhttp.RequireMethod(method)(authenticated.ServeHTTP)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "signup_invalid_json"}).Warnf("signup failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.accounts.Signup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User created successfully!",
		Token:   result.Token,
		User:    toUserResponse(result.Account),
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"action": "login_invalid_json"}).Warnf("login failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	result, err := h.accounts.Login(r.Context(), service.LoginInput{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful!",
		Token:   result.Token,
		User:    toUserResponse(result.Account),
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingAuthorization, h.log)
		return
	}

	view, err := h.accounts.Profile(r.Context(), claims)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, profileResponse{
		User: profileUserResponse{
			ID:        string(view.ID),
			Email:     view.Email,
			Username:  view.Username,
			CreatedAt: view.CreatedAt.UTC().Format(timeLayout),
		},
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.HandleError(w, r, commonerrors.ErrMissingAuthorization, h.log)
		return
	}

	if err := h.accounts.Logout(r.Context(), claims); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	commonhttp.WriteErrorEnvelope(w, http.StatusNotFound, commonhttp.CodeNotFound, "route not found", nil, commonhttp.TraceIDFromContext(r.Context()))
}

// timeLayout matches JavaScript's Date.toISOString.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func toUserResponse(view domain.PublicView) userResponse {
	return userResponse{
		ID:       string(view.ID),
		Email:    view.Email,
		Username: view.Username,
	}
}

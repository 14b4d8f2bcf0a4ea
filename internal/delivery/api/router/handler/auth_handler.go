package handler

import (
	"log/slog"
	"net/http"
	"time"

	"shopkart/config"
	"shopkart/internal/delivery/api/middleware"
	"shopkart/internal/delivery/api/response"
	"shopkart/internal/domain/service"
	"shopkart/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	accessTokenCookie  = middleware.AccessTokenCookie
	refreshTokenCookie = "refreshToken"

	// refreshTokenHeader is the fallback consulted when no refresh cookie
	// is present, for clients that cannot carry cookies.
	refreshTokenHeader = "x-refresh-token"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Codec  service.TokenCodec
	Config *config.Config
	Logger *slog.Logger
}

// AuthHandler holds dependencies for account-related handlers
type AuthHandler struct {
	authUC usecase.AuthUsecase
	codec  service.TokenCodec
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		codec:  params.Codec,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

// Register handles new account creation from a multipart form. The avatar
// file part is opened here and streamed through to the upload.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return response.InternalServerError(c, "AVATAR_UPLOAD_FAILED", "Error reading avatar file")
		}
		defer file.Close()

		input.Avatar = file
		input.AvatarFilename = fileHeader.Filename
	}

	user, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, user)
}

// Login handles credential verification and issues the token pair, both in
// the response body and as HTTP-only cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	out, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return response.Success(c, http.StatusOK, out)
}

// Refresh rotates the refresh token. The presented token is read from the
// refresh cookie, falling back to the x-refresh-token header.
func (h *AuthHandler) Refresh(c echo.Context) error {
	presented := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		presented = cookie.Value
	}
	if presented == "" {
		presented = c.Request().Header.Get(refreshTokenHeader)
	}

	out, err := h.authUC.Refresh(c.Request().Context(), presented)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setTokenCookies(c, out.AccessToken, out.RefreshToken)

	return response.Success(c, http.StatusOK, out)
}

// Logout clears the account's session slot and expires the token cookies.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	if err := h.authUC.Logout(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	h.clearTokenCookies(c)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ChangePassword verifies the old password and stores a new credential hash.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := c.Validate(&input); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input.UserID = userID
	if err := h.authUC.ChangePassword(c.Request().Context(), &input); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// Me returns the sanitized record of the authenticated account.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	user, err := h.authUC.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

func (h *AuthHandler) setTokenCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(h.tokenCookie(accessTokenCookie, accessToken, h.codec.AccessTokenTTL()))
	c.SetCookie(h.tokenCookie(refreshTokenCookie, refreshToken, h.codec.RefreshTokenTTL()))
}

func (h *AuthHandler) clearTokenCookies(c echo.Context) {
	c.SetCookie(h.tokenCookie(accessTokenCookie, "", -time.Second))
	c.SetCookie(h.tokenCookie(refreshTokenCookie, "", -time.Second))
}

func (h *AuthHandler) tokenCookie(name, value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Auth.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

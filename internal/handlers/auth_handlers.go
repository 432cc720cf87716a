package handlers

import (
	"errors"
	"net/http"
	"strings"
	"unicode"

	"storefront/internal/common"
	"storefront/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login and the current-user endpoint.
type AuthHandlers struct {
	authService services.AuthService
	userService services.UserService
}

func NewAuthHandlers(authService services.AuthService, userService services.UserService) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userService: userService,
	}
}

// RegisterRequest represents the registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest represents the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles new account creation.
func (h *AuthHandlers) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if !isValidEmail(req.Email) {
		return common.SendValidationError(c, "email", "A valid email address is required")
	}
	if msg := validatePassword(req.Password); msg != "" {
		return common.SendValidationError(c, "password", msg)
	}
	if len(req.FullName) < 2 {
		return common.SendValidationError(c, "full_name", "Full name must be at least 2 characters")
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateEmail) {
			return c.JSON(http.StatusConflict, common.CreateErrorResponse("DUPLICATE_EMAIL", "Email is already registered", nil))
		}
		c.Logger().Errorf("Registration failed: %v", err)
		return common.SendServerError(c, "Failed to register user")
	}

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues an access token. Every rejection
// answers with the same 401 body.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		c.Logger().Errorf("Login failed: %v", err)
		return common.SendServerError(c, "Failed to log in")
	}
	if user == nil {
		return common.SendUnauthorizedError(c)
	}

	token, err := h.authService.IssueToken(user.ID)
	if err != nil {
		c.Logger().Errorf("Token issuance failed: %v", err)
		return common.SendServerError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Logger().Errorf("Failed to load current user: %v", err)
		return common.SendServerError(c, "Failed to load user")
	}
	if user == nil {
		return common.SendUnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, user)
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

// validatePassword returns an empty string when the password is acceptable.
func validatePassword(password string) string {
	if len(password) < 8 {
		return "Password must be at least 8 characters"
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return "Password must contain an uppercase letter, a lowercase letter and a digit"
	}
	return ""
}

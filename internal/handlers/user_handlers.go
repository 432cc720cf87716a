package handlers

import (
	"net/http"
	"strconv"

	"storefront/internal/common"
	"storefront/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandlers handles user administration endpoints. Listing and deletion
// are superuser-only; reads and updates allow self or superuser.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsers returns a page of users. Superuser only.
func (h *UserHandlers) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()

	if !common.GetIsSuperuserFromContext(ctx) {
		return common.SendForbiddenError(c)
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("page_size"))

	users, err := h.userService.List(ctx, page, pageSize)
	if err != nil {
		c.Logger().Errorf("Failed to list users: %v", err)
		return common.SendServerError(c, "Failed to list users")
	}

	return c.JSON(http.StatusOK, users)
}

// GetUser returns a user by id. Self or superuser.
func (h *UserHandlers) GetUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid user ID format")
	}

	if !h.canAccess(c, userID) {
		return common.SendForbiddenError(c)
	}

	user, err := h.userService.GetByID(ctx, userID)
	if err != nil {
		c.Logger().Errorf("Failed to get user %s: %v", userID, err)
		return common.SendServerError(c, "Failed to get user")
	}
	if user == nil {
		return common.SendNotFoundError(c, "User")
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser applies partial updates. Self or superuser; only a superuser
// may change is_active and is_superuser.
func (h *UserHandlers) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid user ID format")
	}

	if !h.canAccess(c, userID) {
		return common.SendForbiddenError(c)
	}

	var update services.UserUpdate
	if err := c.Bind(&update); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if !common.GetIsSuperuserFromContext(ctx) {
		update.IsActive = nil
		update.IsSuperuser = nil
	}

	user, err := h.userService.Update(ctx, userID, update)
	if err != nil {
		c.Logger().Errorf("Failed to update user %s: %v", userID, err)
		return common.SendServerError(c, "Failed to update user")
	}
	if user == nil {
		return common.SendNotFoundError(c, "User")
	}

	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user. Superuser only.
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()

	if !common.GetIsSuperuserFromContext(ctx) {
		return common.SendForbiddenError(c)
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return common.SendValidationError(c, "id", "Invalid user ID format")
	}

	deleted, err := h.userService.Delete(ctx, userID)
	if err != nil {
		c.Logger().Errorf("Failed to delete user %s: %v", userID, err)
		return common.SendServerError(c, "Failed to delete user")
	}
	if !deleted {
		return common.SendNotFoundError(c, "User")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

func (h *UserHandlers) canAccess(c echo.Context, target uuid.UUID) bool {
	ctx := c.Request().Context()
	if common.GetIsSuperuserFromContext(ctx) {
		return true
	}
	callerID, ok := common.GetUserIDFromContext(ctx)
	return ok && callerID == target
}

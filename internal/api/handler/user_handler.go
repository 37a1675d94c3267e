package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authgate/auth-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AdminData returns a summary for the admin dashboard.
//
// @Summary      Admin dashboard data
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dataResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Router       /admin/data [get]
func (h *UserHandler) AdminData(c echo.Context) error {
	total, err := h.userService.Count(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{
		Message: "This is sensitive admin data!",
		Data: adminSummary{
			TotalUsers:     total,
			ActiveSessions: "N/A (stateless JWT)",
			ServerStatus:   "Operational",
		},
	})
}

// GetByID returns one user. Admins may read anyone, users only themselves.
//
// @Summary      Get user by id
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  dataResponse
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /user/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	profile, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Message: "User data retrieved successfully!", Data: profile})
}

// List returns every user.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {object}  listResponse
// @Failure      403  {object}  errorBody
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	profiles, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{
		Message: "All users retrieved successfully!",
		Data:    profiles,
		Count:   len(profiles),
	})
}

// ResetPassword sets a new password for another user.
//
// @Summary      Reset a user's password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "User ID"
// @Param        body  body      ports.ResetPasswordInput  true  "New password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /user/reset-password/{id} [put]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var in ports.ResetPasswordInput
	if err := c.Bind(&in); err != nil {
		return errInvalidBody
	}

	id := c.Param("id")
	if _, err := h.userService.ResetPassword(c.Request().Context(), id, in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("Password for user ID %s reset successfully.", id)})
}

// Delete removes a user.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /user/delete/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.userService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("User with ID %s deleted successfully.", id)})
}

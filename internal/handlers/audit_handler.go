package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "optionlab/internal/errors"
	"optionlab/internal/pagination"
	"optionlab/internal/services"
)

// AuditHandler exposes the signed-in user's audit trail.
type AuditHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(userService services.UserServicer, auditService services.AuditServicer) *AuditHandler {
	return &AuditHandler{userService: userService, auditService: auditService}
}

// ListAuditLogs returns one page of the user's audit entries, newest first.
// @Summary     List audit entries
// @Description Page through login, logout and strategy events recorded for the signed-in user
// @Tags        audit
// @Produce     json
// @Security    SessionCookie
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.AuditLog]
// @Failure     400 {object} ErrorResponse "Invalid pagination"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /audit-logs [get]
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	email, err := getEmail(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	page.Defaults()

	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, total, err := h.auditService.ListForUser(user.ID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, pagination.NewPageResponse(entries, page.Page, page.PageSize, total))
}

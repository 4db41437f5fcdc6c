package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sahajbooks/gst_books_app/internal/apperrors"
	"github.com/sahajbooks/gst_books_app/internal/core/domain"
	portssvc "github.com/sahajbooks/gst_books_app/internal/core/ports/services"
	"github.com/sahajbooks/gst_books_app/internal/dto"
	"github.com/sahajbooks/gst_books_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// workspaceHandler handles HTTP requests related to workspaces.
type workspaceHandler struct {
	workspaceService portssvc.WorkspaceSvcFacade
}

// newWorkspaceHandler creates a new workspaceHandler.
func newWorkspaceHandler(ws portssvc.WorkspaceSvcFacade) *workspaceHandler {
	return &workspaceHandler{
		workspaceService: ws,
	}
}

// registerWorkspaceRoutes registers workspace management routes and nests
// every workspace-scoped resource (accounts, vouchers, documents, returns,
// reports, projections) under /workspaces/:workspace_id.
func registerWorkspaceRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newWorkspaceHandler(services.Workspace)

	workspaces := rg.Group("/workspaces")
	{
		workspaces.POST("", h.createWorkspace)
		workspaces.GET("", h.listUserWorkspaces)
	}

	workspace := rg.Group("/workspaces/:workspace_id")
	{
		workspace.GET("", h.getWorkspace)
		workspace.POST("/activate", h.activateWorkspace)
		workspace.POST("/deactivate", h.deactivateWorkspace)

		members := workspace.Group("/users")
		{
			members.GET("", h.listWorkspaceUsers)
			members.POST("", h.addUserToWorkspace)
			members.PUT("/:user_id/role", h.updateUserRole)
			members.DELETE("/:user_id", h.removeUserFromWorkspace)
		}

		RegisterAccountRoutes(workspace, services.Account, services.Voucher)
		RegisterVoucherRoutes(workspace, services.Voucher)
		RegisterInvoiceRoutes(workspace, services.Invoice)
		RegisterPurchaseRoutes(workspace, services.Purchase)
		RegisterGSTRoutes(workspace, services.GST)
		RegisterReportingRoutes(workspace, services.Reporting)
		RegisterCMARoutes(workspace, services.CMA)
	}
}

// createWorkspace godoc
// @Summary Create a new workspace
// @Description Creates a workspace, makes the creator its admin and seeds the default chart of accounts
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace body dto.CreateWorkspaceRequest true "Workspace details"
// @Success 201 {object} dto.WorkspaceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create workspace"
// @Security BearerAuth
// @Router /workspaces [post]
func (h *workspaceHandler) createWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("creator_user_id", creatorUserID))
	logger.Info("Received request to create workspace", slog.String("workspace_name", req.Name))

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating workspace", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to create workspace in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	logger.Info("Workspace created successfully", slog.String("workspace_id", workspace.WorkspaceID))
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// getWorkspace godoc
// @Summary Get a workspace by ID
// @Description Retrieves a workspace the calling user is a member of
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.WorkspaceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 500 {object} map[string]string "Failed to retrieve workspace"
// @Security BearerAuth
// @Router /workspaces/{workspace_id} [get]
func (h *workspaceHandler) getWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))

	if err := h.workspaceService.AuthorizeUserAction(c.Request.Context(), userID, workspaceID, domain.RoleReadOnly); err != nil {
		h.respondWorkspaceError(c, logger, err, "retrieve workspace")
		return
	}

	workspace, err := h.workspaceService.FindWorkspaceByID(c.Request.Context(), workspaceID)
	if err != nil {
		h.respondWorkspaceError(c, logger, err, "retrieve workspace")
		return
	}

	logger.Debug("Workspace retrieved successfully")
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// listUserWorkspaces godoc
// @Summary List workspaces for the current user
// @Description Retrieves the workspaces the authenticated user belongs to
// @Tags workspaces
// @Produce  json
// @Param   includeDisabled query bool false "Include deactivated workspaces" default(false)
// @Success 200 {object} dto.ListWorkspacesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list workspaces"
// @Security BearerAuth
// @Router /workspaces [get]
func (h *workspaceHandler) listUserWorkspaces(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListWorkspacesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListUserWorkspaces", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("user_id", userID))

	workspaces, err := h.workspaceService.ListUserWorkspaces(c.Request.Context(), userID, params.IncludeDisabled)
	if err != nil {
		logger.Error("Failed to list workspaces from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workspaces"})
		return
	}

	logger.Debug("Workspaces listed successfully", slog.Int("count", len(workspaces)))
	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

// activateWorkspace godoc
// @Summary Activate a workspace
// @Description Marks a deactivated workspace active again (admin only)
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 500 {object} map[string]string "Failed to activate workspace"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/activate [post]
func (h *workspaceHandler) activateWorkspace(c *gin.Context) {
	h.setWorkspaceStatus(c, true)
}

// deactivateWorkspace godoc
// @Summary Deactivate a workspace
// @Description Marks a workspace inactive; it disappears from default listings (admin only)
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 500 {object} map[string]string "Failed to deactivate workspace"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/deactivate [post]
func (h *workspaceHandler) deactivateWorkspace(c *gin.Context) {
	h.setWorkspaceStatus(c, false)
}

func (h *workspaceHandler) setWorkspaceStatus(c *gin.Context, active bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID), slog.Bool("active", active))
	logger.Info("Received request to change workspace status")

	var err error
	if active {
		err = h.workspaceService.ActivateWorkspace(c.Request.Context(), workspaceID, userID)
	} else {
		err = h.workspaceService.DeactivateWorkspace(c.Request.Context(), workspaceID, userID)
	}
	if err != nil {
		h.respondWorkspaceError(c, logger, err, "change workspace status")
		return
	}

	logger.Info("Workspace status changed successfully")
	c.Status(http.StatusNoContent)
}

// listWorkspaceUsers godoc
// @Summary List members of a workspace
// @Description Retrieves the users of a workspace with their roles
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.ListWorkspaceUsersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Workspace not found"
// @Failure 500 {object} map[string]string "Failed to list members"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users [get]
func (h *workspaceHandler) listWorkspaceUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("user_id", userID))

	members, err := h.workspaceService.ListWorkspaceUsers(c.Request.Context(), workspaceID, userID)
	if err != nil {
		h.respondWorkspaceError(c, logger, err, "list workspace members")
		return
	}

	logger.Debug("Workspace members listed successfully", slog.Int("count", len(members)))
	c.JSON(http.StatusOK, dto.ToListWorkspaceUsersResponse(members))
}

// addUserToWorkspace godoc
// @Summary Add a user to a workspace
// @Description Adds a user to the workspace with a role (admin only)
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_details body dto.AddUserToWorkspaceRequest true "User ID and role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workspace or user not found"
// @Failure 500 {object} map[string]string "Failed to add user"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users [post]
func (h *workspaceHandler) addUserToWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.AddUserToWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddUserToWorkspace", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Adding user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("adding_user_id", addingUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", req.UserID),
	)
	logger.Info("Received request to add user to workspace", slog.String("role", string(req.Role)))

	if err := h.workspaceService.AddUserToWorkspace(c.Request.Context(), addingUserID, req.UserID, workspaceID, req.Role); err != nil {
		h.respondWorkspaceError(c, logger, err, "add user to workspace")
		return
	}

	logger.Info("User added to workspace successfully")
	c.Status(http.StatusNoContent)
}

// updateUserRole godoc
// @Summary Change a member's role
// @Description Updates a member's role in the workspace (admin only, not on oneself)
// @Tags workspaces
// @Accept  json
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "Target user ID"
// @Param   role body dto.UpdateUserWorkspaceRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workspace or user not found"
// @Failure 500 {object} map[string]string "Failed to update role"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users/{user_id}/role [put]
func (h *workspaceHandler) updateUserRole(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	targetUserID := c.Param("user_id")

	var req dto.UpdateUserWorkspaceRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateUserRole", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("requesting_user_id", requestingUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID),
	)
	logger.Info("Received request to update member role", slog.String("new_role", string(req.Role)))

	if err := h.workspaceService.UpdateUserWorkspaceRole(c.Request.Context(), requestingUserID, targetUserID, workspaceID, req.Role); err != nil {
		h.respondWorkspaceError(c, logger, err, "update member role")
		return
	}

	logger.Info("Member role updated successfully")
	c.Status(http.StatusNoContent)
}

// removeUserFromWorkspace godoc
// @Summary Remove a user from a workspace
// @Description Removes a member from the workspace (admin only, not on oneself)
// @Tags workspaces
// @Produce  json
// @Param   workspace_id path string true "Workspace ID"
// @Param   user_id path string true "Target user ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Workspace or user not found"
// @Failure 500 {object} map[string]string "Failed to remove user"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/users/{user_id} [delete]
func (h *workspaceHandler) removeUserFromWorkspace(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")
	targetUserID := c.Param("user_id")

	requestingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("requesting_user_id", requestingUserID),
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID),
	)
	logger.Info("Received request to remove user from workspace")

	if err := h.workspaceService.RemoveUserFromWorkspace(c.Request.Context(), requestingUserID, targetUserID, workspaceID); err != nil {
		h.respondWorkspaceError(c, logger, err, "remove user from workspace")
		return
	}

	logger.Info("User removed from workspace successfully")
	c.Status(http.StatusNoContent)
}

func (h *workspaceHandler) respondWorkspaceError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found or requester not a member", slog.String("action", action))
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("action", action))
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	default:
		logger.Error("Service error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

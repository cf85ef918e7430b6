package controller

import (
	"quiz_room_hub/internal/service"
	"quiz_room_hub/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// currentUserID is only valid behind the auth middleware.
func currentUserID(ctx *gin.Context) uint {
	if user := util.CurrentUser(ctx); user != nil {
		return user.ID
	}
	return 0
}

// Register godoc
// @Summary Register a new user
// @Description Creates a teacher or student account together with its profile
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.RegisterInput true "Registration data"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "Validation error"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	user, err := c.AuthService.Register(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, user)
}

// Login godoc
// @Summary Log in
// @Description Checks the credentials and returns an access and a refresh token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.LoginInput true "Credentials"
// @Success 200 {object} util.Response{data=service.LoginResponse}
// @Failure 400 {object} util.Response "Invalid credentials"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	resp, err := c.AuthService.Login(&req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the refresh token so it can no longer be used
// @Tags auth
// @Accept  json
// @Security ApiKeyAuth
// @Param   body body service.RefreshInput true "Refresh token"
// @Success 205 "Reset Content"
// @Failure 400 {object} util.Response "Invalid token"
// @Failure 401 {object} util.Response "Unauthenticated"
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req service.RefreshInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := c.AuthService.Logout(ctx.Request.Context(), currentUserID(ctx), &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.ResetContent(ctx)
}

// Refresh godoc
// @Summary Refresh the access token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body service.RefreshInput true "Refresh token"
// @Success 200 {object} util.Response{data=service.AccessResponse}
// @Failure 401 {object} util.Response "Invalid or revoked token"
// @Router /api/token/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req service.RefreshInput
	if err := util.BindJSON(ctx, &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	resp, err := c.AuthService.Refresh(ctx.Request.Context(), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

// Me godoc
// @Summary Current user
// @Description Returns the authenticated user with its role and profile id
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.MeResponse}
// @Failure 401 {object} util.Response "Unauthenticated"
// @Router /api/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := util.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	resp, err := c.AuthService.Me(user)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, resp)
}

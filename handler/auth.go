package handler

import (
	"Libro/config"
	"Libro/pkg/context"
	"Libro/pkg/response"
	"Libro/service"
	"Libro/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Config      *config.Config
	UserService service.IUserService
}

func (h *AuthHandler) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/auth")
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/login", context.Wrap(h.Login))
}

func (h *AuthHandler) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	res, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *AuthHandler) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	res, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

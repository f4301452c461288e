package handler

import (
	"Libro/config"
	"Libro/middleware"
	"Libro/pkg/context"
	"Libro/pkg/response"
	"Libro/service"
	"Libro/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RelationHandler struct {
	Config          *config.Config
	RelationService service.IRelationService
}

func (h *RelationHandler) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/book-relation")
	g.GET("/:book_id", authorize, context.Wrap(h.GetRelation))
	g.PATCH("/:book_id", authorize, context.Wrap(h.PatchRelation))
}

// PatchRelation 更新当前用户对某本书的评分/点赞/收藏
// 关系行不存在时自动创建，只能改自己的那一行
func (h *RelationHandler) PatchRelation(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}
	bookID, err := parseID(c, "book_id")
	if err != nil {
		return err
	}

	var req types.PatchRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "参数格式错误: "+err.Error())
	}

	res, err := h.RelationService.Patch(c.Request.Context(), userID, bookID, &req)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

func (h *RelationHandler) GetRelation(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusInternalServerError, err.Error())
	}
	bookID, err := parseID(c, "book_id")
	if err != nil {
		return err
	}

	res, err := h.RelationService.GetRelation(c.Request.Context(), userID, bookID)
	if err != nil {
		return err
	}
	response.Success(c, res)
	return nil
}

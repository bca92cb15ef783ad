package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/backoffice/internal/application/cart"
	"github.com/xiebiao/backoffice/internal/interface/http/dto"
	"github.com/xiebiao/backoffice/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	add         *appcart.AddToCartUseCase
	update      *appcart.UpdateCartLineUseCase
	remove      *appcart.RemoveFromCartUseCase
	list        *appcart.ListCartUseCase
	total       *appcart.TotalQuantityUseCase
	broadcaster *Broadcaster
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	add *appcart.AddToCartUseCase,
	update *appcart.UpdateCartLineUseCase,
	remove *appcart.RemoveFromCartUseCase,
	list *appcart.ListCartUseCase,
	total *appcart.TotalQuantityUseCase,
	broadcaster *Broadcaster,
) *CartHandler {
	return &CartHandler{
		add:         add,
		update:      update,
		remove:      remove,
		list:        list,
		total:       total,
		broadcaster: broadcaster,
	}
}

// AddLine 加入购物车
// @Summary      加入购物车
// @Description  同一用户、规格、颜色、尺码已存在时合并数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AddToCartRequest true "购物车明细"
// @Success      200 {object} response.Response{data=dto.AddToCartResponse}
// @Failure      404 {object} response.Response "商品规格不存在"
// @Router       /carts [post]
func (h *CartHandler) AddLine(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.add.Execute(c.Request.Context(), appcart.AddToCartRequest{
		UserID:    userOrOperator(c, req.UserID),
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.AddToCartResponse{Line: result.Line, Merged: result.Merged})
}

// UpdateLine 修改数量
// @Summary      修改购物车数量
// @Description  数量<=0时删除该行
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateCartLineRequest true "明细ID和新数量"
// @Success      200 {object} response.Response{data=dto.UpdateCartLineResponse}
// @Failure      404 {object} response.Response "购物车明细不存在"
// @Router       /carts/update [post]
func (h *CartHandler) UpdateLine(c *gin.Context) {
	var req dto.UpdateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.update.Execute(c.Request.Context(), appcart.UpdateCartLineRequest{
		UserID:   userOrOperator(c, req.UserID),
		LineID:   req.LineID,
		Quantity: *req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.UpdateCartLineResponse{Line: result.Line, Removed: result.Removed})
}

// RemoveVariant 按规格删除
// @Summary      删除购物车中的规格
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RemoveFromCartRequest true "用户和规格"
// @Success      200 {object} response.Response{data=dto.RemoveFromCartResponse}
// @Router       /carts/delete [post]
func (h *CartHandler) RemoveVariant(c *gin.Context) {
	var req dto.RemoveFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.remove.Execute(c.Request.Context(), appcart.RemoveFromCartRequest{
		UserID:    userOrOperator(c, req.UserID),
		VariantID: req.VariantID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.RemoveFromCartResponse{Removed: result.Removed})
}

// ListCart 用户购物车
// @Summary      用户购物车
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "用户ID"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /carts/{user_id} [get]
func (h *CartHandler) ListCart(c *gin.Context) {
	userID := c.Param("user_id")
	result, err := h.list.Execute(c.Request.Context(), appcart.ListCartRequest{UserID: userID})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.NewCartResponse(userID, result.Lines, result.Quantity, result.Subtotal))
}

// TotalQuantity 全部购物车件数
// @Summary      全部购物车件数
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.CartTotalResponse}
// @Router       /carts/total [get]
func (h *CartHandler) TotalQuantity(c *gin.Context) {
	result, err := h.total.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.CartTotalResponse{Total: result.Total})
}

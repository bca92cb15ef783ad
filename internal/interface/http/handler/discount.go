package handler

import (
	"github.com/gin-gonic/gin"

	appdiscount "github.com/xiebiao/backoffice/internal/application/discount"
	"github.com/xiebiao/backoffice/internal/interface/http/dto"
	"github.com/xiebiao/backoffice/pkg/response"
)

// DiscountHandler 优惠码HTTP处理器
type DiscountHandler struct {
	create      *appdiscount.CreateDiscountUseCase
	list        *appdiscount.ListDiscountsUseCase
	find        *appdiscount.FindDiscountUseCase
	remove      *appdiscount.DeleteDiscountUseCase
	broadcaster *Broadcaster
}

// NewDiscountHandler 创建优惠码处理器
func NewDiscountHandler(
	create *appdiscount.CreateDiscountUseCase,
	list *appdiscount.ListDiscountsUseCase,
	find *appdiscount.FindDiscountUseCase,
	remove *appdiscount.DeleteDiscountUseCase,
	broadcaster *Broadcaster,
) *DiscountHandler {
	return &DiscountHandler{
		create:      create,
		list:        list,
		find:        find,
		remove:      remove,
		broadcaster: broadcaster,
	}
}

// Create 生成优惠码
// @Summary      生成优惠码
// @Description  随机生成8位大写字母数字码
// @Tags         优惠码
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateDiscountRequest true "优惠金额(分)"
// @Success      200 {object} response.Response{data=dto.DiscountResponse}
// @Router       /discounts [post]
func (h *DiscountHandler) Create(c *gin.Context) {
	var req dto.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.create.Execute(c.Request.Context(), appdiscount.CreateDiscountRequest{Amount: req.Amount})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.ToDiscountResponse(result.Code))
}

// List 优惠码列表
// @Summary      优惠码列表
// @Tags         优惠码
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.DiscountResponse}
// @Router       /discounts [get]
func (h *DiscountHandler) List(c *gin.Context) {
	codes, err := h.list.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDiscountList(codes))
}

// FindByCode 按码查询
// @Summary      按码查询优惠码
// @Tags         优惠码
// @Produce      json
// @Security     BearerAuth
// @Param        code path string true "优惠码"
// @Success      200 {object} response.Response{data=dto.DiscountResponse}
// @Failure      404 {object} response.Response "优惠码不存在"
// @Router       /discounts/code/{code} [get]
func (h *DiscountHandler) FindByCode(c *gin.Context) {
	code, err := h.find.Execute(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToDiscountResponse(code))
}

// Delete 删除优惠码
// @Summary      删除优惠码
// @Tags         优惠码
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "优惠码ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "优惠码不存在"
// @Router       /discounts/{id} [delete]
func (h *DiscountHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.remove.Execute(c.Request.Context(), appdiscount.DeleteDiscountRequest{ID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, nil)
}

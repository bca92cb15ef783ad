package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/backoffice/internal/application/order"
	"github.com/xiebiao/backoffice/internal/domain/order"
	"github.com/xiebiao/backoffice/internal/interface/http/dto"
	"github.com/xiebiao/backoffice/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrder  *apporder.CreateOrderUseCase
	updateStatus *apporder.UpdateStatusUseCase
	cancelOrder  *apporder.CancelOrderUseCase
	getOrder     *apporder.GetOrderUseCase
	listOrders   *apporder.ListUserOrdersUseCase
	listLines    *apporder.ListOrderLinesUseCase
	deleteOrder  *apporder.DeleteOrderUseCase
	broadcaster  *Broadcaster
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrder *apporder.CreateOrderUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
	cancelOrder *apporder.CancelOrderUseCase,
	getOrder *apporder.GetOrderUseCase,
	listOrders *apporder.ListUserOrdersUseCase,
	listLines *apporder.ListOrderLinesUseCase,
	deleteOrder *apporder.DeleteOrderUseCase,
	broadcaster *Broadcaster,
) *OrderHandler {
	return &OrderHandler{
		createOrder:  createOrder,
		updateStatus: updateStatus,
		cancelOrder:  cancelOrder,
		getOrder:     getOrder,
		listOrders:   listOrders,
		listLines:    listLines,
		deleteOrder:  deleteOrder,
		broadcaster:  broadcaster,
	}
}

// CreateOrder 结算
// @Summary      结算
// @Description  将用户购物车转换为订单：锁定规格、扣减库存、复制明细、清空购物车，全部在一个事务内完成
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "收货信息"
// @Success      200 {object} response.Response{data=dto.CreateOrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误/库存不足/金额不一致"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "商品规格或优惠码不存在"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createOrder.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		UserID: userOrOperator(c, req.UserID),
		Note:   req.Note,
		Address: order.ShippingAddress{
			Region:   req.Region,
			District: req.District,
			Ward:     req.Ward,
			Street:   req.Street,
		},
		DiscountCode: req.DiscountCode,
		TotalAmount:  req.TotalAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.CreateOrderResponse{
		Order:     dto.ToOrderResponse(result.Order),
		LineCount: result.LineCount,
	})
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Description  进入"已取消"回补库存，离开"已取消"重新扣减库存
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateStatusRequest true "目标状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      400 {object} response.Response "状态值非法"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateStatus.Execute(c.Request.Context(), apporder.UpdateStatusRequest{
		OrderID: id,
		Status:  *req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.ToOrderResponse(result.Order))
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  重复取消是幂等的
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.cancelOrder.Execute(c.Request.Context(), apporder.CancelOrderRequest{OrderID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, dto.ToOrderResponse(result.Order))
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getOrder.Execute(c.Request.Context(), apporder.GetOrderRequest{OrderID: id})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderResponse(result.Order))
}

// ListUserOrders 用户订单列表
// @Summary      用户订单列表
// @Description  新订单在前，不含明细
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        user_id path string true "用户ID"
// @Success      200 {object} response.Response{data=[]dto.OrderResponse}
// @Router       /orders/user/{user_id} [get]
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	result, err := h.listOrders.Execute(c.Request.Context(), apporder.ListUserOrdersRequest{
		UserID: c.Param("user_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToOrderList(result.Orders))
}

// ListOrderLines 订单明细
// @Summary      订单明细
// @Description  明细关联规格、商品、颜色、尺码后的展示数据
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderLinesResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id}/lines [get]
func (h *OrderHandler) ListOrderLines(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.listLines.Execute(c.Request.Context(), apporder.ListOrderLinesRequest{OrderID: id})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.OrderLinesResponse{OrderID: id, Items: result.Items})
}

// DeleteOrder 删除订单
// @Summary      删除订单
// @Description  连同明细一起删除，不回补库存
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.deleteOrder.Execute(c.Request.Context(), apporder.DeleteOrderRequest{OrderID: id})
	if err != nil {
		response.Error(c, err)
		return
	}

	h.broadcaster.Send(c, result.Event)
	response.Success(c, nil)
}

package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appnotification "github.com/xiebiao/backoffice/internal/application/notification"
	"github.com/xiebiao/backoffice/internal/interface/http/dto"
	"github.com/xiebiao/backoffice/pkg/response"
)

// NotificationHandler 后台通知
type NotificationHandler struct {
	uc *appnotification.NotificationUseCase
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(uc *appnotification.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List 最近的通知
// @Summary      通知列表
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "条数，默认50"
// @Success      200 {object} response.Response{data=[]dto.NotificationResponse}
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.uc.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToNotificationList(list))
}

// Clear 清空通知
// @Summary      清空通知
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ClearResponse}
// @Router       /notifications [delete]
func (h *NotificationHandler) Clear(c *gin.Context) {
	n, err := h.uc.Clear(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ClearResponse{Deleted: n})
}

// CheckoutBadge 新订单角标
// @Summary      新订单角标
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=notification.CheckoutBadge}
// @Router       /notifications/checkout [get]
func (h *NotificationHandler) CheckoutBadge(c *gin.Context) {
	badge, err := h.uc.CheckoutBadge(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, badge)
}

// ClearCheckout 新订单全部已读
// @Summary      新订单全部已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ClearResponse}
// @Router       /notifications/checkout [delete]
func (h *NotificationHandler) ClearCheckout(c *gin.Context) {
	n, err := h.uc.ClearCheckout(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ClearResponse{Deleted: n})
}

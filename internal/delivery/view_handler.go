package delivery

import (
	"net/http"

	"marketplace_service/internal/domain"
	"marketplace_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ViewHandler struct {
	useCase usecase.ViewUseCase
	log     *logrus.Logger
}

func NewViewHandler(uc usecase.ViewUseCase, logger *logrus.Logger) *ViewHandler {
	return &ViewHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the counter on GET for existing clients and on POST, which is
// the verb new clients should use since every call increments.
func (h *ViewHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/view-count", h.RecordView)
	router.POST("/view-count", h.RecordView)
}

func (h *ViewHandler) RecordView(c *gin.Context) {
	count, err := h.useCase.RecordView(c.Request.Context())
	if err != nil {
		h.log.Errorf("Error updating view count: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to get or update view count")
		return
	}
	c.JSON(http.StatusOK, domain.ViewCount{Count: count})
}

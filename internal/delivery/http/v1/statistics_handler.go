package v1

import (
	"net/http"

	"go-careers-cms/internal/delivery/http/response"
	"go-careers-cms/internal/domain"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsUC domain.StatisticsUsecase
}

// NewStatisticsHandler registers the dashboard statistics route
func NewStatisticsHandler(staff *gin.RouterGroup, statisticsUC domain.StatisticsUsecase) {
	handler := &StatisticsHandler{statisticsUC: statisticsUC}

	staff.GET("/statistics", handler.Snapshot)
}

func (h *StatisticsHandler) Snapshot(c *gin.Context) {
	stats, err := h.statisticsUC.Snapshot(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Statistics retrieved", stats)
}

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/MarlonMoe23/reportes/internal"
	"github.com/MarlonMoe23/reportes/internal/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportRequest is the wire shape of a report submitted to the store. The
// duration arrives already encoded as decimal hours; the store never sees
// the hours/minutes pair.
type ReportRequest struct {
	Date          string  `json:"date"`
	Technician    string  `json:"technician"`
	Plant         string  `json:"plant"`
	WorkOrder     string  `json:"workOrder"`
	Description   string  `json:"description"`
	DurationHours float64 `json:"durationHours"`
	Completed     bool    `json:"completed"`
}

func PostReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body ReportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.Technician == "" {
			c.JSON(http.StatusBadRequest, response.BadRequest("technician is required"))
			return
		}
		if body.DurationHours <= 0 {
			c.JSON(http.StatusBadRequest, response.BadRequest("durationHours must be greater than zero"))
			return
		}
		if body.Date == "" {
			body.Date = time.Now().Format("2006-01-02")
		}

		report := &internal.Report{
			ID:            uuid.NewString(),
			Date:          body.Date,
			Technician:    body.Technician,
			Plant:         body.Plant,
			WorkOrder:     body.WorkOrder,
			Description:   body.Description,
			DurationHours: body.DurationHours,
			Completed:     body.Completed,
		}

		if err := app.Reports().SaveReport(c.Request.Context(), report); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save report")
			return
		}

		c.JSON(http.StatusCreated, report)
	}
}

func GetReports(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		technician := c.Query("technician")
		if technician == "" {
			c.JSON(http.StatusBadRequest, response.BadRequest("technician query parameter is required"))
			return
		}

		reports, err := app.Reports().ListReports(c.Request.Context(), technician)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch reports")
			return
		}

		c.JSON(http.StatusOK, reports)
	}
}

func PutReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var body ReportRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if body.DurationHours <= 0 {
			c.JSON(http.StatusBadRequest, response.BadRequest("durationHours must be greater than zero"))
			return
		}

		report := &internal.Report{
			ID:            id,
			Date:          body.Date,
			Technician:    body.Technician,
			Plant:         body.Plant,
			WorkOrder:     body.WorkOrder,
			Description:   body.Description,
			DurationHours: body.DurationHours,
			Completed:     body.Completed,
		}

		if err := app.Reports().UpdateReport(c.Request.Context(), report); err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				c.JSON(http.StatusNotFound, response.NotFound("report "+id+" not found"))
				return
			}
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to update report")
			return
		}

		c.JSON(http.StatusOK, report)
	}
}

func DeleteReport(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		if err := app.Reports().DeleteReport(c.Request.Context(), id); err != nil {
			if errors.Is(err, internal.ErrNotFound) {
				c.JSON(http.StatusNotFound, response.NotFound("report "+id+" not found"))
				return
			}
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to delete report")
			return
		}

		c.JSON(http.StatusOK, response.Success(nil, map[string]any{"deleted": id}))
	}
}

package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"waste-bi-backend/internal/csv"
	"waste-bi-backend/internal/excel"
	"waste-bi-backend/internal/model"
	"waste-bi-backend/internal/pdf"
	"waste-bi-backend/internal/service"
	"waste-bi-backend/internal/validate"
)

// Replaceable for deterministic export tests.
var timeNow = time.Now

type Handler struct {
	trucks    *service.TruckService
	csvGen    *csv.Exporter
	excelGen  *excel.Generator
	pdfGen    *pdf.Generator
	respCache *cache.Cache
	log       zerolog.Logger
}

func NewHandler(trucks *service.TruckService, csvGen *csv.Exporter, excelGen *excel.Generator, pdfGen *pdf.Generator, respCache *cache.Cache, log zerolog.Logger) *Handler {
	return &Handler{
		trucks:    trucks,
		csvGen:    csvGen,
		excelGen:  excelGen,
		pdfGen:    pdfGen,
		respCache: respCache,
		log:       log,
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createTruck(c *gin.Context) {
	var req validate.EntryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.trucks.CreateEntry(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusCreated, record)
}

func (h *Handler) listTrucks(c *gin.Context) {
	status, err := parseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	trucks, err := h.trucks.ListTrucks(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if trucks == nil {
		trucks = []model.TruckRecord{}
	}
	c.JSON(http.StatusOK, trucks)
}

func (h *Handler) getTruck(c *gin.Context) {
	record, err := h.trucks.GetTruck(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *Handler) applySorting(c *gin.Context) {
	var req validate.SortingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.TruckID = c.Param("id")

	record, err := h.trucks.ApplySorting(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.flushCache()
	c.JSON(http.StatusOK, record)
}

func (h *Handler) deleteTruck(c *gin.Context) {
	if err := h.trucks.DeleteTruck(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	h.flushCache()
	c.Status(http.StatusNoContent)
}

func (h *Handler) clearTrucks(c *gin.Context) {
	if err := h.trucks.ClearAll(c.Request.Context()); err != nil {
		h.handleError(c, err)
		return
	}
	h.flushCache()
	c.Status(http.StatusNoContent)
}

func (h *Handler) getStats(c *gin.Context) {
	totals, err := h.trucks.Totals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, model.WasteCategories)
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.trucks.GetSettings(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req model.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.trucks.UpdateSettings(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) exportCSV(c *gin.Context) {
	trucks, ok := h.exportRecords(c)
	if !ok {
		return
	}
	content, err := h.csvGen.Generate(trucks)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "truk-data.csv", "text/csv; charset=utf-8", content)
}

func (h *Handler) exportExcel(c *gin.Context) {
	trucks, ok := h.exportRecords(c)
	if !ok {
		return
	}
	totals, err := h.trucks.Totals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.excelGen.Generate(trucks, *totals)
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "truk-data.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}

func (h *Handler) exportPDF(c *gin.Context) {
	trucks, ok := h.exportRecords(c)
	if !ok {
		return
	}
	totals, err := h.trucks.Totals(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	content, err := h.pdfGen.Generate(trucks, *totals, timeNow())
	if err != nil {
		h.handleError(c, err)
		return
	}
	sendAttachment(c, "laporan-pengolahan-sampah.pdf", "application/pdf", content)
}

func (h *Handler) exportRecords(c *gin.Context) ([]model.TruckRecord, bool) {
	status, err := parseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return nil, false
	}
	trucks, err := h.trucks.ListTrucks(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return nil, false
	}
	return trucks, true
}

func (h *Handler) flushCache() {
	if h.respCache != nil {
		h.respCache.Flush()
	}
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  validationErr.Error(),
			"fields": validationErr.Fields,
		})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadySorted):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseStatus(raw string) (model.TruckStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case string(model.StatusAwaitingSorting):
		return model.StatusAwaitingSorting, nil
	case string(model.StatusSorted):
		return model.StatusSorted, nil
	default:
		return "", service.ErrInvalidInput
	}
}

func sendAttachment(c *gin.Context, fileName, contentType string, content []byte) {
	c.Header("Content-Disposition", "attachment; filename=\""+fileName+"\"")
	c.Data(http.StatusOK, contentType, content)
}

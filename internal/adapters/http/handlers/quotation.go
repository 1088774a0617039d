package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotation-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotation-service/internal/app"
)

// QuotationHandler handles the quotation HTTP endpoints.
type QuotationHandler struct {
	service *app.QuotationService
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(service *app.QuotationService) *QuotationHandler {
	return &QuotationHandler{service: service}
}

// List handles GET /api/quotations.
// Returns every quotation, soonest event first.
func (h *QuotationHandler) List(c *gin.Context) {
	quotations, err := h.service.ListByEventDate(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotationListResponse(quotations))
}

// ListByCreatedDate handles GET /api/quotations/by-created-date.
// Returns every quotation, newest submission first.
func (h *QuotationHandler) ListByCreatedDate(c *gin.Context) {
	quotations, err := h.service.ListByCreatedDate(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuotationListResponse(quotations))
}

// Create handles POST /api/quotations.
// A body that cannot be decoded is a 400 BAD_REQUEST; a decoded body with
// missing or invalid fields is a 400 VALIDATION_ERROR listing every field.
// On success the stored record is returned with 201.
func (h *QuotationHandler) Create(c *gin.Context) {
	var req dto.CreateQuotationRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		if dto.IsValidationError(err) {
			dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
			return
		}

		dto.RespondWithErrorCode(c, dto.ErrorCodeBadRequest, "request body is not a valid quotation")

		return
	}

	quotation, err := h.service.Create(c.Request.Context(), req.ToDraft())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuotationResponse(quotation))
}

// RegisterRoutes registers the quotation routes on rg:
//   - GET  /quotations
//   - GET  /quotations/by-created-date
//   - POST /quotations
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotations := rg.Group("/quotations")
	quotations.GET("", h.List)
	quotations.GET("/by-created-date", h.ListByCreatedDate)
	quotations.POST("", h.Create)
}

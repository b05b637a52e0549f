// File: internal/search/handler.go
package search

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"homequest_backend/internal/common"
)

// Handler exposes the listing query engine over HTTP.
type Handler struct {
	engine *Engine
	logger *zap.Logger
}

// NewHandler creates a new search handler.
func NewHandler(engine *Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes sets up the search routes. Search is public.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.search)
}

// searchQuery mirrors FilterCriteria on the query string. Binding into a
// typed struct keeps raw untyped maps out of the engine.
type searchQuery struct {
	Q            string `form:"q"`
	Location     string `form:"location"`
	PriceMin     *int64 `form:"price_min" binding:"omitempty,gte=0"`
	PriceMax     *int64 `form:"price_max" binding:"omitempty,gte=0"`
	Bedrooms     string `form:"bedrooms"`
	PropertyType string `form:"property_type"`
	NearPark     bool   `form:"near_park"`
	NearSchool   bool   `form:"near_school"`
	QuietArea    bool   `form:"quiet_area"`
	SortBy       string `form:"sort_by"`
}

func (h *Handler) search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("Search: invalid query parameters", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	criteria := Criteria{
		LocationText: q.Location,
		PriceMin:     q.PriceMin,
		PriceMax:     q.PriceMax,
		Bedrooms:     q.Bedrooms,
		PropertyType: q.PropertyType,
		NearPark:     q.NearPark,
		NearSchool:   q.NearSchool,
		QuietArea:    q.QuietArea,
		SortBy:       q.SortBy,
		FreeText:     q.Q,
	}

	result, err := h.engine.Search(c.Request.Context(), criteria)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	// Pagination is a slicing concern layered over the engine; it never
	// changes the reported total.
	page, pageSize := common.GetPaginationParams(c)
	start, end := common.PageBounds(result.Total, page, pageSize)
	result.Items = result.Items[start:end]

	common.RespondOK(c, result)
}

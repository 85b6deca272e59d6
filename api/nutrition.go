package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samuelurones28/Proyecto/middleware"
	"github.com/samuelurones28/Proyecto/services"
	"github.com/samuelurones28/Proyecto/utils"
)

// NutritionTargetsHandler returns the day's calorie and macro targets.
// GET /api/nutrition/targets?date=YYYY-MM-DD
func (h *APIHandler) NutritionTargetsHandler(c *gin.Context) {
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	targets, err := h.nutrition.DailyTargets(middleware.CurrentUserID(c), date)
	if err != nil {
		sendServiceError(c, "Failed to compute nutrition targets.", err)
		return
	}
	respondOK(c, "Targets computed", targets)
}

// LogMealHandler logs one food entry.
// POST /api/nutrition/meals
func (h *APIHandler) LogMealHandler(c *gin.Context) {
	var req services.MealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	meal, err := h.nutrition.LogMeal(middleware.CurrentUserID(c), req)
	if err != nil {
		sendServiceError(c, "Failed to log meal.", err)
		return
	}
	respondOK(c, "Meal logged", meal)
}

// NutritionSummaryHandler returns targets, totals and meals for a date.
// GET /api/nutrition/summary?date=YYYY-MM-DD
func (h *APIHandler) NutritionSummaryHandler(c *gin.Context) {
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	summary, err := h.nutrition.DailySummary(middleware.CurrentUserID(c), date)
	if err != nil {
		sendServiceError(c, "Failed to build nutrition summary.", err)
		return
	}
	respondOK(c, "Summary retrieved successfully", summary)
}

// RecentFoodsHandler lists recently logged distinct foods.
// GET /api/nutrition/recent?limit=20
func (h *APIHandler) RecentFoodsHandler(c *gin.Context) {
	foods, err := h.nutrition.RecentFoods(middleware.CurrentUserID(c), limitParam(c, 20))
	if err != nil {
		sendServiceError(c, "Failed to fetch recent foods.", err)
		return
	}
	respondOK(c, "Recent foods retrieved successfully", foods)
}

// BarcodeHandler looks a product up in the food database.
// GET /api/nutrition/barcode/:code
func (h *APIHandler) BarcodeHandler(c *gin.Context) {
	product, err := h.nutrition.LookupBarcode(c.Request.Context(), c.Param("code"))
	if err != nil {
		sendServiceError(c, "Product lookup failed.", err)
		return
	}
	respondOK(c, "Product found", product)
}

// AddMeasurementHandler records a body measurement.
// POST /api/measurements
func (h *APIHandler) AddMeasurementHandler(c *gin.Context) {
	var req services.MeasurementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	m, err := h.measurements.AddMeasurement(middleware.CurrentUserID(c), req)
	if err != nil {
		sendServiceError(c, "Failed to save measurement.", err)
		return
	}
	respondOK(c, "Measurement saved", m)
}

// ListMeasurementsHandler lists measurements, newest first.
// GET /api/measurements?limit=30
func (h *APIHandler) ListMeasurementsHandler(c *gin.Context) {
	list, err := h.measurements.ListMeasurements(middleware.CurrentUserID(c), limitParam(c, 30))
	if err != nil {
		sendServiceError(c, "Failed to fetch measurements.", err)
		return
	}
	respondOK(c, "Measurements retrieved successfully", list)
}

// GetProfileHandler returns the user's profile, creating defaults on first access.
// GET /api/profile
func (h *APIHandler) GetProfileHandler(c *gin.Context) {
	p, err := h.profiles.Get(middleware.CurrentUserID(c))
	if err != nil {
		sendServiceError(c, "Failed to fetch profile.", err)
		return
	}
	respondOK(c, "Profile retrieved successfully", p)
}

// UpdateProfileHandler applies a partial profile update.
// PUT /api/profile
func (h *APIHandler) UpdateProfileHandler(c *gin.Context) {
	var req services.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	p, err := h.profiles.Update(middleware.CurrentUserID(c), req)
	if err != nil {
		sendServiceError(c, "Failed to update profile.", err)
		return
	}
	respondOK(c, "Profile updated", p)
}

// CatalogHandler lists the canonical exercise catalog.
// GET /api/catalog
func (h *APIHandler) CatalogHandler(c *gin.Context) {
	list, err := h.catalog.List()
	if err != nil {
		sendServiceError(c, "Failed to fetch catalog.", err)
		return
	}
	respondOK(c, "Catalog retrieved successfully", list)
}

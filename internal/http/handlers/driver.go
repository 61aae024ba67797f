package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// DriverManifest lists the paid transfers for one travel day, grouped for
// the van run: guest, route leg, bag count and hotel assignments.
func DriverManifest(c *gin.Context) {
	date, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
		return
	}

	entries, err := repositories.SegmentRepository{}.ManifestForDate(date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": utils.FormatDate(date), "transfers": entries})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"trailporter/internal/repositories"
	"trailporter/internal/utils"
)

// OwnerSummary reports paid revenue per month and the transfer load over the
// next two weeks.
func OwnerSummary(c *gin.Context) {
	bookingRepo := repositories.BookingRepository{}
	segmentRepo := repositories.SegmentRepository{}

	byStatus, err := bookingRepo.SummaryByStatus()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	revenue, err := bookingRepo.SummaryByMonth()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	today := utils.NowUTC().Truncate(24 * time.Hour)
	upcoming, err := segmentRepo.CountByDateRange(today, today.AddDate(0, 0, 13))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingsByStatus": byStatus,
		"revenueByMonth":   revenue,
		"transfersPerDate": upcoming,
	})
}

package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
	"trailporter/internal/repositories"
	"trailporter/internal/trail"
	"trailporter/internal/utils"
)

// DocsService renders the booking confirmation PDF a customer can print or
// show to hotel staff.
type DocsService struct {
	Bookings  repositories.BookingRepository
	Segments  repositories.SegmentRepository
	RequestID string
	Loader    func(bookingID string) (confirmationData, error)
}

type confirmationData struct {
	Booking  models.Booking
	Segments []models.BookingSegment
}

// Confirmation builds the PDF for one booking. Admins can fetch any booking;
// everyone else only their own, and a foreign id looks like a missing one.
func (s DocsService) Confirmation(bookingID, userID string, role domain.Role) ([]byte, string, error) {
	data, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	if data.Booking.UserID != userID && role != domain.RoleAdmin {
		return nil, "", domain.NotFoundError{Resource: "booking"}
	}
	if data.Booking.Status != models.BookingPaid {
		return nil, "", domain.ValidationError{Field: "status", Msg: "confirmation is only available for paid bookings"}
	}
	utils.LogEvent(s.RequestID, "docs", "confirmation", "booking "+bookingID)
	return buildConfirmationPDF(data)
}

func (s DocsService) load(bookingID string) (confirmationData, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return confirmationData{}, err
	}
	segments, err := s.Segments.ListByBooking(bookingID)
	if err != nil {
		return confirmationData{}, err
	}
	return confirmationData{Booking: booking, Segments: segments}, nil
}

func buildConfirmationPDF(d confirmationData) ([]byte, string, error) {
	b := d.Booking

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "LUGGAGE TRANSFER CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	guest := strings.TrimSpace(b.FirstName + " " + b.LastName)
	lines := []string{
		fmt.Sprintf("Booking        : %s", b.ID),
		fmt.Sprintf("Guest          : %s", safe(guest, "-")),
		fmt.Sprintf("Email          : %s", safe(b.Email, "-")),
		fmt.Sprintf("Phone          : %s", safe(b.Phone, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(trail.StageName(b.DepartureStageID), b.DepartureStageID), safe(trail.StageName(b.DestinationStageID), b.DestinationStageID)),
		fmt.Sprintf("First transfer : %s", utils.FormatDate(b.DepartureDate)),
		fmt.Sprintf("Transfers      : %d", b.NumTransfers),
		fmt.Sprintf("Bags           : %d", b.NumBags),
		fmt.Sprintf("Total paid     : EUR %d", b.TotalPrice),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	if len(d.Segments) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Daily schedule")
		pdf.Ln(9)
		pdf.SetFont("Helvetica", "", 11)
		for _, seg := range d.Segments {
			row := fmt.Sprintf("%s   %s -> %s",
				utils.FormatDate(seg.TravelDate),
				safe(trail.StageName(seg.FromStageID), seg.FromStageID),
				safe(trail.StageName(seg.ToStageID), seg.ToStageID))
			pdf.Cell(0, 6, row)
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Leave your bags at reception by 09:00 each morning. They will be waiting at your next accommodation by 16:00.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render pdf", Err: err}
	}
	filename := fmt.Sprintf("confirmation-%s.pdf", b.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

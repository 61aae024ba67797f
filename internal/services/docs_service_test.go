package services

import (
	"testing"
	"time"

	"trailporter/internal/domain"
	"trailporter/internal/domain/models"
)

func testConfirmationData() confirmationData {
	departure := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return confirmationData{
		Booking: models.Booking{
			ID:                 "bk1",
			UserID:             "u1",
			Status:             models.BookingPaid,
			FirstName:          "Ana",
			LastName:           "Silva",
			Email:              "ana@example.com",
			Phone:              "+351 900 000 000",
			DepartureDate:      departure,
			DepartureStageID:   "PC",
			DestinationStageID: "OD",
			NumBags:            3,
			NumTransfers:       4,
			TotalPrice:         80,
		},
		Segments: []models.BookingSegment{
			{SegmentIndex: 0, FromStageID: "PC", ToStageID: "VM", TravelDate: departure},
			{SegmentIndex: 1, FromStageID: "VM", ToStageID: "AL", TravelDate: departure.AddDate(0, 0, 1)},
		},
	}
}

func TestConfirmationPDF(t *testing.T) {
	svc := DocsService{Loader: func(string) (confirmationData, error) {
		return testConfirmationData(), nil
	}}

	pdf, filename, err := svc.Confirmation("bk1", "u1", domain.RoleCustomer)
	if err != nil {
		t.Fatalf("confirmation failed: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatal("confirmation returned empty data")
	}
}

func TestConfirmationHiddenFromOtherUsers(t *testing.T) {
	svc := DocsService{Loader: func(string) (confirmationData, error) {
		return testConfirmationData(), nil
	}}

	_, _, err := svc.Confirmation("bk1", "someone-else", domain.RoleCustomer)
	if !domain.IsNotFound(err) {
		t.Fatalf("foreign booking should look like not found, got %v", err)
	}

	if _, _, err := svc.Confirmation("bk1", "someone-else", domain.RoleAdmin); err != nil {
		t.Fatalf("admin should reach any booking, got %v", err)
	}
}

func TestConfirmationOnlyForPaidBookings(t *testing.T) {
	svc := DocsService{Loader: func(string) (confirmationData, error) {
		d := testConfirmationData()
		d.Booking.Status = models.BookingPending
		return d, nil
	}}

	_, _, err := svc.Confirmation("bk1", "u1", domain.RoleCustomer)
	if !domain.IsValidation(err) {
		t.Fatalf("pending booking should be rejected, got %v", err)
	}
}

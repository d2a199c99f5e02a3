package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"contingent-booking-api-server/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const exportContentType = "text/csv"

// Uploader is satisfied by s3.Uploader.
type Uploader interface {
	UploadFile(ctx context.Context, body []byte, objectKey, contentType string) (string, error)
}

type ExportService struct {
	bookings BookingStore
	uploader Uploader
	now      func() time.Time
}

// NewExportService returns an ExportService. Without an uploader every
// export fails with ErrExportDisabled.
func NewExportService(bookings BookingStore, uploader Uploader) *ExportService {
	return &ExportService{bookings: bookings, uploader: uploader, now: time.Now}
}

var exportHeader = []string{
	"bookingCode", "contingentName", "city", "province", "leader", "leaderPhone",
	"regionCoordinator", "regionCoordinatorPhone", "vehicle", "personCount", "status", "createdAt",
}

func exportRow(b models.Booking) []string {
	var coordName, coordPhone string
	if b.RegionCoordinator != nil {
		coordName, coordPhone = b.RegionCoordinator.Name, b.RegionCoordinator.Phone
	}
	return []string{
		b.BookingCode,
		b.ContingentName,
		b.ContingentAddress.City.Name,
		b.ContingentAddress.Province.Name,
		b.ContingentLeader.Name,
		b.ContingentLeader.Phone,
		coordName,
		coordPhone,
		string(b.ContingentVehicle),
		strconv.Itoa(b.PersonCount),
		string(b.Status),
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// WriteCSV renders bookings with a header row.
func WriteCSV(bookings []models.Booking) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if err := w.Write(exportRow(b)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Export uploads every booking as CSV and returns the object URL.
func (s *ExportService) Export(ctx context.Context) (string, error) {
	if s.uploader == nil {
		return "", ErrExportDisabled
	}

	bookings, err := s.bookings.List(ctx, 0, 0)
	if err != nil {
		return "", fmt.Errorf("list bookings: %w", err)
	}

	body, err := WriteCSV(bookings)
	if err != nil {
		return "", fmt.Errorf("write csv: %w", err)
	}

	key := fmt.Sprintf("exports/bookings-%s-%s.csv", s.now().UTC().Format("20060102T150405"), uuid.NewString()[:8])
	url, err := s.uploader.UploadFile(ctx, body, key, exportContentType)
	if err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("rows", len(bookings)).Msg("bookings exported")
	return url, nil
}

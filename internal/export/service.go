package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/formease/formease-server/internal/entity"
	"github.com/formease/formease-server/internal/repository"
)

// Service is a tiny façade over the submissions repository that produces
// XLSX bytes for admin downloads.
type Service struct {
	submissions repository.SubmissionRepository
	logger      *slog.Logger
}

func NewService(repo repository.SubmissionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{submissions: repo, logger: logger}
}

// ExportSubmissionsXLSX returns a workbook of submissions. With a userID it
// covers one account; with nil it covers everything (the admin dashboard
// download).
func (s *Service) ExportSubmissionsXLSX(ctx context.Context, userID *uuid.UUID) ([]byte, error) {
	start := time.Now()

	subs, err := s.listSubmissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Submissions"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headers := []string{
		"Submitted At",
		"First Name",
		"Surname",
		"Address",
		"Postcode",
		"Email",
		"Favourite Time of Day",
		"Account",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, sub := range subs {
		account := ""
		if sub.UserID != nil {
			account = sub.UserID.String()
		}
		values := []any{
			sub.CreatedAt.UTC().Format(time.RFC3339),
			sub.FirstName,
			sub.Surname,
			sub.Address,
			sub.Postcode,
			sub.Email,
			sub.FavoriteTimeOfDay,
			account,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.ok",
		"rows", len(subs),
		"bytes", buf.Len(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) listSubmissions(ctx context.Context, userID *uuid.UUID) ([]*entity.Submission, error) {
	if userID != nil {
		return s.submissions.ListByUser(ctx, *userID)
	}
	return s.submissions.ListAll(ctx)
}

// Package export renders registration data as downloadable artifacts.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"lecturebot/core/logger"
	"lecturebot/internal/model"
)

const sheetName = "Registrations"

var columns = []struct {
	header string
	width  float64
}{
	{"Registration ID", 15},
	{"Student Name", 20},
	{"Student ID", 15},
	{"Lecture Title", 30},
	{"Registration Date", 20},
}

// Registrations is the data source for export artifacts.
type Registrations interface {
	All(ctx context.Context) ([]model.RegistrationRow, error)
}

// AuditRecorder appends administrative audit rows.
type AuditRecorder interface {
	Record(ctx context.Context, adminID int64, action string, targetID int64) error
}

// Service builds spreadsheet and CSV snapshots of all registrations.
type Service struct {
	regs  Registrations
	audit AuditRecorder
}

func New(regs Registrations, audit AuditRecorder) *Service {
	return &Service{regs: regs, audit: audit}
}

// Workbook returns an xlsx snapshot of every registration plus a unique
// filename for the attachment. The requesting admin is written to the audit
// trail.
func (s *Service) Workbook(ctx context.Context, adminID int64) (*bytes.Buffer, string, error) {
	rows, err := s.regs.All(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	for i, col := range columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, name, name, col.width)
		cell := fmt.Sprintf("%s1", name)
		f.SetCellValue(sheetName, cell, col.header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range rows {
		values := rowValues(r)
		for j, v := range values {
			name, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", name, i+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", err
	}

	s.recordAudit(ctx, adminID)
	logger.Info(ctx, "service.export", "export.workbook",
		slog.Int("rows", len(rows)),
		slog.Int64("admin_id", adminID),
	)
	return buf, filename("xlsx"), nil
}

// CSV returns a comma-separated snapshot with the same columns as the
// workbook.
func (s *Service) CSV(ctx context.Context, adminID int64) ([]byte, string, error) {
	rows, err := s.regs.All(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.header
	}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}
	for _, r := range rows {
		record := make([]string, 0, len(columns))
		for _, v := range rowValues(r) {
			record = append(record, fmt.Sprint(v))
		}
		if err := w.Write(record); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	s.recordAudit(ctx, adminID)
	logger.Info(ctx, "service.export", "export.csv",
		slog.Int("rows", len(rows)),
		slog.Int64("admin_id", adminID),
	)
	return buf.Bytes(), filename("csv"), nil
}

func (s *Service) recordAudit(ctx context.Context, adminID int64) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, adminID, model.ActionExportData, 0); err != nil {
		logger.Error(ctx, "service.export", "export.audit.fail",
			slog.Int64("admin_id", adminID),
			slog.String("err", err.Error()),
		)
	}
}

func rowValues(r model.RegistrationRow) []interface{} {
	return []interface{}{
		strconv.FormatInt(r.ID, 10),
		r.StudentName,
		r.StudentRef,
		r.LectureTitle,
		r.RegisteredAt.Format("2006-01-02"),
	}
}

// filename embeds the date and a random suffix so repeated exports in one
// chat never collide.
func filename(ext string) string {
	return fmt.Sprintf("registrations_%s_%s.%s",
		time.Now().Format("20060102"),
		uuid.NewString()[:8],
		ext,
	)
}

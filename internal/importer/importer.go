package importer

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"rental-backend/internal/metrics"
	"rental-backend/internal/models"
	"rental-backend/internal/repositories"
	"rental-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Service ingests uploaded workbooks into the ledger store. An import is a
// single synchronous pass over one workbook; format detection and building
// naming are per-sheet, so one upload may mix both layouts across tabs.
type Service struct {
	store *repositories.Store
	now   func() time.Time
}

func NewService(store *repositories.Store) *Service {
	return &Service{store: store, now: timeutil.Now}
}

// dataStartRow is the first data row of both layouts; rows above it hold
// the sheet title and column headers.
const dataStartRow = 3

// ImportFromExcel parses an .xlsx workbook and writes the resulting
// buildings, units, tenants, leases and payments through the store.
//
// Failures are two-tier: row-level problems are recovered with safe
// defaults or skip-the-row semantics and accumulate as human-readable
// strings in the result; only an unreadable workbook fails the run, with
// Success=false and partial counts reported as-is.
func (s *Service) ImportFromExcel(ctx context.Context, data []byte) (*models.ImportResult, error) {
	res := &models.ImportResult{Errors: []string{}}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("unreadable workbook: %v", err))
		return res, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	now := s.now()
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("sheet %q: %v", sheet, err))
			continue
		}

		name := BuildingName(sheet, rows, now)
		if res.BuildingName == "" {
			res.BuildingName = name
		}

		building := &models.Building{
			ID:        uuid.NewString(),
			Name:      name,
			CreatedAt: now,
		}
		s.store.Lock()
		err = s.store.Buildings.Upsert(ctx, building)
		s.store.Unlock()
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("sheet %q: create building: %v", sheet, err))
			continue
		}

		format := DetectFormat(rows)
		switch format {
		case Format2:
			s.importFormat2(ctx, rows, building.ID, res)
		default:
			s.importFormat1(ctx, rows, building.ID, res)
		}
		metrics.ImportSheetsTotal.Inc()
		log.Printf("[Import] sheet %q -> building %q (format %d)", sheet, name, format)
	}

	res.Success = true
	return res, nil
}

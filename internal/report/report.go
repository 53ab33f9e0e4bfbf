// =============================================================================
// Game Ledger - XLSX Snapshot Report
// =============================================================================
//
// Renders the current contents of the three stores into an XLSX workbook with
// one sheet per store, for back-office consumers who do not read the
// fixed-width files. The report is a read-only view; nothing here mutates a
// store.
//
// =============================================================================

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/game-ledger/internal/accounts"
	"github.com/ginjaninja78/game-ledger/internal/catalog"
)

// Sheet names in the generated workbook.
const (
	SheetAccounts   = "Accounts"
	SheetGames      = "Available Games"
	SheetCollection = "Games Collection"
)

// Snapshot is the decoded state of the three stores.
type Snapshot struct {
	Accounts   []accounts.Record
	Listings   []catalog.Listing
	Ownerships []catalog.Ownership
}

// Write renders the snapshot as an XLSX workbook at path.
func Write(path string, snap Snapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetAccounts); err != nil {
		return fmt.Errorf("failed to name accounts sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetGames); err != nil {
		return fmt.Errorf("failed to create games sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetCollection); err != nil {
		return fmt.Errorf("failed to create collection sheet: %w", err)
	}

	if err := writeRows(f, SheetAccounts, accountRows(snap.Accounts)); err != nil {
		return err
	}
	if err := writeRows(f, SheetGames, listingRows(snap.Listings)); err != nil {
		return err
	}
	if err := writeRows(f, SheetCollection, ownershipRows(snap.Ownerships)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// FileName expands the report name format. Placeholders:
//
//	{uuid}      - a random UUID
//	{timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - current date (YYYYMMDD)
//	{time}      - current time (HHMMSS)
func FileName(format string) string {
	now := time.Now()
	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	name := format
	for placeholder, value := range replacements {
		name = strings.ReplaceAll(name, placeholder, value)
	}
	return name
}

func accountRows(records []accounts.Record) [][]interface{} {
	rows := [][]interface{}{{"Username", "Type", "Credit"}}
	for _, r := range records {
		rows = append(rows, []interface{}{r.Username, r.UserType, r.Credit})
	}
	return rows
}

func listingRows(listings []catalog.Listing) [][]interface{} {
	rows := [][]interface{}{{"Game", "Seller", "Price"}}
	for _, l := range listings {
		rows = append(rows, []interface{}{l.Game, l.Seller, l.Price})
	}
	return rows
}

func ownershipRows(owned []catalog.Ownership) [][]interface{} {
	rows := [][]interface{}{{"Game", "Owner"}}
	for _, o := range owned {
		rows = append(rows, []interface{}{o.Game, o.Owner})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

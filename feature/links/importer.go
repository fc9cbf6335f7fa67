package links

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"travel-admin/core/utils"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads (parent id, child id) rows from an xlsx workbook and groups them by
// parent. The first row is a header. Rows whose first two cells are blank are skipped.
// An empty sheet name selects the first sheet.
func ReadWorkbook(r io.Reader, sheet string) (map[uint][]uint, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	grouped := make(map[uint][]uint)
	for i, row := range rows {
		if i == 0 {
			continue
		}
		parentCell, childCell := cell(row, 0), cell(row, 1)
		if parentCell == "" && childCell == "" {
			continue
		}

		parent, err := utils.ToUint(parentCell)
		if err != nil {
			return nil, fmt.Errorf("row %d: parent: %w", i+1, err)
		}
		child, err := utils.ToUint(childCell)
		if err != nil {
			return nil, fmt.Errorf("row %d: child: %w", i+1, err)
		}
		grouped[parent] = append(grouped[parent], child)
	}
	return grouped, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Import reconciles every parent listed in the workbook to exactly the children listed
// for it. Parents are processed in ascending order. The workbook is validated as a whole
// before anything is written.
func (s *Service) Import(ctx context.Context, kind string, r io.Reader, sheet string) ([]*Report, error) {
	if _, err := LookupRelation(kind); err != nil {
		return nil, err
	}

	grouped, err := ReadWorkbook(r, sheet)
	if err != nil {
		return nil, err
	}

	parents := make([]uint, 0, len(grouped))
	for parent := range grouped {
		parents = append(parents, parent)
	}
	slices.Sort(parents)

	reports := make([]*Report, 0, len(parents))
	for _, parent := range parents {
		report, err := s.Update(ctx, kind, parent, grouped[parent])
		if err != nil {
			return reports, fmt.Errorf("parent %d: %w", parent, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Export writes the live links of a kind as a workbook that Import accepts.
func (s *Service) Export(ctx context.Context, kind string, w io.Writer) error {
	rel, err := LookupRelation(kind)
	if err != nil {
		return err
	}

	grouped, err := s.ListGrouped(ctx, kind)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := rel.Kind
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &[]any{rel.ParentColumn, rel.ChildColumn}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	row := 2
	for _, p := range grouped {
		for _, child := range p.ChildIDs {
			axis, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sheet, axis, &[]any{p.ParentID, child}); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
			row++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

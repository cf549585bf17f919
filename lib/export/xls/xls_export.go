package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	dbmodels "timesheet-backend/models/db"
)

const sheetName = "Validations"

var reportHeaders = []string{
	"ID", "Employee", "Manager", "Period start", "Period end",
	"Status", "Created", "Validated", "Signed PDF",
}

type Provider interface {
	// ExportValidationReport renders the validation request list to xlsx.
	ExportValidationReport(list []dbmodels.ValidationRequest) ([]byte, error)
}

func NewHandler() Provider {
	return &impl{}
}

type impl struct{}

func (i impl) ExportValidationReport(list []dbmodels.ValidationRequest) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, errors.Wrap(err, "sheet creation error")
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	row, err := writeHeader(f, sheetName, 0, reportHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "header write error")
	}
	for _, rec := range list {
		row++
		validated := ""
		if rec.ValidatedAt != nil {
			validated = rec.ValidatedAt.Format("02/01/2006")
		}
		values := []interface{}{
			rec.ID,
			rec.EmployeeID,
			rec.ManagerID,
			rec.PeriodStart.Format("02/01/2006"),
			rec.PeriodEnd.Format("02/01/2006"),
			string(rec.Status),
			rec.CreatedAt.Format("02/01/2006"),
			validated,
			rec.PdfWithSignature,
		}
		for idx, value := range values {
			if err = writeColumn(f, sheetName, idx+1, row, value); err != nil {
				return nil, errors.Wrap(err, "cell write error")
			}
		}
	}
	if row > 1 {
		if err = applyDataCellStyle(f, sheetName, 1, 2, len(reportHeaders), row); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err = f.Write(buf); err != nil {
		return nil, errors.Wrap(err, "report serialization error")
	}
	return buf.Bytes(), nil
}

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Bold:   true,
			Family: "Times New Roman",
			Size:   11,
		},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 25); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Family: "Times New Roman",
			Size:   11,
		},
	})
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}

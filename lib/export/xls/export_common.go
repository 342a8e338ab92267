package xlsexport

import "github.com/xuri/excelize/v2"

// sheetWriter - построчная запись листа реестра
type sheetWriter struct {
	file  *excelize.File
	sheet string
	row   int
	cols  int
}

func newSheetWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{file: f, sheet: sheet}
}

func (w *sheetWriter) setCell(col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.file.SetCellValue(w.sheet, cell, value)
}

func (w *sheetWriter) registerStyle(bold bool, horizontal string) (int, error) {
	return w.file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: horizontal,
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold:   bold,
			Family: "Times New Roman",
			Size:   11,
		},
	})
}

func (w *sheetWriter) styleRange(style, colFrom, rowFrom, colTo, rowTo int) error {
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, cellFirst, cellLast, style)
}

// writeHeader - строка заголовков с шириной колонок под реестр
func (w *sheetWriter) writeHeader(headers []string) error {
	w.row++
	w.cols = len(headers)
	style, err := w.registerStyle(true, "center")
	if err != nil {
		return err
	}
	if err := w.styleRange(style, 1, w.row, w.cols, w.row); err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(w.cols)
	if err != nil {
		return err
	}
	if err := w.file.SetColWidth(w.sheet, "A", lastCol, 25); err != nil {
		return err
	}
	for idx, value := range headers {
		if err := w.setCell(idx+1, w.row, value); err != nil {
			return err
		}
	}
	return nil
}

func (w *sheetWriter) writeRow(values []interface{}) error {
	w.row++
	for idx, value := range values {
		if err := w.setCell(idx+1, w.row, value); err != nil {
			return err
		}
	}
	return nil
}

// finish - стиль области данных после записи всех строк
func (w *sheetWriter) finish() error {
	dataFrom := 2
	if w.row < dataFrom {
		return nil
	}
	style, err := w.registerStyle(false, "left")
	if err != nil {
		return err
	}
	return w.styleRange(style, 1, dataFrom, w.cols, w.row)
}

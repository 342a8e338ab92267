package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	inspectionapimodels "site-qhse-backend/models/api/inspection"
)

// GenerateInspectionReport - печатная форма согласованного чек-листа.
// Шрифты с кириллицей лежат в static/font/.
func GenerateInspectionReport(view inspectionapimodels.InspectionView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateInspectionReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "static/font/")
	pdf.AddPage()
	pdf.AddUTF8Font("Arial", "", "Arial.ttf")
	pdf.AddUTF8Font("Arial", "B", "Arial Bold.ttf")
	pdf.SetFont("Arial", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "Отчёт по инспекции", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(4)

	writeRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(60, 8, label, "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 8, value, "1", 1, "L", false, 0, "")
	}

	writeRow("Площадка", view.WorkSiteID)
	writeRow("Категория", view.CategoryName)
	writeRow("Проверяющий", view.CheckedByName)
	writeRow("Дата проверки", view.CheckedByDate.Format("02.01.2006"))
	writeRow("Статус", view.StatusName)

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Свидетели", "", 1, "L", false, 0, "")
	for idx, witness := range view.Witnesses {
		state := "не подтверждено"
		if witness.Approved {
			state = "подтверждено"
			if witness.Date != nil {
				state = fmt.Sprintf("подтверждено %s", witness.Date.Format("02.01.2006"))
			}
		}
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%d. %s - %s", idx+1, witness.UserName, state), "", 1, "L", false, 0, "")
	}

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

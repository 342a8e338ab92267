package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	manpowerapimodels "site-qhse-backend/models/api/manpower"
)

const manpowerSheet = "Manpower"

// ExportManpowerRegister - реестр суточных отчётов по персоналу в xlsx
func ExportManpowerRegister(list []manpowerapimodels.ManpowerView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(manpowerSheet)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка создания листа")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "ошибка удаления листа по умолчанию")
	}

	writer := newSheetWriter(f, manpowerSheet)
	headers := []string{"Дата", "Субподрядчик", "Число рабочих", "Статус проверки"}
	if err := writer.writeHeader(headers); err != nil {
		return nil, errors.Wrap(err, "ошибка записи заголовка")
	}
	for _, item := range list {
		values := []interface{}{
			item.Date.Format("02.01.2006"),
			item.SubContractorName,
			item.NumberOfWorkers,
			string(item.Status),
		}
		if err := writer.writeRow(values); err != nil {
			return nil, errors.Wrap(err, "ошибка записи строки")
		}
	}
	if err := writer.finish(); err != nil {
		return nil, errors.Wrap(err, "ошибка применения стиля")
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка сохранения файла")
	}
	return buf.Bytes(), nil
}

package services

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	apperrors "maintenance-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
)

type EquipmentImportServiceInterface interface {
	ImportXLSX(ctx context.Context, file io.Reader) (*dto.ImportReportDTO, error)
}

// EquipmentImportService — пакетный импорт оборудования из .xlsx.
// Шапка таблицы ищется по содержимому, а не по фиксированной строке:
// файлы приходят из разных источников и строки выше шапки бывают заняты
// названием организации.
type EquipmentImportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	zoneRepo      repositories.ZoneRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewEquipmentImportService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	zoneRepo repositories.ZoneRepositoryInterface,
	gatekeeper *authz.Gatekeeper,
	logger *zap.Logger,
) EquipmentImportServiceInterface {
	return &EquipmentImportService{
		equipmentRepo: equipmentRepo,
		zoneRepo:      zoneRepo,
		gatekeeper:    gatekeeper,
		logger:        logger,
	}
}

func (s *EquipmentImportService) ImportXLSX(ctx context.Context, file io.Reader) (*dto.ImportReportDTO, error) {
	if err := s.gatekeeper.Require(ctx, authz.EquipmentImport); err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("не удалось открыть файл: повреждённый или не .xlsx")
	}
	defer f.Close()

	nameIdx, codeIdx, roomIdx := -1, -1, -1
	headerRow := -1
	var dataRows [][]string

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		for rIdx, row := range rows {
			for cIdx, colName := range row {
				c := strings.ToLower(strings.TrimSpace(colName))
				switch {
				case strings.Contains(c, "наимен") || strings.Contains(c, "name"):
					nameIdx = cIdx
				case strings.Contains(c, "код") || strings.Contains(c, "code") || strings.Contains(c, "инв"):
					codeIdx = cIdx
				case strings.Contains(c, "помещ") || strings.Contains(c, "зона") || strings.Contains(c, "room"):
					roomIdx = cIdx
				}
			}
			if nameIdx != -1 && codeIdx != -1 {
				headerRow = rIdx
				dataRows = rows
				break
			}
			nameIdx, codeIdx, roomIdx = -1, -1, -1
		}
		if headerRow != -1 {
			break
		}
	}

	if headerRow == -1 {
		return nil, apperrors.NewInvalidInputError(
			"не найдена шапка таблицы: нужны колонки 'Наименование' и 'Код'")
	}

	// Коды помещений из БД, чтобы привязывать оборудование к зонам.
	zonesByCode := make(map[string]uint64)
	zones, err := s.zoneRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		zonesByCode[strings.ToLower(z.RoomCode)] = z.ID
	}

	report := &dto.ImportReportDTO{}
	for i := headerRow + 1; i < len(dataRows); i++ {
		row := dataRows[i]
		name := cellAt(row, nameIdx)
		code := cellAt(row, codeIdx)
		if name == "" || code == "" {
			report.Skipped++
			continue
		}

		eq := &entities.Equipment{Name: name, Code: code}
		if roomIdx != -1 {
			if zoneID, ok := zonesByCode[strings.ToLower(cellAt(row, roomIdx))]; ok {
				eq.ZoneID = null.Uint64From(zoneID)
			}
		}

		inserted, err := s.equipmentRepo.UpsertByCode(ctx, eq)
		if err != nil {
			s.logger.Warn("строка импорта пропущена из-за ошибки",
				zap.Int("row", i+1), zap.String("code", code), zap.Error(err))
			report.Errors++
			continue
		}
		if inserted {
			report.Created++
		} else {
			report.Updated++
		}
	}

	s.logger.Info("импорт оборудования завершён",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors))
	return report, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

package cables

import "github.com/hyunwoo-lim/cabletrack-backend/pkg/db/models"

type logWithDrumRow struct {
	models.CableLog
	ManagementNo string `gorm:"column:management_no"`
	DrumNo       string `gorm:"column:drum_no"`
	Spec         string `gorm:"column:spec"`
}

func (row logWithDrumRow) toDTO() LogWithDrumDTO {
	return LogWithDrumDTO{
		LogDTO:       *logToDTO(&row.CableLog),
		ManagementNo: row.ManagementNo,
		DrumNo:       row.DrumNo,
		Spec:         row.Spec,
	}
}

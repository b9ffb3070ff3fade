package store

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

// LowMedicalRepository owns CRUD and statistics over low medical category
// records, including the serialization of the category allotment date list.
type LowMedicalRepository struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewLowMedicalRepository creates a LowMedicalRepository.
func NewLowMedicalRepository(db *gorm.DB, log *zap.Logger) *LowMedicalRepository {
	return &LowMedicalRepository{db: db, log: log, now: time.Now}
}

// Insert stores a new low medical category record and returns its id. The
// category allotment value may arrive as raw spreadsheet text or as an
// already-encoded JSON array; either way it is normalized to the JSON
// array-of-strings form before it hits the column.
func (r *LowMedicalRepository) Insert(rec *models.LowMedicalRecord) (uint, error) {
	rec.SerialNo = CleanField(rec.SerialNo)
	rec.PersonnelID = CleanField(rec.PersonnelID)
	rec.Rank = CleanField(rec.Rank)
	rec.Name = CleanField(rec.Name)
	rec.DiseaseReason = CleanField(rec.DiseaseReason)
	rec.MedicalCategory = CleanField(rec.MedicalCategory)
	rec.CategoryAllotmentDate = FormatRawCategoryAllotmentDates(rec.CategoryAllotmentDate)
	rec.LastMedicalBoardDate = CleanDate(rec.LastMedicalBoardDate)
	rec.NextMedicalBoardDate = CleanDate(rec.NextMedicalBoardDate)
	rec.Remarks = CleanField(rec.Remarks)
	if rec.Status = CleanField(rec.Status); rec.Status == "" {
		rec.Status = models.StatusActive
	}

	if err := r.db.Create(rec).Error; err != nil {
		r.log.Error("failed to insert low medical record", zap.String("personnel_id", rec.PersonnelID), zap.Error(err))
		return 0, err
	}
	return rec.ID, nil
}

// GetAll returns all low medical records, newest first.
func (r *LowMedicalRepository) GetAll() ([]models.LowMedicalRecord, error) {
	return r.find(r.db)
}

// GetByPersonnelID returns the low medical records of one service member.
func (r *LowMedicalRepository) GetByPersonnelID(personnelID string) ([]models.LowMedicalRecord, error) {
	return r.find(r.db.Where("personnel_id = ?", personnelID))
}

// GetByStatus returns the low medical records with the given status.
func (r *LowMedicalRepository) GetByStatus(status string) ([]models.LowMedicalRecord, error) {
	return r.find(r.db.Where("status = ?", status))
}

// GetByCategory returns the records currently in the given medical category.
func (r *LowMedicalRepository) GetByCategory(category string) ([]models.LowMedicalRecord, error) {
	return r.find(r.db.Where("medical_category = ?", category))
}

// GetByDateRange returns records whose last medical board date falls between
// two DD.MM.YYYY bounds. The comparison is textual, matching how the column
// is stored.
func (r *LowMedicalRepository) GetByDateRange(from, to string) ([]models.LowMedicalRecord, error) {
	return r.find(r.db.Where("last_medical_board_date BETWEEN ? AND ?", CleanDate(from), CleanDate(to)))
}

// GetByRank returns the low medical records of one rank.
func (r *LowMedicalRepository) GetByRank(rank string) ([]models.LowMedicalRecord, error) {
	return r.find(r.db.Where("rank = ?", rank))
}

// Search matches name, personnel id, rank or medical category by substring.
func (r *LowMedicalRepository) Search(term string) ([]models.LowMedicalRecord, error) {
	pattern := "%" + term + "%"
	return r.find(r.db.Where(
		"name LIKE ? OR personnel_id LIKE ? OR rank LIKE ? OR medical_category LIKE ?",
		pattern, pattern, pattern, pattern,
	))
}

func (r *LowMedicalRepository) find(query *gorm.DB) ([]models.LowMedicalRecord, error) {
	var records []models.LowMedicalRecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		r.log.Error("failed to query low medical records", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// UpdateRemarks mutates only remarks and bumps updated_at.
func (r *LowMedicalRepository) UpdateRemarks(id uint, remarks string) error {
	err := r.db.Model(&models.LowMedicalRecord{}).Where("id = ?", id).
		Update("remarks", CleanField(remarks)).Error
	if err != nil {
		r.log.Error("failed to update low medical remarks", zap.Uint("record_id", id), zap.Error(err))
	}
	return err
}

// LowMedicalPatch describes a partial low medical record update; only
// populated fields are written.
type LowMedicalPatch struct {
	SerialNo              *string
	PersonnelID           *string
	Rank                  *string
	Name                  *string
	DiseaseReason         *string
	MedicalCategory       *string
	CategoryAllotmentDate *string
	LastMedicalBoardDate  *string
	NextMedicalBoardDate  *string
	Remarks               *string
	Status                *string
}

func (p LowMedicalPatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = CleanField(*value)
		}
	}
	set("serial_no", p.SerialNo)
	set("personnel_id", p.PersonnelID)
	set("rank", p.Rank)
	set("name", p.Name)
	set("disease_reason", p.DiseaseReason)
	set("medical_category", p.MedicalCategory)
	set("remarks", p.Remarks)
	set("status", p.Status)
	if p.CategoryAllotmentDate != nil {
		updates["category_allotment_date"] = FormatRawCategoryAllotmentDates(*p.CategoryAllotmentDate)
	}
	if p.LastMedicalBoardDate != nil {
		updates["last_medical_board_date"] = CleanDate(*p.LastMedicalBoardDate)
	}
	if p.NextMedicalBoardDate != nil {
		updates["next_medical_board_date"] = CleanDate(*p.NextMedicalBoardDate)
	}
	return updates
}

// Update applies a patch to a low medical record, stamping updated_at.
func (r *LowMedicalRepository) Update(id uint, patch LowMedicalPatch) error {
	updates := patch.changes()
	if len(updates) == 0 {
		return nil
	}
	err := r.db.Model(&models.LowMedicalRecord{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		r.log.Error("failed to update low medical record", zap.Uint("record_id", id), zap.Error(err))
	}
	return err
}

// DeleteMany removes exactly the records with the given ids.
func (r *LowMedicalRepository) DeleteMany(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.LowMedicalRecord{}, ids).Error; err != nil {
		r.log.Error("failed to delete low medical records", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	return nil
}

// DeleteAll empties the low medical table.
func (r *LowMedicalRepository) DeleteAll() error {
	err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LowMedicalRecord{}).Error
	if err != nil {
		r.log.Error("failed to delete all low medical records", zap.Error(err))
	}
	return err
}

// LowMedicalStatistics is the dashboard aggregate over low medical records.
type LowMedicalStatistics struct {
	Total        int64 `json:"total"`
	BoardDueSoon int64 `json:"boardDueSoon"`
}

// Statistics returns the total record count and how many records have a
// medical board date within the next 30 days, keyed off the last board date
// column. Empty or unparseable dates are excluded silently.
func (r *LowMedicalRepository) Statistics() (LowMedicalStatistics, error) {
	var stats LowMedicalStatistics
	if err := r.db.Model(&models.LowMedicalRecord{}).Count(&stats.Total).Error; err != nil {
		r.log.Error("failed to count low medical records", zap.Error(err))
		return stats, err
	}

	var dates []string
	if err := r.db.Model(&models.LowMedicalRecord{}).Pluck("last_medical_board_date", &dates).Error; err != nil {
		r.log.Error("failed to load board dates", zap.Error(err))
		return stats, err
	}
	stats.BoardDueSoon = countDueWithin(dates, r.now(), dueSoonWindowDays)
	return stats, nil
}

package store

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

// dueSoonWindowDays is the review horizon of the dashboard counters.
const dueSoonWindowDays = 30

// AMERepository owns CRUD and the aggregate statistics over annual medical
// examination records.
type AMERepository struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewAMERepository creates an AMERepository.
func NewAMERepository(db *gorm.DB, log *zap.Logger) *AMERepository {
	return &AMERepository{db: db, log: log, now: time.Now}
}

// Insert stores a new AME record and returns its id. Every free-form field
// is sanitized; absent values become "", never NULL.
func (r *AMERepository) Insert(rec *models.AMERecord) (uint, error) {
	rec.SerialNo = CleanField(rec.SerialNo)
	rec.PersonnelID = CleanField(rec.PersonnelID)
	rec.Rank = CleanField(rec.Rank)
	rec.FullName = CleanField(rec.FullName)
	rec.Unit = CleanField(rec.Unit)
	rec.Age = CleanField(rec.Age)
	rec.Height = CleanField(rec.Height)
	rec.Weight = CleanField(rec.Weight)
	rec.Chest = CleanField(rec.Chest)
	rec.WaistHipRatio = CleanField(rec.WaistHipRatio)
	rec.BMI = CleanField(rec.BMI)
	rec.Pulse = CleanField(rec.Pulse)
	rec.BloodGroup = CleanField(rec.BloodGroup)
	rec.BloodPressure = CleanField(rec.BloodPressure)
	rec.Vision = CleanField(rec.Vision)
	rec.PreviousMedicalCategory = CleanField(rec.PreviousMedicalCategory)
	rec.DateOfAME = CleanDate(rec.DateOfAME)
	rec.PresentCategoryAwarded = CleanField(rec.PresentCategoryAwarded)
	rec.CategoryReason = CleanField(rec.CategoryReason)
	rec.Remarks = CleanField(rec.Remarks)
	if rec.Status = CleanField(rec.Status); rec.Status == "" {
		rec.Status = models.StatusActive
	}

	if err := r.db.Create(rec).Error; err != nil {
		r.log.Error("failed to insert AME record", zap.String("personnel_id", rec.PersonnelID), zap.Error(err))
		return 0, err
	}
	return rec.ID, nil
}

// GetAll returns all AME records, newest first.
func (r *AMERepository) GetAll() ([]models.AMERecord, error) {
	return r.find(r.db)
}

// GetByPersonnelID returns the AME records of one service member.
func (r *AMERepository) GetByPersonnelID(personnelID string) ([]models.AMERecord, error) {
	return r.find(r.db.Where("personnel_id = ?", personnelID))
}

// GetByStatus returns the AME records with the given status.
func (r *AMERepository) GetByStatus(status string) ([]models.AMERecord, error) {
	return r.find(r.db.Where("status = ?", status))
}

// GetByDateRange returns records whose examination date falls between two
// DD.MM.YYYY bounds. The comparison is textual, matching how the column is
// stored.
func (r *AMERepository) GetByDateRange(from, to string) ([]models.AMERecord, error) {
	return r.find(r.db.Where("date_of_ame BETWEEN ? AND ?", CleanDate(from), CleanDate(to)))
}

// GetByUnit returns the AME records of one unit.
func (r *AMERepository) GetByUnit(unit string) ([]models.AMERecord, error) {
	return r.find(r.db.Where("unit = ?", unit))
}

// GetByRank returns the AME records of one rank.
func (r *AMERepository) GetByRank(rank string) ([]models.AMERecord, error) {
	return r.find(r.db.Where("rank = ?", rank))
}

// Search matches name, personnel id, rank or unit by substring.
func (r *AMERepository) Search(term string) ([]models.AMERecord, error) {
	pattern := "%" + term + "%"
	return r.find(r.db.Where(
		"full_name LIKE ? OR personnel_id LIKE ? OR rank LIKE ? OR unit LIKE ?",
		pattern, pattern, pattern, pattern,
	))
}

func (r *AMERepository) find(query *gorm.DB) ([]models.AMERecord, error) {
	var records []models.AMERecord
	if err := query.Order("created_at DESC").Find(&records).Error; err != nil {
		r.log.Error("failed to query AME records", zap.Error(err))
		return nil, err
	}
	return records, nil
}

// UpdateRemarks is the narrow update path for the inline remarks editor. It
// mutates only remarks and bumps updated_at.
func (r *AMERepository) UpdateRemarks(id uint, remarks string) error {
	err := r.db.Model(&models.AMERecord{}).Where("id = ?", id).
		Update("remarks", CleanField(remarks)).Error
	if err != nil {
		r.log.Error("failed to update AME remarks", zap.Uint("record_id", id), zap.Error(err))
	}
	return err
}

// AMEPatch describes a partial AME record update; only populated fields are
// written.
type AMEPatch struct {
	SerialNo                *string
	PersonnelID             *string
	Rank                    *string
	FullName                *string
	Unit                    *string
	Age                     *string
	Height                  *string
	Weight                  *string
	Chest                   *string
	WaistHipRatio           *string
	BMI                     *string
	Pulse                   *string
	BloodGroup              *string
	BloodPressure           *string
	Vision                  *string
	PreviousMedicalCategory *string
	DateOfAME               *string
	PresentCategoryAwarded  *string
	CategoryReason          *string
	Remarks                 *string
	Status                  *string
}

func (p AMEPatch) changes() map[string]interface{} {
	updates := map[string]interface{}{}
	set := func(column string, value *string) {
		if value != nil {
			updates[column] = CleanField(*value)
		}
	}
	set("serial_no", p.SerialNo)
	set("personnel_id", p.PersonnelID)
	set("rank", p.Rank)
	set("full_name", p.FullName)
	set("unit", p.Unit)
	set("age", p.Age)
	set("height", p.Height)
	set("weight", p.Weight)
	set("chest", p.Chest)
	set("waist_hip_ratio", p.WaistHipRatio)
	set("bmi", p.BMI)
	set("pulse", p.Pulse)
	set("blood_group", p.BloodGroup)
	set("blood_pressure", p.BloodPressure)
	set("vision", p.Vision)
	set("previous_medical_category", p.PreviousMedicalCategory)
	set("present_category_awarded", p.PresentCategoryAwarded)
	set("category_reason", p.CategoryReason)
	set("remarks", p.Remarks)
	set("status", p.Status)
	if p.DateOfAME != nil {
		updates["date_of_ame"] = CleanDate(*p.DateOfAME)
	}
	return updates
}

// Update applies a patch to an AME record, stamping updated_at.
func (r *AMERepository) Update(id uint, patch AMEPatch) error {
	updates := patch.changes()
	if len(updates) == 0 {
		return nil
	}
	err := r.db.Model(&models.AMERecord{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		r.log.Error("failed to update AME record", zap.Uint("record_id", id), zap.Error(err))
	}
	return err
}

// DeleteMany removes exactly the records with the given ids.
func (r *AMERepository) DeleteMany(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Delete(&models.AMERecord{}, ids).Error; err != nil {
		r.log.Error("failed to delete AME records", zap.Int("count", len(ids)), zap.Error(err))
		return err
	}
	return nil
}

// DeleteAll empties the AME table.
func (r *AMERepository) DeleteAll() error {
	err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.AMERecord{}).Error
	if err != nil {
		r.log.Error("failed to delete all AME records", zap.Error(err))
	}
	return err
}

// AMEStatistics is the dashboard aggregate over AME records.
type AMEStatistics struct {
	Total   int64 `json:"total"`
	DueSoon int64 `json:"dueSoon"`
}

// Statistics returns the total record count and how many records have an
// examination date within the next 30 days. Records with empty or
// unparseable dates are excluded from the due count.
func (r *AMERepository) Statistics() (AMEStatistics, error) {
	var stats AMEStatistics
	if err := r.db.Model(&models.AMERecord{}).Count(&stats.Total).Error; err != nil {
		r.log.Error("failed to count AME records", zap.Error(err))
		return stats, err
	}

	var dates []string
	if err := r.db.Model(&models.AMERecord{}).Pluck("date_of_ame", &dates).Error; err != nil {
		r.log.Error("failed to load AME dates", zap.Error(err))
		return stats, err
	}
	stats.DueSoon = countDueWithin(dates, r.now(), dueSoonWindowDays)
	return stats, nil
}

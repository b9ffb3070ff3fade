package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

func setupPrescriptionRepo(t *testing.T) (*PrescriptionRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewPrescriptionRepository(db, zap.NewNop()), db
}

// withMonotonicClock makes every Insert see a distinct millisecond so the
// generated prescription numbers cannot collide within a fast test.
func withMonotonicClock(repo *PrescriptionRepository) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var tick int64
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Millisecond)
	}
}

func threeMedSubmission() PrescriptionSubmission {
	return PrescriptionSubmission{
		PatientID:        "123456789",
		PatientName:      "John Carter",
		PatientRank:      "SGT",
		PatientUnit:      "Alpha",
		Diagnosis:        "Acute bronchitis",
		Symptoms:         "Cough, fever",
		PrescriptionDate: "01.06.2024",
		DoctorID:         "98765432",
		DoctorName:       "Maj R Sharma",
		Medications: []MedicationEntry{
			{Name: "Amoxicillin", Dosage: "500mg", Frequency: "TDS", Duration: "5 days"},
			{Name: "Paracetamol", Dosage: "650mg", Frequency: "SOS", Duration: "3 days"},
			{Name: "Cetirizine", Dosage: "10mg", Frequency: "OD", Duration: "5 days"},
		},
	}
}

func TestPrescriptionInsert(t *testing.T) {
	repo, db := setupPrescriptionRepo(t)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }

	receipt, err := repo.Insert(threeMedSubmission())
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("RX-%d", frozen.UnixMilli()), receipt.PrescriptionNumber)
	assert.Equal(t, "01.06.2024", receipt.PrescriptionDate)

	// Exactly one parent row and three child rows.
	var parents, children int64
	require.NoError(t, db.Model(&models.Prescription{}).Count(&parents).Error)
	require.NoError(t, db.Model(&models.PrescriptionMedication{}).Count(&children).Error)
	assert.Equal(t, int64(1), parents)
	assert.Equal(t, int64(3), children)

	stored, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusActive, stored.Status)
	assert.Len(t, stored.MedicationLines, 3)
	assert.Equal(t, "Amoxicillin", stored.MedicationLines[0].MedicationName)
	assert.Contains(t, stored.Medications, `"Paracetamol"`)
}

func TestPrescriptionInsert_NoMedications(t *testing.T) {
	repo, db := setupPrescriptionRepo(t)
	withMonotonicClock(repo)

	sub := threeMedSubmission()
	sub.Medications = nil
	receipt, err := repo.Insert(sub)
	require.NoError(t, err)

	stored, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored.Medications)

	var children int64
	require.NoError(t, db.Model(&models.PrescriptionMedication{}).Count(&children).Error)
	assert.Zero(t, children)
}

func TestPrescriptionInsert_DefaultsDate(t *testing.T) {
	repo, _ := setupPrescriptionRepo(t)
	frozen := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return frozen }

	sub := threeMedSubmission()
	sub.PrescriptionDate = ""
	receipt, err := repo.Insert(sub)
	require.NoError(t, err)
	assert.Equal(t, "01.06.2024", receipt.PrescriptionDate)
}

func TestPrescriptionDelete_NoOrphanedLines(t *testing.T) {
	repo, db := setupPrescriptionRepo(t)
	withMonotonicClock(repo)

	receipt, err := repo.Insert(threeMedSubmission())
	require.NoError(t, err)

	keep, err := repo.Insert(threeMedSubmission())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(receipt.ID))

	gone, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	var orphans int64
	require.NoError(t, db.Model(&models.PrescriptionMedication{}).
		Where("prescription_id = ?", receipt.ID).Count(&orphans).Error)
	assert.Zero(t, orphans)

	// The other prescription keeps its lines.
	var remaining int64
	require.NoError(t, db.Model(&models.PrescriptionMedication{}).
		Where("prescription_id = ?", keep.ID).Count(&remaining).Error)
	assert.Equal(t, int64(3), remaining)
}

func TestPrescriptionQueries(t *testing.T) {
	repo, _ := setupPrescriptionRepo(t)
	withMonotonicClock(repo)

	first := threeMedSubmission()
	receipt, err := repo.Insert(first)
	require.NoError(t, err)

	second := threeMedSubmission()
	second.PatientID = "222222222"
	second.PatientName = "Jane Miller"
	second.Diagnosis = "Sprained ankle"
	second.PrescriptionDate = "15.06.2024"
	_, err = repo.Insert(second)
	require.NoError(t, err)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byStatus, err := repo.GetByStatus(models.StatusActive)
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	byRange, err := repo.GetByDateRange("10.06.2024", "20.06.2024")
	require.NoError(t, err)
	require.Len(t, byRange, 1)
	assert.Equal(t, "Jane Miller", byRange[0].PatientName)

	byDiagnosis, err := repo.Search("bronchitis")
	require.NoError(t, err)
	assert.Len(t, byDiagnosis, 1)

	byNumber, err := repo.Search(receipt.PrescriptionNumber)
	require.NoError(t, err)
	require.Len(t, byNumber, 1)
	assert.Equal(t, receipt.ID, byNumber[0].ID)
}

func TestPrescriptionPatientHistory(t *testing.T) {
	repo, _ := setupPrescriptionRepo(t)
	withMonotonicClock(repo)

	receipt, err := repo.Insert(threeMedSubmission())
	require.NoError(t, err)

	other := threeMedSubmission()
	other.PatientID = "222222222"
	_, err = repo.Insert(other)
	require.NoError(t, err)

	history, err := repo.GetByPatient("123456789")
	require.NoError(t, err)
	require.Len(t, history, 1)
	entry := history[0]
	assert.Equal(t, receipt.ID, entry.ID)
	assert.Equal(t, receipt.PrescriptionNumber, entry.PrescriptionNumber)
	assert.Equal(t, "Acute bronchitis", entry.Diagnosis)
	assert.Equal(t, "Maj R Sharma", entry.DoctorName)
	assert.Contains(t, entry.Medications, "Amoxicillin")
}

func TestPrescriptionUpdateStatus(t *testing.T) {
	repo, _ := setupPrescriptionRepo(t)
	withMonotonicClock(repo)

	receipt, err := repo.Insert(threeMedSubmission())
	require.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(receipt.ID, "completed"))

	stored, err := repo.GetByID(receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", stored.Status)
	// Everything but status is frozen at issue time.
	assert.Equal(t, "Acute bronchitis", stored.Diagnosis)
}

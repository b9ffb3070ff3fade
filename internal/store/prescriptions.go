package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"milmed-app-server/internal/models"
)

// PrescriptionRepository owns prescription CRUD. A prescription and its
// medication lines are one logical unit, so every write touching both tables
// runs inside a single transaction.
type PrescriptionRepository struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

// NewPrescriptionRepository creates a PrescriptionRepository.
func NewPrescriptionRepository(db *gorm.DB, log *zap.Logger) *PrescriptionRepository {
	return &PrescriptionRepository{db: db, log: log, now: time.Now}
}

// MedicationEntry is one medication of a prescription submission.
type MedicationEntry struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// PrescriptionSubmission carries a new prescription. Patient fields are the
// snapshot captured at issue time.
type PrescriptionSubmission struct {
	PatientID         string
	PatientName       string
	PatientRank       string
	PatientUnit       string
	PatientAge        string
	PatientBloodGroup string
	PatientCategory   string
	Diagnosis         string
	Symptoms          string
	Medications       []MedicationEntry
	Instructions      string
	FollowUpDate      string
	PrescriptionDate  string
	DoctorID          string
	DoctorName        string
}

// PrescriptionReceipt is returned by Insert.
type PrescriptionReceipt struct {
	ID                 uint   `json:"id"`
	PrescriptionNumber string `json:"prescriptionNumber"`
	PrescriptionDate   string `json:"prescriptionDate"`
}

// Insert stores a prescription with its medication lines and returns the new
// id and generated prescription number. The parent row and all child rows
// are written in one transaction; a failed line insert rolls everything back.
func (r *PrescriptionRepository) Insert(sub PrescriptionSubmission) (*PrescriptionReceipt, error) {
	issued := r.now()
	number := fmt.Sprintf("RX-%d", issued.UnixMilli())

	prescriptionDate := CleanDate(sub.PrescriptionDate)
	if prescriptionDate == "" {
		prescriptionDate = issued.Format(dottedDateLayout)
	}

	medications := sub.Medications
	if medications == nil {
		medications = []MedicationEntry{}
	}
	medicationsJSON, err := json.Marshal(medications)
	if err != nil {
		return nil, fmt.Errorf("failed to encode medications: %w", err)
	}

	prescription := models.Prescription{
		PrescriptionNumber: number,
		PatientID:          CleanField(sub.PatientID),
		PatientName:        CleanField(sub.PatientName),
		PatientRank:        CleanField(sub.PatientRank),
		PatientUnit:        CleanField(sub.PatientUnit),
		PatientAge:         CleanField(sub.PatientAge),
		PatientBloodGroup:  CleanField(sub.PatientBloodGroup),
		PatientCategory:    CleanField(sub.PatientCategory),
		Diagnosis:          CleanField(sub.Diagnosis),
		Symptoms:           CleanField(sub.Symptoms),
		Medications:        string(medicationsJSON),
		Instructions:       CleanField(sub.Instructions),
		FollowUpDate:       CleanDate(sub.FollowUpDate),
		PrescriptionDate:   prescriptionDate,
		DoctorID:           CleanField(sub.DoctorID),
		DoctorName:         CleanField(sub.DoctorName),
		Status:             models.StatusActive,
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prescription).Error; err != nil {
			return err
		}
		if len(medications) == 0 {
			return nil
		}
		lines := make([]models.PrescriptionMedication, len(medications))
		for i, med := range medications {
			lines[i] = models.PrescriptionMedication{
				PrescriptionID: prescription.ID,
				MedicationName: CleanField(med.Name),
				Dosage:         CleanField(med.Dosage),
				Frequency:      CleanField(med.Frequency),
				Duration:       CleanField(med.Duration),
				Instructions:   CleanField(med.Instructions),
			}
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		r.log.Error("failed to insert prescription", zap.String("patient_id", prescription.PatientID), zap.Error(err))
		return nil, err
	}

	return &PrescriptionReceipt{
		ID:                 prescription.ID,
		PrescriptionNumber: number,
		PrescriptionDate:   prescriptionDate,
	}, nil
}

// GetAll returns all prescriptions, newest first.
func (r *PrescriptionRepository) GetAll() ([]models.Prescription, error) {
	return r.find(r.db)
}

// GetByID fetches a prescription with its medication lines, nil when absent.
func (r *PrescriptionRepository) GetByID(id uint) (*models.Prescription, error) {
	var prescription models.Prescription
	err := r.db.Preload("MedicationLines").First(&prescription, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to fetch prescription", zap.Uint("prescription_id", id), zap.Error(err))
		return nil, err
	}
	return &prescription, nil
}

// GetByDateRange returns prescriptions issued between two DD.MM.YYYY bounds.
func (r *PrescriptionRepository) GetByDateRange(from, to string) ([]models.Prescription, error) {
	return r.find(r.db.Where("prescription_date BETWEEN ? AND ?", CleanDate(from), CleanDate(to)))
}

// GetByStatus returns the prescriptions with the given status.
func (r *PrescriptionRepository) GetByStatus(status string) ([]models.Prescription, error) {
	return r.find(r.db.Where("status = ?", status))
}

// Search matches patient name, diagnosis or prescription number by substring.
func (r *PrescriptionRepository) Search(term string) ([]models.Prescription, error) {
	pattern := "%" + term + "%"
	return r.find(r.db.Where(
		"patient_name LIKE ? OR diagnosis LIKE ? OR prescription_number LIKE ?",
		pattern, pattern, pattern,
	))
}

func (r *PrescriptionRepository) find(query *gorm.DB) ([]models.Prescription, error) {
	var prescriptions []models.Prescription
	if err := query.Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		r.log.Error("failed to query prescriptions", zap.Error(err))
		return nil, err
	}
	return prescriptions, nil
}

// PrescriptionHistoryEntry is the reduced view of a prescription shown in a
// patient's visit history.
type PrescriptionHistoryEntry struct {
	ID                 uint   `json:"id"`
	PrescriptionNumber string `json:"prescriptionNumber"`
	Diagnosis          string `json:"diagnosis"`
	PrescriptionDate   string `json:"prescriptionDate"`
	Medications        string `json:"medications"`
	FollowUpDate       string `json:"followUpDate"`
	Status             string `json:"status"`
	DoctorName         string `json:"doctorName"`
}

// GetByPatient returns a patient's prescription history, newest first.
func (r *PrescriptionRepository) GetByPatient(patientID string) ([]PrescriptionHistoryEntry, error) {
	prescriptions, err := r.find(r.db.Where("patient_id = ?", patientID))
	if err != nil {
		return nil, err
	}

	history := make([]PrescriptionHistoryEntry, len(prescriptions))
	for i, p := range prescriptions {
		history[i] = PrescriptionHistoryEntry{
			ID:                 p.ID,
			PrescriptionNumber: p.PrescriptionNumber,
			Diagnosis:          p.Diagnosis,
			PrescriptionDate:   p.PrescriptionDate,
			Medications:        p.Medications,
			FollowUpDate:       p.FollowUpDate,
			Status:             p.Status,
			DoctorName:         p.DoctorName,
		}
	}
	return history, nil
}

// UpdateStatus sets the status of a prescription. Status is the only mutable
// field after issue; a prescription is a point-in-time document.
func (r *PrescriptionRepository) UpdateStatus(id uint, status string) error {
	err := r.db.Model(&models.Prescription{}).Where("id = ?", id).
		Update("status", CleanField(status)).Error
	if err != nil {
		r.log.Error("failed to update prescription status", zap.Uint("prescription_id", id), zap.Error(err))
	}
	return err
}

// Delete removes a prescription and its medication lines. The lines are
// deleted in the same transaction rather than relying on the declared
// cascade, which SQLite only honors when foreign keys are enabled.
func (r *PrescriptionRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prescription_id = ?", id).Delete(&models.PrescriptionMedication{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Prescription{}, id).Error
	})
	if err != nil {
		r.log.Error("failed to delete prescription", zap.Uint("prescription_id", id), zap.Error(err))
	}
	return err
}

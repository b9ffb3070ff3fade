package models

import (
	"time"
)

// Prescription is a doctor-issued prescription. Patient fields are a
// denormalized snapshot captured at issue time: a prescription is a
// point-in-time document and is not kept in sync with later edits to the
// source AME record.
type Prescription struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	PrescriptionNumber string    `gorm:"uniqueIndex;size:50" json:"prescriptionNumber"`
	PatientID          string    `gorm:"size:100;index" json:"patientId"`
	PatientName        string    `gorm:"size:255" json:"patientName"`
	PatientRank        string    `gorm:"size:50" json:"patientRank"`
	PatientUnit        string    `gorm:"size:100" json:"patientUnit"`
	PatientAge         string    `gorm:"size:20" json:"patientAge"`
	PatientBloodGroup  string    `gorm:"size:10" json:"patientBloodGroup"`
	PatientCategory    string    `gorm:"size:50" json:"patientCategory"`
	Diagnosis          string    `gorm:"type:text" json:"diagnosis"`
	Symptoms           string    `gorm:"type:text" json:"symptoms"`
	Medications        string    `gorm:"type:text" json:"medications"` // JSON list, mirrored in the child table
	Instructions       string    `gorm:"type:text" json:"instructions"`
	FollowUpDate       string    `gorm:"size:50" json:"followUpDate"`
	PrescriptionDate   string    `gorm:"size:50" json:"prescriptionDate"`
	DoctorID           string    `gorm:"size:100;index" json:"doctorId"`
	DoctorName         string    `gorm:"size:255" json:"doctorName"`
	Status             string    `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt          time.Time `json:"createdAt"`

	MedicationLines []PrescriptionMedication `gorm:"foreignKey:PrescriptionID;constraint:OnDelete:CASCADE" json:"medicationLines,omitempty"`
}

// PrescriptionMedication is one structured medication line of a prescription.
type PrescriptionMedication struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	PrescriptionID uint   `gorm:"index;not null" json:"prescriptionId"`
	MedicationName string `gorm:"size:255" json:"medicationName"`
	Dosage         string `gorm:"size:100" json:"dosage"`
	Frequency      string `gorm:"size:100" json:"frequency"`
	Duration       string `gorm:"size:100" json:"duration"`
	Instructions   string `gorm:"type:text" json:"instructions"`
}

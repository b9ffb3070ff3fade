package handlers

import (
	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/middleware"
	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
	"milmed-app-server/internal/utils"
)

// PrescriptionHandler handles prescription requests.
type PrescriptionHandler struct {
	Prescriptions *store.PrescriptionRepository
	Accounts      *store.AccountRepository
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(prescriptions *store.PrescriptionRepository, accounts *store.AccountRepository) *PrescriptionHandler {
	return &PrescriptionHandler{Prescriptions: prescriptions, Accounts: accounts}
}

// MedicationRequest is one medication line of a prescription submission.
type MedicationRequest struct {
	Name         string `json:"name" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// CreatePrescriptionRequest represents the request body for issuing a
// prescription. Patient fields are the snapshot shown on the printed form;
// the issuing doctor is taken from the session token.
type CreatePrescriptionRequest struct {
	PatientID         string              `json:"patientId" binding:"required"`
	PatientName       string              `json:"patientName" binding:"required"`
	PatientRank       string              `json:"patientRank"`
	PatientUnit       string              `json:"patientUnit"`
	PatientAge        string              `json:"patientAge"`
	PatientBloodGroup string              `json:"patientBloodGroup"`
	PatientCategory   string              `json:"patientCategory"`
	Diagnosis         string              `json:"diagnosis" binding:"required"`
	Symptoms          string              `json:"symptoms"`
	Medications       []MedicationRequest `json:"medications" binding:"dive"`
	Instructions      string              `json:"instructions"`
	FollowUpDate      string              `json:"followUpDate"`
	PrescriptionDate  string              `json:"prescriptionDate"`
}

// CreatePrescription handles issuing a prescription. Doctor only.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetAccountIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}
	// The issuing doctor's identity comes from the session claim; the account
	// row supplies the display name.
	doctorIdentity, exists := middleware.GetAccountIdentityFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor not authenticated")
		return
	}
	doctor, err := h.Accounts.GetByID(doctorID)
	if err != nil {
		utils.InternalServerError(c, "Database error loading doctor: "+err.Error())
		return
	}
	if doctor == nil {
		utils.Unauthorized(c, "Doctor account no longer exists")
		return
	}

	medications := make([]store.MedicationEntry, len(req.Medications))
	for i, m := range req.Medications {
		medications[i] = store.MedicationEntry{
			Name:         m.Name,
			Dosage:       m.Dosage,
			Frequency:    m.Frequency,
			Duration:     m.Duration,
			Instructions: m.Instructions,
		}
	}

	receipt, err := h.Prescriptions.Insert(store.PrescriptionSubmission{
		PatientID:         req.PatientID,
		PatientName:       req.PatientName,
		PatientRank:       req.PatientRank,
		PatientUnit:       req.PatientUnit,
		PatientAge:        req.PatientAge,
		PatientBloodGroup: req.PatientBloodGroup,
		PatientCategory:   req.PatientCategory,
		Diagnosis:         req.Diagnosis,
		Symptoms:          req.Symptoms,
		Medications:       medications,
		Instructions:      req.Instructions,
		FollowUpDate:      req.FollowUpDate,
		PrescriptionDate:  req.PrescriptionDate,
		DoctorID:          doctorIdentity,
		DoctorName:        doctor.FullName,
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		return
	}

	utils.Created(c, "Prescription created successfully", receipt)
}

// GetPrescriptions handles listing prescriptions, with optional filters:
// status, or from+to date bounds.
func (h *PrescriptionHandler) GetPrescriptions(c *gin.Context) {
	var (
		prescriptions []models.Prescription
		err           error
	)

	switch {
	case c.Query("status") != "":
		prescriptions, err = h.Prescriptions.GetByStatus(c.Query("status"))
	case c.Query("from") != "" && c.Query("to") != "":
		prescriptions, err = h.Prescriptions.GetByDateRange(c.Query("from"), c.Query("to"))
	default:
		prescriptions, err = h.Prescriptions.GetAll()
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPrescriptionByID handles fetching one prescription with its medication
// lines.
func (h *PrescriptionHandler) GetPrescriptionByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	prescription, err := h.Prescriptions.GetByID(id)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescription: "+err.Error())
		return
	}
	if prescription == nil {
		utils.NotFound(c, "Prescription not found")
		return
	}

	utils.Success(c, "Prescription fetched successfully", prescription)
}

// SearchPrescriptions handles substring search over patient name, diagnosis
// and prescription number.
func (h *PrescriptionHandler) SearchPrescriptions(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		utils.BadRequest(c, "q query parameter is required")
		return
	}

	prescriptions, err := h.Prescriptions.Search(term)
	if err != nil {
		utils.InternalServerError(c, "Failed to search prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPatientHistory handles the reduced per-patient prescription history
// view.
func (h *PrescriptionHandler) GetPatientHistory(c *gin.Context) {
	patientID := c.Param("patientId")
	if patientID == "" {
		utils.BadRequest(c, "patientId path parameter is required")
		return
	}

	history, err := h.Prescriptions.GetByPatient(patientID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch prescription history: "+err.Error())
		return
	}

	utils.Success(c, "Prescription history fetched successfully", history)
}

// UpdatePrescriptionStatusRequest represents the status mutator body.
type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePrescriptionStatus handles setting a prescription's status.
func (h *PrescriptionHandler) UpdatePrescriptionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdatePrescriptionStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Prescriptions.UpdateStatus(id, req.Status); err != nil {
		utils.InternalServerError(c, "Failed to update prescription status: "+err.Error())
		return
	}

	utils.Success(c, "Prescription status updated successfully", nil)
}

// DeletePrescription handles deleting a prescription and its medication
// lines.
func (h *PrescriptionHandler) DeletePrescription(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.Prescriptions.Delete(id); err != nil {
		utils.InternalServerError(c, "Failed to delete prescription: "+err.Error())
		return
	}

	utils.Success(c, "Prescription deleted successfully", nil)
}

package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
	"milmed-app-server/internal/utils"
)

// LMCHandler handles low medical category record requests.
type LMCHandler struct {
	Records *store.LowMedicalRepository
}

// NewLMCHandler creates a new LMCHandler.
func NewLMCHandler(records *store.LowMedicalRepository) *LMCHandler {
	return &LMCHandler{Records: records}
}

// LMCRecordRequest represents one low medical category record. The category
// allotment value may be raw spreadsheet text ("12.05.2021, 01.06.2021") or
// an already-encoded JSON array; the store normalizes either form.
type LMCRecordRequest struct {
	SerialNo              string `json:"serialNo"`
	PersonnelID           string `json:"personnelId" binding:"required"`
	Rank                  string `json:"rank"`
	Name                  string `json:"name" binding:"required"`
	DiseaseReason         string `json:"diseaseReason"`
	MedicalCategory       string `json:"medicalCategory"`
	CategoryAllotmentDate string `json:"categoryAllotmentDate"`
	LastMedicalBoardDate  string `json:"lastMedicalBoardDate"`
	NextMedicalBoardDate  string `json:"nextMedicalBoardDate"`
	Remarks               string `json:"remarks"`
	Status                string `json:"status"`
}

func (req LMCRecordRequest) toModel() models.LowMedicalRecord {
	return models.LowMedicalRecord{
		SerialNo:              req.SerialNo,
		PersonnelID:           req.PersonnelID,
		Rank:                  req.Rank,
		Name:                  req.Name,
		DiseaseReason:         req.DiseaseReason,
		MedicalCategory:       req.MedicalCategory,
		CategoryAllotmentDate: req.CategoryAllotmentDate,
		LastMedicalBoardDate:  req.LastMedicalBoardDate,
		NextMedicalBoardDate:  req.NextMedicalBoardDate,
		Remarks:               req.Remarks,
		Status:                req.Status,
	}
}

// CreateLMCRecord handles manual entry of a single record.
func (h *LMCHandler) CreateLMCRecord(c *gin.Context) {
	var req LMCRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record := req.toModel()
	id, err := h.Records.Insert(&record)
	if err != nil {
		utils.InternalServerError(c, "Failed to create low medical record: "+err.Error())
		return
	}

	utils.Created(c, "Low medical record created successfully", gin.H{"id": id})
}

// BulkCreateLMCRequest represents the request body of a bulk import.
type BulkCreateLMCRequest struct {
	Records []LMCRecordRequest `json:"records" binding:"required,min=1,dive"`
}

// BulkCreateLMCRecords handles a bulk import of spreadsheet rows.
func (h *LMCHandler) BulkCreateLMCRecords(c *gin.Context) {
	var req BulkCreateLMCRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ids := make([]uint, 0, len(req.Records))
	for i, r := range req.Records {
		record := r.toModel()
		id, err := h.Records.Insert(&record)
		if err != nil {
			utils.InternalServerError(c, fmt.Sprintf("Failed to import record %d of %d: %s", i+1, len(req.Records), err.Error()))
			return
		}
		ids = append(ids, id)
	}

	utils.Created(c, "Low medical records imported successfully", gin.H{"count": len(ids), "ids": ids})
}

// GetLMCRecords handles listing records, with optional filters taken from
// query parameters: personnelId, status, category, rank, or from+to board
// date bounds.
func (h *LMCHandler) GetLMCRecords(c *gin.Context) {
	var (
		records []models.LowMedicalRecord
		err     error
	)

	switch {
	case c.Query("personnelId") != "":
		records, err = h.Records.GetByPersonnelID(c.Query("personnelId"))
	case c.Query("status") != "":
		records, err = h.Records.GetByStatus(c.Query("status"))
	case c.Query("category") != "":
		records, err = h.Records.GetByCategory(c.Query("category"))
	case c.Query("rank") != "":
		records, err = h.Records.GetByRank(c.Query("rank"))
	case c.Query("from") != "" && c.Query("to") != "":
		records, err = h.Records.GetByDateRange(c.Query("from"), c.Query("to"))
	default:
		records, err = h.Records.GetAll()
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch low medical records: "+err.Error())
		return
	}

	utils.Success(c, "Low medical records fetched successfully", records)
}

// SearchLMCRecords handles substring search over name, personnel id, rank
// and medical category.
func (h *LMCHandler) SearchLMCRecords(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		utils.BadRequest(c, "q query parameter is required")
		return
	}

	records, err := h.Records.Search(term)
	if err != nil {
		utils.InternalServerError(c, "Failed to search low medical records: "+err.Error())
		return
	}

	utils.Success(c, "Low medical records fetched successfully", records)
}

// ParseAllotmentDates decodes a stored or raw category-allotment value into
// the date list the UI renders as chips.
func (h *LMCHandler) ParseAllotmentDates(c *gin.Context) {
	raw := c.Query("value")
	utils.Success(c, "Allotment dates parsed successfully", gin.H{
		"dates": store.ParseCategoryAllotmentDates(raw),
	})
}

// UpdateLMCRemarks handles the narrow remarks-only update path.
func (h *LMCHandler) UpdateLMCRemarks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateRemarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if err := h.Records.UpdateRemarks(id, req.Remarks); err != nil {
		utils.InternalServerError(c, "Failed to update remarks: "+err.Error())
		return
	}

	utils.Success(c, "Remarks updated successfully", nil)
}

// UpdateLMCRequest represents a partial record update. Absent fields are
// left untouched.
type UpdateLMCRequest struct {
	SerialNo              *string `json:"serialNo"`
	PersonnelID           *string `json:"personnelId"`
	Rank                  *string `json:"rank"`
	Name                  *string `json:"name"`
	DiseaseReason         *string `json:"diseaseReason"`
	MedicalCategory       *string `json:"medicalCategory"`
	CategoryAllotmentDate *string `json:"categoryAllotmentDate"`
	LastMedicalBoardDate  *string `json:"lastMedicalBoardDate"`
	NextMedicalBoardDate  *string `json:"nextMedicalBoardDate"`
	Remarks               *string `json:"remarks"`
	Status                *string `json:"status"`
}

// UpdateLMCRecord handles a partial update of a record.
func (h *LMCHandler) UpdateLMCRecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateLMCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	patch := store.LowMedicalPatch{
		SerialNo:              req.SerialNo,
		PersonnelID:           req.PersonnelID,
		Rank:                  req.Rank,
		Name:                  req.Name,
		DiseaseReason:         req.DiseaseReason,
		MedicalCategory:       req.MedicalCategory,
		CategoryAllotmentDate: req.CategoryAllotmentDate,
		LastMedicalBoardDate:  req.LastMedicalBoardDate,
		NextMedicalBoardDate:  req.NextMedicalBoardDate,
		Remarks:               req.Remarks,
		Status:                req.Status,
	}

	if err := h.Records.Update(id, patch); err != nil {
		utils.InternalServerError(c, "Failed to update low medical record: "+err.Error())
		return
	}

	utils.Success(c, "Low medical record updated successfully", nil)
}

// DeleteLMCRecords handles bulk deletion by id list.
func (h *LMCHandler) DeleteLMCRecords(c *gin.Context) {
	var req DeleteManyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Records.DeleteMany(req.IDs); err != nil {
		utils.InternalServerError(c, "Failed to delete low medical records: "+err.Error())
		return
	}

	utils.Success(c, "Low medical records deleted successfully", gin.H{"count": len(req.IDs)})
}

// DeleteAllLMCRecords handles emptying the low medical table.
func (h *LMCHandler) DeleteAllLMCRecords(c *gin.Context) {
	if err := h.Records.DeleteAll(); err != nil {
		utils.InternalServerError(c, "Failed to delete low medical records: "+err.Error())
		return
	}

	utils.Success(c, "All low medical records deleted successfully", nil)
}

// GetLMCStatistics handles the dashboard counters.
func (h *LMCHandler) GetLMCStatistics(c *gin.Context) {
	stats, err := h.Records.Statistics()
	if err != nil {
		utils.InternalServerError(c, "Failed to compute low medical statistics: "+err.Error())
		return
	}

	utils.Success(c, "Low medical statistics fetched successfully", stats)
}

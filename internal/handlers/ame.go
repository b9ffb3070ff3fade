package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"milmed-app-server/internal/models"
	"milmed-app-server/internal/store"
	"milmed-app-server/internal/utils"
)

// AMEHandler handles annual medical examination record requests.
type AMEHandler struct {
	Records *store.AMERepository
}

// NewAMEHandler creates a new AMEHandler.
func NewAMEHandler(records *store.AMERepository) *AMEHandler {
	return &AMEHandler{Records: records}
}

// AMERecordRequest represents one AME record as submitted by manual entry or
// a bulk import. Fields mirror the examination sheet; everything is free
// text and sanitized by the store.
type AMERecordRequest struct {
	SerialNo                string `json:"serialNo"`
	PersonnelID             string `json:"personnelId" binding:"required"`
	Rank                    string `json:"rank"`
	FullName                string `json:"fullName" binding:"required"`
	Unit                    string `json:"unit"`
	Age                     string `json:"age"`
	Height                  string `json:"height"`
	Weight                  string `json:"weight"`
	Chest                   string `json:"chest"`
	WaistHipRatio           string `json:"waistHipRatio"`
	BMI                     string `json:"bmi"`
	Pulse                   string `json:"pulse"`
	BloodGroup              string `json:"bloodGroup"`
	BloodPressure           string `json:"bloodPressure"`
	Vision                  string `json:"vision"`
	PreviousMedicalCategory string `json:"previousMedicalCategory"`
	DateOfAME               string `json:"dateOfAme"`
	PresentCategoryAwarded  string `json:"presentCategoryAwarded"`
	CategoryReason          string `json:"categoryReason"`
	Remarks                 string `json:"remarks"`
	Status                  string `json:"status"`
}

func (req AMERecordRequest) toModel() models.AMERecord {
	return models.AMERecord{
		SerialNo:                req.SerialNo,
		PersonnelID:             req.PersonnelID,
		Rank:                    req.Rank,
		FullName:                req.FullName,
		Unit:                    req.Unit,
		Age:                     req.Age,
		Height:                  req.Height,
		Weight:                  req.Weight,
		Chest:                   req.Chest,
		WaistHipRatio:           req.WaistHipRatio,
		BMI:                     req.BMI,
		Pulse:                   req.Pulse,
		BloodGroup:              req.BloodGroup,
		BloodPressure:           req.BloodPressure,
		Vision:                  req.Vision,
		PreviousMedicalCategory: req.PreviousMedicalCategory,
		DateOfAME:               req.DateOfAME,
		PresentCategoryAwarded:  req.PresentCategoryAwarded,
		CategoryReason:          req.CategoryReason,
		Remarks:                 req.Remarks,
		Status:                  req.Status,
	}
}

// CreateAMERecord handles manual entry of a single record.
func (h *AMEHandler) CreateAMERecord(c *gin.Context) {
	var req AMERecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record := req.toModel()
	id, err := h.Records.Insert(&record)
	if err != nil {
		utils.InternalServerError(c, "Failed to create AME record: "+err.Error())
		return
	}

	utils.Created(c, "AME record created successfully", gin.H{"id": id})
}

// BulkCreateAMERequest represents the request body of a bulk import.
type BulkCreateAMERequest struct {
	Records []AMERecordRequest `json:"records" binding:"required,min=1,dive"`
}

// BulkCreateAMERecords handles a bulk import of examination rows.
func (h *AMEHandler) BulkCreateAMERecords(c *gin.Context) {
	var req BulkCreateAMERequest
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

	utils.Created(c, "AME records imported successfully", gin.H{"count": len(ids), "ids": ids})
}

// GetAMERecords handles listing records, with optional filters taken from
// query parameters: personnelId, status, unit, rank, or from+to date bounds.
func (h *AMEHandler) GetAMERecords(c *gin.Context) {
	var (
		records []models.AMERecord
		err     error
	)

	switch {
	case c.Query("personnelId") != "":
		records, err = h.Records.GetByPersonnelID(c.Query("personnelId"))
	case c.Query("status") != "":
		records, err = h.Records.GetByStatus(c.Query("status"))
	case c.Query("unit") != "":
		records, err = h.Records.GetByUnit(c.Query("unit"))
	case c.Query("rank") != "":
		records, err = h.Records.GetByRank(c.Query("rank"))
	case c.Query("from") != "" && c.Query("to") != "":
		records, err = h.Records.GetByDateRange(c.Query("from"), c.Query("to"))
	default:
		records, err = h.Records.GetAll()
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch AME records: "+err.Error())
		return
	}

	utils.Success(c, "AME records fetched successfully", records)
}

// SearchAMERecords handles substring search over name, personnel id, rank
// and unit.
func (h *AMEHandler) SearchAMERecords(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		utils.BadRequest(c, "q query parameter is required")
		return
	}

	records, err := h.Records.Search(term)
	if err != nil {
		utils.InternalServerError(c, "Failed to search AME records: "+err.Error())
		return
	}

	utils.Success(c, "AME records fetched successfully", records)
}

// UpdateRemarksRequest represents the body of the inline remarks editor.
type UpdateRemarksRequest struct {
	Remarks string `json:"remarks"`
}

// UpdateAMERemarks handles the narrow remarks-only update path.
func (h *AMEHandler) UpdateAMERemarks(c *gin.Context) {
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

// UpdateAMERequest represents a partial record update. Absent fields are
// left untouched.
type UpdateAMERequest struct {
	SerialNo                *string `json:"serialNo"`
	PersonnelID             *string `json:"personnelId"`
	Rank                    *string `json:"rank"`
	FullName                *string `json:"fullName"`
	Unit                    *string `json:"unit"`
	Age                     *string `json:"age"`
	Height                  *string `json:"height"`
	Weight                  *string `json:"weight"`
	Chest                   *string `json:"chest"`
	WaistHipRatio           *string `json:"waistHipRatio"`
	BMI                     *string `json:"bmi"`
	Pulse                   *string `json:"pulse"`
	BloodGroup              *string `json:"bloodGroup"`
	BloodPressure           *string `json:"bloodPressure"`
	Vision                  *string `json:"vision"`
	PreviousMedicalCategory *string `json:"previousMedicalCategory"`
	DateOfAME               *string `json:"dateOfAme"`
	PresentCategoryAwarded  *string `json:"presentCategoryAwarded"`
	CategoryReason          *string `json:"categoryReason"`
	Remarks                 *string `json:"remarks"`
	Status                  *string `json:"status"`
}

// UpdateAMERecord handles a partial update of a record.
func (h *AMEHandler) UpdateAMERecord(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateAMERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	patch := store.AMEPatch{
		SerialNo:                req.SerialNo,
		PersonnelID:             req.PersonnelID,
		Rank:                    req.Rank,
		FullName:                req.FullName,
		Unit:                    req.Unit,
		Age:                     req.Age,
		Height:                  req.Height,
		Weight:                  req.Weight,
		Chest:                   req.Chest,
		WaistHipRatio:           req.WaistHipRatio,
		BMI:                     req.BMI,
		Pulse:                   req.Pulse,
		BloodGroup:              req.BloodGroup,
		BloodPressure:           req.BloodPressure,
		Vision:                  req.Vision,
		PreviousMedicalCategory: req.PreviousMedicalCategory,
		DateOfAME:               req.DateOfAME,
		PresentCategoryAwarded:  req.PresentCategoryAwarded,
		CategoryReason:          req.CategoryReason,
		Remarks:                 req.Remarks,
		Status:                  req.Status,
	}

	if err := h.Records.Update(id, patch); err != nil {
		utils.InternalServerError(c, "Failed to update AME record: "+err.Error())
		return
	}

	utils.Success(c, "AME record updated successfully", nil)
}

// DeleteManyRequest represents a bulk delete by id list.
type DeleteManyRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

// DeleteAMERecords handles bulk deletion by id list.
func (h *AMEHandler) DeleteAMERecords(c *gin.Context) {
	var req DeleteManyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Records.DeleteMany(req.IDs); err != nil {
		utils.InternalServerError(c, "Failed to delete AME records: "+err.Error())
		return
	}

	utils.Success(c, "AME records deleted successfully", gin.H{"count": len(req.IDs)})
}

// DeleteAllAMERecords handles emptying the AME table.
func (h *AMEHandler) DeleteAllAMERecords(c *gin.Context) {
	if err := h.Records.DeleteAll(); err != nil {
		utils.InternalServerError(c, "Failed to delete AME records: "+err.Error())
		return
	}

	utils.Success(c, "All AME records deleted successfully", nil)
}

// GetAMEStatistics handles the dashboard counters.
func (h *AMEHandler) GetAMEStatistics(c *gin.Context) {
	stats, err := h.Records.Statistics()
	if err != nil {
		utils.InternalServerError(c, "Failed to compute AME statistics: "+err.Error())
		return
	}

	utils.Success(c, "AME statistics fetched successfully", stats)
}

package models

// LowMedicalRecord tracks personnel placed in a lowered medical category who
// require periodic review boards.
//
// CategoryAllotmentDate holds a JSON array of date strings. The source data
// is free-text spreadsheet cells with variably delimited dates; the store
// package normalizes them at the storage boundary and an empty or
// unparseable cell is persisted as "[]".
type LowMedicalRecord struct {
	BaseModel
	SerialNo              string `gorm:"size:50" json:"serialNo"`
	PersonnelID           string `gorm:"size:100;index" json:"personnelId"`
	Rank                  string `gorm:"size:50" json:"rank"`
	Name                  string `gorm:"size:255" json:"name"`
	DiseaseReason         string `gorm:"type:text" json:"diseaseReason"`
	MedicalCategory       string `gorm:"size:50" json:"medicalCategory"`
	CategoryAllotmentDate string `gorm:"type:text;default:'[]'" json:"categoryAllotmentDate"`
	LastMedicalBoardDate  string `gorm:"size:50" json:"lastMedicalBoardDate"`
	NextMedicalBoardDate  string `gorm:"size:50" json:"nextMedicalBoardDate"`
	Remarks               string `gorm:"type:text" json:"remarks"`
	Status                string `gorm:"size:20;default:'active'" json:"status"`
}

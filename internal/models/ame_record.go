package models

// StatusActive is the default record status for AME and low-medical records.
const StatusActive = "active"

// AMERecord is one annual medical examination entry per personnel per visit.
//
// Numeric-looking fields (age, height, BMI, ...) are stored as sanitized
// strings: the data arrives from spreadsheets and manual entry, and absent
// values normalize to "" rather than NULL so display logic stays simple.
type AMERecord struct {
	BaseModel
	SerialNo                string `gorm:"size:50" json:"serialNo"`
	PersonnelID             string `gorm:"size:100;index" json:"personnelId"`
	Rank                    string `gorm:"size:50" json:"rank"`
	FullName                string `gorm:"size:255" json:"fullName"`
	Unit                    string `gorm:"size:100" json:"unit"`
	Age                     string `gorm:"size:20" json:"age"`
	Height                  string `gorm:"size:20" json:"height"`
	Weight                  string `gorm:"size:20" json:"weight"`
	Chest                   string `gorm:"size:20" json:"chest"`
	WaistHipRatio           string `gorm:"size:20" json:"waistHipRatio"`
	BMI                     string `gorm:"size:20" json:"bmi"`
	Pulse                   string `gorm:"size:20" json:"pulse"`
	BloodGroup              string `gorm:"size:10" json:"bloodGroup"`
	BloodPressure           string `gorm:"size:20" json:"bloodPressure"`
	Vision                  string `gorm:"size:50" json:"vision"`
	PreviousMedicalCategory string `gorm:"size:50" json:"previousMedicalCategory"`
	DateOfAME               string `gorm:"size:50" json:"dateOfAme"`
	PresentCategoryAwarded  string `gorm:"size:50" json:"presentCategoryAwarded"`
	CategoryReason          string `gorm:"type:text" json:"categoryReason"`
	Remarks                 string `gorm:"type:text" json:"remarks"`
	Status                  string `gorm:"size:20;default:'active'" json:"status"`
}

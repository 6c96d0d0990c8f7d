package content

// Audience tells which of the two institutions a record applies to.
// It is also the level of departments and gallery images.
type Audience string

const (
	AudienceSchool  Audience = "school"
	AudienceCollege Audience = "college"
	AudienceBoth    Audience = "both"
)

var Audiences = []Audience{AudienceSchool, AudienceCollege, AudienceBoth}

func (a Audience) IsValid() bool {
	for _, v := range Audiences {
		if a == v {
			return true
		}
	}
	return false
}

// Level is the institution a faculty member or an applicant belongs to.
type Level string

const (
	LevelSchool  Level = "school"
	LevelCollege Level = "college"
)

var Levels = []Level{LevelSchool, LevelCollege}

func (l Level) IsValid() bool {
	return l == LevelSchool || l == LevelCollege
}

type AdmissionStatus string

const (
	StatusSubmitted AdmissionStatus = "submitted"
	StatusReviewed  AdmissionStatus = "reviewed"
	StatusAccepted  AdmissionStatus = "accepted"
	StatusRejected  AdmissionStatus = "rejected"
)

var AdmissionStatuses = []AdmissionStatus{StatusSubmitted, StatusReviewed, StatusAccepted, StatusRejected}

func (s AdmissionStatus) IsValid() bool {
	for _, v := range AdmissionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

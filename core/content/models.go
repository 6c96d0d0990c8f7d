package content

import (
	"time"

	"github.com/emellab/campus/core"
)

const (
	defaultNoticeCategory = "general"
	collegeListLimit      = 100
)

// Entity is implemented by every record type served by the API.
// All methods must work on the zero value.
type Entity[T any] interface {
	// Collection is the name of the collection holding the records.
	Collection() string
	// FilterParams lists the query parameters usable as equality filters on List.
	FilterParams() []string
	DefaultLimit() int64
	// Normalize returns a cleaned copy of the record with defaults applied
	// and any client supplied identifier or timestamps dropped.
	Normalize(now time.Time) T
}

// Meta holds the fields managed by the document store.
type Meta struct {
	ID        string    `json:"_id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type Notice struct {
	Meta     `bson:",inline"`
	Title    string    `json:"title" bson:"title" validate:"required"`
	Content  string    `json:"content" bson:"content" validate:"required"`
	Audience Audience  `json:"audience" bson:"audience" validate:"required,audience"`
	Category string    `json:"category" bson:"category"`
	Date     time.Time `json:"date" bson:"date"`
}

func (Notice) Collection() string     { return "notice" }
func (Notice) FilterParams() []string { return []string{"audience"} }
func (Notice) DefaultLimit() int64    { return core.DefaultListLimit }
func (n Notice) Normalize(now time.Time) Notice {
	n.Meta = Meta{}
	n.Title = core.CleanString(n.Title)
	n.Content = core.CleanString(n.Content)
	n.Audience = Audience(core.CleanString(string(n.Audience)))
	n.Category = core.CleanString(n.Category)
	if n.Category == "" {
		n.Category = defaultNoticeCategory
	}
	if n.Date.IsZero() {
		n.Date = now
	}
	n.Date = n.Date.UTC()
	return n
}

type Event struct {
	Meta        `bson:",inline"`
	Title       string     `json:"title" bson:"title" validate:"required"`
	Description string     `json:"description" bson:"description" validate:"required"`
	StartDate   time.Time  `json:"start_date" bson:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Audience    Audience   `json:"audience" bson:"audience" validate:"required,audience"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty"`
}

func (Event) Collection() string     { return "event" }
func (Event) FilterParams() []string { return []string{"audience"} }
func (Event) DefaultLimit() int64    { return core.DefaultListLimit }
func (e Event) Normalize(time.Time) Event {
	e.Meta = Meta{}
	e.Title = core.CleanString(e.Title)
	e.Description = core.CleanString(e.Description)
	e.Audience = Audience(core.CleanString(string(e.Audience)))
	e.Location = core.CleanString(e.Location)
	e.StartDate = e.StartDate.UTC()
	if e.EndDate != nil {
		end := e.EndDate.UTC()
		e.EndDate = &end
	}
	return e
}

type Faculty struct {
	Meta        `bson:",inline"`
	Name        string `json:"name" bson:"name" validate:"required"`
	Designation string `json:"designation" bson:"designation" validate:"required"`
	Department  string `json:"department" bson:"department" validate:"required"`
	Level       Level  `json:"level" bson:"level" validate:"required,level"`
	Bio         string `json:"bio,omitempty" bson:"bio,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty" bson:"photo_url,omitempty"`
}

func (Faculty) Collection() string     { return "faculty" }
func (Faculty) FilterParams() []string { return []string{"level", "department"} }
func (Faculty) DefaultLimit() int64    { return collegeListLimit }
func (f Faculty) Normalize(time.Time) Faculty {
	f.Meta = Meta{}
	f.Name = core.CleanString(f.Name)
	f.Designation = core.CleanString(f.Designation)
	f.Department = core.CleanString(f.Department)
	f.Level = Level(core.CleanString(string(f.Level)))
	f.Bio = core.CleanString(f.Bio)
	f.PhotoURL = core.CleanString(f.PhotoURL)
	return f
}

type Department struct {
	Meta        `bson:",inline"`
	Name        string   `json:"name" bson:"name" validate:"required"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Head        string   `json:"head,omitempty" bson:"head,omitempty"`
	Level       Audience `json:"level" bson:"level" validate:"required,audience"`
	Subjects    []string `json:"subjects" bson:"subjects"`
}

func (Department) Collection() string     { return "department" }
func (Department) FilterParams() []string { return []string{"level"} }
func (Department) DefaultLimit() int64    { return collegeListLimit }
func (d Department) Normalize(time.Time) Department {
	d.Meta = Meta{}
	d.Name = core.CleanString(d.Name)
	d.Description = core.CleanString(d.Description)
	d.Head = core.CleanString(d.Head)
	d.Level = Audience(core.CleanString(string(d.Level)))
	subjects := make([]string, 0, len(d.Subjects))
	for _, s := range d.Subjects {
		subjects = append(subjects, core.CleanString(s))
	}
	d.Subjects = subjects
	return d
}

type Admission struct {
	Meta                `bson:",inline"`
	Level               Level           `json:"level" bson:"level" validate:"required,level"`
	FirstName           string          `json:"first_name" bson:"first_name" validate:"required"`
	LastName            string          `json:"last_name" bson:"last_name" validate:"required"`
	ClassOrStream       string          `json:"class_or_stream" bson:"class_or_stream" validate:"required"` // class (6-10) for school, stream for college
	Phone               string          `json:"phone" bson:"phone" validate:"required"`
	Email               string          `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Address             string          `json:"address,omitempty" bson:"address,omitempty"`
	GuardianName        string          `json:"guardian_name,omitempty" bson:"guardian_name,omitempty"`
	PreviousInstitution string          `json:"previous_institution,omitempty" bson:"previous_institution,omitempty"`
	Status              AdmissionStatus `json:"status" bson:"status" validate:"required,admission_status"`
}

func (Admission) Collection() string     { return "admission" }
func (Admission) FilterParams() []string { return []string{"level", "status"} }
func (Admission) DefaultLimit() int64    { return collegeListLimit }
func (a Admission) Normalize(time.Time) Admission {
	a.Meta = Meta{}
	a.Level = Level(core.CleanString(string(a.Level)))
	a.FirstName = core.CleanString(a.FirstName)
	a.LastName = core.CleanString(a.LastName)
	a.ClassOrStream = core.CleanString(a.ClassOrStream)
	a.Phone = core.CleanString(a.Phone)
	a.Email = core.CleanString(a.Email, true /* lower */)
	a.Address = core.CleanString(a.Address)
	a.GuardianName = core.CleanString(a.GuardianName)
	a.PreviousInstitution = core.CleanString(a.PreviousInstitution)
	a.Status = AdmissionStatus(core.CleanString(string(a.Status)))
	if a.Status == "" {
		a.Status = StatusSubmitted
	}
	return a
}

type GalleryImage struct {
	Meta        `bson:",inline"`
	Title       string   `json:"title" bson:"title" validate:"required"`
	URL         string   `json:"url" bson:"url" validate:"required"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Level       Audience `json:"level" bson:"level" validate:"required,audience"`
	Album       string   `json:"album,omitempty" bson:"album,omitempty"`
}

func (GalleryImage) Collection() string     { return "galleryimage" }
func (GalleryImage) FilterParams() []string { return []string{"level", "album"} }
func (GalleryImage) DefaultLimit() int64    { return collegeListLimit }
func (g GalleryImage) Normalize(time.Time) GalleryImage {
	g.Meta = Meta{}
	g.Title = core.CleanString(g.Title)
	g.URL = core.CleanString(g.URL)
	g.Description = core.CleanString(g.Description)
	g.Level = Audience(core.CleanString(string(g.Level)))
	g.Album = core.CleanString(g.Album)
	return g
}

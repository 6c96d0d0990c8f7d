package content

import (
	"context"
	"net/mail"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/emellab/campus/core"
)

// Manager is the collection level administration of records, used by the admin CLI.
type Manager interface {
	Collection() string
	Update(ctx context.Context, id string, patch core.Document) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

var (
	_ Manager = (*Service[Notice])(nil)
	_ Manager = (*Service[Admission])(nil)
)

// Services holds one Service per content type.
type Services struct {
	Notices     *Service[Notice]
	Events      *Service[Event]
	Faculty     *Service[Faculty]
	Departments *Service[Department]
	Admissions  *Service[Admission]
	Gallery     *Service[GalleryImage]
}

func NewServices(
	store core.DocumentStore,
	validate *validator.Validate,
	translator ut.Translator,
	mailSvc core.EmailService,
) *Services {
	return &Services{
		Notices:     NewService(NewRepository[Notice](store), validate, translator),
		Events:      NewService(NewRepository[Event](store), validate, translator),
		Faculty:     NewService(NewRepository[Faculty](store), validate, translator),
		Departments: NewService(NewRepository[Department](store), validate, translator),
		Admissions:  NewService(NewRepository[Admission](store), validate, translator, admissionReceivedHook(mailSvc)),
		Gallery:     NewService(NewRepository[GalleryImage](store), validate, translator),
	}
}

func (s *Services) Managers() []Manager {
	return []Manager{s.Notices, s.Events, s.Faculty, s.Departments, s.Admissions, s.Gallery}
}

// Manager returns the Manager of the given collection.
func (s *Services) Manager(collection string) (Manager, bool) {
	for _, m := range s.Managers() {
		if m.Collection() == collection {
			return m, true
		}
	}
	return nil, false
}

// admissionReceivedHook acknowledges an application by email when the applicant left an address.
func admissionReceivedHook(mailSvc core.EmailService) CreatedHook[Admission] {
	return func(id string, rec Admission) {
		if mailSvc == nil || rec.Email == "" {
			return
		}
		rec.ID = id
		mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: rec.FirstName + " " + rec.LastName, Address: rec.Email}},
			Subject:      "Admission application received",
			TemplateName: "admission_received",
			TemplateData: rec,
		})
	}
}

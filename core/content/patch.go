package content

import (
	"reflect"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/emellab/campus/core"
)

var timeType = reflect.TypeOf(time.Time{})

type patchField struct {
	typ reflect.Type
	tag string
}

// patchFields maps the stored field names of T to their type and validation tag.
// Store managed fields (the embedded Meta) are not patchable.
func patchFields[T any]() map[string]patchField {
	var zero T
	typ := reflect.TypeOf(zero)
	flds := make(map[string]patchField, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Anonymous {
			continue
		}
		name := strings.SplitN(f.Tag.Get("bson"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		flds[name] = patchField{typ: f.Type, tag: f.Tag.Get("validate")}
	}
	return flds
}

// CheckPatch validates a partial update of T field by field, with the same constraints as on creation.
// RFC 3339 strings given for date fields are converted to time.Time.
// It returns the patch ready to be handed to the store.
func CheckPatch[T Entity[T]](validate *validator.Validate, translator ut.Translator, patch core.Document) (core.Document, error) {
	flds := patchFields[T]()
	cleaned := make(core.Document, len(patch))
	var fldErrs []core.FieldError

	for name, val := range patch {
		fld, ok := flds[name]
		if !ok {
			fldErrs = append(fldErrs, core.FieldError{Field: name, Error: "unknown or read-only field"})
			continue
		}

		val, ok = coerce(val, fld.typ)
		if !ok {
			fldErrs = append(fldErrs, core.FieldError{Field: name, Error: name + " has the wrong type"})
			continue
		}

		if s, isStr := val.(string); isStr {
			s = core.CleanString(s)
			val = s
			if fld.typ == timeType || (fld.typ.Kind() == reflect.Ptr && fld.typ.Elem() == timeType) {
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					fldErrs = append(fldErrs, core.FieldError{Field: name, Error: name + " must be an RFC 3339 date-time"})
					continue
				}
				val = t.UTC()
			}
		}

		if fld.tag != "" {
			if err := validate.Var(val, fld.tag); err != nil {
				var vErrs validator.ValidationErrors
				if !errors.As(err, &vErrs) {
					return nil, errors.Wrapf(err, "validating %s", name)
				}
				for _, vErr := range vErrs {
					fldErrs = append(fldErrs, core.FieldError{Field: name, Error: strings.TrimSpace(vErr.Translate(translator))})
				}
				continue
			}
		}
		cleaned[name] = val
	}

	if len(fldErrs) > 0 {
		return nil, core.NewValidationError(nil, fldErrs...)
	}
	return cleaned, nil
}

// coerce converts decoded JSON values to the shape stored for a field of type typ.
func coerce(val interface{}, typ reflect.Type) (interface{}, bool) {
	switch typ.Kind() {
	case reflect.String:
		s, ok := val.(string)
		return s, ok
	case reflect.Slice:
		var items []interface{}
		switch v := val.(type) {
		case []string:
			return v, true
		case []interface{}:
			items = v
		default:
			return nil, false
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, core.CleanString(s))
		}
		return out, true
	default:
		return val, true
	}
}

package web

import (
	"html/template"

	"github.com/janisto/profile-print/internal/service/draft"
)

// Messages shown on the warning page.
const (
	MsgPopupsBlocked = "Please allow popups to download PDF"
	MsgRenderFailed  = "Failed to generate PDF. Please try again."
	MsgSaveFailed    = "Could not save your details. Please try again."
)

// FormField is one labelled input of the profile form.
type FormField struct {
	Name        string
	Label       string
	Placeholder string
	Type        string
	Multiline   bool
	Value       string
	Error       string
}

// FormView is the data for the form page.
type FormView struct {
	PageTitle string
	Alert     string
	Fields    []FormField
}

// PreviewView is the data for the preview page.
type PreviewView struct {
	PageTitle  string
	Stylesheet template.CSS
	Profile    template.HTML
}

// WarningView is the data for the warning page.
type WarningView struct {
	PageTitle string
	Message   string
	BackURL   string
}

var formFields = []FormField{
	{Name: draft.FieldName, Label: "Full Name", Placeholder: "Enter your full name", Type: "text"},
	{Name: draft.FieldEmail, Label: "Email Address", Placeholder: "Enter your email", Type: "email"},
	{Name: draft.FieldPhoneNumber, Label: "Phone Number", Placeholder: "Enter your phone number", Type: "tel"},
	{Name: draft.FieldPosition, Label: "Position", Placeholder: "Enter your position/title", Type: "text"},
	{Name: draft.FieldDescription, Label: "Description", Placeholder: "Enter a brief description", Multiline: true},
}

func newFormView(in draft.Input, errs draft.FieldErrors) FormView {
	values := map[string]string{
		draft.FieldName:        in.Name,
		draft.FieldEmail:       in.Email,
		draft.FieldPhoneNumber: in.PhoneNumber,
		draft.FieldPosition:    in.Position,
		draft.FieldDescription: in.Description,
	}
	fields := make([]FormField, len(formFields))
	for i, f := range formFields {
		f.Value = values[f.Name]
		f.Error = errs.Get(f.Name)
		fields[i] = f
	}
	return FormView{PageTitle: "Add Your Details", Fields: fields}
}

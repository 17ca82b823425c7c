package draft

import draftsvc "github.com/janisto/profile-print/internal/service/draft"

// Body carries raw form values. Fields are optional at the schema level so that
// every rule is enforced by the shared form validation with its own messages.
type Body struct {
	Name        string `json:"name,omitempty"        doc:"Full name, at least 2 characters"         example:"Ada Lovelace"`
	Email       string `json:"email,omitempty"       doc:"Email address"                            example:"ada@example.com"`
	PhoneNumber string `json:"phoneNumber,omitempty" doc:"Phone number, at least 10 characters"     example:"+44 20 7946 0958"`
	Position    string `json:"position,omitempty"    doc:"Current position, at least 2 characters"  example:"Analyst"`
	Description string `json:"description,omitempty" doc:"About text, at least 10 characters"       example:"Writes the first programs."`
}

// Input converts the body into validation input.
func (b Body) Input() draftsvc.Input {
	return draftsvc.Input(b)
}

// DraftGetInput for GET /draft (no body needed)
type DraftGetInput struct{}

// DraftPutInput for PUT /draft
type DraftPutInput struct {
	Body Body
}

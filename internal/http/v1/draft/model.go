package draft

import draftsvc "github.com/janisto/profile-print/internal/service/draft"

// Draft is the API representation of the stored profile draft.
type Draft struct {
	Name        string `json:"name"        doc:"Full name"              example:"Ada Lovelace"`
	Email       string `json:"email"       doc:"Email address"          example:"ada@example.com"`
	PhoneNumber string `json:"phoneNumber" doc:"Phone number"           example:"+44 20 7946 0958"`
	Position    string `json:"position"    doc:"Current position"       example:"Analyst"`
	Description string `json:"description" doc:"About text, multi-line" example:"Writes the first programs."`
}

func toHTTPDraft(d *draftsvc.ProfileDraft) Draft {
	return Draft(*d)
}

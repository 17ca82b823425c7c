package draft

// DraftGetOutput for GET /draft
type DraftGetOutput struct {
	Body Draft
}

// DraftPutOutput for PUT /draft
type DraftPutOutput struct {
	Body Draft
}

package document

// DocumentOutput carries the presented document bytes (HTML print view or PDF).
type DocumentOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	CacheControl       string `header:"Cache-Control"`
	Body               []byte
}

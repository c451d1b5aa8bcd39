package assistant

// QueryRequest is a natural-language question about the ledger
type QueryRequest struct {
	Query string `json:"query" validate:"required,min=1,max=2000"`
}

// QueryResponse is the assistant's answer
type QueryResponse struct {
	Response string `json:"response"`
}

package azure

// Wire types for the Azure Video Retrieval API.

// indexFeature declares a searchable modality on an index.
type indexFeature struct {
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

// createIndexRequest is the body for PUT /retrieval/indexes/{index}.
type createIndexRequest struct {
	Features []indexFeature `json:"features"`
}

// ingestionVideo is one video in an ingestion batch.
type ingestionVideo struct {
	Mode        string `json:"mode"`
	DocumentID  string `json:"documentId"`
	DocumentURL string `json:"documentUrl"`
}

// createIngestionRequest is the body for PUT /retrieval/indexes/{index}/ingestions/{name}.
type createIngestionRequest struct {
	Videos []ingestionVideo `json:"videos"`
}

// ingestionResponse is returned when creating or polling an ingestion.
type ingestionResponse struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// documentEntry is one indexed document in a document listing.
type documentEntry struct {
	DocumentID   string `json:"documentId"`
	DocumentURL  string `json:"documentUrl"`
	DocumentKind string `json:"documentKind"`
}

// listDocumentsResponse is the body of GET /retrieval/indexes/{index}/documents.
type listDocumentsResponse struct {
	Value []documentEntry `json:"value"`
}

// queryFilters restricts a text query to specific modalities.
type queryFilters struct {
	FeatureFilters []string `json:"featureFilters"`
}

// queryByTextRequest is the body for POST /retrieval/indexes/{index}:queryByText.
type queryByTextRequest struct {
	QueryText string       `json:"queryText"`
	Filters   queryFilters `json:"filters"`
	Top       int          `json:"top,omitempty"`
}

// queryHit is one match returned by a text query.
type queryHit struct {
	DocumentID   string  `json:"documentId"`
	DocumentKind string  `json:"documentKind"`
	Start        string  `json:"start"`
	End          string  `json:"end"`
	Best         string  `json:"best"`
	Relevance    float64 `json:"relevance"`
}

// queryByTextResponse is the body of a text query response.
type queryByTextResponse struct {
	Value []queryHit `json:"value"`
}

// apiErrorResponse is the standard Azure error envelope.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

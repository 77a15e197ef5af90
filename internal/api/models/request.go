package models

// CopilotQueryRequest is the body of POST /api/v1/copilot/query.
type CopilotQueryRequest struct {
	Query   string         `json:"query" binding:"required,min=3,max=500"`
	Context map[string]any `json:"context,omitempty"`
}

// UploadForm is the dashboard's own multipart form for POST /upload.
// The file part is read separately; binding only covers the optional fields.
type UploadForm struct {
	// Redirect must be a local path; protocol-relative paths fall back to the dashboard.
	Redirect string `form:"redirect" binding:"omitempty,startswith=/,max=512"`
}

// CopilotForm is the dashboard's form for POST /copilot.
type CopilotForm struct {
	Query string `form:"query" binding:"required,min=3,max=500"`
}

// StoreSimulationQuery is the query string of GET /api/v1/simulator/all.
type StoreSimulationQuery struct {
	Scenario string `form:"scenario" binding:"required,oneof=price_change promotion marketing"`
	Segment  string `form:"segment" binding:"omitempty,oneof=all high_risk opportunity"`
}

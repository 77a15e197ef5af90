package model

import "retail-dashboard/internal/api/models"

const UploadStatusSuccess = "success"

// UploadOutcome is the terminal answer of one inventory upload.
type UploadOutcome struct {
	models.UploadResponse
	// HTTPStatus is the response status code; 0 when no response arrived.
	HTTPStatus int
}

// Succeeded applies the dashboard's success rule: a 2xx response whose body
// says status "success". Anything else is a logical failure.
func (o UploadOutcome) Succeeded() bool {
	return o.HTTPStatus >= 200 && o.HTTPStatus < 300 && o.Status == UploadStatusSuccess
}

package models

import "strings"

type JobResponse struct {
	ID           string   `json:"id"`
	Status       string   `json:"status"`
	Files        []string `json:"files,omitempty"`
	ErrorMessage *string  `json:"error_message,omitempty"`
}

func NewJobResponse(job *Job) JobResponse {
	resp := JobResponse{
		ID:     job.ID.String(),
		Status: string(job.Status),
	}
	if job.Files != "" {
		resp.Files = strings.Split(job.Files, ",")
	}
	if job.Status == StatusFailed && job.ErrorMessage != nil {
		resp.ErrorMessage = job.ErrorMessage
	}
	return resp
}

package models

// TailorRequest is the body sent to the remote tailoring service.
type TailorRequest struct {
	JobText            string `json:"job_text"`
	IncludeCoverLetter bool   `json:"include_cover_letter"`
}

// TailorResponse carries base64 encoded PDF content. CoverLetter is empty
// when the service did not produce one.
type TailorResponse struct {
	Resume      string `json:"resume"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

const (
	ResumeFilename      = "tailored_resume.pdf"
	CoverLetterFilename = "cover_letter.pdf"
)

// DownloadTask is one file save derived from a TailorResponse.
type DownloadTask struct {
	Filename string
	Payload  []byte
	Sequence int
}

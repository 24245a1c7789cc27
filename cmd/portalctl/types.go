package main

// API response shapes mirrored from the server. Kept local so the CLI
// only depends on the wire contract.

type crossingResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
}

type userRef struct {
	ID       string `json:"id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

type closureResponse struct {
	ID                    string            `json:"id"`
	RailwayCrossing       string            `json:"railway_crossing"`
	RailwayCrossingDetail *crossingResponse `json:"railway_crossing_detail,omitempty"`
	CreatedBy             userRef           `json:"created_by"`
	StartDate             string            `json:"start_date"`
	EndDate               string            `json:"end_date"`
	Reason                string            `json:"reason"`
	Status                string            `json:"status"`
	StatusDisplay         string            `json:"status_display"`
	AdminApproved         bool              `json:"admin_approved"`
	GibddApproved         bool              `json:"gibdd_approved"`
	DigitalSignature      string            `json:"digital_signature,omitempty"`
	SignatureDate         string            `json:"signature_date,omitempty"`
	Comments              []commentResponse `json:"comments,omitempty"`
}

type commentResponse struct {
	ID        string  `json:"id"`
	User      userRef `json:"user"`
	Text      string  `json:"text"`
	CreatedAt string  `json:"created_at"`
}

type exportEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Reason    string  `json:"reason"`
}

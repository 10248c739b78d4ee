package model

// RiskScore is the raw output of the risk scorer, before thresholding.
type RiskScore struct {
	Score      int      `json:"score"`
	Categories []string `json:"categories"`
	Lang       string   `json:"detectedLang"`
}

// RiskReport is the assessment delivered to the caller. Field names on
// the wire match the report the original web client consumed.
//
// Invariant: IsEmergency == (Risk >= threshold used for the call).
type RiskReport struct {
	IsEmergency bool     `json:"isEmergency"`
	Risk        int      `json:"risk"`
	Reasons     []string `json:"reasons"`
	Message     string   `json:"message"`

	// Breakdown fields kept alongside the report so the UI can show
	// matched categories without re-parsing Reasons.
	Categories []string `json:"categories,omitempty"`
	Contexts   []string `json:"contexts,omitempty"`
	Lang       string   `json:"detectedLang,omitempty"`
}

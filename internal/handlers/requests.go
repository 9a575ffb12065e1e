package handlers

// SelectProgramRequest represents a request to switch the judged program
type SelectProgramRequest struct {
	ProgramID int `json:"program_id"`
}

// PaymentUpdateRequest represents a payment status change; only approval is supported
type PaymentUpdateRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// SettingsUpdateRequest represents a request to update settings
type SettingsUpdateRequest struct {
	APIURL   string `json:"api_url"`
	APIToken string `json:"api_token"`
	BaseURL  string `json:"base_url"`
	JudgeID  *int   `json:"judge_id"`
}

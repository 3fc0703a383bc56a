package dto

// GenerateRecurringResponse reports the outcome of a recurring generation run.
type GenerateRecurringResponse struct {
	Generated []InvoiceResponse `json:"generated"`
	Count     int               `json:"count"`
}

// ToggleRecurringRequest switches a recurring schedule on or off.
type ToggleRecurringRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

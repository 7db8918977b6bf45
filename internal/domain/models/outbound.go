package models

// OutboundMessageRequest asks the gateway to push a text message to a WhatsApp recipient.
type OutboundMessageRequest struct {
	To      string `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// AlertResult reports what the low-stock alert did.
type AlertResult struct {
	Sent      bool   `json:"sent"`
	Recipient string `json:"recipient,omitempty"`
	Message   string `json:"message,omitempty"`
}

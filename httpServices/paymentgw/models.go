package paymentgw

// CreateIntentRequest asks the gateway to prepare a charge.
type CreateIntentRequest struct {
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Reference   string  `json:"reference"`
	Description string  `json:"description"`
	CallbackURL string  `json:"callback_url"`
}

// CreateIntentResponse is the gateway's answer.
type CreateIntentResponse struct {
	IntentID    string `json:"intent_id"`
	ClientToken string `json:"client_token"`
	Status      string `json:"status"`
}

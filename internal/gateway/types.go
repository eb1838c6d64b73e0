package gateway

// TokenResponse is the body of a successful OAuth2 client-credentials
// exchange. Azure AD returns the expiry fields as decimal strings.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   string `json:"expires_in"`
	ExpiresOn   string `json:"expires_on"`
}

// PaymentInfo is the nested reference block of a charge payload.
// PaymentInfo1 carries free-text info shown on the payment slip.
type PaymentInfo struct {
	PaymentInfo1    string `json:"PaymentInfo1,omitempty"`
	ReferenceNumber string `json:"referenceNumber,omitempty"`
}

// ChargePayload is the request body for POST /charges. The classifier
// mutates MerchantTransactionID and PaymentInfo.ReferenceNumber between
// retry attempts.
type ChargePayload struct {
	MerchantTransactionID string      `json:"merchantTransactionId"`
	Amount                float64     `json:"amount"`
	Currency              string      `json:"currency"`
	Description           string      `json:"description"`
	PaymentMethod         string      `json:"paymentMethod"`
	PaymentInfo           PaymentInfo `json:"paymentInfo"`
}

// ChargeReference is the gateway-assigned reference block.
type ChargeReference struct {
	ReferenceNumber string `json:"referenceNumber"`
	Entity          string `json:"entity"`
	DueDate         string `json:"dueDate"`
}

// ResponseStatus is the embedded status payload of a charge response.
type ResponseStatus struct {
	Successful bool             `json:"successful"`
	Code       int              `json:"code"`
	Message    string           `json:"message"`
	Status     string           `json:"status"`
	Source     string           `json:"source"`
	Reference  *ChargeReference `json:"reference"`
}

// ChargeResponse is the decoded body of POST /charges plus the HTTP
// status it arrived with.
type ChargeResponse struct {
	ID             string         `json:"id"`
	Amount         float64        `json:"amount"`
	Description    string         `json:"description"`
	ResponseStatus ResponseStatus `json:"responseStatus"`

	HTTPStatus int `json:"-"`
}

// RemotePayment is one entry of the GET /charges listing.
type RemotePayment struct {
	ID                    string                 `json:"id"`
	MerchantTransactionID string                 `json:"merchantTransactionId"`
	Type                  string                 `json:"type"`
	Operation             string                 `json:"operation"`
	Amount                float64                `json:"amount"`
	Currency              string                 `json:"currency"`
	Status                string                 `json:"status"`
	Description           string                 `json:"description"`
	PaymentMethod         string                 `json:"paymentMethod"`
	Disputes              bool                   `json:"disputes"`
	ApplicationFeeAmount  float64                `json:"applicationFeeAmount"`
	Options               map[string]interface{} `json:"options"`
	CreatedDate           string                 `json:"createdDate"`
	UpdatedDate           string                 `json:"updatedDate"`
	Reference             *ChargeReference       `json:"reference"`
}

// ChargeList is the body of GET /charges.
type ChargeList struct {
	Payments []RemotePayment `json:"payments"`
}

// ApplicationKey is one API key entry of an application.
type ApplicationKey struct {
	APIKey string `json:"apiKey"`
}

// Application is one entry of the GET /applications listing.
type Application struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	PaymentMethod   string           `json:"paymentMethod"`
	IsActive        bool             `json:"isActive"`
	IsDefault       bool             `json:"isDefault"`
	ApplicationKeys []ApplicationKey `json:"applicationKyes"`
}

// ApplicationList is the body of GET /applications. The gateway spells
// the keys field "applicationKyes".
type ApplicationList struct {
	Applications []Application `json:"applications"`
}

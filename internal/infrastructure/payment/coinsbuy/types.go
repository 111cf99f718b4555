package coinsbuy

// Coinsbuy speaks JSON:API. Only the members the relay reads or writes are modelled.

const (
	jsonAPIContentType  = "application/vnd.api+json"
	depositResourceType = "deposit"
	walletResourceType  = "wallet"

	// confirmationsNeeded is the number of block confirmations before a
	// deposit is reported as confirmed.
	confirmationsNeeded = 2
)

type depositRequest struct {
	Data depositRequestData `json:"data"`
}

type depositRequestData struct {
	Type          string               `json:"type"`
	Attributes    depositAttributes    `json:"attributes"`
	Relationships depositRelationships `json:"relationships"`
}

type depositAttributes struct {
	Label                  string `json:"label"`
	TrackingID             string `json:"tracking_id"`
	TargetAmountRequested  string `json:"target_amount_requested"`
	ConfirmationsNeeded    int    `json:"confirmations_needed"`
	CallbackURL            string `json:"callback_url"`
	PaymentPageRedirectURL string `json:"payment_page_redirect_url"`
	PaymentPageButtonText  string `json:"payment_page_button_text"`
}

type depositRelationships struct {
	Wallet relationship `json:"wallet"`
}

type relationship struct {
	Data resourceIdentifier `json:"data"`
}

type resourceIdentifier struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

// depositResponse keeps id and status loosely typed: the API has returned
// both strings and numbers for them.
type depositResponse struct {
	Data struct {
		ID         any `json:"id"`
		Attributes struct {
			PaymentURL string `json:"payment_url"`
			Status     any    `json:"status"`
		} `json:"attributes"`
	} `json:"data"`
}

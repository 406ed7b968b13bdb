package models

type ChallengeResponse struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	Challenge string `json:"challenge" swagger:"desc(The challenge the chip has to sign (Hex)),required"`
	ExpiresIn int64  `json:"expiresIn" swagger:"desc(Seconds until the challenge expires),required"`
}

type VerifyChipRequest struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	Response  string `json:"response" swagger:"desc(The chip signature over the challenge (Hex)),required"`
}

type VerifyChipResponse struct {
	Authentic bool   `json:"authentic" swagger:"desc(Whether the chip belongs to the product),required"`
	Signer    string `json:"signer" swagger:"desc(The address recovered from the response),required"`
	Message   string `json:"message" swagger:"desc(Human readable result),required"`
}

type EmulateChipRequest struct {
	ProductID string `json:"productId" swagger:"desc(The product ID),required"`
	Challenge string `json:"challenge" swagger:"desc(The challenge to sign (Hex)),required"`
}

type EmulateChipResponse struct {
	Response string `json:"response" swagger:"desc(The chip signature (Hex)),required"`
	Address  string `json:"address" swagger:"desc(The chip address),required"`
}

type HealthResponse struct {
	Status string `json:"status" swagger:"desc(Always ok),required"`
	Ledger bool   `json:"ledger" swagger:"desc(Whether the ledger is available),required"`
}

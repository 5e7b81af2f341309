// Package identity implements the inbound company-identity request and its
// validation rules. A RawRequest is untrusted caller input; a Request only
// exists once every field has passed validation.
package identity

// RawRequest is the untrusted inbound payload as posted by the caller.
type RawRequest struct {
	CompanyName    string `json:"companyName"`
	Domain         string `json:"domain"`
	RecipientEmail string `json:"recipientEmail"`
	AEName         string `json:"aeName"`
	AEEmail        string `json:"aeEmail"`
	AEPhone        string `json:"aePhone"`
}

// Contact is the account-executive contact block embedded in the guide.
// Values are display strings, escaped at composition time.
type Contact struct {
	Name  string
	Email string
	Phone string
}

// Request is a validated identity request. Immutable once constructed;
// construct only through Validate.
type Request struct {
	CompanyName    string
	Domain         string
	RecipientEmail string
	Contact        Contact
}

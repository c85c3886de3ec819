package inbound

type SecretFieldResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Value      string `json:"value,omitempty"`
	Issuer     string `json:"issuer,omitempty"`
	Label      string `json:"label,omitempty"`
	Code       string `json:"code,omitempty"`
	ValidFrom  int64  `json:"valid_from,omitempty"`
	ValidUntil int64  `json:"valid_until,omitempty"`
	Remaining  int64  `json:"remaining,omitempty"`
	Error      string `json:"error,omitempty"`
}

type SecretResponse struct {
	Name   string                `json:"name"`
	Fields []SecretFieldResponse `json:"fields"`
	Error  string                `json:"error,omitempty"`
}

type SecretsResponse struct {
	Secrets []SecretResponse `json:"secrets"`
}

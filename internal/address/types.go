package address

import (
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Config configures the ViaCEP client
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit float64
	Burst     int
}

// Address holds the fields a successful lookup fills in
type Address struct {
	District   string
	City       string
	Street     string
	Complement string
	State      string
}

type cachedAddress struct {
	address   Address
	fetchedAt time.Time
}

type AddressCache struct {
	entries map[string]cachedAddress
	mu      sync.RWMutex
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

// viaCEPResponse is the body returned by /ws/{cep}/json/
type viaCEPResponse struct {
	Postcode   string   `json:"cep"`
	Street     string   `json:"logradouro"`
	Complement string   `json:"complemento"`
	District   string   `json:"bairro"`
	City       string   `json:"localidade"`
	State      string   `json:"uf"`
	Erro       flexBool `json:"erro"`
}

func (r viaCEPResponse) toAddress() Address {
	return Address{
		District:   r.District,
		City:       r.City,
		Street:     r.Street,
		Complement: r.Complement,
		State:      r.State,
	}
}

// flexBool accepts true, "true" and friends. ViaCEP has served both.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexBool(v)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*b = flexBool(strings.EqualFold(strings.TrimSpace(s), "true"))
	return nil
}

type ErrorType string

const (
	ErrInvalidPostcode   ErrorType = "invalid_postcode"
	ErrNotFound          ErrorType = "not_found"
	ErrNetwork           ErrorType = "network"
	ErrTimeout           ErrorType = "timeout"
	ErrMalformedResponse ErrorType = "malformed_response"
	ErrUnexpectedStatus  ErrorType = "unexpected_status"
	ErrRateLimited       ErrorType = "rate_limited"
)

type LookupError struct {
	Type     ErrorType
	Message  string
	Postcode string
	Code     int
	Cause    error
}

func (e *LookupError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

package request

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	ErrPaymentBodyNotJSON      = errors.New("payment body is not valid json")
	ErrPaymentBodyEmptyPayload = errors.New("mp_payload cannot be empty")
)

// BillingPaymentCreateRequest is the wrapped form of the charge body:
// {"mp_payload": {...}}. A bare Mercado Pago payload is accepted as well.
//
// transaction_amount, external_reference and description are filled from the
// estimate; a caller-supplied transaction_amount is overwritten.
type BillingPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}

// ParseBillingPaymentBody returns the provider payload carried by a charge
// request body. An empty body yields an empty object.
func ParseBillingPaymentBody(raw []byte) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, ErrPaymentBodyNotJSON
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		// Not an object; the usecase rejects it with a payload error.
		return json.RawMessage(raw), nil
	}
	if _, wrapped := fields["mp_payload"]; !wrapped {
		return json.RawMessage(raw), nil
	}

	var req BillingPaymentCreateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, ErrPaymentBodyNotJSON
	}
	if p := bytes.TrimSpace(req.MPPayload); len(p) == 0 || bytes.Equal(p, []byte("null")) {
		return nil, ErrPaymentBodyEmptyPayload
	}
	return req.MPPayload, nil
}

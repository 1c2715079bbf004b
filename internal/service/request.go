package service

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"orderhub/internal/domain"
)

// OrderCreationRequest типизированный запрос на создание заказа.
// nil означает, что поле не передано (или передан null). OrderItems == nil и
// пустой, но не nil, слайс различаются: второе — это пустой массив.
type OrderCreationRequest struct {
	Total      *decimal.Decimal
	CustomerID *int64
	OrderItems []OrderItemRequest
}

type OrderItemRequest struct {
	ProductID *int64
	Quantity  *int64
}

var errMalformed = domain.NewValidationError(domain.MissingRequiredInputs)

// длиннее этого числовой литерал не может быть денежной суммой
const maxNumberLen = 64

// DecodeCreateOrderRequest разбирает тело POST /orders. Имена полей
// сравниваются с учётом регистра. Значения неверного типа не приводятся
// к нулю, а отклоняются с MissingRequiredInputs.
func DecodeCreateOrderRequest(body []byte) (OrderCreationRequest, error) {
	fields, err := decodeObject(body)
	if err != nil {
		return OrderCreationRequest{}, errMalformed
	}

	var req OrderCreationRequest
	if req.Total, err = decodeDecimal(fields["Total"]); err != nil {
		return OrderCreationRequest{}, errMalformed
	}
	if req.CustomerID, err = decodeInt(fields["CustomerID"]); err != nil {
		return OrderCreationRequest{}, errMalformed
	}
	if isNull(fields["OrderItems"]) {
		return req, nil
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(fields["OrderItems"], &rawItems); err != nil {
		return OrderCreationRequest{}, errMalformed
	}
	req.OrderItems = make([]OrderItemRequest, 0, len(rawItems))
	for _, raw := range rawItems {
		itemFields, err := decodeObject(raw)
		if err != nil {
			return OrderCreationRequest{}, errMalformed
		}
		var it OrderItemRequest
		if it.ProductID, err = decodeInt(itemFields["ProductID"]); err != nil {
			return OrderCreationRequest{}, errMalformed
		}
		if it.Quantity, err = decodeInt(itemFields["Quantity"]); err != nil {
			return OrderCreationRequest{}, errMalformed
		}
		req.OrderItems = append(req.OrderItems, it)
	}
	return req, nil
}

// decodeObject keeps keys exactly as sent; struct decoding would match them case-insensitively.
func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	if !isObject(raw) {
		return nil, errMalformed
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func isObject(raw []byte) bool {
	t := bytes.TrimSpace(raw)
	return len(t) > 0 && t[0] == '{'
}

// decodeDecimal accepts a JSON number or a numeric string.
func decodeDecimal(raw json.RawMessage) (*decimal.Decimal, error) {
	if isNull(raw) {
		return nil, nil
	}
	t := bytes.TrimSpace(raw)
	if len(t) > maxNumberLen {
		return nil, errMalformed
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(t); err != nil {
		return nil, err
	}
	return &d, nil
}

// decodeInt accepts a JSON integer or an integer string.
func decodeInt(raw json.RawMessage) (*int64, error) {
	if isNull(raw) {
		return nil, nil
	}
	t := bytes.TrimSpace(raw)
	var s string
	if t[0] == '"' {
		if err := json.Unmarshal(t, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
	} else {
		var n json.Number
		if err := json.Unmarshal(t, &n); err != nil {
			return nil, err
		}
		s = n.String()
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

package upstream

import "encoding/json"

// QuoteResponse is the body of GET {APP_URL}get_data.
type QuoteResponse struct {
	Data []QuoteRecord `json:"data"`
}

// QuoteRecord is a single entry of the data array. Fields are pointers so a
// missing key can be told apart from a zero value.
type QuoteRecord struct {
	Name   *string      `json:"n"`
	Values *QuoteValues `json:"v"`
}

// QuoteValues keeps every number as the literal JSON text so it renders
// exactly as the upstream encoded it.
type QuoteValues struct {
	Change         *json.Number `json:"ch"`
	ChangePercent  *json.Number `json:"chp"`
	Open           *json.Number `json:"open_price"`
	PreviousClose  *json.Number `json:"prev_close_price"`
	High           *json.Number `json:"high_price"`
	Low            *json.Number `json:"low_price"`
	LastTradePrice *json.Number `json:"lp"`
}

// Quote is a fully populated record.
type Quote struct {
	Name           string
	LastTradePrice json.Number
	Change         json.Number
	ChangePercent  json.Number
	PreviousClose  json.Number
	Open           json.Number
	High           json.Number
	Low            json.Number
}

// Quote returns the populated quote, or the name of the first missing field.
func (r QuoteRecord) Quote() (Quote, string) {
	if r.Name == nil {
		return Quote{}, "n"
	}
	if r.Values == nil {
		return Quote{}, "v"
	}

	v := r.Values
	fields := []struct {
		key string
		val *json.Number
	}{
		{"v.lp", v.LastTradePrice},
		{"v.ch", v.Change},
		{"v.chp", v.ChangePercent},
		{"v.prev_close_price", v.PreviousClose},
		{"v.open_price", v.Open},
		{"v.high_price", v.High},
		{"v.low_price", v.Low},
	}
	for _, f := range fields {
		if f.val == nil {
			return Quote{}, f.key
		}
	}

	return Quote{
		Name:           *r.Name,
		LastTradePrice: *v.LastTradePrice,
		Change:         *v.Change,
		ChangePercent:  *v.ChangePercent,
		PreviousClose:  *v.PreviousClose,
		Open:           *v.Open,
		High:           *v.High,
		Low:            *v.Low,
	}, ""
}

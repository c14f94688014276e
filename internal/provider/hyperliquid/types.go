package hyperliquid

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleInt64 parses int, float (scientific notation) or numeric string to int64
type FlexibleInt64 int64

// UnmarshalJSON parses int, float or string; null leaves the value at zero
func (f *FlexibleInt64) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var intVal int64
	if err := json.Unmarshal(data, &intVal); err == nil {
		*f = FlexibleInt64(intVal)
		return nil
	}

	var floatVal float64
	if err := json.Unmarshal(data, &floatVal); err == nil {
		*f = FlexibleInt64(int64(floatVal))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		val, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return err
		}
		*f = FlexibleInt64(int64(val))
		return nil
	}

	return fmt.Errorf("cannot parse as int64: %s", string(data))
}

// Int64 returns int64 value
func (f FlexibleInt64) Int64() int64 {
	return int64(f)
}

// ParseMillis reads a raw JSON timestamp.
func ParseMillis(raw json.RawMessage) (int64, bool) {
	var f FlexibleInt64
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return 0, false
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	return f.Int64(), true
}

// CellText renders a raw JSON value as a table cell: strings unquoted,
// numbers and bools verbatim, null empty, objects and arrays as compact JSON.
func CellText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}

// Text accepts any JSON scalar or structure and keeps its cell rendering.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	*t = Text(CellText(data))
	return nil
}

func (t Text) String() string { return string(t) }

// VaultEntry is one element of the vault listing. An element that does not
// decode keeps whatever address could be read and carries the error in Err,
// so one bad element never fails the whole listing.
type VaultEntry struct {
	Summary VaultSummaryRaw `json:"summary"`
	APR     Text            `json:"apr"`
	Pnls    []PnlSeries     `json:"pnls"`

	Err error `json:"-"`
}

type vaultEntryFields VaultEntry

func (e *VaultEntry) UnmarshalJSON(data []byte) error {
	var v vaultEntryFields
	if err := json.Unmarshal(data, &v); err != nil {
		var addr struct {
			Summary struct {
				VaultAddress Text `json:"vaultAddress"`
			} `json:"summary"`
		}
		_ = json.Unmarshal(data, &addr)
		*e = VaultEntry{Err: fmt.Errorf("decode vault entry: %w", err)}
		e.Summary.VaultAddress = addr.Summary.VaultAddress
		return nil
	}
	*e = VaultEntry(v)
	return nil
}

// VaultSummaryRaw is the "summary" object of a vault listing entry.
type VaultSummaryRaw struct {
	Name             Text           `json:"name"`
	VaultAddress     Text           `json:"vaultAddress"`
	Leader           Text           `json:"leader"`
	TVL              Text           `json:"tvl"`
	IsClosed         bool           `json:"isClosed"`
	CreateTimeMillis *FlexibleInt64 `json:"createTimeMillis"`
	Relationship     struct {
		Type Text `json:"type"`
	} `json:"relationship"`
}

// PnlSeries is a [label, [stringFloat, ...]] pair. Pairs of any other shape
// decode to an empty label so callers ignore them.
type PnlSeries struct {
	Label  string
	Values []Text
}

func (p *PnlSeries) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil || len(pair) != 2 {
		*p = PnlSeries{}
		return nil
	}
	var values []Text
	if err := json.Unmarshal(pair[1], &values); err != nil {
		*p = PnlSeries{}
		return nil
	}
	*p = PnlSeries{Label: CellText(pair[0]), Values: values}
	return nil
}

// Field is one top-level key of a detail response with its undecoded value.
type Field struct {
	Key   string
	Value json.RawMessage
}

// VaultDetails keeps the detail response's fields in the order the API sent them.
type VaultDetails struct {
	Fields []Field
}

// UnmarshalJSON walks the top-level object with the token decoder to keep key order.
func (d *VaultDetails) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("vault details: expected object, got %v", tok)
	}
	var fields []Field
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("vault details: unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("vault details: field %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	d.Fields = fields
	return nil
}

// Get returns the raw value of key.
func (d *VaultDetails) Get(key string) (json.RawMessage, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// PortfolioSeries is one [granularity, metrics] entry of a vault's portfolio.
type PortfolioSeries struct {
	Granularity         string
	AccountValueHistory [][]json.RawMessage
	PnlHistory          [][]json.RawMessage
}

type portfolioMetrics struct {
	AccountValueHistory [][]json.RawMessage `json:"accountValueHistory"`
	PnlHistory          [][]json.RawMessage `json:"pnlHistory"`
}

// DecodePortfolio parses the "portfolio" value. Entries that are not
// two-element arrays are skipped; a malformed metrics object is an error.
func DecodePortfolio(raw json.RawMessage) ([]PortfolioSeries, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("portfolio: %w", err)
	}
	series := make([]PortfolioSeries, 0, len(items))
	for _, item := range items {
		var pair []json.RawMessage
		if err := json.Unmarshal(item, &pair); err != nil || len(pair) != 2 {
			continue
		}
		var m portfolioMetrics
		if err := json.Unmarshal(pair[1], &m); err != nil {
			return nil, fmt.Errorf("portfolio %s: %w", CellText(pair[0]), err)
		}
		series = append(series, PortfolioSeries{
			Granularity:         CellText(pair[0]),
			AccountValueHistory: m.AccountValueHistory,
			PnlHistory:          m.PnlHistory,
		})
	}
	return series, nil
}

// Fill is one element of a userFillsByTime response.
type Fill struct {
	Coin          Text           `json:"coin"`
	Px            Text           `json:"px"`
	Sz            Text           `json:"sz"`
	Side          Text           `json:"side"`
	Time          *FlexibleInt64 `json:"time"`
	StartPosition Text           `json:"startPosition"`
	Dir           Text           `json:"dir"`
	ClosedPnl     Text           `json:"closedPnl"`
	Hash          Text           `json:"hash"`
	Oid           Text           `json:"oid"`
	Crossed       Text           `json:"crossed"`
	Fee           Text           `json:"fee"`
	Tid           Text           `json:"tid"`
	FeeToken      Text           `json:"feeToken"`
	TwapID        Text           `json:"twapId"`
	Liquidation   Text           `json:"liquidation"`
	Cloid         Text           `json:"cloid"`
}

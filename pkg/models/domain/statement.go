package domain

import (
	"bytes"
	"encoding/json"
)

const NatureStandalone = "STANDALONE"

// FinancialStatementSet is the decoded upload: every statement filed by a company.
type FinancialStatementSet struct {
	Financials []StatementRecord `json:"financials"`
}

// Statement returns the record at idx, or false when idx is out of range.
func (s *FinancialStatementSet) Statement(idx int) (StatementRecord, bool) {
	if s == nil || idx < 0 || idx >= len(s.Financials) {
		return StatementRecord{}, false
	}
	return s.Financials[idx], true
}

// StatementRecord is a single filed statement. PnL and BS are nil when the
// section is absent or not an object.
type StatementRecord struct {
	Nature string   `json:"nature"`
	PnL    *Section `json:"pnl,omitempty"`
	BS     *Section `json:"bs,omitempty"`
}

func (r *StatementRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nature json.RawMessage `json:"nature"`
		PnL    json.RawMessage `json:"pnl"`
		BS     json.RawMessage `json:"bs"`
	}
	*r = StatementRecord{}
	if err := json.Unmarshal(data, &raw); err != nil {
		// not an object: keep the zero record so the index still lines up
		return nil
	}

	_ = json.Unmarshal(raw.Nature, &r.Nature)
	r.PnL = decodeSection(raw.PnL)
	r.BS = decodeSection(raw.BS)
	return nil
}

func decodeSection(data json.RawMessage) *Section {
	if !isObject(data) {
		return nil
	}
	var s Section
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// Section is one statement part (profit and loss, balance sheet).
type Section struct {
	LineItems []LineItem `json:"lineItems"`
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		LineItems json.RawMessage `json:"lineItems"`
	}
	*s = Section{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw.LineItems, &items); err != nil {
		return nil
	}
	for _, item := range items {
		if !isObject(item) {
			continue
		}
		var li LineItem
		if err := json.Unmarshal(item, &li); err != nil {
			continue
		}
		s.LineItems = append(s.LineItems, li)
	}
	return nil
}

// Lookup returns the value of the first line item called name.
// Items whose value is not a number are treated as absent.
func (s *Section) Lookup(name string) (float64, bool) {
	if s == nil {
		return 0, false
	}
	for _, item := range s.LineItems {
		if item.Name == name {
			return item.Value.Float64()
		}
	}
	return 0, false
}

// LineItem is a named figure inside a section.
type LineItem struct {
	Name  string `json:"name"`
	Value Amount `json:"value"`
}

func (li *LineItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  json.RawMessage `json:"name"`
		Value Amount          `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	li.Value = raw.Value
	li.Name = ""
	_ = json.Unmarshal(raw.Name, &li.Name)
	return nil
}

// Amount is a monetary figure. Anything other than a JSON number decodes as
// an invalid amount instead of failing the whole document.
type Amount struct {
	value float64
	valid bool
}

func NewAmount(v float64) Amount {
	return Amount{value: v, valid: true}
}

func (a Amount) Float64() (float64, bool) {
	return a.value, a.valid
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	*a = NewAmount(v)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.value)
}

func isObject(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

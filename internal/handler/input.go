package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"event_rsvp/internal/model"
)

// phoneInput accepts a phone sent either as a JSON string or a JSON number
type phoneInput string

func (p *phoneInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = phoneInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("phone must be a string or a number: %w", err)
	}
	*p = phoneInput(n.String())
	return nil
}

func (p *phoneInput) ptr() *string {
	if p == nil {
		return nil
	}
	s := string(*p)
	return &s
}

type importRowInput struct {
	Name  string     `json:"name"`
	Phone phoneInput `json:"phone"`
}

func toImportRows(in []importRowInput) []model.ImportRow {
	if in == nil {
		return nil
	}
	rows := make([]model.ImportRow, 0, len(in))
	for _, r := range in {
		rows = append(rows, model.ImportRow{Name: r.Name, Phone: string(r.Phone)})
	}
	return rows
}

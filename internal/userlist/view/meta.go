package view

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/message"

	"github.com/SlavaShagalov/user-list/internal/models"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
)

type Labels struct {
	NotFound string `json:"not_found"`
	First    string `json:"first"`
	Previous string `json:"previous"`
	Next     string `json:"next"`
	Last     string `json:"last"`
}

func DefaultLabels(p *message.Printer) Labels {
	return Labels{
		NotFound: i18n.Translate(p, "No users found"),
		First:    "«",
		Previous: "‹",
		Next:     "›",
		Last:     "»",
	}
}

// Headers serializes as an object keyed by field id, keeping field order.
type Headers []fields.Header

type headerJSON struct {
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

func (h Headers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, header := range h {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(header.ID)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(headerJSON{Label: header.Label, Sortable: header.Sortable})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (h *Headers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("headers: expected object, got %v", tok)
	}

	headers := Headers{}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		id, ok := tok.(string)
		if !ok {
			return fmt.Errorf("headers: expected field id, got %v", tok)
		}
		var value headerJSON
		if err = dec.Decode(&value); err != nil {
			return err
		}
		headers = append(headers, fields.Header{ID: id, Label: value.Label, Sortable: value.Sortable})
	}
	if _, err = dec.Token(); err != nil {
		return err
	}

	*h = headers
	return nil
}

// Meta is what the renderer needs besides the data: columns, page size,
// labels and the endpoint controls post to.
type Meta struct {
	Headers    Headers `json:"headers"`
	PageLength int     `json:"page_length"`
	Labels     Labels  `json:"labels"`
	Endpoint   string  `json:"-"`
}

// Options is the inline configuration embedded in the full page.
type Options struct {
	Data models.ResultPage `json:"data"`
	Meta
}

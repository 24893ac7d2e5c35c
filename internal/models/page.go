package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const PageLength = 10

type Order string

const (
	OrderAsc  Order = "ASC"
	OrderDesc Order = "DESC"
)

// ParseOrder matches s case-insensitively against ASC and DESC.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToUpper(s) {
	case string(OrderAsc):
		return OrderAsc, true
	case string(OrderDesc):
		return OrderDesc, true
	default:
		return "", false
	}
}

func (o Order) Toggle() Order {
	if o == OrderAsc {
		return OrderDesc
	}
	return OrderAsc
}

// Record is one rendered user: field id to display value, in field declaration order.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord(capacity int) Record {
	return Record{
		keys:   make([]string, 0, capacity),
		values: make(map[string]string, capacity),
	}
}

func (r *Record) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r Record) Get(key string) string {
	return r.values[key]
}

func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r Record) Len() int {
	return len(r.keys)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	*r = NewRecord(0)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: expected key, got %v", tok)
		}
		var value any
		if err = dec.Decode(&value); err != nil {
			return err
		}
		switch v := value.(type) {
		case string:
			r.Set(key, v)
		case nil:
			r.Set(key, "")
		default:
			r.Set(key, fmt.Sprint(v))
		}
	}
	_, err = dec.Token()
	return err
}

// ResultPage is one page of records plus the count of every matching record.
type ResultPage struct {
	Users []Record `json:"users"`
	Total int      `json:"total"`
}

// MaxPage is the last page number for total records, at least 1.
func MaxPage(total, pageLength int) int {
	if pageLength <= 0 || total <= 0 {
		return 1
	}
	return (total + pageLength - 1) / pageLength
}

package models

import (
	"bytes"
	"encoding/json"
)

// List is a page of results. The backend paginates with
// {"count","next","previous","results"}, but a few endpoints return a bare
// array; both decode into List.
type List[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func (l *List[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*l = List[T]{Count: len(items), Results: items}
		return nil
	}

	var p struct {
		Count    int     `json:"count"`
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
		Results  []T     `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*l = List[T]{Count: p.Count, Next: p.Next, Previous: p.Previous, Results: p.Results}
	return nil
}

// HasNext reports whether another page is available.
func (l List[T]) HasNext() bool {
	return l.Next != nil && *l.Next != ""
}

// Stats is the free-form payload of the */stats/ endpoints.
type Stats map[string]any

package openlibrary

import (
	"encoding/json"
)

// searchResponse is the raw /search.json response.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// searchDoc is a single search result document.
// OpenLibrary gives no schema stability guarantees; every field is optional.
type searchDoc struct {
	Key                 string   `json:"key"`
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	Subject             []string `json:"subject"`
	SubjectKeywords     []string `json:"subject_keywords"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	NumberOfPages       int      `json:"number_of_pages"`
	CoverI              int64    `json:"cover_i"`
	CoverEditionKey     string   `json:"cover_edition_key"`
}

// workResponse is the raw work record fetched for a long description.
type workResponse struct {
	Description flexText  `json:"description"`
	Excerpts    []excerpt `json:"excerpts"`
}

type excerpt struct {
	Text string `json:"text"`
}

// flexText tolerates OpenLibrary's two description encodings: a bare
// string, or an object {"type": ..., "value": "..."}.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexText(s)
		return nil
	}

	var obj struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*f = flexText(obj.Value)
	return nil
}

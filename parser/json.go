package parser

import "encoding/json"

type jsonElement struct {
	Tag        string          `json:"tag,omitempty"`
	Level      int             `json:"level,omitempty"`
	Text       string          `json:"text,omitempty"`
	Attributes []jsonAttribute `json:"attributes,omitempty"`
	Children   []*jsonElement  `json:"children,omitempty"`
}

type jsonAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (e *Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toJSON())
}

func (e *Element) toJSON() *jsonElement {
	if e.IsText() {
		return &jsonElement{Text: string(e.Text)}
	}
	je := &jsonElement{
		Tag:   e.Tag.Kind.String(),
		Level: e.Tag.Level,
	}
	for _, a := range e.Attributes {
		je.Attributes = append(je.Attributes, jsonAttribute{
			Key:   string(a.Key),
			Value: string(a.Value),
		})
	}
	for _, child := range e.Children {
		je.Children = append(je.Children, child.toJSON())
	}
	return je
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Root)
}

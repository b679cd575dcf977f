package stats

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
)

// Document is the serialized form of a table: {by, items:[{value,count}]}.
type Document struct {
	XMLName xml.Name       `json:"-" xml:"statistics"`
	By      string         `json:"by" xml:"by,attr"`
	Items   FrequencyTable `json:"items" xml:"item"`
}

func NewDocument(attr Attribute, table FrequencyTable) Document {
	if table == nil {
		table = FrequencyTable{}
	}
	return Document{By: string(attr), Items: table}
}

// WriteXML writes the document as indented XML with a header.
func (d Document) WriteXML(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode statistics xml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (d Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// WriteText prints one "value: count" line per entry.
func (t FrequencyTable) WriteText(w io.Writer) error {
	for _, e := range t {
		if _, err := fmt.Fprintf(w, "%s: %d\n", e.Value, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// Package xmlcodec maps between flat string fields and the <xml> envelope
// used by the merchant API: a single root element wrapping one child
// element per field.
package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Encode serializes params as <xml><name>value</name>...</xml>.
//
// Children are emitted in sorted key order so the output is stable.
// Values go through default XML escaping only.
func Encode(params map[string]string) []byte {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("<xml>")
	for _, k := range keys {
		buf.WriteString("<" + k + ">")
		_ = xml.EscapeText(&buf, []byte(params[k]))
		buf.WriteString("</" + k + ">")
	}
	buf.WriteString("</xml>")
	return buf.Bytes()
}

// Decode parses a single-root XML document into a flat field map.
//
// Element text is whitespace-trimmed and single-occurrence elements
// become plain scalars. Anything that is not a well-formed single-root
// document is an error; the caller decides whether to fall back to
// another parser (the bill download report is not XML at all).
func Decode(raw []byte) (map[string]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))

	root, err := nextStart(dec)
	if err != nil {
		return nil, fmt.Errorf("xmlcodec: no root element: %w", err)
	}

	fields := make(map[string]string)
	var (
		current string
		text    strings.Builder
		depth   int
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, errors.New("xmlcodec: unexpected end of document")
		}
		if err != nil {
			return nil, fmt.Errorf("xmlcodec: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			// Nested structures are flattened to their leaf elements.
			current = t.Name.Local
			text.Reset()
		case xml.CharData:
			if depth > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				if t.Name.Local != root.Name.Local {
					return nil, fmt.Errorf("xmlcodec: mismatched root end element %q", t.Name.Local)
				}
				return fields, nil
			}
			depth--
			if current != "" {
				fields[current] = strings.TrimSpace(text.String())
				current = ""
				text.Reset()
			}
		}
	}
}

func nextStart(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

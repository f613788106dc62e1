package hit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// scrAction is the only HIT action the gateway issues.
const scrAction = "doScrHIT"

// renderEnvelope builds the <Scr> transaction document. Every attribute
// and element value passes through the XML escaper before embedding;
// untrusted input must never reach the envelope unescaped. Fields with
// empty values are omitted entirely rather than emitted as empty tags.
func renderEnvelope(treq domain.TerminalRequest) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`<Scr action="`)
	buf.WriteString(scrAction)
	buf.WriteString(`" user="`)
	if err := escapeInto(&buf, treq.Credentials.User); err != nil {
		return nil, err
	}
	buf.WriteString(`" key="`)
	if err := escapeInto(&buf, treq.Credentials.Key); err != nil {
		return nil, err
	}
	buf.WriteString(`">`)

	for _, f := range treq.Fields {
		if f.Value == "" {
			continue
		}
		if !validTagName(f.Name) {
			return nil, fmt.Errorf("invalid field name %q", f.Name)
		}
		buf.WriteByte('<')
		buf.WriteString(f.Name)
		buf.WriteByte('>')
		if err := escapeInto(&buf, f.Value); err != nil {
			return nil, err
		}
		buf.WriteString("</")
		buf.WriteString(f.Name)
		buf.WriteByte('>')
	}

	buf.WriteString("</Scr>")
	return buf.Bytes(), nil
}

// escapeInto writes s with XML entities for & < > " ' applied.
func escapeInto(buf *bytes.Buffer, s string) error {
	return xml.EscapeText(buf, []byte(s))
}

// validTagName guards against a field name breaking out of its element.
// Field names are fixed per operation, so this only trips on programmer
// error.
func validTagName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsAny(name, "<>&\"' \t\r\n/=")
}

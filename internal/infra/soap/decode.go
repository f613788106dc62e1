package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// xmlNode is a generic element tree used to decode replies without
// per-operation schemas.
type xmlNode struct {
	name     string
	text     strings.Builder
	children []*xmlNode
}

func (n *xmlNode) child(name string) *xmlNode {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// decodeEnvelope parses a reply envelope. It returns either the decoded
// result value or the fault carried in the body. A body that cannot be
// parsed at all yields an error.
func decodeEnvelope(raw []byte) (domain.RemoteValue, *domain.FaultError, error) {
	root, err := parseTree(raw)
	if err != nil {
		return domain.RemoteValue{}, nil, err
	}
	if !strings.EqualFold(root.name, "Envelope") {
		return domain.RemoteValue{}, nil, fmt.Errorf("unexpected root element <%s>", root.name)
	}

	body := root.child("Body")
	if body == nil {
		return domain.RemoteValue{}, nil, fmt.Errorf("reply has no Body element")
	}
	if len(body.children) == 0 {
		return domain.RemoteValue{Kind: domain.KindEmpty}, nil, nil
	}

	first := body.children[0]
	if strings.EqualFold(first.name, "Fault") {
		return domain.RemoteValue{}, decodeFault(first), nil
	}

	// The response wrapper usually carries a single <xResult> element;
	// unwrap it so callers see the value itself.
	if len(first.children) == 1 {
		return decodeValue(first.children[0]), nil, nil
	}
	return decodeValue(first), nil, nil
}

func decodeFault(node *xmlNode) *domain.FaultError {
	fault := &domain.FaultError{}
	if c := node.child("faultcode"); c != nil {
		fault.Code = strings.TrimSpace(c.text.String())
	}
	if c := node.child("faultstring"); c != nil {
		fault.Reason = strings.TrimSpace(c.text.String())
	}
	// SOAP 1.2 style names, in case the backend upgrades.
	if fault.Code == "" {
		if c := node.child("Code"); c != nil {
			fault.Code = strings.TrimSpace(collapseText(c))
		}
	}
	if fault.Reason == "" {
		if c := node.child("Reason"); c != nil {
			fault.Reason = strings.TrimSpace(collapseText(c))
		}
	}
	return fault
}

// decodeValue maps an element onto the RemoteValue union: a leaf becomes
// text, repeated same-named children become a sequence, mixed children an
// ordered mapping.
func decodeValue(node *xmlNode) domain.RemoteValue {
	if len(node.children) == 0 {
		text := strings.TrimSpace(node.text.String())
		if text == "" {
			return domain.RemoteValue{Kind: domain.KindEmpty}
		}
		return domain.TextValue(text)
	}

	if len(node.children) > 1 && sameName(node.children) {
		items := make([]domain.RemoteValue, 0, len(node.children))
		for _, c := range node.children {
			items = append(items, decodeValue(c))
		}
		return domain.RemoteValue{Kind: domain.KindList, Items: items}
	}

	fields := make([]domain.RemoteField, 0, len(node.children))
	for _, c := range node.children {
		fields = append(fields, domain.RemoteField{Name: c.name, Value: decodeValue(c)})
	}
	return domain.RemoteValue{Kind: domain.KindMap, Fields: fields}
}

func sameName(nodes []*xmlNode) bool {
	for _, n := range nodes[1:] {
		if n.name != nodes[0].name {
			return false
		}
	}
	return true
}

func collapseText(node *xmlNode) string {
	if len(node.children) == 0 {
		return node.text.String()
	}
	var sb strings.Builder
	for _, c := range node.children {
		sb.WriteString(collapseText(c))
	}
	return sb.String()
}

// parseTree reads the document into an element tree, dropping namespace
// prefixes. The backend's replies are not schema-validated here; lenient
// decoding mirrors how the gateway has always consumed them.
func parseTree(raw []byte) (*xmlNode, error) {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("empty document")
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			return parseElement(dec, start)
		}
	}
}

func parseElement(dec *xml.Decoder, start xml.StartElement) (*xmlNode, error) {
	node := &xmlNode{name: start.Name.Local}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t)
			if err != nil {
				return nil, err
			}
			node.children = append(node.children, child)
		case xml.CharData:
			node.text.Write(t)
		case xml.EndElement:
			return node, nil
		}
	}
}

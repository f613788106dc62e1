package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Param is a single named parameter of an outbound remote call. Parameter
// order is significant for the SOAP document style the backend publishes,
// so calls carry ordered slices rather than maps.
type Param struct {
	Name  string
	Value string
}

// ValueKind tags the shape of a decoded remote reply.
type ValueKind int

const (
	// KindEmpty marks an absent or empty reply element.
	KindEmpty ValueKind = iota
	// KindText marks a primitive text value.
	KindText
	// KindMap marks an ordered mapping of element name to value.
	KindMap
	// KindList marks a sequence of values (repeated elements).
	KindList
)

// RemoteField is one entry of an ordered mapping reply.
type RemoteField struct {
	Name  string
	Value RemoteValue
}

// RemoteValue is the tagged union produced by the remote service client:
// a primitive, an ordered mapping, or a sequence of values. Consumers
// pattern-match on Kind instead of assuming a fixed shape.
type RemoteValue struct {
	Kind   ValueKind
	Text   string
	Fields []RemoteField
	Items  []RemoteValue
}

// TextValue wraps a primitive string reply.
func TextValue(s string) RemoteValue {
	return RemoteValue{Kind: KindText, Text: s}
}

// IsEmpty reports whether the value carries no payload.
func (v RemoteValue) IsEmpty() bool {
	switch v.Kind {
	case KindEmpty:
		return true
	case KindText:
		return v.Text == ""
	case KindMap:
		return len(v.Fields) == 0
	case KindList:
		return len(v.Items) == 0
	}
	return true
}

// Get returns the named field of a mapping value.
func (v RemoteValue) Get(name string) (RemoteValue, bool) {
	if v.Kind != KindMap {
		return RemoteValue{}, false
	}
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return RemoteValue{}, false
}

// GetText returns the named field's primitive text, or "" when absent.
func (v RemoteValue) GetText(name string) string {
	field, ok := v.Get(name)
	if !ok {
		return ""
	}
	return field.Text
}

// String renders a compact representation for logs.
func (v RemoteValue) String() string {
	switch v.Kind {
	case KindEmpty:
		return ""
	case KindText:
		return v.Text
	default:
		raw, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%d fields>", len(v.Fields))
		}
		return string(raw)
	}
}

// MarshalJSON renders the union as its natural JSON shape: primitives as
// strings, mappings as objects preserving field order, sequences as arrays.
func (v RemoteValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindEmpty:
		return []byte("null"), nil
	case KindText:
		return json.Marshal(v.Text)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			raw, err := f.Value.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(raw)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	}
	return []byte("null"), nil
}

// FaultError reports an application-level fault returned by the remote
// system (a SOAP fault element).
type FaultError struct {
	Operation string
	Code      string
	Reason    string
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("remote fault in %s: %s (%s)", e.Operation, e.Reason, e.Code)
}

// TransportError reports a network, timeout, or certificate failure
// reaching the remote system.
type TransportError struct {
	Operation string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure in %s: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsRemoteFailure reports whether err is a remote fault or a transport
// failure, the two classes that surface as bad-gateway to clients.
func IsRemoteFailure(err error) bool {
	var fault *FaultError
	var transport *TransportError
	return errors.As(err, &fault) || errors.As(err, &transport)
}

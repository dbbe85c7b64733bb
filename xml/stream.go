// Package xml provides a streaming, event-based XML pull parser and writer
// for XMPP streams. It wraps encoding/xml rather than replacing it: the
// standard decoder already tokenizes incrementally and never resolves
// external entities or DTD subsets, which is exactly the parsing posture
// an XMPP stream needs.
package xml

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrExternalEntity is returned when the stream attempts to declare an
// external DTD subset (SYSTEM or PUBLIC). XMPP streams never need one and
// accepting it would let a peer make the parser fetch arbitrary resources.
var ErrExternalEntity = errors.New("xml: external DTD references are not permitted")

// EventKind identifies the category of a parsed stream Event.
type EventKind int

const (
	EventStreamStart EventKind = iota
	EventStanzaStart
	EventText
	EventEndElement
	EventStreamEnd
	EventError
)

// Event is a single token surfaced by StreamReader.NextEvent, shaped after
// the stream-level events a framed XMPP transport must expose.
type Event struct {
	Kind EventKind
	Name xml.Name
	Attr []xml.Attr
	Text string
	Err  error
}

// TokenReader reads XML tokens from a stream.
type TokenReader interface {
	Token() (xml.Token, error)
}

// TokenWriter writes XML tokens to a stream.
type TokenWriter interface {
	EncodeToken(t xml.Token) error
	Flush() error
}

// StreamReader wraps an xml.Decoder for reading XMPP streams.
type StreamReader struct {
	d *xml.Decoder
}

// NewStreamReader creates a new StreamReader over r.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{d: xml.NewDecoder(r)}
}

// Token reads the next raw XML token.
func (sr *StreamReader) Token() (xml.Token, error) {
	return sr.d.Token()
}

// NextEvent reads the next token and classifies it as a stream Event. It
// rejects directives carrying an external DTD subset.
func (sr *StreamReader) NextEvent() (Event, error) {
	tok, err := sr.d.Token()
	if err != nil {
		return Event{}, err
	}
	switch t := tok.(type) {
	case xml.StartElement:
		if t.Name.Local == "stream" {
			return Event{Kind: EventStreamStart, Name: t.Name, Attr: t.Attr}, nil
		}
		return Event{Kind: EventStanzaStart, Name: t.Name, Attr: t.Attr}, nil
	case xml.EndElement:
		if t.Name.Local == "stream" {
			return Event{Kind: EventStreamEnd, Name: t.Name}, nil
		}
		return Event{Kind: EventEndElement, Name: t.Name}, nil
	case xml.CharData:
		return Event{Kind: EventText, Text: string(t)}, nil
	case xml.Directive:
		if isExternalDTD(t) {
			return Event{}, ErrExternalEntity
		}
		return sr.NextEvent()
	default:
		return sr.NextEvent()
	}
}

func isExternalDTD(d xml.Directive) bool {
	s := strings.ToUpper(string(d))
	return strings.Contains(s, "DOCTYPE") && (strings.Contains(s, "SYSTEM") || strings.Contains(s, "PUBLIC"))
}

// Decode decodes the next element into v.
func (sr *StreamReader) Decode(v interface{}) error {
	return sr.d.Decode(v)
}

// DecodeElement decodes a specific element into v.
func (sr *StreamReader) DecodeElement(v interface{}, start *xml.StartElement) error {
	return sr.d.DecodeElement(v, start)
}

// Skip skips the current element and its children.
func (sr *StreamReader) Skip() error {
	return sr.d.Skip()
}

// Decoder returns the underlying xml.Decoder.
func (sr *StreamReader) Decoder() *xml.Decoder {
	return sr.d
}

// StreamWriter wraps an xml.Encoder for writing XMPP streams.
type StreamWriter struct {
	e *xml.Encoder
	w io.Writer
}

// NewStreamWriter creates a new StreamWriter over w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{
		e: xml.NewEncoder(w),
		w: w,
	}
}

// EncodeToken writes a single XML token.
func (sw *StreamWriter) EncodeToken(t xml.Token) error {
	if err := sw.e.EncodeToken(t); err != nil {
		return err
	}
	return sw.e.Flush()
}

// Encode encodes a value as XML.
func (sw *StreamWriter) Encode(v interface{}) error {
	if err := sw.e.Encode(v); err != nil {
		return err
	}
	return sw.e.Flush()
}

// Encoder returns the underlying xml.Encoder.
func (sw *StreamWriter) Encoder() *xml.Encoder {
	return sw.e
}

// WriteRaw writes raw bytes to the underlying writer, bypassing XML
// encoding. Used for the stream prolog, which is not well-formed XML on
// its own.
func (sw *StreamWriter) WriteRaw(data []byte) (int, error) {
	return sw.w.Write(data)
}

// Flush flushes the encoder buffer.
func (sw *StreamWriter) Flush() error {
	return sw.e.Flush()
}

package session

import (
	"encoding/xml"
)

// streamFeatures mirrors the `<stream:features>` element a server sends
// after each stream open, reporting what remains to be negotiated.
type streamFeatures struct {
	XMLName  xml.Name `xml:"http://etherx.jabber.org/streams features"`
	StartTLS *struct {
		Required *struct{} `xml:"required"`
	} `xml:"urn:ietf:params:xml:ns:xmpp-tls starttls"`
	Mechanisms *struct {
		Mechanism []string `xml:"mechanism"`
	} `xml:"urn:ietf:params:xml:ns:xmpp-sasl mechanisms"`
	Bind *struct{} `xml:"urn:ietf:params:xml:ns:xmpp-bind bind"`
}

// offersStartTLS reports whether the server advertised STARTTLS.
func (f *streamFeatures) offersStartTLS() bool {
	return f != nil && f.StartTLS != nil
}

// saslMechanisms returns the list of SASL mechanisms the server offers.
func (f *streamFeatures) saslMechanisms() []string {
	if f == nil || f.Mechanisms == nil {
		return nil
	}
	return f.Mechanisms.Mechanism
}

// offersBind reports whether the server advertised resource binding.
func (f *streamFeatures) offersBind() bool {
	return f != nil && f.Bind != nil
}

package session

import (
	"crypto/tls"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/fluux-io/fluux-agent/internal/ns"
	"github.com/fluux-io/fluux-agent/jid"
	"github.com/fluux-io/fluux-agent/sasl"
	"github.com/fluux-io/fluux-agent/stanza"
	"github.com/fluux-io/fluux-agent/stream"
)

// openStream writes the client's stream open tag and reads the server's
// reply, returning the stream ID it assigned.
func openStream(session *Session, header stream.Header) (streamID string, err error) {
	if _, err := session.Writer().WriteRaw(stream.Open(header)); err != nil {
		return "", err
	}
	for {
		tok, err := session.Reader().Token()
		if err != nil {
			return "", err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "stream" {
			continue
		}
		for _, a := range se.Attr {
			if a.Name.Local == "id" {
				streamID = a.Value
			}
		}
		return streamID, nil
	}
}

// readFeatures consumes tokens until the stream's `<features>` element
// arrives and decodes it.
func readFeatures(session *Session) (*streamFeatures, error) {
	for {
		tok, err := session.Reader().Token()
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "features" {
			continue
		}
		var feats streamFeatures
		if err := session.Reader().DecodeElement(&feats, &se); err != nil {
			return nil, err
		}
		return &feats, nil
	}
}

// negotiateStartTLS requests the STARTTLS upgrade, swaps the transport, and
// resets the stream parser so no buffered plaintext bytes leak into the
// encrypted stream.
func negotiateStartTLS(session *Session, tlsConfig *tls.Config) error {
	start := xml.StartElement{Name: xml.Name{Space: ns.TLS, Local: "starttls"}}
	if err := session.Writer().EncodeToken(start); err != nil {
		return err
	}
	if err := session.Writer().EncodeToken(xml.EndElement{Name: start.Name}); err != nil {
		return err
	}
	if err := session.Writer().Flush(); err != nil {
		return err
	}

	tok, err := session.Reader().Token()
	if err != nil {
		return err
	}
	se, ok := tok.(xml.StartElement)
	if !ok {
		return errors.New("session: unexpected token during starttls negotiation")
	}
	_ = session.Reader().Skip()
	if se.Name.Local != "proceed" {
		return errors.New("session: server refused starttls")
	}

	if err := session.Transport().StartTLS(tlsConfig); err != nil {
		return err
	}
	session.ResetStream()
	session.SetState(StateSecure)
	return nil
}

type saslAuth struct {
	XMLName   xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-sasl auth"`
	Mechanism string   `xml:"mechanism,attr"`
	Body      string   `xml:",chardata"`
}

type saslResponse struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-sasl response"`
	Body    string   `xml:",chardata"`
}

type saslChallenge struct {
	Body string `xml:",chardata"`
}

type saslSuccess struct {
	Body string `xml:",chardata"`
}

// negotiateSASL drives the SASL exchange to completion, preferring
// SCRAM-SHA-1 over PLAIN when the server offers both.
func negotiateSASL(session *Session, offered []string, creds sasl.Credentials) error {
	neg := sasl.NewNegotiator(creds, sasl.NewSCRAMSHA1(creds), sasl.NewPlain(creds))
	mech, err := neg.Select(offered)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	initial, err := mech.Start()
	if err != nil {
		return err
	}
	if err := session.Writer().Encode(saslAuth{
		Mechanism: mech.Name(),
		Body:      base64.StdEncoding.EncodeToString(initial),
	}); err != nil {
		return err
	}

	for {
		tok, err := session.Reader().Token()
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "challenge":
			var c saslChallenge
			if err := session.Reader().DecodeElement(&c, &se); err != nil {
				return err
			}
			decoded, err := base64.StdEncoding.DecodeString(c.Body)
			if err != nil {
				return err
			}
			resp, err := mech.Next(decoded)
			if err != nil {
				return err
			}
			if err := session.Writer().Encode(saslResponse{
				Body: base64.StdEncoding.EncodeToString(resp),
			}); err != nil {
				return err
			}
		case "success":
			var s saslSuccess
			if err := session.Reader().DecodeElement(&s, &se); err != nil {
				return err
			}
			if s.Body != "" {
				decoded, err := base64.StdEncoding.DecodeString(s.Body)
				if err != nil {
					return err
				}
				if _, err := mech.Next(decoded); err != nil {
					return err
				}
			}
			session.SetState(StateAuthenticated)
			return nil
		case "failure":
			_ = session.Reader().Skip()
			return sasl.ErrAuthFailed
		default:
			if err := session.Reader().Skip(); err != nil {
				return err
			}
		}
	}
}

// BindRequest represents a resource bind request.
type BindRequest struct {
	XMLName  xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-bind bind"`
	Resource string   `xml:"resource,omitempty"`
}

// BindResult represents a resource bind result.
type BindResult struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:xmpp-bind bind"`
	JID     string   `xml:"jid"`
}

type bindResponseIQ struct {
	stanza.Header
	XMLName xml.Name             `xml:"iq"`
	Bind    *BindResult          `xml:"urn:ietf:params:xml:ns:xmpp-bind bind"`
	Error   *stanza.StanzaError `xml:"error"`
}

// negotiateBind requests the given resource (or a server-assigned one, if
// empty) and returns the full JID the server bound.
func negotiateBind(session *Session, resource string) (jid.JID, error) {
	iq := stanza.NewIQ(stanza.IQSet)
	payload := &stanza.IQPayload{IQ: *iq, Payload: BindRequest{Resource: resource}}
	if err := session.Writer().Encode(payload); err != nil {
		return jid.JID{}, err
	}

	for {
		tok, err := session.Reader().Token()
		if err != nil {
			return jid.JID{}, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "iq" {
			continue
		}

		var resp bindResponseIQ
		if err := session.Reader().DecodeElement(&resp, &se); err != nil {
			return jid.JID{}, err
		}
		if resp.Error != nil {
			return jid.JID{}, resp.Error
		}
		if resp.Bind == nil {
			return jid.JID{}, errors.New("session: bind result missing jid")
		}
		bound, err := jid.Parse(resp.Bind.JID)
		if err != nil {
			return jid.JID{}, err
		}
		session.SetState(StateBound | StateReady)
		return bound, nil
	}
}

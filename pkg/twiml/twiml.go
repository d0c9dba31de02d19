package twiml

import (
	"encoding/xml"
	"fmt"
)

// Header is the XML declaration Twilio expects in front of the response.
const Header = `<?xml version="1.0" encoding="UTF-8"?>`

// ContentType is the media type for TwiML payloads.
const ContentType = "application/xml"

// MessagingResponse is the TwiML document returned to Twilio. Each segment
// becomes one <Message> and is delivered as a discrete WhatsApp message,
// in order.
type MessagingResponse struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

// Render marshals the segments into a TwiML document.
func Render(segments []string) (string, error) {
	doc := MessagingResponse{Messages: segments}
	body, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal twiml: %w", err)
	}
	return Header + string(body), nil
}

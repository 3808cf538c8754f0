// Package evolution wraps the WhatsApp messaging gateway. Delivery is
// fire-and-forget: a send either reaches the gateway or surfaces a
// RemoteError, and nothing tracks what happens after.
package evolution

import (
	"context"
	"net/http"

	"github.com/mfcruz/gestor/internal/gateway"
)

// Message is the gateway's receipt for an accepted send.
type Message struct {
	Key struct {
		ID        string `json:"id"`
		FromMe    bool   `json:"fromMe"`
		RemoteJid string `json:"remoteJid"`
	} `json:"key"`
	MessageTimestamp int64 `json:"messageTimestamp"`
}

// InstanceStatus reports whether the messaging instance is connected.
type InstanceStatus struct {
	Instance string `json:"instance"`
	State    string `json:"state"`
}

// Contact is one entry from the gateway's contact book.
type Contact struct {
	ID         string `json:"id"`
	PushName   string `json:"pushName"`
	ProfileURL string `json:"profilePictureUrl"`
}

type textPayload struct {
	Number string `json:"number"`
	Text   struct {
		Text string `json:"text"`
	} `json:"text"`
}

type mediaPayload struct {
	Number string `json:"number"`
	Media  struct {
		URL string `json:"url"`
	} `json:"media"`
	Caption string `json:"caption,omitempty"`
}

type documentPayload struct {
	Number   string `json:"number"`
	Document struct {
		URL      string `json:"url"`
		FileName string `json:"fileName"`
	} `json:"document"`
}

// Client talks to one named instance of the messaging gateway.
type Client struct {
	gw       *gateway.Client
	instance string
}

func New(baseURL, apiKey, instance string) *Client {
	return &Client{
		gw:       gateway.New(baseURL, "Authorization", "Bearer "+apiKey),
		instance: instance,
	}
}

// Status checks whether the instance is connected.
func (c *Client) Status(ctx context.Context) (*InstanceStatus, error) {
	var out InstanceStatus
	if err := c.gw.Do(ctx, http.MethodGet, "/instance/status/"+c.instance, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendText delivers a plain text message. number is in international format
// without punctuation (e.g. 5511999999999).
func (c *Client) SendText(ctx context.Context, number, text string) (*Message, error) {
	payload := textPayload{Number: number}
	payload.Text.Text = text

	var out Message
	if err := c.gw.Do(ctx, http.MethodPost, "/message/sendText/"+c.instance, payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendMedia delivers an image or video by URL with an optional caption.
func (c *Client) SendMedia(ctx context.Context, number, mediaURL, caption string) (*Message, error) {
	payload := mediaPayload{Number: number, Caption: caption}
	payload.Media.URL = mediaURL

	var out Message
	if err := c.gw.Do(ctx, http.MethodPost, "/message/sendMedia/"+c.instance, payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// SendDocument delivers a document (PDF etc.) by URL under the given file
// name.
func (c *Client) SendDocument(ctx context.Context, number, documentURL, fileName string) (*Message, error) {
	payload := documentPayload{Number: number}
	payload.Document.URL = documentURL
	payload.Document.FileName = fileName

	var out Message
	if err := c.gw.Do(ctx, http.MethodPost, "/message/sendDocument/"+c.instance, payload, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Contacts fetches the instance's contact book.
func (c *Client) Contacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	if err := c.gw.Do(ctx, http.MethodPost, "/chat/findContacts/"+c.instance, struct{}{}, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// History fetches past messages exchanged with one number.
func (c *Client) History(ctx context.Context, number string) ([]Message, error) {
	payload := struct {
		Number string `json:"number"`
	}{Number: number}

	var out []Message
	if err := c.gw.Do(ctx, http.MethodPost, "/chat/findMessages/"+c.instance, payload, &out); err != nil {
		return nil, err
	}

	return out, nil
}

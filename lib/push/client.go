package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"timesheet-backend/models"
)

// Message is the FCM payload shape the mobile clients expect.
type Message struct {
	Token        string            `json:"to"`
	Notification Notification      `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Android      *AndroidConfig    `json:"android,omitempty"`
	Apns         *ApnsConfig       `json:"apns,omitempty"`
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type AndroidConfig struct {
	Priority     string              `json:"priority,omitempty"`
	Notification AndroidNotification `json:"notification"`
}

type AndroidNotification struct {
	ChannelID string `json:"channel_id,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

type ApnsConfig struct {
	Payload ApnsPayload `json:"payload"`
}

type ApnsPayload struct {
	Aps Aps `json:"aps"`
}

type Aps struct {
	Badge int    `json:"badge,omitempty"`
	Sound string `json:"sound,omitempty"`
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

func NewProvider(endpoint, serverKey string) Provider {
	return &impl{
		endpoint:  endpoint,
		serverKey: serverKey,
	}
}

type impl struct {
	endpoint  string
	serverKey string
}

type sendResponse struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

func (i impl) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "push payload serialization error")
	}
	r, err := http.NewRequestWithContext(ctx, "POST", i.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "push request build error")
	}
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("Authorization", fmt.Sprintf("key=%v", i.serverKey))

	logger := log.
		WithField("external_request", i.endpoint)

	client := &http.Client{}
	res, err := client.Do(r)
	if err != nil {
		logger.WithError(err).Error("push delivery request failed")
		return errors.Wrap(models.ErrUpstreamFailure, err.Error())
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(res.Body)
		logger.
			WithField("status_code", res.StatusCode).
			WithField("response", string(respBody)).
			Error("push delivery rejected")
		return errors.Wrapf(models.ErrUpstreamFailure, "push endpoint returned status %v", res.StatusCode)
	}
	resp := sendResponse{}
	err = json.NewDecoder(res.Body).Decode(&resp)
	if err != nil {
		// delivery accepted, response shape is advisory only
		logger.WithError(err).Warn("unreadable push endpoint response")
		return nil
	}
	if resp.Failure > 0 && resp.Success == 0 {
		return errors.Wrap(models.ErrUpstreamFailure, "push endpoint reported delivery failure")
	}
	return nil
}

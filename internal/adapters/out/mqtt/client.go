// Package mqtt publishes completion events to an MQTT broker.
package mqtt

import (
	"context"
	"errors"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const (
	// DefaultBrokerURL is used when no broker is configured.
	DefaultBrokerURL = "tcp://localhost:1883"

	defaultTimeout = 10 * time.Second
	qos            = 1
)

var (
	// ErrTimeout is returned when the broker does not acknowledge in time.
	ErrTimeout = errors.New("mqtt operation timed out")
	// ErrNotConnected is returned by Publish while the client is not connected to the broker.
	ErrNotConnected = errors.New("mqtt client is not connected")
)

// Client wraps a paho client with bounded waits on every token.
// The paho client is safe for concurrent use, so concurrent calls only share its connection.
type Client struct {
	client  paho.Client
	timeout time.Duration
}

// NewClient creates a client for brokerURL but does not connect.
func NewClient(brokerURL, clientID string) *Client {
	if brokerURL == "" {
		brokerURL = DefaultBrokerURL
	}

	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	return WrapClient(paho.NewClient(opts))
}

// WrapClient uses an already configured paho client.
func WrapClient(client paho.Client) *Client {
	return &Client{
		client:  client,
		timeout: defaultTimeout,
	}
}

// Connect connects to the broker, giving up after the client timeout.
func (c *Client) Connect() error {
	return c.wait(context.Background(), c.client.Connect())
}

// Publish sends payload on topic with QoS 1 and waits for the acknowledgement.
// It fails with ErrNotConnected without sending while the broker is unreachable.
// The wait ends early when ctx is done.
func (c *Client) Publish(ctx context.Context, topic string, payload []byte) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	return c.wait(ctx, c.client.Publish(topic, qos, false, payload))
}

// Disconnect waits up to one second for in-flight work, then closes the connection.
func (c *Client) Disconnect() {
	c.client.Disconnect(1000)
}

// IsConnected reports whether the underlying client is connected.
func (c *Client) IsConnected() bool {
	return c.client.IsConnected()
}

func (c *Client) wait(ctx context.Context, token paho.Token) error {
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case <-token.Done():
		return token.Error()
	case <-timer.C:
		return ErrTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}

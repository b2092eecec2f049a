// Package remote exposes the equalizer parameters over MQTT.
//
// Every parameter listens on <topic>/<slug>/set, where slug is the
// parameter ID in snake case ("Peak Freq" becomes peak_freq). Payloads are
// parsed like user input ("2.5 kHz", "24 dB/Oct", "3"). Controllers that
// send knob positions use <topic>/<slug>/set_normalized with a value in
// [0, 1], mapped through the parameter's skew. The current values
// are published as JSON on <topic>/state, and Home Assistant discovery
// entities are announced on connect.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/cwbudde/algo-eq/dsp/eq"
	"github.com/cwbudde/algo-eq/param"
)

// Options configures the broker connection.
type Options struct {
	Broker   string // scheme and host, e.g. tcp://localhost
	Port     int
	User     string
	Password string
	Topic    string
}

// Client bridges a parameter store and an MQTT broker.
type Client struct {
	client mqtt.Client
	topic  string
	store  *param.Store
	logger *log.Logger
	routes map[string]route // command topic -> parameter
	dirty  eq.ChangeFlag
	cancel func()
}

type route struct {
	id         string
	normalized bool
}

// Slug converts a parameter ID to its topic segment.
func Slug(id string) string {
	return strings.ToLower(strings.Join(strings.Fields(id), "_"))
}

func newClient(topic string, store *param.Store, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}

	c := &Client{
		topic:  topic,
		store:  store,
		logger: logger,
		routes: make(map[string]route),
	}

	for _, p := range store.Params() {
		c.routes[c.commandTopic(p.ID)] = route{id: p.ID}
		c.routes[c.commandTopic(p.ID)+"_normalized"] = route{id: p.ID, normalized: true}
	}

	c.cancel = store.Listen(func(string, float64) { c.dirty.Set() })

	return c
}

// NewClient connects to the broker and starts serving store.
func NewClient(opts Options, store *param.Store, logger *log.Logger) (*Client, error) {
	c := newClient(opts.Topic, store, logger)

	mo := mqtt.NewClientOptions()
	mo.AddBroker(fmt.Sprintf("%s:%d", opts.Broker, opts.Port))
	mo.SetClientID(fmt.Sprintf("simpleeq-%d", time.Now().Unix()))

	if opts.User != "" {
		mo.SetUsername(opts.User)
	}
	if opts.Password != "" {
		mo.SetPassword(opts.Password)
	}

	mo.SetAutoReconnect(true)
	mo.SetMaxReconnectInterval(30 * time.Second)
	mo.OnConnect = c.onConnect
	mo.OnConnectionLost = c.onConnectionLost
	mo.SetWill(c.topic+"/availability", "offline", 0, true)

	c.client = mqtt.NewClient(mo)
	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		c.cancel()
		return nil, fmt.Errorf("remote: connect: %w", token.Error())
	}

	return c, nil
}

func (c *Client) commandTopic(id string) string {
	return c.topic + "/" + Slug(id) + "/set"
}

func (c *Client) onConnect(client mqtt.Client) {
	c.logger.Println("Connected to MQTT broker")

	client.Publish(c.topic+"/availability", 0, true, "online")

	for topic := range c.routes {
		if token := client.Subscribe(topic, 0, c.handleSet); token.Wait() && token.Error() != nil {
			c.logger.Printf("Failed to subscribe to %s: %v", topic, token.Error())
		}
	}

	c.publishDiscovery()
	c.PublishState()
}

func (c *Client) onConnectionLost(_ mqtt.Client, err error) {
	c.logger.Printf("MQTT connection lost: %v", err)
}

func (c *Client) handleSet(_ mqtt.Client, msg mqtt.Message) {
	r, ok := c.routes[msg.Topic()]
	if !ok {
		return
	}

	payload := string(msg.Payload())

	var err error
	if r.normalized {
		var n float64
		if n, err = strconv.ParseFloat(strings.TrimSpace(payload), 64); err == nil {
			err = c.store.SetNormalized(r.id, n)
		}
	} else {
		err = c.store.SetString(r.id, payload)
	}

	if err != nil {
		c.logger.Printf("Ignoring %s: %v", msg.Topic(), err)
	}
}

// State returns the current parameter values as JSON keyed by slug. Choice
// parameters are reported by name.
func (c *Client) State() ([]byte, error) {
	state := make(map[string]any, len(c.routes)/2)
	for _, p := range c.store.Params() {
		if len(p.Choices) > 0 {
			state[Slug(p.ID)] = p.Format(p.Value())
			continue
		}

		state[Slug(p.ID)] = p.Value()
	}

	return json.Marshal(state)
}

// PublishState publishes the current values on <topic>/state.
func (c *Client) PublishState() {
	data, err := c.State()
	if err != nil {
		c.logger.Printf("Failed to marshal state: %v", err)
		return
	}

	c.publish(c.topic+"/state", true, data)
}

type curve struct {
	Freqs []float64 `json:"freqs"`
	DB    []float64 `json:"db"`
}

// PublishCurve publishes a response curve as JSON on <topic>/<name>.
func (c *Client) PublishCurve(name string, freqs, db []float64) {
	data, err := json.Marshal(curve{Freqs: freqs, DB: db})
	if err != nil {
		c.logger.Printf("Failed to marshal %s: %v", name, err)
		return
	}

	c.publish(c.topic+"/"+name, false, data)
}

func (c *Client) publish(topic string, retained bool, payload []byte) {
	if c.client == nil {
		return
	}

	c.client.Publish(topic, 0, retained, payload)
}

// Run republishes the state whenever parameters changed, checking every
// interval, until ctx is cancelled.
func (c *Client) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.dirty.CheckAndClear() {
				c.PublishState()
			}
		}
	}
}

// Close marks the device offline and disconnects.
func (c *Client) Close() {
	c.cancel()

	if c.client != nil {
		c.client.Publish(c.topic+"/availability", 0, true, "offline")
		c.client.Disconnect(250)
	}
}

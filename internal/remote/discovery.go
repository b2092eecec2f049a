package remote

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-eq/param"
)

// discoveryConfig builds the Home Assistant entity for p: a select for
// choice parameters, a slider otherwise.
func (c *Client) discoveryConfig(p *param.Parameter) (domain, uniqueID string, config map[string]any) {
	slug := Slug(p.ID)
	uniqueID = "simpleeq_" + slug

	config = map[string]any{
		"name":          p.ID,
		"unique_id":     uniqueID,
		"command_topic": c.commandTopic(p.ID),
		"state_topic":   c.topic + "/state",
		"device": map[string]any{
			"identifiers":  []string{"simpleeq"},
			"name":         "Simple EQ",
			"manufacturer": "algo-eq",
			"model":        "Three-band EQ",
		},
		"availability": map[string]any{
			"topic": c.topic + "/availability",
		},
	}

	if len(p.Choices) > 0 {
		config["options"] = p.Choices
		config["value_template"] = fmt.Sprintf("{{ value_json.%s }}", slug)
		return "select", uniqueID, config
	}

	config["min"] = p.Min
	config["max"] = p.Max
	config["step"] = p.Step
	config["mode"] = "slider"
	config["value_template"] = fmt.Sprintf("{{ value_json.%s }}", slug)
	if p.Unit != "" {
		config["unit_of_measurement"] = p.Unit
	}

	return "number", uniqueID, config
}

func (c *Client) publishDiscovery() {
	params := c.store.Params()
	for _, p := range params {
		domain, id, config := c.discoveryConfig(p)

		data, err := json.Marshal(config)
		if err != nil {
			c.logger.Printf("Failed to marshal discovery for %s: %v", id, err)
			continue
		}

		topic := fmt.Sprintf("homeassistant/%s/%s/config", domain, id)
		if token := c.client.Publish(topic, 0, true, data); token.Wait() && token.Error() != nil {
			c.logger.Printf("Failed to publish discovery for %s: %v", id, token.Error())
		}
	}

	c.logger.Printf("Published MQTT discovery (%d entities)", len(params))
}

package events

import "strings"

// Topic constants for domain events emitted by the platform.
const (
	TopicOrderPaid         = "order.paid"
	TopicInventoryAdjusted = "inventory.adjusted"
)

// Topics returns every published topic with prefix applied.
func Topics(prefix string) []string {
	base := []string{TopicOrderPaid, TopicInventoryAdjusted}
	out := make([]string, 0, len(base))
	for _, t := range base {
		out = append(out, prefixed(prefix, t))
	}
	return out
}

func prefixed(prefix, topic string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return topic
	}
	return prefix + "." + topic
}

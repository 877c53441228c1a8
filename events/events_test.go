package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher

	assert.NotPanics(t, func() {
		p.Publish(OrderPlaced, "ORD-000001", map[string]any{"total": 4200})
		p.Close()
	})
	assert.Nil(t, p.Channel())
}

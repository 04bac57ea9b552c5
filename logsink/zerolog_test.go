package logsink

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"matchcore/domain"
)

func TestZerologSinkTagsEventsWithTrader(t *testing.T) {
	var buf bytes.Buffer
	sink := New(zerolog.New(&buf), "alice")

	sink.OnFill(domain.Buy, domain.Limit, 1, "ACME", 100, 5)

	out := buf.String()
	assert.Contains(t, out, `"trader":"alice"`)
	assert.Contains(t, out, `"order_id":1`)
	assert.Contains(t, out, `"fill"`)
}

func TestZerologSinkCancelIncludesReason(t *testing.T) {
	var buf bytes.Buffer
	sink := New(zerolog.New(&buf), "bob")

	sink.OnCancel(domain.Sell, domain.Limit, 2, "ACME", 100, 3, domain.SelfTrade)

	assert.Contains(t, buf.String(), `"reason":"SELF_TRADE"`)
}

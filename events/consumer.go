package events

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// StartConsumer drains the notification queue in a background goroutine and
// hands each decoded event to handle. It stands in for the shop's outbound
// email/SMS sender; events that fail to decode are rejected without requeue.
func StartConsumer(ch *amqp.Channel, queue string, log zerolog.Logger, handle func(Event)) error {
	msgs, err := ch.Consume(
		queue,
		"stitchlk-notifier", // consumer tag
		false,               // auto-ack
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			processMessage(msg, log, handle)
		}
	}()
	return nil
}

func processMessage(msg amqp.Delivery, log zerolog.Logger, handle func(Event)) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic in event handler")
			_ = msg.Nack(false, false)
		}
	}()

	var ev Event
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		log.Warn().Err(err).Msg("dropping undecodable event")
		_ = msg.Nack(false, false)
		return
	}

	handle(ev)
	_ = msg.Ack(false)
}

// LogNotifier is the default event handler: it records the notification
// intent in the log.
func LogNotifier(log zerolog.Logger) func(Event) {
	return func(ev Event) {
		log.Info().
			Str("event", ev.Type).
			Str("ref", ev.Reference).
			Interface("data", ev.Data).
			Msg("notification")
	}
}

package helpers

import (
	"context"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestPublishJSONNilPublisher(t *testing.T) {
	var p *RabbitPublisher
	err := p.PublishJSON(context.Background(), map[string]string{"k": "v"})
	if err != amqp.ErrClosed {
		t.Fatalf("PublishJSON on nil publisher: got %v, want amqp.ErrClosed", err)
	}
}

func TestPublishJSONUnconnectedPublisher(t *testing.T) {
	p := &RabbitPublisher{Queue: "emails"}
	err := p.PublishJSON(context.Background(), map[string]string{"k": "v"})
	if err != amqp.ErrClosed {
		t.Fatalf("PublishJSON without a channel: got %v, want amqp.ErrClosed", err)
	}
}

func TestCloseNilPublisher(t *testing.T) {
	var p *RabbitPublisher
	p.Close()
}

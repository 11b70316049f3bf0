package eventbus

import (
	"testing"

	"github.com/Rorical/RoriTutor/internal/models"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	if err := eb.SendToCore(SendMessageEvent{Message: "hello"}); err != nil {
		t.Fatalf("SendToCore: %v", err)
	}
	event := <-eb.UIToCore()
	send, ok := event.(SendMessageEvent)
	if !ok {
		t.Fatalf("got %T, want SendMessageEvent", event)
	}
	if send.Message != "hello" {
		t.Errorf("Message = %q", send.Message)
	}

	update := StateUpdateEvent{
		Messages:     []models.Message{{Content: "hi", Type: models.User}},
		IsProcessing: true,
	}
	if err := eb.SendToUI(update); err != nil {
		t.Fatalf("SendToUI: %v", err)
	}
	got := <-eb.CoreToUI()
	state, ok := got.(StateUpdateEvent)
	if !ok {
		t.Fatalf("got %T, want StateUpdateEvent", got)
	}
	if len(state.Messages) != 1 || !state.IsProcessing {
		t.Errorf("unexpected state update: %+v", state)
	}
}

func TestSendToCoreFullChannel(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) {
		reported = append(reported, e)
	})

	for i := 0; i < 100; i++ {
		if err := eb.SendToCore(SendMessageEvent{Message: "fill"}); err != nil {
			t.Fatalf("send %d failed before channel was full: %v", i, err)
		}
	}

	if err := eb.SendToCore(SendMessageEvent{Message: "overflow"}); err == nil {
		t.Fatal("expected an error once the channel is full")
	}
	if len(reported) != 1 {
		t.Errorf("error callback called %d times, want 1", len(reported))
	}
	if len(reported) == 1 && reported[0].Operation != "SendToCore" {
		t.Errorf("Operation = %q", reported[0].Operation)
	}
}

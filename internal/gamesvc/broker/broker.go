package broker

import (
	"encoding/json"

	"github.com/nats-io/nats.go"

	"github.com/minerush/game-services/internal/comm"
)

// Broker pushes resolved moves and telemetry onto the ledger stream.
// The ledger service consumes them on the other side.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

func (b *Broker) PublishMove(record comm.MoveRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return b.Conn.Publish(comm.SubjectMoves, data)
}

func (b *Broker) PublishEvent(record comm.EventRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return b.Conn.Publish(comm.SubjectEvents, data)
}

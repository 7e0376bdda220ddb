package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"time"

	natsio "github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	config "github.com/minerush/game-services/configs"
	"github.com/minerush/game-services/internal/comm"
	"github.com/minerush/game-services/internal/ledgersvc/ledger"
	nats "github.com/minerush/game-services/internal/nats"
)

const SERVICE_NAME = "ledger"

var instanceId string

func init() {
	instanceId = "001"
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	l, cancelMongo, err := ledger.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to Mongo: %v", err)
	}
	defer cancelMongo()
	log.Printf("mongo connection established successfully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := l.EnsureIndexes(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to ensure ledger indexes: %v", err)
	}
	cancel()

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}

	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	moveSub, err := n.Conn.Subscribe(comm.SubjectMoves, func(msg *natsio.Msg) {
		record := comm.MoveRecord{}
		if err := json.Unmarshal(msg.Data, &record); err != nil {
			log.Errorf("Error decoding move record %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := l.SaveMove(ctx, record); err != nil {
			log.Errorf("Error saving move record %s: %s", record.ActionID, err)
		}
	})
	if err != nil {
		log.Fatalf("Error: unable to subscribe to %s: %v", comm.SubjectMoves, err)
	}

	eventSub, err := n.Conn.Subscribe(comm.SubjectEvents, func(msg *natsio.Msg) {
		record := comm.EventRecord{}
		if err := json.Unmarshal(msg.Data, &record); err != nil {
			log.Errorf("Error decoding event record %s", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := l.SaveEvent(ctx, record); err != nil {
			log.Errorf("Error saving event record %s: %s", record.EventID, err)
		}
	})
	if err != nil {
		log.Fatalf("Error: unable to subscribe to %s: %v", comm.SubjectEvents, err)
	}

	log.Infof("%s service consuming ledger stream", SERVICE_NAME)

	// Wait for interrupt signal to gracefully stop the consumer
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	moveSub.Unsubscribe()
	eventSub.Unsubscribe()

	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}

package broker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/sportshub-services/internal/comm"
)

const (
	NoticeSubjectPrefix = "sportshub.notice."
	HeartbeatSubject    = "sportshub.heartbeat"
	ShutdownSubject     = "sportshub.shutdown"

	heartbeatInterval = 15 * time.Second
)

// Publisher is the part of *nats.Conn the broker publishes through.
type Publisher interface {
	Publish(subj string, data []byte) error
}

// RelayFunc receives notices published by any service instance.
type RelayFunc func(eventID string, msg *comm.WSMessage)

type Broker struct {
	Conn       Publisher
	Service    string
	InstanceId string

	sched gocron.Scheduler
}

func NewBroker(conn Publisher, service, instanceId string) *Broker {
	return &Broker{
		Conn:       conn,
		Service:    service,
		InstanceId: instanceId,
	}
}

// Notify publishes a committed change. Failures are logged only; the change
// itself is already stored.
func (b *Broker) Notify(_ context.Context, n comm.Notice) {
	msg, err := n.Message()
	if err != nil {
		log.Errorf("notice %s: unable to marshal: %s", n.Type, err)
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Errorf("Error %s", err)
		return
	}

	b.Publish(NoticeSubject(n.Type), payload)
}

func NoticeSubject(t comm.NoticeType) string {
	return NoticeSubjectPrefix + string(t)
}

func (b *Broker) Publish(topic string, payload []byte) error {
	err := b.Conn.Publish(topic, payload)
	if err != nil {
		log.Errorf("Error publishing to topic %s: %s", topic, err)
		return err
	}

	return nil
}

// SubscribeNotices relays every instance's notices to fn.
func SubscribeNotices(conn *nats.Conn, fn RelayFunc) (*nats.Subscription, error) {
	return conn.Subscribe(NoticeSubjectPrefix+">", func(m *nats.Msg) {
		eventID, msg, err := DecodeNotice(m.Data)
		if err != nil {
			log.Errorf("Error nats message on %s: %s", m.Subject, err)
			return
		}
		fn(eventID, msg)
	})
}

// DecodeNotice unwraps a published notice and reports the sports event it
// belongs to.
func DecodeNotice(data []byte) (string, *comm.WSMessage, error) {
	msg := &comm.WSMessage{}
	if err := json.Unmarshal(data, msg); err != nil {
		return "", nil, err
	}
	if msg.Type == "" {
		return "", nil, errors.New("message without type")
	}

	var scope struct {
		EventID string `json:"event_id"`
	}
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &scope); err != nil {
			return "", nil, err
		}
	}
	return scope.EventID, msg, nil
}

// StartHeartbeat announces this instance on HeartbeatSubject every 15s.
func (b *Broker) StartHeartbeat() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(heartbeatInterval),
		gocron.NewTask(b.heartbeat),
		gocron.WithName("heartbeat"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = sched.Shutdown()
		return err
	}

	sched.Start()
	b.sched = sched
	return nil
}

func (b *Broker) heartbeat() {
	payload, err := json.Marshal(comm.ServiceHeartbeat{
		ID:        b.InstanceId,
		Service:   b.Service,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Errorf("heartbeat marshal: %s", err)
		return
	}
	b.Publish(HeartbeatSubject, payload)
}

// Shutdown stops the heartbeat and tells peers this instance is gone.
func (b *Broker) Shutdown() {
	if b.sched != nil {
		if err := b.sched.Shutdown(); err != nil {
			log.Warnf("heartbeat scheduler shutdown: %s", err)
		}
	}

	payload, err := json.Marshal(comm.ServiceShutdown{ID: b.InstanceId})
	if err != nil {
		return
	}
	b.Publish(ShutdownSubject, payload)
}

//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Programmer60/BorrowEase-sub002/internal/application/usecase"
	"github.com/Programmer60/BorrowEase-sub002/internal/domain/event"
	"github.com/Programmer60/BorrowEase-sub002/pkg/events"
	pkgkafka "github.com/Programmer60/BorrowEase-sub002/pkg/kafka"
	"github.com/Programmer60/BorrowEase-sub002/pkg/testutil"
)

func TestEventPublisher_AgainstBroker(t *testing.T) {
	testutil.SkipIfShort(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	topic := usecase.TopicKYCSubmissions
	kc := testutil.NewKafkaContainer(ctx, t, topic)
	defer kc.Cleanup(t)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{Brokers: kc.Brokers})
	require.NoError(t, err)
	defer func() { _ = producer.Close() }()

	evt := event.NewAttemptsReset(testutil.TestSubmissionID, testutil.TestBorrowerID, testutil.TestAdminID)

	require.NoError(t, newPublisher(producer).Publish(ctx, topic, evt))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:   kc.Brokers,
		Topic:     topic,
		Partition: 0,
		MaxWait:   500 * time.Millisecond,
	})
	defer func() { _ = reader.Close() }()

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)

	assert.Equal(t, testutil.TestSubmissionID.String(), string(msg.Key))
	var env events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, evt.EventType(), env.EventType)
	assert.Equal(t, evt.EventID(), env.EventID)
}

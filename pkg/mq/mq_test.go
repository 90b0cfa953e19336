package mq

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEvent 测试事件结构
type testEvent struct {
	BookID int    `json:"book_id"`
	Action string `json:"action"`
}

// brokerURL 需要真实RabbitMQ的测试通过LIBRARY_TEST_AMQP_URL开启
func brokerURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("LIBRARY_TEST_AMQP_URL")
	if url == "" {
		t.Skip("未设置LIBRARY_TEST_AMQP_URL,跳过RabbitMQ测试")
	}
	return url
}

// TestNewPublisher_BadURL 测试无效地址
func TestNewPublisher_BadURL(t *testing.T) {
	_, err := NewPublisher("http://localhost:5672/", "library.test.events", "topic")
	assert.Error(t, err)

	_, err = NewConsumer("http://localhost:5672/", "library.test.events", "topic", "", []string{"#"})
	assert.Error(t, err)
}

// TestPublishConsume 测试发布后可以被消费
func TestPublishConsume(t *testing.T) {
	url := brokerURL(t)

	consumer, err := NewConsumer(url, "library.test.events", "topic", "", []string{"circulation.*"})
	require.NoError(t, err)
	defer consumer.Close()

	publisher, err := NewPublisher(url, "library.test.events", "topic")
	require.NoError(t, err)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, publisher.Publish(ctx, "circulation.borrowed", testEvent{BookID: 7, Action: "borrowed"}))

	received := make(chan testEvent, 1)
	go func() {
		_ = consumer.Consume(ctx, func(routingKey string, body []byte) error {
			var e testEvent
			if err := json.Unmarshal(body, &e); err != nil {
				return err
			}
			received <- e
			cancel()
			return nil
		})
	}()

	select {
	case e := <-received:
		assert.Equal(t, 7, e.BookID)
		assert.Equal(t, "borrowed", e.Action)
	case <-time.After(5 * time.Second):
		t.Fatal("超时未收到消息")
	}
}

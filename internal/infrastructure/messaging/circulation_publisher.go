package messaging

import (
	"context"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/pkg/circuitbreaker"
)

// RoutingKeyPrefix 借还事件的路由键前缀,完整路由键如circulation.borrowed
const RoutingKeyPrefix = "circulation."

// publisher 由*mq.Publisher满足
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// CirculationPublisher 把借还事件发布到消息队列
// Broker故障时熔断,借还本身不受影响(Session只记录警告日志)
type CirculationPublisher struct {
	pub     publisher
	breaker *circuitbreaker.Breaker
}

// NewCirculationPublisher 创建事件发布者
func NewCirculationPublisher(pub publisher) *CirculationPublisher {
	return newCirculationPublisher(pub, circuitbreaker.New(circuitbreaker.DefaultConfig("mq-circulation-publisher")))
}

func newCirculationPublisher(pub publisher, breaker *circuitbreaker.Breaker) *CirculationPublisher {
	return &CirculationPublisher{pub: pub, breaker: breaker}
}

// Publish 发布事件
func (p *CirculationPublisher) Publish(ctx context.Context, event library.CirculationEvent) error {
	return p.breaker.Execute(func() error {
		return p.pub.Publish(ctx, RoutingKeyPrefix+event.Action, event)
	})
}

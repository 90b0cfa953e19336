package main

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/xiebiao/library/internal/application/library"
	"github.com/xiebiao/library/internal/infrastructure/messaging"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/mq"
)

var eventsQueue string

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "订阅并打印借还事件",
	Long:  "绑定circulation.*路由键消费借还事件并逐条记录日志，需要在配置中开启mq。",
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsQueue, "queue", "",
		"队列名（为空时使用临时独占队列）")
}

func runEvents(cmd *cobra.Command, args []string) error {
	if !cfg.MQ.Enabled {
		return errors.New("未开启消息队列（mq.enabled=false）")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer, err := mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType,
		eventsQueue, []string{messaging.RoutingKeyPrefix + "*"})
	if err != nil {
		return err
	}
	defer consumer.Close()

	logger.Info().Str("exchange", cfg.MQ.Exchange).Msg("开始消费借还事件")

	return consumer.Consume(ctx, func(routingKey string, body []byte) error {
		var event library.CirculationEvent
		if err := json.Unmarshal(body, &event); err != nil {
			// 格式错误的消息重投也无法处理,直接丢弃
			logger.Warn().Err(err).Str("routing_key", routingKey).Msg("无法解析借还事件")
			return nil
		}
		logger.Info().
			Str("routing_key", routingKey).
			Str("action", event.Action).
			Int("student_id", event.StudentID).
			Int("book_id", event.BookID).
			Time("occurred_at", event.OccurredAt).
			Msg("借还事件")
		return nil
	})
}

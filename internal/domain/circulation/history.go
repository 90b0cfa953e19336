package circulation

import (
	"time"
)

// Event 一条借阅记录
type Event struct {
	BookID     int
	StudentID  int
	BorrowedAt time.Time
}

// HistoryLog 借阅历史
// 只追加,不随归还删除;读取时最新的在前
type HistoryLog struct {
	events []Event
}

// NewHistoryLog 创建空历史
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append 追加一条记录
func (h *HistoryLog) Append(e Event) {
	h.events = append(h.events, e)
}

// Entries 返回全部记录,最新的在前
func (h *HistoryLog) Entries() []Event {
	out := make([]Event, len(h.events))
	for i, e := range h.events {
		out[len(h.events)-1-i] = e
	}
	return out
}

// Len 记录条数
func (h *HistoryLog) Len() int {
	return len(h.events)
}

// Package activitylog はスタッフ画面に出す直近の出来事を保持する。
// logrus の Hook として登録し、Field 付きのログだけを拾う。
package activitylog

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// このフィールドが付いたログだけ記録する
const Field = "activity"

const DefaultMax = 20

type Log struct {
	mu      sync.Mutex
	max     int
	entries []string
	last    string
	now     func() time.Time
}

func New(max int) *Log {
	if max <= 0 {
		max = DefaultMax
	}
	return &Log{max: max, now: time.Now}
}

// 直前と同じメッセージは積まない。上限を超えたら古い方から捨てる。
func (l *Log) Add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if msg == l.last {
		return
	}
	l.last = msg
	l.entries = append(l.entries, l.now().Format("15:04:05")+" - "+msg)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.WarnLevel, logrus.InfoLevel}
}

func (l *Log) Fire(e *logrus.Entry) error {
	if _, ok := e.Data[Field]; !ok {
		return nil
	}
	l.Add(e.Message)
	return nil
}

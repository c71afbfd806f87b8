package tui

import "time"

type msgTaskStart struct {
	SpanID    string
	ParentID  string
	Name      string
	StartTime time.Time
}

type msgTaskLog struct {
	SpanID string
	Data   []byte
}

type msgTaskComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}

// msgStop asks the program to render its final frame and exit.
type msgStop struct{}

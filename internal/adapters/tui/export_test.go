package tui

// Messages exported for tests.
type (
	MsgTaskStart    = msgTaskStart
	MsgTaskLog      = msgTaskLog
	MsgTaskComplete = msgTaskComplete
	MsgStop         = msgStop
)

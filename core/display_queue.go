package core

// DisplayQueueSize bounds the operations held between drains.
const DisplayQueueSize = 32

const (
	displayGoto uint8 = iota + 1
	displayPut
	displayClear
)

type displayOp struct {
	kind uint8
	a, b uint8
}

// DisplayQueue is a Display that records operations for later replay.
//
// Panel drivers that sleep between controller commands cannot run with
// interrupts masked. Such targets hand the queue to the handlers and call
// Drain from the idle loop.
//
// A Clear discards everything queued before it. When the queue is full the
// new operation is dropped and counted.
type DisplayQueue struct {
	ops     [DisplayQueueSize]displayOp
	head    uint8
	count   uint8
	dropped uint32
}

func (q *DisplayQueue) GotoXY(x, y uint8) {
	q.push(displayOp{kind: displayGoto, a: x, b: y})
}

func (q *DisplayQueue) PutChar(c byte) {
	q.push(displayOp{kind: displayPut, a: c})
}

func (q *DisplayQueue) Clear() {
	state := disableInterrupts()
	q.ops[0] = displayOp{kind: displayClear}
	q.head, q.count = 0, 1
	restoreInterrupts(state)
}

func (q *DisplayQueue) push(op displayOp) {
	state := disableInterrupts()
	if q.count == DisplayQueueSize {
		q.dropped++
		dropped := q.dropped
		restoreInterrupts(state)
		RecordTiming(EvtLCDDrop, 0, 0, dropped, 0)
		return
	}
	q.ops[(q.head+q.count)%DisplayQueueSize] = op
	q.count++
	restoreInterrupts(state)
}

func (q *DisplayQueue) pop() (displayOp, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	if q.count == 0 {
		return displayOp{}, false
	}
	op := q.ops[q.head]
	q.head = (q.head + 1) % DisplayQueueSize
	q.count--
	return op, true
}

// Len returns the number of queued operations.
func (q *DisplayQueue) Len() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return int(q.count)
}

// Dropped counts operations lost to a full queue.
func (q *DisplayQueue) Dropped() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return q.dropped
}

// Drain replays queued operations on dst in order and returns how many ran.
// Each operation is taken under a critical section and applied outside it.
func (q *DisplayQueue) Drain(dst Display) int {
	n := 0
	for {
		op, ok := q.pop()
		if !ok {
			return n
		}
		switch op.kind {
		case displayGoto:
			dst.GotoXY(op.a, op.b)
		case displayPut:
			dst.PutChar(op.a)
		case displayClear:
			dst.Clear()
		}
		n++
	}
}

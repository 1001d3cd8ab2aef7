package framework

import (
	"sort"
	"sync"
)

// completedTest is either a finished test case or, if skipReason is set, one that was not run.
type completedTest struct {
	outcome     Outcome
	debugOutput CapturedOutput
	skipReason  string
}

// outcomeSortingQueue releases completed tests on C in the order of their sequence numbers,
// starting at 1, regardless of the order in which they were accepted.
type outcomeSortingQueue struct {
	C         chan completedTest
	lastSeq   int
	deferred  []deferredTest
	lock      sync.Mutex
	closeOnce sync.Once
}

type deferredTest struct {
	seq  int
	test completedTest
}

// The channel must be large enough to hold every item, since Accept sends while holding the lock.
func newOutcomeSortingQueue(channelSize int) *outcomeSortingQueue {
	return &outcomeSortingQueue{C: make(chan completedTest, channelSize)}
}

func (q *outcomeSortingQueue) Accept(seq int, test completedTest) {
	q.lock.Lock()
	defer q.lock.Unlock()
	if seq > q.lastSeq+1 {
		q.deferred = append(q.deferred, deferredTest{seq: seq, test: test})
		sort.Slice(q.deferred, func(i, j int) bool { return q.deferred[i].seq < q.deferred[j].seq })
		return
	}
	q.lastSeq = seq
	q.C <- test
	for len(q.deferred) > 0 {
		next := q.deferred[0]
		if next.seq != q.lastSeq+1 {
			break
		}
		q.deferred = q.deferred[1:]
		q.lastSeq++
		q.C <- next.test
	}
}

func (q *outcomeSortingQueue) Deferred() []string {
	q.lock.Lock()
	ret := make([]string, 0, len(q.deferred))
	for _, d := range q.deferred {
		ret = append(ret, d.test.outcome.Name)
	}
	q.lock.Unlock()
	return ret
}

func (q *outcomeSortingQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.C)
	})
}

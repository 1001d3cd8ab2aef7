package framework

import (
	"time"

	"golang.org/x/sync/errgroup"
)

const filteredOutReason = "excluded by filter parameters"

type RunOptions struct {
	// Filter selects which test cases run. Nil means all of them.
	Filter Filter

	// TestLogger receives progress notifications. Nil means none are reported.
	TestLogger TestLogger

	// Parallelism is the maximum number of test cases running at once. Values below 2 mean
	// strictly sequential execution.
	Parallelism int
}

// Run executes the test cases and returns a Suite whose Results are in the same order as
// cases. It never stops early: every selected test case produces an Outcome.
//
// In parallel mode, TestStarted and TestFinished are reported together as each Outcome is
// released in list order, and skipped test cases are released at their own list position,
// so a TestLogger sees the same sequence of calls either way.
func Run(name string, cases []TestCase, opts RunOptions) Suite {
	testLogger := opts.TestLogger
	if testLogger == nil {
		testLogger = nullTestLogger{}
	}

	suite := NewSuite(name)
	suite.StartedAt = time.Now()

	if opts.Parallelism < 2 {
		for _, tc := range cases {
			if !isSelected(opts.Filter, tc) {
				testLogger.TestSkipped(tc.Name, filteredOutReason)
				continue
			}
			testLogger.TestStarted(tc.Name)
			outcome, debugOutput := RunTestCase(tc)
			suite.Append(outcome)
			testLogger.TestFinished(outcome, debugOutput)
		}
	} else {
		runParallel(suite, cases, opts.Filter, opts.Parallelism, testLogger)
	}

	suite.FinishedAt = time.Now()
	return *suite
}

func isSelected(filter Filter, tc TestCase) bool {
	return filter == nil || filter(tc.Name)
}

func runParallel(suite *Suite, cases []TestCase, filter Filter, limit int, testLogger TestLogger) {
	q := newOutcomeSortingQueue(len(cases))
	completed := q.C

	go func() {
		var g errgroup.Group
		g.SetLimit(limit)
		for i, tc := range cases {
			seq, tc := i+1, tc
			if !isSelected(filter, tc) {
				q.Accept(seq, completedTest{outcome: Outcome{Name: tc.Name}, skipReason: filteredOutReason})
				continue
			}
			g.Go(func() error {
				outcome, debugOutput := RunTestCase(tc)
				q.Accept(seq, completedTest{outcome: outcome, debugOutput: debugOutput})
				return nil
			})
		}
		_ = g.Wait()
		q.Close()
	}()

	// Only this goroutine appends to the suite.
	for test := range completed {
		if test.skipReason != "" {
			testLogger.TestSkipped(test.outcome.Name, test.skipReason)
			continue
		}
		testLogger.TestStarted(test.outcome.Name)
		suite.Append(test.outcome)
		testLogger.TestFinished(test.outcome, test.debugOutput)
	}
}

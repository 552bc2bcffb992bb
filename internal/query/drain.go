package query

import "github.com/outofforest/morselq1/internal/ioring"

// drainRing repeatedly waits for at least one completion and resumes the
// corresponding tasks, until every producer has finished and no reads remain
// outstanding.
func drainRing(ring *ioring.Ring, countdown *ioring.Countdown, tasks map[uint64]*producerTask) error {
	for {
		if countdown.IsDone() && ring.Outstanding() == 0 {
			return nil
		}

		done, err := ring.Wait()
		if err != nil {
			return err
		}
		for _, userData := range done {
			task, ok := tasks[userData]
			if !ok {
				continue
			}
			if err := task.onReadComplete(); err != nil {
				return err
			}
		}
	}
}

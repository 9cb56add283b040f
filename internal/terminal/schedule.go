package terminal

import (
	"time"

	"cmdterm/internal/scheduler"
)

const defaultTickInterval = 16 * time.Millisecond

// Schedule runs command after the given number of seconds. Scaled delays follow the
// TimeScale variable; unscaled ones follow wall time. A NaN delay is rejected; delays too
// long for the clock never fire.
func (t *Terminal) Schedule(seconds float64, command string, scaled bool) (scheduler.TaskID, error) {
	delay, err := scheduler.DelayFromSeconds(seconds)
	if err != nil {
		return "", err
	}
	clock := scheduler.Real
	if scaled {
		clock = scheduler.Scaled
	}
	return t.sched.Schedule(delay, clock, command), nil
}

// CancelScheduled drops a scheduled command that has not fired yet.
func (t *Terminal) CancelScheduled(id scheduler.TaskID) bool {
	return t.sched.Cancel(id)
}

// Tick advances the clocks by the real time elapsed since the previous tick and runs
// the commands that became due. It returns how many ran.
func (t *Terminal) Tick(realDelta time.Duration) int {
	t.sched.Advance(realDelta, t.TimeScale())
	return t.sched.Drain(func(command string) {
		_ = t.execute(command)
	})
}

// Settle ticks in steps of the configured tick interval until total real time has passed
// or exit is requested. Commands scheduled by fired commands get their turn on later
// steps. It returns how many commands ran.
func (t *Terminal) Settle(total time.Duration) int {
	step := t.cfg.TickInterval
	if step <= 0 {
		step = defaultTickInterval
	}

	fired := 0
	for total > 0 && !t.ExitRequested() {
		delta := min(step, total)
		fired += t.Tick(delta)
		total -= delta
	}
	return fired
}

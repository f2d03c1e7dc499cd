package game

// Command is a bitmask of driving inputs asserted for the current
// frame. Front ends latch key presses into commands; the game never
// sees raw keys.
type Command uint8

const (
	CmdForward Command = 1 << iota
	CmdReverse
	CmdTurnLeft
	CmdTurnRight
	CmdFire
)

const numCommands = 5

// Has reports whether all bits of c are asserted.
func (cmd Command) Has(c Command) bool {
	return cmd&c == c
}

// cmdLatch is how long a key press stays asserted. Terminals deliver
// repeats, not held state, and release events are unreliable, so each
// press arms its command long enough to bridge the repeat delay.
const cmdLatch = 0.35

// commandState turns discrete key presses into continuous held
// commands.
type commandState struct {
	timers [numCommands]float64
}

// Press asserts every command bit in cmd for the latch window.
func (s *commandState) Press(cmd Command) {
	for i := range numCommands {
		if cmd&(1<<i) != 0 {
			s.timers[i] = cmdLatch
		}
	}
}

// Release clears the command bits in cmd immediately.
func (s *commandState) Release(cmd Command) {
	for i := range numCommands {
		if cmd&(1<<i) != 0 {
			s.timers[i] = 0
		}
	}
}

// Step advances the latch timers and returns the commands still held.
func (s *commandState) Step(dt float64) Command {
	var held Command
	for i := range numCommands {
		if s.timers[i] <= 0 {
			continue
		}
		s.timers[i] -= dt
		held |= 1 << i
	}
	return held
}
